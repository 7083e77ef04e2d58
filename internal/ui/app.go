package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"

	"github.com/five82/listsync/internal/buffer"
	"github.com/five82/listsync/internal/prefs"
	"github.com/five82/listsync/internal/state"
)

// Pane identifies which pane has keyboard focus.
type Pane int

const (
	PaneList Pane = iota
	PaneChanges
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Stats       func() buffer.Stats // optional
	RefreshTick time.Duration
	ThemeName   string
	HideChanges bool
	PrefsPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	statsFn     func() buffer.Stats
	prefsPath   string
	refreshTick time.Duration

	// UI state
	theme       Theme
	width       int
	height      int
	ready       bool
	focus       Pane
	hideChanges bool
	showHelp    bool

	// Data state
	snapshot state.Snapshot
	stats    buffer.Stats

	listViewport    viewport.Model
	changesViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refreshTick := opts.RefreshTick
	if refreshTick <= 0 {
		refreshTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:             ctx,
		store:           opts.Store,
		statsFn:         opts.Stats,
		prefsPath:       prefsPath,
		refreshTick:     refreshTick,
		theme:           GetTheme(opts.ThemeName),
		hideChanges:     opts.HideChanges,
		listViewport:    viewport.New(0, 0),
		changesViewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refreshTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForChangeCmd(m.ctx, m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case changedMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), waitForChangeCmd(m.ctx, m.store))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if m.statsFn != nil {
			m.stats = m.statsFn()
		}
		m.refreshContent()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.refreshContent()
		m.savePrefs()
		return m, nil

	case "tab":
		if !m.hideChanges {
			m.focus = (m.focus + 1) % 2
		}
		return m, nil

	case "v":
		m.hideChanges = !m.hideChanges
		if m.hideChanges {
			m.focus = PaneList
		}
		m.layout()
		m.savePrefs()
		return m, nil

	case "c":
		if m.store == nil {
			return m, nil
		}
		m.store.ClearChanges()
		return m, fetchSnapshotCmd(m.store)
	}

	var cmd tea.Cmd
	if m.focus == PaneChanges {
		m.changesViewport, cmd = m.changesViewport.Update(msg)
	} else {
		m.listViewport, cmd = m.listViewport.Update(msg)
	}
	return m, cmd
}

// handleTick refreshes the snapshot so the header clock and poll status stay
// current between batches.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.refreshTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, HideChanges: m.hideChanges}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		glog.Warningf("[prefs] save: %v", err)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type changedMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForChangeCmd blocks until the store reports a completed batch or poll.
func waitForChangeCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-store.Changed():
			return changedMsg{}
		}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		// Cancelled from outside, for example by SIGINT.
		return nil
	}
	return err
}
