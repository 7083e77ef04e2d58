package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/listsync/internal/state"
)

// renderHeader renders the status bar: logo, source, poll status and buffer
// counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	label, kind := statusLabel(m.snapshot)
	statusStyle := styles.SuccessText
	switch kind {
	case statusWarn:
		statusStyle = styles.WarningText
	case statusError:
		statusStyle = styles.DangerText
	}

	parts := []string{
		bg.Render("listsync", styles.Logo),
		bg.Render(label, statusStyle),
	}
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("updated "+age(m.snapshot.LastUpdated, time.Now()), styles.MutedText))
	}
	if m.snapshot.Batches > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d batches", m.snapshot.Batches), styles.MutedText))
	}
	if m.stats.Passes > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d passes, %d coalesced", m.stats.Passes, m.stats.Coalesced()), styles.FaintText))
	}

	used := lipgloss.Width(strings.Join(parts, sep)) + 2*len(parts) + 2
	if src := m.snapshot.Source; src != "" && m.width-used > 8 {
		parts = append(parts, bg.Render(truncateMiddle(src, m.width-used), styles.InfoText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderFooter renders the key hints and current theme.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	hints := []struct{ key, desc string }{
		{"tab", "focus"},
		{"c", "clear changes"},
		{"v", "toggle changes"},
		{"T", m.theme.Name},
		{"?", "help"},
		{"q", "quit"},
	}
	segments := make([]string, 0, len(hints))
	for _, h := range hints {
		segments = append(segments, bg.Render(h.key, styles.AccentText)+bg.Render(":"+h.desc, styles.FaintText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(segments, "  "))
}

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

// statusLabel summarizes the poll state for the header.
func statusLabel(snap state.Snapshot) (string, statusKind) {
	switch {
	case snap.IsOffline():
		return fmt.Sprintf("OFFLINE (%d failures): %s", snap.ConsecutiveFailures, errorText(snap.LastError)), statusError
	case snap.LastError != nil:
		return "RETRYING: " + errorText(snap.LastError), statusWarn
	case snap.LastUpdated.IsZero():
		return "WAITING", statusWarn
	default:
		return "LIVE", statusOK
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return truncate(strings.ReplaceAll(err.Error(), "\n", " "), 60)
}

// age formats the time since t for compact display.
func age(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t).Round(time.Second)
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
