package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/listsync/internal/state"
)

const minPaneWidth = 20

// layout sizes both viewports from the window dimensions.
func (m *Model) layout() {
	bodyHeight := max(m.height-2, 3) // header + footer
	listWidth, changesWidth := m.paneWidths()

	m.listViewport.Width = max(listWidth-2, 0)
	m.listViewport.Height = max(bodyHeight-3, 0) // border + title
	m.changesViewport.Width = max(changesWidth-2, 0)
	m.changesViewport.Height = max(bodyHeight-3, 0)
	m.refreshContent()
}

// paneWidths splits the window between the list and the change log. The
// change log gets no width when hidden.
func (m Model) paneWidths() (list, changes int) {
	if m.hideChanges || m.width < 2*minPaneWidth {
		return m.width, 0
	}
	list = m.width * 2 / 5
	return list, m.width - list
}

func (m *Model) refreshContent() {
	m.listViewport.SetContent(m.renderItems(m.listViewport.Width))
	m.changesViewport.SetContent(m.renderChanges(m.changesViewport.Width))
}

func (m Model) renderBody() string {
	bodyHeight := max(m.height-2, 3)
	listWidth, changesWidth := m.paneWidths()

	title := fmt.Sprintf("Items (%d)", len(m.snapshot.Items))
	list := m.renderPane(title, m.listViewport.View(), listWidth, bodyHeight, m.focus == PaneList)
	if changesWidth == 0 {
		return list
	}

	title = fmt.Sprintf("Changes (%d)", len(m.snapshot.Changes))
	changes := m.renderPane(title, m.changesViewport.View(), changesWidth, bodyHeight, m.focus == PaneChanges)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, changes)
}

func (m Model) renderPane(title, content string, width, height int, focused bool) string {
	styles := m.theme.Styles()
	titleStyle := styles.MutedText
	if focused {
		titleStyle = styles.AccentText.Bold(true)
	}
	inner := titleStyle.Render(truncate(title, width-2)) + "\n" + content
	return m.theme.Pane(focused).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Render(inner)
}

// renderItems renders the replica as numbered rows.
func (m Model) renderItems(width int) string {
	if len(m.snapshot.Items) == 0 {
		return m.theme.Styles().FaintText.Render("(empty)")
	}
	styles := m.theme.Styles()
	digits := len(fmt.Sprint(len(m.snapshot.Items) - 1))
	lines := make([]string, len(m.snapshot.Items))
	for i, item := range m.snapshot.Items {
		idx := fmt.Sprintf("%*d", digits, i)
		lines[i] = styles.FaintText.Render(idx) + " " +
			styles.Text.Render(truncate(item, width-digits-1))
	}
	return strings.Join(lines, "\n")
}

// renderChanges renders the change log newest first.
func (m Model) renderChanges(width int) string {
	if len(m.snapshot.Changes) == 0 {
		return m.theme.Styles().FaintText.Render("(no changes)")
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.snapshot.Changes))
	for i := len(m.snapshot.Changes) - 1; i >= 0; i-- {
		c := m.snapshot.Changes[i]
		prefix := fmt.Sprintf("%s %s ", c.At.Format("15:04:05"), shortBatch(c))
		kind := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.KindColor(c.Kind))).
			Width(10).
			Render(c.Kind.String())
		rest := fmt.Sprintf("%4d %s", c.Index, c.Value)
		lines = append(lines, styles.FaintText.Render(prefix)+kind+
			styles.Text.Render(truncate(rest, width-len(prefix)-10)))
	}
	return strings.Join(lines, "\n")
}

// shortBatch returns the random tail of the batch ULID, which distinguishes
// batches created within the same millisecond.
func shortBatch(c state.Change) string {
	id := c.Batch.String()
	return id[len(id)-6:]
}
