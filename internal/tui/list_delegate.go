package tui

import (
	"fmt"
	"io"
	"strings"

	"todo-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Row layout, in cells: drop marker, grip handle, space, checkbox, space, text.
const (
	gripStartCol     = 0
	gripEndCol       = 2
	checkboxStartCol = 3
	checkboxEndCol   = 6
)

type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Text }
func (i taskItem) Title() string       { return i.task.Text }

// taskRowDelegate renders one task per line. It reads the drag coordinator so
// the dragged row and its drop target are visible while a drag is active.
type taskRowDelegate struct {
	drag *dragCoordinator
}

func newTaskRowDelegate(drag *dragCoordinator) taskRowDelegate {
	return taskRowDelegate{drag: drag}
}

func (d taskRowDelegate) Height() int  { return 1 }
func (d taskRowDelegate) Spacing() int { return 0 }
func (d taskRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(taskItem)
	if !ok || contentW < checkboxEndCol+2 {
		fmt.Fprint(w, "")
		return
	}
	fmt.Fprint(w, d.renderRow(it.task, index, index == m.Index(), contentW))
}

func (d taskRowDelegate) renderRow(t model.Task, index int, selected bool, width int) string {
	dragging := d.drag != nil && d.drag.Active()

	base := lipgloss.NewStyle().Foreground(colorRowFg).Background(colorRowEvenBg)
	if index%2 == 1 {
		base = base.Background(colorRowOddBg)
	}
	if selected && !dragging {
		base = base.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	}
	if dragging && t.ID == d.drag.ActiveID() {
		base = base.Faint(true)
	}

	marker := " "
	markerStyle := base
	if dragging && t.ID == d.drag.OverID() && t.ID != d.drag.ActiveID() {
		marker = glyphDropTarget()
		markerStyle = base.Foreground(colorDropFg).Bold(true)
	}

	prefix := glyphGrip() + " " + glyphCheckbox(t.Completed) + " "
	avail := width - xansi.StringWidth(marker) - xansi.StringWidth(prefix)
	text := strings.ReplaceAll(t.Text, "\n", " ")
	if xansi.StringWidth(text) > avail {
		text = xansi.Truncate(text, avail, "…")
	}
	pad := avail - xansi.StringWidth(text)
	if pad < 0 {
		pad = 0
	}

	textStyle := base
	if t.Completed {
		textStyle = textStyle.Strikethrough(true).Foreground(colorMuted)
	}

	return markerStyle.Render(marker) +
		base.Render(prefix) +
		textStyle.Render(text) +
		base.Render(strings.Repeat(" ", pad))
}
