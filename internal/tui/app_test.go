package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"todo-cli/internal/model"
	"todo-cli/internal/store"
	"todo-cli/internal/tasklist"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
)

func newTestApp(t *testing.T, texts ...string) (appModel, *tasklist.List, store.Store) {
	t.Helper()

	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(old)
		setGlyphs(glyphSetUnicode)
	})

	st := store.NewMemory()
	l := tasklist.New(st, tasklist.Options{NewID: sequentialIDs()})
	for _, text := range texts {
		if _, _, err := l.Add(text); err != nil {
			t.Fatalf("Add(%q): %v", text, err)
		}
	}
	m := newAppModel(st, l, nil, nil)
	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	return m, l, st
}

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("t%d", n), nil
	}
}

func send(m appModel, msgs ...tea.Msg) appModel {
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		m = mm.(appModel)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func press(x, row int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: rowsTop + row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, row int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: rowsTop + row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, row int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: rowsTop + row, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func texts(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

func selectedText(t *testing.T, m appModel) string {
	t.Helper()
	task, ok := m.selectedTask()
	if !ok {
		t.Fatalf("expected a selected task")
	}
	return task.Text
}

func TestApp_TypeAndSubmitAddsTask(t *testing.T) {
	m, l, st := newTestApp(t)

	m = send(m, runes("  Buy milk "), keyEnter)
	if diff := cmp.Diff([]string{"Buy milk"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("tasks mismatch (-want +got):\n%s", diff)
	}
	if m.input.Value() != "" || l.Input() != "" {
		t.Fatalf("expected input cleared after add; got %q / %q", m.input.Value(), l.Input())
	}
	saved, err := st.LoadTasks(context.Background())
	if err != nil || len(saved) != 1 {
		t.Fatalf("expected task persisted; got %#v err=%v", saved, err)
	}
	if len(m.rows.Items()) != 1 {
		t.Fatalf("expected one row; got %d", len(m.rows.Items()))
	}
}

func TestApp_BlankSubmitKeepsInput(t *testing.T) {
	m, l, _ := newTestApp(t)

	m = send(m, runes("   "), keyEnter)
	if l.Len() != 0 {
		t.Fatalf("expected no task for blank input")
	}
	if m.input.Value() != "   " {
		t.Fatalf("expected blank input left untouched; got %q", m.input.Value())
	}
}

func TestApp_ListKeysToggleAndRemove(t *testing.T) {
	m, l, _ := newTestApp(t, "Buy milk", "Walk dog")

	m = send(m, keyTab)
	if m.focus != focusList {
		t.Fatalf("expected list focus after tab")
	}
	m = send(m, keySpace)
	if task, _ := l.Find("t1"); !task.Completed {
		t.Fatalf("expected space to toggle the selected task")
	}
	m = send(m, runes("x"))
	if task, _ := l.Find("t1"); task.Completed {
		t.Fatalf("expected x to toggle the task back")
	}

	m = send(m, keyDown, runes("d"))
	if diff := cmp.Diff([]string{"Buy milk"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("tasks mismatch after remove (-want +got):\n%s", diff)
	}
	if got := selectedText(t, m); got != "Buy milk" {
		t.Fatalf("expected cursor clamped to remaining row; got %q", got)
	}

	m = send(m, runes("d"))
	if l.Len() != 0 {
		t.Fatalf("expected empty list")
	}
	if m.focus != focusInput {
		t.Fatalf("expected focus back on input once the list is empty")
	}
}

func TestApp_QuickMoveFollowsTask(t *testing.T) {
	m, l, _ := newTestApp(t, "A", "B", "C")

	m = send(m, keyTab, tea.KeyMsg{Type: tea.KeyShiftDown})
	if diff := cmp.Diff([]string{"B", "A", "C"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got := selectedText(t, m); got != "A" {
		t.Fatalf("expected cursor to follow moved task; got %q", got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if diff := cmp.Diff([]string{"A", "B", "C"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("order mismatch after move up (-want +got):\n%s", diff)
	}

	// Moving past the edge is a no-op.
	m = send(m, tea.KeyMsg{Type: tea.KeyShiftUp})
	if diff := cmp.Diff([]string{"A", "B", "C"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("expected no change at the top edge (-want +got):\n%s", diff)
	}
}

func TestApp_QuickMoveUsesModelKeyMap(t *testing.T) {
	m, l, _ := newTestApp(t, "A", "B", "C")
	m.keys.MoveDown = key.NewBinding(key.WithKeys("n"))

	m = send(m, keyTab, tea.KeyMsg{Type: tea.KeyShiftDown})
	if diff := cmp.Diff([]string{"A", "B", "C"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("expected unbound key to leave order alone (-want +got):\n%s", diff)
	}

	m = send(m, runes("n"))
	if diff := cmp.Diff([]string{"B", "A", "C"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("order mismatch after rebound move (-want +got):\n%s", diff)
	}
}

func TestApp_LongInputIsNotTruncated(t *testing.T) {
	m, l, _ := newTestApp(t)

	long := strings.Repeat("milk ", 200) + "end"
	send(m, runes(long), keyEnter)
	tasks := l.Tasks()
	if len(tasks) != 1 || tasks[0].Text != long {
		t.Fatalf("expected the full %d-char text; got %d tasks", len(long), len(tasks))
	}
}

func TestApp_KeyboardDragAndDrop(t *testing.T) {
	m, l, _ := newTestApp(t, "A", "B", "C")

	m = send(m, keyTab, runes("m"))
	if !m.drag.Active() || m.drag.Sensor() != sensorKeyboard {
		t.Fatalf("expected keyboard drag to start")
	}
	m = send(m, keyDown, keyDown)
	if m.drag.OverID() != "t3" {
		t.Fatalf("expected drop target C; got %q", m.drag.OverID())
	}
	if l.Len() != 3 || texts(l.Tasks())[0] != "A" {
		t.Fatalf("expected no reorder before drop")
	}

	m = send(m, keyEnter)
	if m.drag.Active() {
		t.Fatalf("expected drag finished")
	}
	if diff := cmp.Diff([]string{"B", "C", "A"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got := selectedText(t, m); got != "A" {
		t.Fatalf("expected cursor on dropped task; got %q", got)
	}
}

func TestApp_KeyboardDragCancel(t *testing.T) {
	m, l, st := newTestApp(t, "A", "B", "C")
	st.Memory().FailWrites = errors.New("should not write")

	m = send(m, keyTab, runes("m"), keyDown, keyEsc)
	if m.drag.Active() {
		t.Fatalf("expected esc to cancel the drag")
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("expected order unchanged (-want +got):\n%s", diff)
	}
	if got := selectedText(t, m); got != "A" {
		t.Fatalf("expected cursor back on dragged task; got %q", got)
	}

	// Dropping back onto the source is a no-op too.
	m = send(m, runes("m"), keyDown, keyUp, keyEnter)
	if m.flash != "" {
		t.Fatalf("expected no write for a no-op drop; got flash %q", m.flash)
	}
}

func TestApp_PointerDragAndDrop(t *testing.T) {
	m, l, _ := newTestApp(t, "A", "B", "C")

	m = send(m, press(gripStartCol+1, 0))
	if !m.drag.Active() || m.drag.Sensor() != sensorPointer {
		t.Fatalf("expected pointer drag from the grip handle")
	}
	m = send(m, motion(1, 1), motion(1, 2))
	if m.drag.OverID() != "t3" {
		t.Fatalf("expected drop target C; got %q", m.drag.OverID())
	}
	view := xansi.Strip(m.View())
	if !strings.Contains(view, glyphDropTarget()+glyphGrip()+" [ ] C") {
		t.Fatalf("expected drop marker on C; got:\n%s", view)
	}
	if !strings.Contains(view, "moving: A") {
		t.Fatalf("expected drag status line; got:\n%s", view)
	}

	m = send(m, release(1, 2))
	if diff := cmp.Diff([]string{"B", "C", "A"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestApp_PointerReleaseOutsideRowsIsNoop(t *testing.T) {
	m, l, _ := newTestApp(t, "A", "B")

	m = send(m, press(0, 1), motion(0, 0), release(0, 10))
	if m.drag.Active() {
		t.Fatalf("expected drag finished")
	}
	if diff := cmp.Diff([]string{"A", "B"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("expected order unchanged (-want +got):\n%s", diff)
	}
}

func TestApp_ClickCheckboxTogglesAndClickTextSelects(t *testing.T) {
	m, l, _ := newTestApp(t, "A", "B")

	m = send(m, press(checkboxStartCol+1, 1))
	if task, _ := l.Find("t2"); !task.Completed {
		t.Fatalf("expected checkbox click to toggle B")
	}
	if m.drag.Active() {
		t.Fatalf("expected checkbox click not to start a drag")
	}

	m = send(m, press(20, 0))
	if got := selectedText(t, m); got != "A" {
		t.Fatalf("expected text click to select A; got %q", got)
	}
	if task, _ := l.Find("t1"); task.Completed {
		t.Fatalf("expected text click not to toggle")
	}
	if m.focus != focusList {
		t.Fatalf("expected row click to focus the list")
	}

	m = send(m, tea.MouseMsg{X: 5, Y: inputRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.focus != focusInput {
		t.Fatalf("expected input click to focus the input")
	}
}

func TestApp_ViewShowsHeaderInputAndEmptyState(t *testing.T) {
	m, _, _ := newTestApp(t)

	view := xansi.Strip(m.View())
	for _, want := range []string{"My TODO List", inputPlaceholder, emptyListText, "enter add"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q; got:\n%s", want, view)
		}
	}
}

func TestApp_ViewRendersRowsInOrder(t *testing.T) {
	m, l, _ := newTestApp(t, "Buy milk", "Walk dog")
	if _, err := l.ToggleComplete("t2"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	m = send(m, nil)

	view := xansi.Strip(m.View())
	milk := strings.Index(view, ": [ ] Buy milk")
	dog := strings.Index(view, ": [x] Walk dog")
	if milk < 0 || dog < 0 || milk > dog {
		t.Fatalf("expected rows in display order; got:\n%s", view)
	}
	if !strings.Contains(view, "1 of 2 done") {
		t.Fatalf("expected done count in header; got:\n%s", view)
	}
	if strings.Contains(view, emptyListText) {
		t.Fatalf("expected no empty-state text with tasks present")
	}
}

func TestApp_SaveFailureKeepsChangeAndFlashes(t *testing.T) {
	m, l, st := newTestApp(t, "A")
	st.Memory().FailWrites = errors.New("disk full")

	m = send(m, keyTab, keySpace)
	if task, _ := l.Find("t1"); !task.Completed {
		t.Fatalf("expected in-memory toggle to stick despite write failure")
	}
	if !strings.Contains(xansi.Strip(m.View()), "disk full") {
		t.Fatalf("expected write error on the status line; got:\n%s", m.View())
	}

	m = send(m, flashDoneMsg{seq: m.flashSeq})
	if m.flash != "" {
		t.Fatalf("expected flash cleared")
	}
}

func TestApp_ExternalChangeReloads(t *testing.T) {
	m, l, st := newTestApp(t, "A")

	other := tasklist.New(st, tasklist.Options{NewID: func() (string, error) { return "ext", nil }})
	if err := other.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, err := other.Add("From elsewhere"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	m = send(m, externalChangeMsg{})
	if diff := cmp.Diff([]string{"A", "From elsewhere"}, texts(l.Tasks())); diff != "" {
		t.Fatalf("tasks mismatch after reload (-want +got):\n%s", diff)
	}
	if len(m.rows.Items()) != 2 {
		t.Fatalf("expected rows re-synced; got %d", len(m.rows.Items()))
	}
}

func TestApp_RestoreAndSaveTUIState(t *testing.T) {
	m, _, _ := newTestApp(t, "A", "B", "C")

	m.restore(&store.TUIState{SelectedTaskID: "t2", Focus: "list"})
	if got := selectedText(t, m); got != "B" {
		t.Fatalf("expected restored selection B; got %q", got)
	}
	if m.focus != focusList {
		t.Fatalf("expected restored list focus")
	}

	st := m.tuiState()
	if st.SelectedTaskID != "t2" || st.Focus != "list" {
		t.Fatalf("unexpected tui state: %#v", st)
	}

	// Unknown ids are ignored.
	m.restore(&store.TUIState{SelectedTaskID: "gone"})
	if got := selectedText(t, m); got != "B" {
		t.Fatalf("expected selection unchanged; got %q", got)
	}
}
