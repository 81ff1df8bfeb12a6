package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"todo-cli/internal/model"
	"todo-cli/internal/publish"
	"todo-cli/internal/store"
	"todo-cli/internal/tasklist"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

func (f focusArea) String() string {
	if f == focusList {
		return "list"
	}
	return "input"
}

// Screen layout: header, blank, input, blank, rows..., blank, status, help.
const (
	inputRow    = 2
	rowsTop     = 4
	footerLines = 3

	inputPlaceholder = "Add a new task..."
	emptyListText    = "No tasks yet. Add one above!"
	flashDuration    = 4 * time.Second
)

type (
	// externalChangeMsg is sent when the persisted tasks changed on disk.
	externalChangeMsg struct{}
	flashDoneMsg      struct{ seq int }
)

// session is shared by every copy of appModel; the List subscriber marks it
// dirty and Update re-syncs the rows from it.
type session struct {
	list  *tasklist.List
	dirty bool
}

type appModel struct {
	store store.Store
	sess  *session
	log   *log.Logger
	watch <-chan struct{}

	width  int
	height int

	focus focusArea
	input textinput.Model
	rows  list.Model
	drag  *dragCoordinator
	keys  keyMap
	help  help.Model

	// followID is selected after the next row sync (a moved or added task).
	followID string

	flash    string
	flashSeq int
}

func newAppModel(st store.Store, l *tasklist.List, logger *log.Logger, watch <-chan struct{}) appModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sess := &session{list: l, dirty: true}
	l.Subscribe(func([]model.Task) { sess.dirty = true })

	drag := &dragCoordinator{}

	in := textinput.New()
	in.Placeholder = inputPlaceholder
	in.Prompt = "> "
	in.SetValue(l.Input())
	in.Focus()

	rows := newList(newTaskRowDelegate(drag))

	m := appModel{
		store:  st,
		sess:   sess,
		log:    logger,
		watch:  watch,
		width:  80,
		height: 24,
		focus:  focusInput,
		input:  in,
		rows:   rows,
		drag:   drag,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.resize()
	m.syncRows()
	return m
}

func newList(d list.ItemDelegate) list.Model {
	l := list.New(nil, d, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// "d" removes a task; keep it out of the paging keys.
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")
	l.KeyMap.PrevPage.SetKeys("left", "h", "pgup", "b", "u")
	return l
}

// restore applies saved UI state (cursor and focus) from a previous run.
func (m *appModel) restore(st *store.TUIState) {
	if st == nil {
		return
	}
	if st.SelectedTaskID != "" {
		m.selectID(st.SelectedTaskID)
	}
	if st.Focus == focusList.String() && len(m.rows.Items()) > 0 {
		m.setFocus(focusList)
	}
}

func (m appModel) tuiState() *store.TUIState {
	st := &store.TUIState{Version: 1, Focus: m.focus.String()}
	if t, ok := m.selectedTask(); ok {
		st.SelectedTaskID = t.ID
	}
	return st
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.watch))
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return externalChangeMsg{}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	if m.sess.dirty {
		m.syncRows()
	}
	return m, cmd
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case externalChangeMsg:
		var cmd tea.Cmd
		if !m.drag.Active() {
			if err := m.sess.list.Load(context.Background()); err != nil {
				cmd = m.flashError("reload failed", err)
			}
		}
		return m, tea.Batch(cmd, waitForChange(m.watch))

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.drag.Cancel()
			return m, tea.Quit
		}
		if m.drag.Active() {
			return m.updateDragKey(msg)
		}
		if m.focus == focusInput {
			return m.updateInputKey(msg)
		}
		return m.updateListKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateInputKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.sess.list.SetInput(m.input.Value())
		t, added, err := m.sess.list.Submit()
		m.input.SetValue(m.sess.list.Input())
		if added {
			m.followID = t.ID
		}
		if err != nil {
			return m, m.flashError("could not save", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.SwitchFocus), key.Matches(msg, m.keys.Blur):
		if len(m.rows.Items()) == 0 {
			return m, nil
		}
		return m, m.setFocus(focusList)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.sess.list.SetInput(m.input.Value())
	return m, cmd
}

func (m appModel) updateListKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.SwitchFocus), key.Matches(msg, m.keys.FocusInput):
		return m, m.setFocus(focusInput)
	}

	t, ok := m.selectedTask()
	if !ok {
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		_, err := m.sess.list.ToggleComplete(t.ID)
		return m, m.flashError("could not save", err)
	case key.Matches(msg, m.keys.Remove):
		_, err := m.sess.list.Remove(t.ID)
		return m, m.flashError("could not save", err)
	case key.Matches(msg, m.keys.Grab):
		m.drag.Start(t.ID, sensorKeyboard)
		return m, nil
	case key.Matches(msg, m.keys.MoveUp):
		return m.moveSelected(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.moveSelected(+1)
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

// moveSelected swaps the selected task with its neighbor.
func (m appModel) moveSelected(delta int) (appModel, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	target, ok := m.taskAt(m.rows.Index() + delta)
	if !ok {
		return m, nil
	}
	_, err := m.sess.list.Reorder(t.ID, target.ID)
	m.followID = t.ID
	return m, m.flashError("could not save", err)
}

func (m appModel) updateDragKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		id := m.drag.ActiveID()
		m.drag.Cancel()
		m.selectID(id)
	case key.Matches(msg, m.keys.Drop):
		ev, _ := m.drag.Drop()
		return m.applyDrop(ev)
	case key.Matches(msg, m.keys.Up):
		m.dragStep(-1)
	case key.Matches(msg, m.keys.Down):
		m.dragStep(+1)
	}
	return m, nil
}

func (m *appModel) dragStep(delta int) {
	idx := m.rows.Index() + delta
	t, ok := m.taskAt(idx)
	if !ok {
		return
	}
	m.rows.Select(idx)
	m.drag.Over(t.ID)
}

func (m appModel) applyDrop(ev dropEvent) (appModel, tea.Cmd) {
	if !ev.changesOrder() {
		m.selectID(ev.ActiveID)
		return m, nil
	}
	_, err := m.sess.list.Reorder(ev.ActiveID, ev.OverID)
	m.followID = ev.ActiveID
	return m, m.flashError("could not save", err)
}

func (m appModel) updateMouse(msg tea.MouseMsg) (appModel, tea.Cmd) {
	idx, onRow := m.rowAt(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.rows.CursorUp()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.rows.CursorDown()
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}
		if msg.Y == inputRow {
			return m, m.setFocus(focusInput)
		}
		if !onRow {
			return m, nil
		}
		t, _ := m.taskAt(idx)
		m.rows.Select(idx)
		cmd := m.setFocus(focusList)
		switch {
		case msg.X >= gripStartCol && msg.X < gripEndCol:
			m.drag.Start(t.ID, sensorPointer)
		case msg.X >= checkboxStartCol && msg.X < checkboxEndCol:
			_, err := m.sess.list.ToggleComplete(t.ID)
			cmd = tea.Batch(cmd, m.flashError("could not save", err))
		}
		return m, cmd

	case tea.MouseActionMotion:
		if !m.drag.Active() {
			return m, nil
		}
		if !onRow {
			m.drag.Over("")
			return m, nil
		}
		t, _ := m.taskAt(idx)
		m.rows.Select(idx)
		m.drag.Over(t.ID)
		return m, nil

	case tea.MouseActionRelease:
		if !m.drag.Active() {
			return m, nil
		}
		if onRow {
			t, _ := m.taskAt(idx)
			m.drag.Over(t.ID)
		} else {
			m.drag.Over("")
		}
		ev, _ := m.drag.Drop()
		return m.applyDrop(ev)
	}
	return m, nil
}

// rowAt maps a screen row to an item index on the visible page.
func (m appModel) rowAt(y int) (int, bool) {
	rel := y - rowsTop
	if rel < 0 || rel >= m.rows.Paginator.PerPage {
		return 0, false
	}
	idx := m.rows.Paginator.Page*m.rows.Paginator.PerPage + rel
	if idx >= len(m.rows.Items()) {
		return 0, false
	}
	return idx, true
}

func (m *appModel) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	if f == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *appModel) resize() {
	listH := m.height - rowsTop - footerLines
	if listH < 1 {
		listH = 1
	}
	m.rows.SetSize(m.width, listH)
	m.help.Width = m.width
}

// syncRows rebuilds the rows from the task list, keeping the cursor on the
// same task when it still exists.
func (m *appModel) syncRows() {
	m.sess.dirty = false
	curIdx := m.rows.Index()
	want := m.followID
	m.followID = ""
	if want == "" {
		if t, ok := m.selectedTask(); ok {
			want = t.ID
		}
	}

	tasks := m.sess.list.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	m.rows.SetItems(items)

	if i := model.IndexOf(tasks, want); i >= 0 {
		m.rows.Select(i)
	} else if len(items) > 0 {
		if curIdx >= len(items) {
			curIdx = len(items) - 1
		}
		if curIdx < 0 {
			curIdx = 0
		}
		m.rows.Select(curIdx)
	}
	if len(items) == 0 && m.focus == focusList {
		m.setFocus(focusInput)
	}
}

func (m *appModel) selectID(id string) {
	for i, it := range m.rows.Items() {
		if ti, ok := it.(taskItem); ok && ti.task.ID == id {
			m.rows.Select(i)
			return
		}
	}
}

func (m appModel) selectedTask() (model.Task, bool) {
	ti, ok := m.rows.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return ti.task, true
}

func (m appModel) taskAt(idx int) (model.Task, bool) {
	items := m.rows.Items()
	if idx < 0 || idx >= len(items) {
		return model.Task{}, false
	}
	ti, ok := items[idx].(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return ti.task, true
}

// flashError shows err on the status line for a few seconds; nil err is a no-op.
func (m *appModel) flashError(prefix string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.log.Error(prefix, "err", err)
	m.flash = prefix + ": " + err.Error()
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) View() string {
	tasks := m.sess.list.Tasks()
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}

	header := styleTitle().Render(publish.DefaultTitle)
	if len(tasks) > 0 {
		header += "  " + styleMuted().Render(fmt.Sprintf("%d of %d done", done, len(tasks)))
	}

	listH := m.rows.Height()
	var body string
	if len(tasks) == 0 {
		body = lipgloss.NewStyle().Height(listH).Render(styleMuted().Render(emptyListText))
	} else {
		body = m.rows.View()
	}

	return strings.Join([]string{
		header,
		"",
		renderInputLine(m.width, m.input.View(), m.focus == focusInput),
		"",
		body,
		"",
		m.statusLine(),
		m.help.View(m.currentHelp()),
	}, "\n")
}

func (m appModel) statusLine() string {
	if m.flash != "" {
		return styleError().Render(m.flash)
	}
	if m.drag.Active() {
		t, _ := m.sess.list.Find(m.drag.ActiveID())
		return styleMuted().Render("moving: " + t.Text)
	}
	return ""
}

func (m appModel) currentHelp() helpBindings {
	switch {
	case m.drag.Active():
		return m.keys.dragHelp()
	case m.focus == focusInput:
		return m.keys.inputHelp()
	default:
		return m.keys.listHelp()
	}
}
