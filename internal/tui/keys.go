package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	SwitchFocus key.Binding
	FocusInput  key.Binding
	Blur        key.Binding

	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Remove   key.Binding
	Grab     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding

	Drop   key.Binding
	Cancel key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		SwitchFocus: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		FocusInput:  key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "new task")),
		Blur:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "to list")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
		Remove:   key.NewBinding(key.WithKeys("d", "delete", "backspace"), key.WithHelp("d", "remove")),
		Grab:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "grab")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "ctrl+k", "alt+up", "K"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "ctrl+j", "alt+down", "J"), key.WithHelp("J", "move down")),

		Drop:   key.NewBinding(key.WithKeys("enter", "m", " ", "space"), key.WithHelp("enter", "drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// helpBindings adapts a slice of bindings to help.KeyMap so the footer can
// show only what applies to the current mode.
type helpBindings []key.Binding

func (h helpBindings) ShortHelp() []key.Binding  { return h }
func (h helpBindings) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k keyMap) inputHelp() helpBindings {
	return helpBindings{k.Submit, k.SwitchFocus, k.ForceQuit}
}

func (k keyMap) listHelp() helpBindings {
	return helpBindings{k.Toggle, k.Remove, k.Grab, k.MoveUp, k.MoveDown, k.FocusInput, k.Quit}
}

func (k keyMap) dragHelp() helpBindings {
	return helpBindings{k.Up, k.Down, k.Drop, k.Cancel}
}
