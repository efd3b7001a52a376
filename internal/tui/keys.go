package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application bindings. Arrow keys, Enter and Backspace
// are not listed here: they go to the keyboard controller.
type KeyMap struct {
	Clear          key.Binding
	ToggleSelect   key.Binding
	ClearSelection key.Binding
	CopyURLs       key.Binding
	MoveUp         key.Binding
	MoveDown       key.Binding
	CycleView      key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings. None of them produce text,
// so typing into the search never triggers one.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		ToggleSelect: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "unselect all"),
		),
		CopyURLs: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy url"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("alt+↑", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("alt+↓", "move down"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
