package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the demo key bindings.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	ShiftLeft, ShiftRight key.Binding
	Home, End             key.Binding
	PageUp, PageDown      key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding

	// Toggle expands the decoration on the caret line or collapses all.
	Toggle key.Binding
	// Next moves the caret to the next decorated line.
	Next key.Binding
	// Retract removes the messages of the caret line.
	Retract key.Binding

	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		Toggle:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "toggle message")),
		Next:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next message")),
		Retract: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retract messages")),

		Quit: key.NewBinding(key.WithKeys("ctrl+q", "esc", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Retract, k.Quit}
}
