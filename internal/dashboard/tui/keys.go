package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the inventory viewer.
type KeyMap struct {
	PreviousCategory key.Binding
	NextCategory     key.Binding
	ScrollUp         key.Binding
	ScrollDown       key.Binding
	Quit             key.Binding
}

// DefaultKeyMap cycles categories with h/l or the arrow keys and scrolls
// rows with j/k.
var DefaultKeyMap = KeyMap{
	PreviousCategory: key.NewBinding(
		key.WithKeys("h", "left", "shift+tab"),
		key.WithHelp("h/←", "prev category"),
	),
	NextCategory: key.NewBinding(
		key.WithKeys("l", "right", "tab"),
		key.WithHelp("l/→", "next category"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// helpBindings are the bindings listed in the help line, in display order.
func (keys KeyMap) helpBindings() []key.Binding {
	return []key.Binding{keys.PreviousCategory, keys.NextCategory, keys.ScrollDown, keys.ScrollUp, keys.Quit}
}
