package tui

import (
	"strings"

	"github.com/alkime/steplever/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the lever demo.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Grab      key.Binding
	Lock      key.Binding
	Fewer     key.Binding
	More      key.Binding
	Steps     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings for the lever demo.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "steer pointer"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "steer right"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "grab/release"),
		),
		Lock: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "toggle lock-to-value"),
		),
		Fewer: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "fewer steps"),
		),
		More: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "more steps"),
		),
		Steps: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to step"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// ShortHelp returns the short help bindings for the lever demo.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Left, k.Steps, k.Quit}
}

// FullHelp returns the full help bindings for the lever demo.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Grab, k.Left, k.Lock},
		{k.Fewer, k.More, k.Steps},
		{k.Quit, k.ForceQuit},
	}
}

func renderKeyHelp(keyBinding key.Binding, suffix ...string) string {
	s := style.Help.Render("[") + style.Key.Render(keyBinding.Help().Key) +
		style.Help.Render("] ") +
		style.Help.Render(keyBinding.Help().Desc)

	s += strings.Join(suffix, "")

	return s
}
