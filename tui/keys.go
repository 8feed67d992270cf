package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"go-surface/widgets"
)

// KeyMap defines the keyboard shortcuts
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Theme      key.Binding
	Save       key.Binding
	LEDs       key.Binding
	Fullscreen key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save theme"),
		),
		LEDs: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pad preview"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "full screen"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns abbreviated help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Theme, k.Fullscreen, k.Help, k.Quit}
}

// FullHelp returns complete help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Theme, k.Up, k.Down, k.Left, k.Right, k.Save},
		{k.LEDs, k.Fullscreen, k.Help, k.Quit},
	}
}

// helpSections converts the full help into widget sections
func (k KeyMap) helpSections() []widgets.KeySection {
	titles := []string{"Theme", "View"}
	var sections []widgets.KeySection
	for i, col := range k.FullHelp() {
		sec := widgets.KeySection{}
		if i < len(titles) {
			sec.Title = titles[i]
		}
		for _, b := range col {
			h := b.Help()
			sec.Keys = append(sec.Keys, widgets.KeyBinding{Key: h.Key, Desc: h.Desc})
		}
		sections = append(sections, sec)
	}
	return sections
}
