package transcript

import "charm.land/bubbles/v2/key"

type KeyMap struct {
	Down,
	Up,
	PageDown,
	PageUp,
	HalfPageDown,
	HalfPageUp,
	Home,
	End,
	FocusOlder,
	FocusNewer,
	Yank key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("down", "j", "ctrl+n"),
			key.WithHelp("↓/j", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "ctrl+p"),
			key.WithHelp("↑/k", "up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("d"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("u"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "oldest"),
		),
		End: key.NewBinding(
			key.WithKeys("shift+g", "G", "end"),
			key.WithHelp("G", "newest"),
		),
		FocusOlder: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("K", "older message"),
		),
		FocusNewer: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("J", "newer message"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy message"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.End, k.Yank}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.FocusOlder, k.FocusNewer},
		{k.Yank},
	}
}
