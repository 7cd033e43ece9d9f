package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/yumosx/anchor/internal/transcript"
)

type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Search key.Binding
	Pause  key.Binding
	Step   key.Binding

	Accept key.Binding
	Cancel key.Binding

	transcript transcript.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find message"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "space"),
			key.WithHelp("p", "pause feed"),
		),
		Step: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next event"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
		),
		transcript: transcript.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return append(k.transcript.ShortHelp(), k.Search, k.Pause, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.transcript.FullHelp(), []key.Binding{k.Search, k.Pause, k.Step, k.Quit})
}
