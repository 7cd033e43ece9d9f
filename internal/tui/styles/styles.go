package styles

import (
	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
	"github.com/yumosx/anchor/internal/transcript"
)

type Styles struct {
	Transcript transcript.Styles
	Help       help.Styles

	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	Paused      lipgloss.Style

	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style

	SearchPrompt lipgloss.Style
}

func (t *Theme) Styles() Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return Styles{
		Transcript: transcript.Styles{
			User:        lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
			Assistant:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			System:      lipgloss.NewStyle().Foreground(t.FgMuted).Italic(true),
			Focused:     lipgloss.NewStyle().Foreground(t.Accent),
			Placeholder: lipgloss.NewStyle().Foreground(t.FgSubtle),
		},
		Help: help.Styles{
			ShortKey:       base.Foreground(t.FgMuted),
			ShortDesc:      base.Foreground(t.FgSubtle),
			ShortSeparator: base.Foreground(t.FgSubtle),
			Ellipsis:       base.Foreground(t.FgSubtle),
			FullKey:        base.Foreground(t.FgMuted),
			FullDesc:       base.Foreground(t.FgSubtle),
			FullSeparator:  base.Foreground(t.FgSubtle),
		},
		StatusBar:    lipgloss.NewStyle().Background(t.BgSubtle).Foreground(t.FgBase).Padding(0, 1),
		StatusKey:    lipgloss.NewStyle().Background(t.BgSubtle).Foreground(t.FgMuted),
		StatusValue:  lipgloss.NewStyle().Background(t.BgSubtle).Foreground(t.FgSelected).Bold(true),
		Paused:       lipgloss.NewStyle().Background(t.Warning).Foreground(t.BgBase).Padding(0, 1),
		Info:         base.Foreground(t.Info),
		Warn:         base.Foreground(t.Warning),
		Error:        base.Foreground(t.Error),
		SearchPrompt: base.Foreground(t.Accent).Bold(true),
	}
}
