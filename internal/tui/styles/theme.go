package styles

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/x/exp/charmtone"
)

type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	BgBase   color.Color
	BgSubtle color.Color

	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgSelected color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color
}

func NewAnchorTheme() *Theme {
	return &Theme{
		Name:   "anchor",
		IsDark: true,

		Primary:   charmtone.Charple,
		Secondary: charmtone.Malibu,
		Accent:    charmtone.Zest,

		BgBase:   charmtone.Pepper,
		BgSubtle: charmtone.Charcoal,

		FgBase:     charmtone.Ash,
		FgMuted:    charmtone.Squid,
		FgSubtle:   charmtone.Oyster,
		FgSelected: charmtone.Salt,

		Success: charmtone.Guac,
		Error:   charmtone.Sriracha,
		Warning: charmtone.Zest,
		Info:    charmtone.Malibu,
	}
}

// hex renders c as #rrggbb for glamour, which takes colors as strings.
func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
