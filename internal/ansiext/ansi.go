// Package ansiext makes untrusted text safe to print in a terminal.
package ansiext

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const tabWidth = 4

// Escape replaces control characters with their Unicode Control Picture
// representations so message text cannot move the cursor or restyle the
// screen. Newlines survive and tabs become spaces.
func Escape(content string) string {
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch {
		case r == '\n':
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteString(strings.Repeat(" ", tabWidth))
		case r == '\r':
		case r >= 0 && r <= 0x1f:
			sb.WriteRune('␀' + r)
		case r == ansi.DEL:
			sb.WriteRune('␡')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
