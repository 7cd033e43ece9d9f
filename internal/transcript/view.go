package transcript

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/yumosx/anchor/internal/layout"
)

// View renders the rows intersecting the viewport. Content shorter than the
// viewport is pinned to its bottom.
func (m *Model) View() string {
	if !m.ready || m.width <= 0 || m.height <= 0 {
		return ""
	}
	lines := make([]string, m.height)
	h := m.contentHeight()
	pad := max(m.height-int(math.Ceil(h)), 0)
	visible := layout.Rect{
		MinY: h - m.offset - float64(m.height),
		MaxY: h - m.offset,
	}
	for attrs := range m.engine.ItemsIntersecting(visible) {
		e, ok := m.byItem.Get(attrs.ID)
		if !ok {
			continue
		}
		first := pad + int(math.Round(attrs.Top(h)-m.offset))
		for j, row := range m.renderEntry(e, int(attrs.Height)) {
			y := first + j
			if y < 0 {
				continue
			}
			if y >= m.height {
				break
			}
			lines[y] = row
		}
	}
	return strings.Join(lines, "\n")
}

// renderEntry renders at most rows lines of e: a role header followed by the
// measured body, or the raw content while the body is being measured.
func (m *Model) renderEntry(e *entry, rows int) []string {
	if rows <= 0 {
		return nil
	}
	gutter := strings.Repeat(" ", gutterWidth)
	if e.ID == m.focus {
		gutter = m.styles.Focused.Render("▌ ")
	}

	out := make([]string, 0, rows)
	out = append(out, ansi.Truncate(gutter+m.styles.header(e.Role).Render(e.Role.String()), m.width, "…"))

	body := e.rendered
	placeholder := body == nil
	if placeholder {
		body = strings.Split(e.Content, "\n")
	}
	for _, line := range body {
		if len(out) == rows {
			break
		}
		if placeholder {
			line = m.styles.Placeholder.Render(line)
		}
		out = append(out, ansi.Truncate(gutter+line, m.width, "…"))
	}
	return out
}
