package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/yumosx/anchor/internal/transcript"
	"github.com/yumosx/anchor/internal/tui/styles"
	"github.com/yumosx/anchor/internal/tui/util"
)

// statusCmp is the bar under the transcript: the layout's geometry, or a
// transient info message when one is up.
type statusCmp struct {
	info   util.InfoMsg
	width  int
	styles styles.Styles
}

func (s *statusCmp) setInfo(msg util.InfoMsg) {
	s.info = msg
}

func (s *statusCmp) clear() {
	s.info = util.InfoMsg{}
}

func (s *statusCmp) View(t *transcript.Model, action string, paused bool) string {
	if s.info.Msg != "" {
		style := s.styles.Info
		switch s.info.Type {
		case util.InfoTypeError:
			style = s.styles.Error
		case util.InfoTypeWarn:
			style = s.styles.Warn
		}
		return s.styles.StatusBar.Width(s.width).Render(style.Render(s.info.Msg))
	}

	engine := t.Engine()
	size := engine.ContentSize()
	fields := []string{
		s.field("msgs", fmt.Sprint(t.Len())),
		s.field("height", fmt.Sprintf("%.0f", size.Height)),
		s.field("offset", fmt.Sprintf("%.0f", t.Offset())),
		s.field("from bottom", fmt.Sprintf("%.0f", max(size.Height-t.Offset()-t.Bounds().Height, 0))),
		s.field("phase", engine.Phase().String()),
	}
	if action != "" {
		fields = append(fields, s.field("last", action))
	}
	bar := strings.Join(fields, s.styles.StatusKey.Render("  "))
	if paused {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, s.styles.Paused.Render("PAUSED"), " ", bar)
	}
	return s.styles.StatusBar.Width(s.width).Render(bar)
}

func (s *statusCmp) field(k, v string) string {
	return s.styles.StatusKey.Render(k+" ") + s.styles.StatusValue.Render(v)
}
