package transcript

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"
	"github.com/yumosx/anchor/internal/tui/util"
)

type scrollSettledMsg struct{ seq int }

// ScrollBy scrolls by rows; negative values move toward older messages.
func (m *Model) ScrollBy(rows int) tea.Cmd {
	m.offset = m.clampOffset(m.offset + float64(rows))
	m.follow = m.AtBottom()
	return m.startScrolling()
}

func (m *Model) startScrolling() tea.Cmd {
	m.scrolling = true
	m.scrollSeq++
	seq := m.scrollSeq
	return tea.Tick(scrollSettle, func(time.Time) tea.Msg {
		return scrollSettledMsg{seq: seq}
	})
}

// GotoBottom jumps to the newest message and follows new ones.
func (m *Model) GotoBottom() {
	m.offset = m.bottomOffset()
	m.follow = true
}

// GotoTop jumps to the oldest message.
func (m *Model) GotoTop() {
	m.offset = 0
	m.follow = m.AtBottom()
}

// scrollIntoView scrolls the least needed to show the row at index, top
// edge first when it does not fit.
func (m *Model) scrollIntoView(index int) {
	attrs, ok := m.engine.Item(index)
	if !ok {
		return
	}
	h := m.contentHeight()
	top := attrs.Top(h)
	bottom := h - attrs.Offset
	switch {
	case top < m.offset || attrs.Height > float64(m.height):
		m.offset = top
	case bottom > m.offset+float64(m.height):
		m.offset = bottom - float64(m.height)
	}
	m.offset = m.clampOffset(m.offset)
	m.follow = m.AtBottom()
}

func (m *Model) focusIndex(index int) {
	if index < 0 || index >= len(m.entries) {
		return
	}
	m.focus = m.entries[index].ID
	m.scrollIntoView(index)
}

// FocusOlder moves the focus one message up, starting from the newest.
func (m *Model) FocusOlder() {
	i, ok := m.indexOf(m.focus)
	if !ok {
		m.focusIndex(0)
		return
	}
	m.focusIndex(min(i+1, len(m.entries)-1))
}

// FocusNewer moves the focus one message down. Moving past the newest
// message clears the focus.
func (m *Model) FocusNewer() {
	i, ok := m.indexOf(m.focus)
	if !ok {
		return
	}
	if i == 0 {
		m.focus = ""
		return
	}
	m.focusIndex(i - 1)
}

// JumpTo focuses the message best matching query and scrolls it into view.
func (m *Model) JumpTo(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(m.entries) == 0 {
		return false
	}
	words := make([]string, len(m.entries))
	for i, e := range m.entries {
		words[i] = strings.ToLower(e.Content)
	}
	matches := fuzzy.Find(query, words)
	if len(matches) == 0 {
		return false
	}
	// prefer the newest message among equal scores
	slices.SortStableFunc(matches, func(a, b fuzzy.Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	slog.Debug("Jumping to message", "query", query, "index", matches[0].Index)
	m.focusIndex(matches[0].Index)
	return true
}

// Yank copies the focused message, or the newest one, to the clipboard.
func (m *Model) Yank() tea.Cmd {
	var text string
	if msg, ok := m.Focused(); ok {
		text = msg.Content
	} else if len(m.entries) > 0 {
		text = m.entries[0].Content
	} else {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		slog.Debug("System clipboard unavailable, falling back to OSC 52", "error", err)
		return tea.Batch(tea.SetClipboard(text), util.ReportInfo("Message copied"))
	}
	return util.ReportInfo("Message copied")
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		return m.ScrollBy(-1)
	case key.Matches(msg, m.keyMap.Down):
		return m.ScrollBy(1)
	case key.Matches(msg, m.keyMap.PageUp):
		return m.ScrollBy(-m.height)
	case key.Matches(msg, m.keyMap.PageDown):
		return m.ScrollBy(m.height)
	case key.Matches(msg, m.keyMap.HalfPageUp):
		return m.ScrollBy(-m.height / 2)
	case key.Matches(msg, m.keyMap.HalfPageDown):
		return m.ScrollBy(m.height / 2)
	case key.Matches(msg, m.keyMap.Home):
		m.GotoTop()
	case key.Matches(msg, m.keyMap.End):
		m.GotoBottom()
	case key.Matches(msg, m.keyMap.FocusOlder):
		m.FocusOlder()
	case key.Matches(msg, m.keyMap.FocusNewer):
		m.FocusNewer()
	case key.Matches(msg, m.keyMap.Yank):
		return m.Yank()
	}
	return nil
}
