package transcript

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/yumosx/anchor/internal/layout"
	"github.com/yumosx/anchor/internal/measure"
	"github.com/yumosx/anchor/internal/tui/util"
)

// SetSize resizes the viewport. The first call with a usable size lays out
// every message appended so far and scrolls to the newest one.
func (m *Model) SetSize(width, height int) tea.Cmd {
	if !m.ready {
		m.width, m.height = width, height
		if width <= 0 || height <= 0 {
			return nil
		}
		m.ready = true
		offset, ok := m.engine.Prepare()
		for i, e := range m.entries {
			id, _ := m.engine.IDAt(i)
			m.bind(e, id)
		}
		if ok {
			m.offset = offset
		}
		return m.measureDirty()
	}

	size := layout.Size{Width: float64(width), Height: float64(height)}
	if !m.engine.ShouldInvalidateForBounds(size) {
		return nil
	}
	widthChanged := width != m.width
	adj, ok := m.engine.BoundsChanged(size)
	m.width, m.height = width, height
	if ok {
		m.offset += adj
	}
	if m.follow {
		m.offset = m.bottomOffset()
	}
	m.offset = m.clampOffset(m.offset)
	if widthChanged {
		for _, e := range m.entries {
			e.key, e.inflight = 0, 0
		}
	}
	return m.measureDirty()
}

// Append adds msg as the newest message.
func (m *Model) Append(msg Message) tea.Cmd {
	e := newEntry(msg)
	return m.apply([]layout.Update{layout.Insert(0)}, func() {
		m.entries = slices.Insert(m.entries, 0, e)
	})
}

// Prepend loads history older than every message. msgs are ordered like the
// transcript, newest first, so msgs[0] lands right above the current oldest
// message.
func (m *Model) Prepend(msgs ...Message) tea.Cmd {
	if len(msgs) == 0 {
		return nil
	}
	start := len(m.entries)
	ops := make([]layout.Update, len(msgs))
	added := make([]*entry, len(msgs))
	for i, msg := range msgs {
		ops[i] = layout.Insert(start + i)
		added[i] = newEntry(msg)
	}
	return m.apply(ops, func() {
		m.entries = append(m.entries, added...)
	})
}

// Remove deletes the message with id.
func (m *Model) Remove(id string) tea.Cmd {
	i, ok := m.indexOf(id)
	if !ok {
		return nil
	}
	if m.focus == id {
		m.focus = ""
	}
	return m.apply([]layout.Update{layout.Delete(i)}, func() {
		m.entries = slices.Delete(m.entries, i, i+1)
	})
}

// MoveToBottom makes the message with id the newest one.
func (m *Model) MoveToBottom(id string) tea.Cmd {
	i, ok := m.indexOf(id)
	if !ok || i == 0 {
		return nil
	}
	e := m.entries[i]
	e.key, e.inflight = 0, 0
	return m.apply([]layout.Update{layout.Move(i, 0)}, func() {
		m.entries = slices.Delete(m.entries, i, i+1)
		m.entries = slices.Insert(m.entries, 0, e)
	})
}

// Edit replaces the content of the message with id in place.
func (m *Model) Edit(id, content string) tea.Cmd {
	i, ok := m.indexOf(id)
	if !ok {
		return nil
	}
	e := m.entries[i]
	return m.apply([]layout.Update{layout.Reload(i)}, func() {
		e.Content = content
		e.key, e.inflight = 0, 0
		e.rendered = nil
	})
}

// apply mutates the messages and runs the matching structural update
// through the engine. mutate must leave the messages in the order the ops
// describe.
func (m *Model) apply(ops []layout.Update, mutate func()) tea.Cmd {
	if !m.ready {
		mutate()
		return nil
	}

	mutate()
	m.engine.InvalidateLayout(layout.Invalidation{DataSourceCounts: true})
	if err := m.engine.BeginUpdate(ops); err != nil {
		return util.ReportError(fmt.Errorf("updating transcript: %w", err))
	}
	for _, i := range m.engine.Disappearing() {
		id, ok := m.engine.PreviousIDAt(i)
		if !ok {
			continue
		}
		if e, ok := m.byItem.Take(id); ok && e.item == id {
			e.item = layout.NoItem
		}
	}
	for _, i := range m.engine.Appearing() {
		id, _ := m.engine.IDAt(i)
		m.bind(m.entries[i], id)
	}

	proposed := m.offset
	if m.follow {
		proposed = m.bottomOffset()
	}
	m.offset = m.clampOffset(m.engine.TargetContentOffset(proposed))
	m.engine.FinalizeUpdate()

	return m.measureDirty()
}

func (m *Model) bind(e *entry, id layout.ItemID) {
	e.item = id
	e.key, e.inflight = 0, 0
	m.byItem.Set(id, e)
}

// measureDirty starts measuring every message without a current rendering
// that is not already being measured.
func (m *Model) measureDirty() tea.Cmd {
	if !m.ready {
		return nil
	}
	width := m.contentWidth()
	var reqs []measure.Request
	for _, e := range m.entries {
		if e.key != 0 || e.item == layout.NoItem {
			continue
		}
		want := measure.Key(e.Kind, e.Content, width)
		if e.inflight == want {
			continue
		}
		e.inflight = want
		reqs = append(reqs, measure.Request{ID: e.item, Kind: e.Kind, Content: e.Content})
	}
	return m.measurer.Cmd(m.ctx, width, reqs)
}

func (m *Model) applyResults(msg measure.ResultsMsg) tea.Cmd {
	if msg.Err != nil {
		for _, e := range m.entries {
			e.inflight = 0
		}
		return util.ReportError(fmt.Errorf("measuring messages: %w", msg.Err))
	}
	if msg.Width != m.contentWidth() {
		return nil
	}

	for _, res := range msg.Results {
		height := float64(headerRows + res.Height)
		e, ok := m.byItem.Get(res.ID)
		if !ok {
			slog.Debug("Ignoring measurement for removed message", "item", res.ID)
			continue
		}
		if res.Key != measure.Key(e.Kind, e.Content, msg.Width) {
			slog.Debug("Ignoring stale measurement", "id", e.ID)
			continue
		}
		e.key, e.inflight = res.Key, 0
		e.rendered = strings.Split(res.Rendered, "\n")

		index, _ := m.engine.IndexOf(res.ID)
		attrs, _ := m.engine.Item(index)
		if !layout.ShouldInvalidateForMeasurement(height, attrs.Height) {
			continue
		}
		adj := m.engine.ApplyMeasuredHeightForID(res.ID, height)
		if adj.AdjustOffset {
			m.offset += adj.OffsetAdjustment
		}
	}
	m.offset = m.clampOffset(m.offset)
	return nil
}

// Update handles measurement results, scrolling input and the end of a
// scroll gesture.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case measure.ResultsMsg:
		return m.applyResults(msg)
	case scrollSettledMsg:
		if msg.seq == m.scrollSeq {
			m.scrolling = false
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			return m.ScrollBy(-3)
		case tea.MouseWheelDown:
			return m.ScrollBy(3)
		}
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return nil
}
