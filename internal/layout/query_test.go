package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(e *Engine, r Rect) []int {
	var out []int
	for attrs := range e.ItemsIntersecting(r) {
		out = append(out, attrs.Index)
	}
	return out
}

func TestItemsIntersecting(t *testing.T) {
	t.Parallel()

	t.Run("filters by overlap", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 4)
		assert.Equal(t, []int{0, 1, 2, 3}, collect(e, Rect{MinY: 0, MaxY: 1000}))
		assert.Equal(t, []int{1, 2}, collect(e, Rect{MinY: 150, MaxY: 210}))
		// the gap between items 0 and 1 touches neither
		assert.Empty(t, collect(e, Rect{MinY: 100.5, MaxY: 101.5}))
		// edges count as overlapping
		assert.Equal(t, []int{0, 1}, collect(e, Rect{MinY: 100, MaxY: 102}))
	})

	t.Run("is restartable and stops early", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 3)
		seq := e.ItemsIntersecting(Rect{MaxY: 1000})
		first := 0
		for range seq {
			first++
		}
		second := 0
		for range seq {
			second++
			break
		}
		assert.Equal(t, 3, first)
		assert.Equal(t, 1, second)
	})

	t.Run("carries geometry", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 2)
		_, _ = e.BoundsChanged(Size{Width: 80, Height: 150})
		for attrs := range e.ItemsIntersecting(Rect{MinY: 150, MaxY: 160}) {
			id, _ := e.IDAt(1)
			assert.Equal(t, Attributes{Index: 1, ID: id, Offset: 102, Height: 100, Width: 80, ZIndex: 2}, attrs)
			assert.Equal(t, float64(0), attrs.Top(e.ContentSize().Height))
		}
	})

	t.Run("answers nothing while counts are invalidated", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 3)
		e.InvalidateLayout(Invalidation{DataSourceCounts: true})
		assert.Empty(t, collect(e, Rect{MaxY: 1000}))
		_, ok := e.Item(0)
		assert.False(t, ok)

		require.NoError(t, e.BeginUpdate([]Update{Insert(3)}))
		assert.Len(t, collect(e, Rect{MaxY: 1000}), 4)
	})
}

func TestItem(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, 2)
	attrs, ok := e.Item(1)
	require.True(t, ok)
	assert.Equal(t, float64(102), attrs.Offset)
	assert.Equal(t, float64(202), attrs.MaxY())

	_, ok = e.Item(2)
	assert.False(t, ok)
	_, ok = e.Item(-1)
	assert.False(t, ok)
}

func TestContentSize(t *testing.T) {
	t.Parallel()
	e, c := newTestEngine(t, 0)
	assert.Zero(t, e.ContentSize().Height)
	assert.InDelta(t, c.bounds.Width-0.0001, e.ContentSize().Width, 1e-12)

	e.Initialize(2)
	assert.Equal(t, float64(202), e.ContentSize().Height)
}

func TestAppearingItem(t *testing.T) {
	t.Parallel()

	t.Run("inserted rows use their new geometry", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 2)
		require.NoError(t, e.BeginUpdate([]Update{Insert(0)}))

		attrs, ok := e.AppearingItem(0)
		require.True(t, ok)
		assert.Equal(t, float64(0), attrs.Offset)
		recorded, ok := e.AnimatingItem(0)
		require.True(t, ok)
		assert.Equal(t, attrs, recorded)
	})

	t.Run("reloaded rows that moved start at their old slot", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 2)
		old, _ := e.Item(0)
		require.NoError(t, e.BeginUpdate([]Update{Insert(0)}))

		// the old bottom item now lives at index 1
		attrs, ok := e.AppearingItem(1)
		require.True(t, ok)
		assert.Equal(t, old, attrs)
	})

	t.Run("reloaded rows that stayed use the current geometry", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 3)
		require.NoError(t, e.BeginUpdate([]Update{Delete(2)}))
		e.ApplyMeasuredHeight(0, 10)

		attrs, ok := e.AppearingItem(0)
		require.True(t, ok)
		assert.Equal(t, float64(10), attrs.Height)
		assert.Equal(t, 0, attrs.Index)
	})

	t.Run("unknown rows are absent", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 1)
		_, ok := e.AppearingItem(4)
		assert.False(t, ok)
	})
}

func TestDisappearingItem(t *testing.T) {
	t.Parallel()

	t.Run("deleted rows keep their old geometry", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 3)
		old, _ := e.Item(2)
		require.NoError(t, e.BeginUpdate([]Update{Delete(2)}))

		attrs, ok := e.DisappearingItem(2)
		require.True(t, ok)
		assert.Equal(t, old, attrs)
		_, ok = e.Item(2)
		assert.False(t, ok)
	})

	t.Run("reloaded rows go to their new geometry", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 2)
		id, _ := e.IDAt(0)
		require.NoError(t, e.BeginUpdate([]Update{Insert(0)}))

		attrs, ok := e.DisappearingItem(0)
		require.True(t, ok)
		assert.Equal(t, id, attrs.ID)
		assert.Equal(t, 1, attrs.Index)
		assert.Equal(t, float64(102), attrs.Offset)
		_, ok = e.AnimatingItem(1)
		assert.True(t, ok)
	})

	t.Run("unknown rows are absent", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 1)
		_, ok := e.DisappearingItem(3)
		assert.False(t, ok)
	})
}
