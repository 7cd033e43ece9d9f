package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Parallel()

	t.Run("stacks estimated items from the bottom", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 3)
		assert.Equal(t, []float64{0, 102, 204}, offsets(e))
		assert.Equal(t, []float64{100, 100, 100}, heights(e))
		assert.Equal(t, float64(304), e.ContentSize().Height)
		requireStacked(t, e)
	})

	t.Run("ids are unique and increasing", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 4)
		var last ItemID
		for i := range 4 {
			id, ok := e.IDAt(i)
			require.True(t, ok)
			assert.Greater(t, id, last)
			last = id
		}
	})

	t.Run("no-op when populated or empty", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(t, 2)
		e.Initialize(5)
		assert.Equal(t, 2, e.Len())

		empty := New(nil)
		empty.Initialize(0)
		assert.Equal(t, 0, empty.Len())
		assert.Zero(t, empty.ContentSize().Height)
	})
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	t.Run("seeds from the container once", func(t *testing.T) {
		t.Parallel()
		c := &fakeContainer{bounds: Size{Width: 80, Height: 150}, count: 3, inset: Insets{Bottom: 4}}
		e := New(c, WithOptions(Options{EstimatedItemHeight: 100, Spacing: 2}))

		offset, ok := e.Prepare()
		require.True(t, ok)
		assert.Equal(t, 3, e.Len())
		assert.Equal(t, float64(80), e.Width())
		// 304 of content in a 150 tall viewport with a bottom inset of 4
		assert.Equal(t, float64(158), offset)

		c.count = 10
		_, ok = e.Prepare()
		assert.False(t, ok)
		assert.Equal(t, 3, e.Len())
	})

	t.Run("short content stays at the top", func(t *testing.T) {
		t.Parallel()
		c := &fakeContainer{bounds: Size{Height: 1000}, count: 2}
		e := New(c, WithOptions(Options{EstimatedItemHeight: 100, Spacing: 2}))
		offset, ok := e.Prepare()
		require.True(t, ok)
		assert.Zero(t, offset)
	})

	t.Run("nothing to seed", func(t *testing.T) {
		t.Parallel()
		e := New(&fakeContainer{})
		_, ok := e.Prepare()
		assert.False(t, ok)
		assert.Equal(t, 0, e.Len())
	})
}

func TestConfigure(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		e := New(nil)
		assert.Equal(t, DefaultOptions(), e.Options())
		assert.Equal(t, float64(200), e.Options().EstimatedItemHeight)
		assert.Equal(t, float64(2), e.Options().Spacing)
	})

	t.Run("first configuration wins", func(t *testing.T) {
		t.Parallel()
		e := New(nil, WithOptions(Options{EstimatedItemHeight: 50, Spacing: 1}))
		e.Configure(Options{EstimatedItemHeight: 70, Spacing: 3})
		assert.Equal(t, Options{EstimatedItemHeight: 50, Spacing: 1}, e.Options())
	})

	t.Run("identical reconfiguration is accepted in strict mode", func(t *testing.T) {
		t.Parallel()
		e := New(nil, WithStrict(true), WithOptions(Options{EstimatedItemHeight: 50, Spacing: 1}))
		assert.NotPanics(t, func() {
			e.Configure(Options{EstimatedItemHeight: 50, Spacing: 1})
		})
	})

	t.Run("conflicting reconfiguration panics in strict mode", func(t *testing.T) {
		t.Parallel()
		e := New(nil, WithStrict(true), WithOptions(Options{EstimatedItemHeight: 50, Spacing: 1}))
		assert.Panics(t, func() {
			e.Configure(Options{EstimatedItemHeight: 60, Spacing: 1})
		})
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Parallel()
		e := New(nil, WithOptions(Options{EstimatedItemHeight: -1, Spacing: -5}))
		assert.Equal(t, Options{EstimatedItemHeight: DefaultEstimatedItemHeight, Spacing: 0}, e.Options())
	})
}
