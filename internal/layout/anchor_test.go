package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollAnchor(t *testing.T) {
	t.Parallel()

	t.Run("distance from the bottom is preserved", func(t *testing.T) {
		t.Parallel()
		e, c := newTestEngine(t, 3)
		c.offset = 100
		h0 := e.ContentSize().Height

		require.NoError(t, e.BeginUpdate([]Update{Insert(3)}))
		distance, ok := e.Anchor()
		require.True(t, ok)
		assert.Equal(t, h0-c.offset, distance)

		h1 := e.ContentSize().Height
		assert.Equal(t, float64(406), h1)
		assert.Equal(t, h1-(h0-c.offset), e.TargetContentOffset(0))
	})

	t.Run("measurements during the update are included", func(t *testing.T) {
		t.Parallel()
		e, c := newTestEngine(t, 3)
		c.offset = 50
		require.NoError(t, e.BeginUpdate([]Update{Insert(3)}))
		e.ApplyMeasuredHeight(3, 300)

		assert.Equal(t, e.ContentSize().Height-(304-50), e.TargetContentOffset(7))
	})

	t.Run("inserting at the bottom reveals the new item", func(t *testing.T) {
		t.Parallel()
		e, c := newTestEngine(t, 3)
		c.offset = 100
		require.NoError(t, e.BeginUpdate([]Update{Delete(2), Insert(0)}))

		_, ok := e.Anchor()
		assert.False(t, ok)
		assert.Equal(t, float64(33), e.TargetContentOffset(33))
	})

	t.Run("content that cannot scroll keeps the proposal", func(t *testing.T) {
		t.Parallel()
		e, c := newTestEngine(t, 1)
		c.bounds.Height = 1000
		require.NoError(t, e.BeginUpdate([]Update{Insert(1)}))
		assert.Equal(t, float64(12), e.TargetContentOffset(12))
	})

	t.Run("anchor is discarded on finalize", func(t *testing.T) {
		t.Parallel()
		e, c := newTestEngine(t, 3)
		c.offset = 10
		require.NoError(t, e.BeginUpdate([]Update{Delete(0)}))
		e.FinalizeUpdate()

		_, ok := e.Anchor()
		assert.False(t, ok)
		assert.Equal(t, float64(5), e.TargetContentOffset(5))
	})
}
