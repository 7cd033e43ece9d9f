package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		s := NewStore()
		assert.Equal(t, 0, s.Len())
		assert.Zero(t, s.ContentHeight())
		_, ok := s.At(0)
		assert.False(t, ok)
		idx, ok := s.IndexOf(1)
		assert.False(t, ok)
		assert.Equal(t, ItemNotFound, idx)
	})

	t.Run("index follows structural changes", func(t *testing.T) {
		t.Parallel()
		s := NewStore(
			Item{ID: 1, Offset: 0, Height: 10},
			Item{ID: 2, Offset: 12, Height: 10},
		)
		s.insert(0, Item{ID: 3, Height: 5})
		idx, ok := s.IndexOf(2)
		require.True(t, ok)
		assert.Equal(t, 2, idx)

		s.remove(1)
		_, ok = s.IndexOf(1)
		assert.False(t, ok)
		idx, _ = s.IndexOf(2)
		assert.Equal(t, 1, idx)

		s.append(Item{ID: 4, Offset: 30, Height: 1})
		idx, _ = s.IndexOf(4)
		assert.Equal(t, 2, idx)
		assert.Equal(t, float64(31), s.ContentHeight())
	})

	t.Run("clone is independent", func(t *testing.T) {
		t.Parallel()
		s := NewStore(Item{ID: 1, Height: 10})
		c := s.Clone()
		c.setHeight(0, 99)
		c.append(Item{ID: 2, Offset: 101, Height: 1})

		it, _ := s.At(0)
		assert.Equal(t, float64(10), it.Height)
		assert.Equal(t, 1, s.Len())
		_, ok := s.IndexOf(2)
		assert.False(t, ok)
	})

	t.Run("all stops early", func(t *testing.T) {
		t.Parallel()
		s := NewStore(Item{ID: 1}, Item{ID: 2}, Item{ID: 3})
		var seen []ItemID
		for _, it := range s.All() {
			seen = append(seen, it.ID)
			if len(seen) == 2 {
				break
			}
		}
		assert.Equal(t, []ItemID{1, 2}, seen)
	})
}
