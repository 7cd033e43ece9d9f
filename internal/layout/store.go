package layout

import "iter"

// Store is an ordered sequence of items with an id side index. Index 0 is the
// bottom-most item.
type Store struct {
	items []Item
	index map[ItemID]int
}

// NewStore creates a store holding the given items in order.
func NewStore(items ...Item) *Store {
	s := &Store{items: append([]Item(nil), items...)}
	s.reindex()
	return s
}

// Len returns the number of items.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the item at index i.
func (s *Store) At(i int) (Item, bool) {
	if s == nil || i < 0 || i >= len(s.items) {
		return Item{}, false
	}
	return s.items[i], true
}

// IndexOf returns the index of the item with the given id.
func (s *Store) IndexOf(id ItemID) (int, bool) {
	if s == nil {
		return ItemNotFound, false
	}
	i, ok := s.index[id]
	if !ok {
		return ItemNotFound, false
	}
	return i, true
}

// All yields every item with its index, bottom first.
func (s *Store) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		if s == nil {
			return
		}
		for i, it := range s.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// ContentHeight is the top edge of the top-most item.
func (s *Store) ContentHeight() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.items[len(s.items)-1].MaxY()
}

// Clone returns a deep copy that can be mutated independently.
func (s *Store) Clone() *Store {
	if s == nil {
		return NewStore()
	}
	return NewStore(s.items...)
}

func (s *Store) reindex() {
	s.index = make(map[ItemID]int, len(s.items))
	for i, it := range s.items {
		s.index[it.ID] = i
	}
}

func (s *Store) append(it Item) {
	s.items = append(s.items, it)
	s.index[it.ID] = len(s.items) - 1
}

func (s *Store) insert(i int, it Item) {
	s.items = append(s.items, Item{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = it
	s.reindex()
}

func (s *Store) remove(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.reindex()
}

// shift moves every item in [from, len) by delta.
func (s *Store) shift(from int, delta float64) {
	for i := max(from, 0); i < len(s.items); i++ {
		s.items[i].Offset += delta
	}
}

func (s *Store) offsetBy(i int, delta float64) {
	s.items[i].Offset += delta
}

func (s *Store) setHeight(i int, h float64) {
	s.items[i].Height = h
}
