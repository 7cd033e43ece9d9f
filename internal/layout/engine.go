// Package layout positions the rows of a bottom-anchored, virtualized list.
//
// The engine keeps the offset and height of every item, applies batches of
// inserts, deletes and moves against a snapshot of the previous geometry, folds
// in heights measured after rows render, and keeps the user's reading position
// stable while all of that happens. Offsets grow upward from the bottom of the
// content: index 0 is the newest item and sits at offset 0.
//
// The engine is not safe for concurrent use. Hosts that measure rows in the
// background must hand results back to the goroutine that owns the engine.
package layout

import "log/slog"

// ItemNotFound is returned as an index when an item cannot be located.
const ItemNotFound = -1

// Container is the scroll container hosting the list. The engine asks it
// about the viewport; it never mutates it.
type Container interface {
	// Bounds is the visible size of the container.
	Bounds() Size
	// ContentOffset is the distance from the top of the content to the top
	// of the viewport.
	ContentOffset() float64
	ContentInset() Insets
	// IsScrolling reports whether the user is dragging or the content is
	// still decelerating from a drag.
	IsScrolling() bool
	// ItemCount is the number of rows the host's data source holds.
	ItemCount() int
	// IsItemVisible reports whether the row at index is on screen.
	IsItemVisible(index int) bool
}

// Engine is the list layout. Construct it with New.
type Engine struct {
	container Container

	opts       Options
	configured bool
	strict     bool

	current  *Store
	previous *Store
	lastID   ItemID

	width    float64
	prepared bool

	phase   Phase
	pending pendingUpdate
}

// New creates an empty engine laying out rows for container.
func New(container Container, opts ...Option) *Engine {
	if container == nil {
		container = detached{}
	}
	e := &Engine{
		container: container,
		opts:      DefaultOptions(),
		current:   NewStore(),
		pending:   newPendingUpdate(),
	}
	e.previous = e.current
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prepare runs the host's first layout pass. It records the container width
// and seeds the store from the container's item count with estimated
// heights. It returns the content offset that brings item 0 into view; ok is
// false on every call after the first or when nothing was seeded.
func (e *Engine) Prepare() (offset float64, ok bool) {
	if e.prepared {
		return 0, false
	}
	e.prepared = true

	if e.current.Len() > 0 {
		return 0, false
	}
	bounds := e.container.Bounds()
	e.width = bounds.Width

	count := e.container.ItemCount()
	if count <= 0 {
		return 0, false
	}
	slog.Debug("Seeding layout", "count", count)
	e.Initialize(count)

	offset = e.current.ContentHeight() - bounds.Height + e.container.ContentInset().Bottom
	return max(offset, 0), true
}

// Initialize fills an empty store with count items of the estimated height,
// stacked from offset 0 upward.
func (e *Engine) Initialize(count int) {
	if count <= 0 || e.current.Len() > 0 {
		return
	}
	step := e.opts.EstimatedItemHeight + e.opts.Spacing
	items := make([]Item, count)
	for i := range items {
		items[i] = Item{
			ID:     e.newID(),
			Offset: float64(i) * step,
			Height: e.opts.EstimatedItemHeight,
		}
	}
	e.current = NewStore(items...)
	e.previous = e.current
}

func (e *Engine) newID() ItemID {
	e.lastID++
	return e.lastID
}

// Phase returns where the engine is in the update lifecycle.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Len returns the number of items in the current layout.
func (e *Engine) Len() int {
	return e.current.Len()
}

// Width returns the width used for attributes.
func (e *Engine) Width() float64 {
	return e.width
}

// IDAt returns the id of the current item at index.
func (e *Engine) IDAt(index int) (ItemID, bool) {
	it, ok := e.current.At(index)
	return it.ID, ok
}

// IndexOf returns the current index of the item with id.
func (e *Engine) IndexOf(id ItemID) (int, bool) {
	return e.current.IndexOf(id)
}

// PreviousIDAt returns the id of the item at index before the running update.
func (e *Engine) PreviousIDAt(index int) (ItemID, bool) {
	it, ok := e.previous.At(index)
	return it.ID, ok
}

// PreviousIndexOf returns the index the item had before the running update.
func (e *Engine) PreviousIndexOf(id ItemID) (int, bool) {
	return e.previous.IndexOf(id)
}

// detached stands in for a missing container: a zero-sized, idle viewport.
type detached struct{}

func (detached) Bounds() Size           { return Size{} }
func (detached) ContentOffset() float64 { return 0 }
func (detached) ContentInset() Insets   { return Insets{} }
func (detached) IsScrolling() bool      { return false }
func (detached) ItemCount() int         { return 0 }
func (detached) IsItemVisible(int) bool { return false }
