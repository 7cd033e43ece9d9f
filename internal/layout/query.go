package layout

import (
	"iter"
	"time"
)

// contentWidthInset keeps the content a hair narrower than the container.
// Scroll containers that compare the two for equality skip re-querying
// visible items during batch updates otherwise.
const contentWidthInset = 0.0001

// ContentSize is the size of the whole content.
func (e *Engine) ContentSize() Size {
	return Size{
		Width:  e.container.Bounds().Width - contentWidthInset,
		Height: e.current.ContentHeight(),
	}
}

// ItemsIntersecting yields the attributes of every item overlapping r,
// bottom first. The sequence is lazy and may be ranged over repeatedly.
// Nothing is yielded while geometry queries are suppressed.
func (e *Engine) ItemsIntersecting(r Rect) iter.Seq[Attributes] {
	return func(yield func(Attributes) bool) {
		if e.phase.suppressed() {
			return
		}
		start := time.Now()
		defer func() { queryDuration.Observe(time.Since(start).Seconds()) }()
		for i, it := range e.current.All() {
			if !r.Intersects(it.Offset, it.MaxY()) {
				continue
			}
			if !yield(it.attributes(i, e.width)) {
				return
			}
		}
	}
}

// Item returns the attributes of the item at index.
func (e *Engine) Item(index int) (Attributes, bool) {
	if e.phase.suppressed() {
		return Attributes{}, false
	}
	it, ok := e.current.At(index)
	if !ok {
		return Attributes{}, false
	}
	return it.attributes(index, e.width), true
}

// AppearingItem returns the geometry an appearing row animates from.
//
// Rows inserted by the running update start at their final geometry, which
// is remembered so a measurement arriving mid-animation can correct it. Rows
// the host reloads by removing and re-inserting them start where they were
// before the update: in place when their index did not change, otherwise at
// their previous slot.
func (e *Engine) AppearingItem(index int) (Attributes, bool) {
	e.beginFinalizing()

	if _, ok := e.pending.appearing[index]; ok {
		attrs, ok := e.Item(index)
		if ok {
			e.pending.animating[index] = attrs
		}
		return attrs, ok
	}

	id, ok := e.IDAt(index)
	if !ok {
		return Attributes{}, false
	}
	old, ok := e.previous.IndexOf(id)
	if !ok {
		return Attributes{}, false
	}
	if old == index {
		it, _ := e.current.At(index)
		return it.attributes(index, e.width), true
	}
	it, _ := e.previous.At(old)
	return it.attributes(old, e.width), true
}

// DisappearingItem returns the geometry a disappearing row animates to.
//
// Rows deleted by the running update keep their geometry from before the
// update. Rows the host reloads by removing and re-inserting them go to their
// geometry after the update, which is remembered like an appearing row's.
func (e *Engine) DisappearingItem(index int) (Attributes, bool) {
	e.beginFinalizing()

	if _, ok := e.pending.disappearing[index]; ok {
		it, ok := e.previous.At(index)
		if !ok {
			return Attributes{}, false
		}
		return it.attributes(index, e.width), true
	}

	id, ok := e.PreviousIDAt(index)
	if !ok {
		return Attributes{}, false
	}
	now, ok := e.current.IndexOf(id)
	if !ok {
		return Attributes{}, false
	}
	attrs, ok := e.Item(now)
	if ok {
		e.pending.animating[now] = attrs
	}
	return attrs, ok
}

// AnimatingItem returns the attributes handed out for an animating row,
// including any height measured since.
func (e *Engine) AnimatingItem(index int) (Attributes, bool) {
	attrs, ok := e.pending.animating[index]
	return attrs, ok
}

func (e *Engine) beginFinalizing() {
	if e.phase == PhaseDiffing {
		e.phase = PhaseFinalizing
	}
}
