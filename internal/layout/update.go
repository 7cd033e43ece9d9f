package layout

import (
	"log/slog"
	"maps"
	"slices"
	"time"
)

// NoIndex marks an absent index in an Update.
const NoIndex = -1

// UpdateKind is the kind of a structural change.
type UpdateKind int

const (
	UpdateNone UpdateKind = iota
	UpdateInsert
	UpdateDelete
	UpdateMove
	// UpdateReload changes a row's content but not its slot. Geometry follows
	// once the row is measured again.
	UpdateReload
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateInsert:
		return "insert"
	case UpdateDelete:
		return "delete"
	case UpdateMove:
		return "move"
	case UpdateReload:
		return "reload"
	default:
		return "none"
	}
}

// Update is one operation of a batch. Before indexes refer to the layout as
// it was when the batch began; After indexes refer to the layout being built.
type Update struct {
	Kind   UpdateKind
	Before int
	After  int
}

// Insert returns an insert at index after the update.
func Insert(after int) Update {
	return Update{Kind: UpdateInsert, Before: NoIndex, After: after}
}

// Delete returns a delete of index before the update.
func Delete(before int) Update {
	return Update{Kind: UpdateDelete, Before: before, After: NoIndex}
}

// Move returns a move from before to after.
func Move(before, after int) Update {
	return Update{Kind: UpdateMove, Before: before, After: after}
}

// Reload returns a reload of index.
func Reload(index int) Update {
	return Update{Kind: UpdateReload, Before: index, After: index}
}

// Invalidation describes why the host invalidated the layout.
type Invalidation struct {
	// DataSourceCounts is set when the number of rows is about to change.
	DataSourceCounts bool
	// Everything is set when the host throws away all layout state, which
	// also abandons any update in flight.
	Everything bool
}

// InvalidateLayout receives the host's invalidation. A count change without a
// full invalidation suppresses geometry queries until BeginUpdate tells the
// engine which rows changed.
func (e *Engine) InvalidateLayout(ctx Invalidation) {
	slog.Debug("Invalidating layout", "counts", ctx.DataSourceCounts, "everything", ctx.Everything, "phase", e.phase)
	switch {
	case ctx.Everything:
		e.abandon()
	case ctx.DataSourceCounts && e.phase == PhaseIdle:
		e.phase = PhaseCountsInvalidated
	}
}

// abandon drops any update in flight and treats the current store as the
// truth.
func (e *Engine) abandon() {
	if e.phase != PhaseIdle || !e.pending.empty() {
		abandonedUpdates.Inc()
	}
	e.pending = newPendingUpdate()
	e.previous = e.current
	e.phase = PhaseIdle
}

// BeginUpdate applies a batch of structural changes. The geometry before the
// batch stays available as the previous store until FinalizeUpdate. Only one
// batch may be in flight: a second call before finalizing returns
// ErrUpdateInProgress and changes nothing.
func (e *Engine) BeginUpdate(ops []Update) error {
	if e.phase.inUpdate() {
		return ErrUpdateInProgress
	}
	start := time.Now()
	defer func() {
		updateDuration.Observe(time.Since(start).Seconds())
	}()
	updates.Inc()

	e.previous = e.current
	e.current = e.current.Clone()
	e.pending = newPendingUpdate()

	if !insertsAtBottom(ops) {
		e.captureAnchor()
	}

	deletes, inserts := normalizeOps(ops)
	for _, index := range deletes {
		e.applyDelete(index)
	}
	for _, index := range inserts {
		e.applyInsert(index)
	}

	e.phase = PhaseDiffing
	return nil
}

// normalizeOps splits a batch into the indexes it deletes and the indexes it
// inserts. A move counts as both. Delete indexes refer to the layout before
// the batch and insert indexes to the layout after it, so deletes run first
// and inserts run in ascending order. Repeated indexes count once.
func normalizeOps(ops []Update) (deletes, inserts []int) {
	for _, op := range ops {
		slog.Debug("Applying layout update", "kind", op.Kind, "before", op.Before, "after", op.After)
		updateOps.WithLabelValues(op.Kind.String()).Inc()
		switch op.Kind {
		case UpdateDelete:
			deletes = append(deletes, op.Before)
		case UpdateInsert:
			inserts = append(inserts, op.After)
		case UpdateMove:
			deletes = append(deletes, op.Before)
			inserts = append(inserts, op.After)
		}
	}
	slices.Sort(deletes)
	slices.Sort(inserts)
	return slices.Compact(deletes), slices.Compact(inserts)
}

func insertsAtBottom(ops []Update) bool {
	for _, op := range ops {
		if op.Kind == UpdateInsert && op.After == 0 {
			return true
		}
	}
	return false
}

// applyDelete removes the item that sat at index before the batch. Items that
// were above it come down by its height and the spacing under it. Earlier
// deletes of the batch may have removed things, so everything is found by id.
func (e *Engine) applyDelete(index int) {
	if index == NoIndex {
		return
	}
	item, ok := e.previous.At(index)
	if !ok {
		slog.Debug("Skipping delete outside previous layout", "index", index, "len", e.previous.Len())
		return
	}
	e.pending.disappearing[index] = struct{}{}

	delta := item.Height + e.opts.Spacing
	for i := index + 1; i < e.previous.Len(); i++ {
		old, _ := e.previous.At(i)
		if j, ok := e.current.IndexOf(old.ID); ok {
			e.current.offsetBy(j, -delta)
		}
	}
	if j, ok := e.current.IndexOf(item.ID); ok {
		e.current.remove(j)
	}
}

// applyInsert adds an item of the estimated height at index of the layout
// being built and pushes every item at or above it up.
func (e *Engine) applyInsert(index int) {
	if index == NoIndex {
		return
	}
	if index < 0 || index > e.current.Len() {
		slog.Debug("Skipping insert outside current layout", "index", index, "len", e.current.Len())
		return
	}
	e.pending.appearing[index] = struct{}{}

	item := Item{ID: e.newID(), Height: e.opts.EstimatedItemHeight}
	if below, ok := e.current.At(index - 1); ok {
		item.Offset = below.MaxY() + e.opts.Spacing
	}
	e.current.shift(index, item.Height+e.opts.Spacing)
	if index == e.current.Len() {
		e.current.append(item)
		return
	}
	e.current.insert(index, item)
}

// FinalizeUpdate ends the running update and forgets its bookkeeping. It is
// safe to call when no update is running.
func (e *Engine) FinalizeUpdate() {
	if e.phase == PhaseIdle && e.pending.empty() {
		return
	}
	slog.Debug("Finalizing layout update", "phase", e.phase)
	e.pending = newPendingUpdate()
	e.previous = e.current
	e.phase = PhaseIdle
}

// Appearing returns the indexes inserted by the running update.
func (e *Engine) Appearing() []int {
	return sortedKeys(e.pending.appearing)
}

// Disappearing returns the indexes deleted by the running update.
func (e *Engine) Disappearing() []int {
	return sortedKeys(e.pending.disappearing)
}

func sortedKeys(m map[int]struct{}) []int {
	return slices.Sorted(maps.Keys(m))
}
