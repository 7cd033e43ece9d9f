package layout

import "log/slog"

// Adjustment is the engine's answer to a measured height.
type Adjustment struct {
	// Applied is false when the measurement was dropped because its item no
	// longer exists.
	Applied bool
	// ContentSizeDelta is the change of the content height. Only the height
	// ever changes.
	ContentSizeDelta float64
	// AdjustOffset asks the host to move its content offset by
	// OffsetAdjustment so the bottom of the list stays put.
	AdjustOffset     bool
	OffsetAdjustment float64
}

// ShouldInvalidateForMeasurement reports whether a measured height differs
// from the height the item was laid out with.
func ShouldInvalidateForMeasurement(preferred, original float64) bool {
	return preferred != original
}

// ApplyMeasuredHeightForID applies a measured height to the item with id. It
// is the safe entry point for measurements that may have been started before
// a structural update moved the item.
func (e *Engine) ApplyMeasuredHeightForID(id ItemID, height float64) Adjustment {
	index, ok := e.current.IndexOf(id)
	if !ok {
		slog.Debug("Dropping measurement for removed item", "id", id)
		remeasurements.WithLabelValues("dropped").Inc()
		return Adjustment{}
	}
	return e.ApplyMeasuredHeight(index, height)
}

// ApplyMeasuredHeight sets the height of the item at index and moves every
// item above it by the difference.
//
// The host is asked to shift its content offset by the same amount when the
// item started above the visible top edge, since growth there would
// otherwise push the viewport around, or when the user is not scrolling, so
// an idle list stays glued to its newest item.
func (e *Engine) ApplyMeasuredHeight(index int, height float64) Adjustment {
	item, ok := e.current.At(index)
	if !ok {
		slog.Debug("Dropping measurement outside layout", "index", index, "len", e.current.Len())
		remeasurements.WithLabelValues("dropped").Inc()
		return Adjustment{}
	}
	remeasurements.WithLabelValues("applied").Inc()

	top := e.current.ContentHeight() - item.MaxY()
	delta := height - item.Height
	e.current.setHeight(index, height)
	if attrs, ok := e.pending.animating[index]; ok {
		attrs.Height = height
		e.pending.animating[index] = attrs
	}
	e.current.shift(index+1, delta)
	slog.Debug("Applied measured height", "index", index, "id", item.ID, "delta", delta)

	adj := Adjustment{Applied: true, ContentSizeDelta: delta}
	aboveTopEdge := top < e.container.ContentOffset()
	if aboveTopEdge || !e.container.IsScrolling() {
		adj.AdjustOffset = true
		adj.OffsetAdjustment = delta
	}
	return adj
}
