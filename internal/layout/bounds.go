package layout

import "log/slog"

// ShouldInvalidateForBounds reports whether a bounds change affects layout.
func (e *Engine) ShouldInvalidateForBounds(size Size) bool {
	return e.container.Bounds() != size
}

// BoundsChanged records a new container size, which must be reported before
// the container adopts it. When the container gets shorter while the newest
// item is visible, the returned adjustment scrolls by the lost height so that
// item stays fully visible. Short conversations that cannot scroll are left
// alone.
func (e *Engine) BoundsChanged(size Size) (adjustment float64, ok bool) {
	old := e.container.Bounds()
	e.width = size.Width

	delta := size.Height - old.Height
	if delta < 0 &&
		e.container.IsItemVisible(0) &&
		e.container.ContentOffset() > -e.container.ContentInset().Top {
		slog.Debug("Keeping newest item visible on resize", "delta", delta)
		return -delta, true
	}
	return 0, false
}
