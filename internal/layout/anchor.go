package layout

import "log/slog"

// captureAnchor remembers how far the viewport top is from the bottom of the
// content so the distance can be restored once the update has landed.
func (e *Engine) captureAnchor() {
	e.pending.anchor = e.current.ContentHeight() - e.container.ContentOffset()
	e.pending.hasAnchor = true
}

// Anchor returns the distance captured at the start of the running update.
func (e *Engine) Anchor() (float64, bool) {
	return e.pending.anchor, e.pending.hasAnchor
}

// TargetContentOffset is where the host should scroll to once an update has
// been applied. With an anchor captured and content taller than the
// viewport, the captured distance from the bottom is restored. Otherwise the
// host's proposal stands.
func (e *Engine) TargetContentOffset(proposed float64) float64 {
	if !e.pending.hasAnchor {
		return proposed
	}
	height := e.current.ContentHeight()
	if height <= e.container.Bounds().Height {
		return proposed
	}
	target := height - e.pending.anchor
	slog.Debug("Restoring scroll anchor", "proposed", proposed, "target", target)
	return target
}
