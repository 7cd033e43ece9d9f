package layout

// Phase is the position of the engine in the update lifecycle:
//
//	Idle -> CountsInvalidated -> Diffing -> Finalizing -> Idle
//
// Every path ends in Idle, including abandoned updates.
type Phase int

const (
	// PhaseIdle means no structural update is in flight.
	PhaseIdle Phase = iota
	// PhaseCountsInvalidated means the host announced a count change but has
	// not said which items changed yet. Geometry queries answer nothing.
	PhaseCountsInvalidated
	// PhaseDiffing means the update's operations have been applied.
	PhaseDiffing
	// PhaseFinalizing means the host is asking for appearing and
	// disappearing geometry to animate the transition.
	PhaseFinalizing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountsInvalidated:
		return "counts-invalidated"
	case PhaseDiffing:
		return "diffing"
	case PhaseFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// suppressed reports whether geometry queries must answer nothing.
func (p Phase) suppressed() bool {
	return p == PhaseCountsInvalidated
}

// inUpdate reports whether operations have been applied and not finalized.
func (p Phase) inUpdate() bool {
	return p == PhaseDiffing || p == PhaseFinalizing
}

type pendingUpdate struct {
	appearing    map[int]struct{}
	disappearing map[int]struct{}
	// animating holds the attributes handed out for appearing and reloaded
	// items so measurements arriving mid-animation can correct them.
	animating map[int]Attributes

	anchor    float64
	hasAnchor bool
}

func newPendingUpdate() pendingUpdate {
	return pendingUpdate{
		appearing:    make(map[int]struct{}),
		disappearing: make(map[int]struct{}),
		animating:    make(map[int]Attributes),
	}
}

func (p pendingUpdate) empty() bool {
	return len(p.appearing) == 0 && len(p.disappearing) == 0 && len(p.animating) == 0 && !p.hasAnchor
}
