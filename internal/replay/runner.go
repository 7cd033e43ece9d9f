package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/yumosx/anchor/internal/layout"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Snapshot is the geometry captured by a dump step.
type Snapshot struct {
	Label         string              `json:"label"`
	Phase         string              `json:"phase"`
	ContentHeight float64             `json:"content_height"`
	Offset        float64             `json:"offset"`
	Items         []layout.Attributes `json:"items"`
}

// Runner plays scripts and writes every dump to Out.
type Runner struct {
	Out    io.Writer
	Format Format
	// Strict makes conflicting engine options panic instead of warn.
	Strict bool
}

// Run plays s on a fresh engine and returns the dumped snapshots.
func (r Runner) Run(ctx context.Context, s *Script) ([]Snapshot, error) {
	c := &container{
		bounds: layout.Size{Width: s.Container.Width, Height: s.Container.Height},
		offset: s.Container.Offset,
		inset:  layout.Insets{Top: s.Container.Inset.Top, Bottom: s.Container.Inset.Bottom},
	}
	var opts []layout.Option
	if s.Options != nil {
		opts = append(opts, layout.WithOptions(*s.Options))
	}
	opts = append(opts, layout.WithStrict(r.Strict))
	c.engine = layout.New(c, opts...)

	var snaps []Snapshot
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return snaps, err
		}
		snap, err := r.play(c, step)
		if err != nil {
			return snaps, fmt.Errorf("step %d: %w", i+1, err)
		}
		if snap == nil {
			continue
		}
		snaps = append(snaps, *snap)
		if err := r.write(*snap); err != nil {
			return snaps, fmt.Errorf("writing dump %q: %w", snap.Label, err)
		}
	}
	return snaps, nil
}

func (r Runner) play(c *container, step Step) (*Snapshot, error) {
	e := c.engine
	switch {
	case step.Init != nil:
		c.count = *step.Init
		e.Initialize(*step.Init)
	case step.Prepare != nil:
		c.count = *step.Prepare
		if offset, ok := e.Prepare(); ok {
			c.offset = offset
		}
	case step.Invalidate == "counts":
		e.InvalidateLayout(layout.Invalidation{DataSourceCounts: true})
	case step.Invalidate == "everything":
		e.InvalidateLayout(layout.Invalidation{Everything: true})
	case step.Finalize:
		c.offset = e.TargetContentOffset(c.offset)
		e.FinalizeUpdate()
	case step.Measure != nil:
		var adj layout.Adjustment
		if step.Measure.ID != nil {
			adj = e.ApplyMeasuredHeightForID(layout.ItemID(*step.Measure.ID), step.Measure.Height)
		} else {
			adj = e.ApplyMeasuredHeight(*step.Measure.Index, step.Measure.Height)
		}
		if adj.AdjustOffset {
			c.offset += adj.OffsetAdjustment
		}
	case step.Scroll != nil:
		c.offset = *step.Scroll
	case step.Scrolling != nil:
		c.scrolling = *step.Scrolling
	case step.Resize != nil:
		size := layout.Size{Width: step.Resize.Width, Height: step.Resize.Height}
		if e.ShouldInvalidateForBounds(size) {
			adj, ok := e.BoundsChanged(size)
			if ok {
				c.offset += adj
			}
			c.bounds = size
		}
	case step.Dump != "":
		return snapshot(step.Dump, c), nil
	case step.Appearing != "":
		return animating(step.Appearing, c, e.Appearing(), e.AppearingItem), nil
	case step.Disappearing != "":
		return animating(step.Disappearing, c, e.Disappearing(), e.DisappearingItem), nil
	default:
		ops, delta := step.ops()
		c.count += delta
		e.InvalidateLayout(layout.Invalidation{DataSourceCounts: true})
		if err := e.BeginUpdate(ops); err != nil {
			c.count -= delta
			return nil, err
		}
		slog.Debug("Replayed update", "ops", len(ops), "count", c.count)
	}
	return nil, nil
}

// snapshot reads the layout back through the query interface, so a dump taken
// while queries are suppressed shows no items.
func snapshot(label string, c *container) *Snapshot {
	e := c.engine
	h := e.ContentSize().Height
	snap := &Snapshot{
		Label:         label,
		Phase:         e.Phase().String(),
		ContentHeight: h,
		Offset:        c.offset,
		Items:         []layout.Attributes{},
	}
	everything := layout.Rect{MinY: 0, MaxY: h}
	for attrs := range e.ItemsIntersecting(everything) {
		snap.Items = append(snap.Items, attrs)
	}
	return snap
}

// animating dumps the animation geometry of the given rows. Asking for it
// moves a running update to the finalizing phase.
func animating(label string, c *container, indexes []int, query func(int) (layout.Attributes, bool)) *Snapshot {
	snap := &Snapshot{
		Label:  label,
		Offset: c.offset,
		Items:  []layout.Attributes{},
	}
	for _, i := range indexes {
		if attrs, ok := query(i); ok {
			snap.Items = append(snap.Items, attrs)
		}
	}
	snap.Phase = c.engine.Phase().String()
	snap.ContentHeight = c.engine.ContentSize().Height
	return snap
}

func (r Runner) write(snap Snapshot) error {
	if r.Out == nil {
		return nil
	}
	if r.Format == FormatJSON {
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	header := lipgloss.NewStyle().Bold(true)
	fmt.Fprintf(r.Out, "%s  phase=%s height=%s offset=%s\n",
		header.Render(snap.Label), snap.Phase, num(snap.ContentHeight), num(snap.Offset))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("index", "id", "offset", "height", "max y")
	for _, a := range snap.Items {
		t.Row(strconv.Itoa(a.Index), a.ID.String(), num(a.Offset), num(a.Height), num(a.MaxY()))
	}
	_, err := fmt.Fprintln(r.Out, t.String())
	return err
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
