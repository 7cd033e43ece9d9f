// Package replay runs scripted sessions against the layout engine and prints
// the resulting geometry. Scripts are YAML or JSON.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/yumosx/anchor/internal/layout"
	"gopkg.in/yaml.v3"
)

// Script is a container setup followed by the steps to play. Options left
// out of the script keep their defaults.
type Script struct {
	Name      string          `yaml:"name,omitempty" json:"name,omitempty"`
	Options   *layout.Options `yaml:"options,omitempty" json:"options,omitempty"`
	Container Viewport        `yaml:"container" json:"container"`
	Steps     []Step          `yaml:"steps" json:"steps"`
}

// Viewport is the scripted container's starting state.
type Viewport struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Offset float64 `yaml:"offset,omitempty" json:"offset,omitempty"`
	Inset  struct {
		Top    float64 `yaml:"top,omitempty" json:"top,omitempty"`
		Bottom float64 `yaml:"bottom,omitempty" json:"bottom,omitempty"`
	} `yaml:"inset,omitempty" json:"inset,omitempty"`
}

// Step is a single action. Exactly one field is set.
type Step struct {
	// Init seeds the layout with this many estimated items.
	Init *int `yaml:"init,omitempty" json:"init,omitempty"`
	// Prepare seeds the layout from the container's item count and scrolls
	// to the newest item.
	Prepare *int `yaml:"prepare,omitempty" json:"prepare,omitempty"`

	Insert []int   `yaml:"insert,omitempty" json:"insert,omitempty"`
	Delete []int   `yaml:"delete,omitempty" json:"delete,omitempty"`
	Reload []int   `yaml:"reload,omitempty" json:"reload,omitempty"`
	Move   *MoveOp `yaml:"move,omitempty" json:"move,omitempty"`
	// Batch applies a mixed list of operations as one update.
	Batch []Op `yaml:"batch,omitempty" json:"batch,omitempty"`

	// Invalidate is "counts" or "everything".
	Invalidate string `yaml:"invalidate,omitempty" json:"invalidate,omitempty"`
	Finalize   bool   `yaml:"finalize,omitempty" json:"finalize,omitempty"`

	Measure   *MeasureOp `yaml:"measure,omitempty" json:"measure,omitempty"`
	Scroll    *float64   `yaml:"scroll,omitempty" json:"scroll,omitempty"`
	Scrolling *bool      `yaml:"scrolling,omitempty" json:"scrolling,omitempty"`
	Resize    *SizeOp    `yaml:"resize,omitempty" json:"resize,omitempty"`

	// Dump prints the geometry under this label.
	Dump string `yaml:"dump,omitempty" json:"dump,omitempty"`
	// Appearing and Disappearing print, under their label, the geometry the
	// rows inserted or removed by the running update animate from or to.
	Appearing    string `yaml:"appearing,omitempty" json:"appearing,omitempty"`
	Disappearing string `yaml:"disappearing,omitempty" json:"disappearing,omitempty"`
}

type MoveOp struct {
	From int `yaml:"from" json:"from"`
	To   int `yaml:"to" json:"to"`
}

// Op is one operation of a batch. Exactly one field is set.
type Op struct {
	Insert *int    `yaml:"insert,omitempty" json:"insert,omitempty"`
	Delete *int    `yaml:"delete,omitempty" json:"delete,omitempty"`
	Reload *int    `yaml:"reload,omitempty" json:"reload,omitempty"`
	Move   *MoveOp `yaml:"move,omitempty" json:"move,omitempty"`
}

// MeasureOp reports a measured height by index or by item id.
type MeasureOp struct {
	Index  *int    `yaml:"index,omitempty" json:"index,omitempty"`
	ID     *uint64 `yaml:"id,omitempty" json:"id,omitempty"`
	Height float64 `yaml:"height" json:"height"`
}

type SizeOp struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

var ErrInvalidStep = errors.New("invalid step")

// Parse decodes a YAML or JSON script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	return ParseWithDefaults(data, layout.DefaultOptions())
}

// ParseWithDefaults is Parse with the options a script falls back to when it
// leaves them out.
func ParseWithDefaults(data []byte, defaults layout.Options) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	opts := defaults
	s := Script{Options: &opts}
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decoding script: empty input")
		}
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	set := 0
	for _, ok := range []bool{
		s.Init != nil,
		s.Prepare != nil,
		len(s.Insert) > 0,
		len(s.Delete) > 0,
		len(s.Reload) > 0,
		s.Move != nil,
		len(s.Batch) > 0,
		s.Invalidate != "",
		s.Finalize,
		s.Measure != nil,
		s.Scroll != nil,
		s.Scrolling != nil,
		s.Resize != nil,
		s.Dump != "",
		s.Appearing != "",
		s.Disappearing != "",
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: want exactly one action, got %d", ErrInvalidStep, set)
	}
	switch s.Invalidate {
	case "", "counts", "everything":
	default:
		return fmt.Errorf("%w: unknown invalidation %q", ErrInvalidStep, s.Invalidate)
	}
	if m := s.Measure; m != nil && (m.Index == nil) == (m.ID == nil) {
		return fmt.Errorf("%w: measure needs exactly one of index or id", ErrInvalidStep)
	}
	for _, op := range s.Batch {
		if n := countSet(op.Insert != nil, op.Delete != nil, op.Reload != nil, op.Move != nil); n != 1 {
			return fmt.Errorf("%w: batch operation needs exactly one action, got %d", ErrInvalidStep, n)
		}
	}
	return nil
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// ops converts the structural part of the step into engine updates and the
// change in item count they cause.
func (s Step) ops() (ops []layout.Update, countDelta int) {
	for _, i := range s.Insert {
		ops = append(ops, layout.Insert(i))
		countDelta++
	}
	for _, i := range s.Delete {
		ops = append(ops, layout.Delete(i))
		countDelta--
	}
	for _, i := range s.Reload {
		ops = append(ops, layout.Reload(i))
	}
	if s.Move != nil {
		ops = append(ops, layout.Move(s.Move.From, s.Move.To))
	}
	for _, op := range s.Batch {
		switch {
		case op.Insert != nil:
			ops = append(ops, layout.Insert(*op.Insert))
			countDelta++
		case op.Delete != nil:
			ops = append(ops, layout.Delete(*op.Delete))
			countDelta--
		case op.Reload != nil:
			ops = append(ops, layout.Reload(*op.Reload))
		case op.Move != nil:
			ops = append(ops, layout.Move(op.Move.From, op.Move.To))
		}
	}
	return ops, countDelta
}
