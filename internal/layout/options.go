package layout

import (
	"fmt"
	"log/slog"
)

const (
	// DefaultEstimatedItemHeight is the height given to items before they are
	// measured. Closer estimates mean fewer corrections after measurement.
	DefaultEstimatedItemHeight = 200
	// DefaultSpacing is the vertical gap between two adjacent items.
	DefaultSpacing = 2
)

// Options configure the geometry of an engine.
type Options struct {
	EstimatedItemHeight float64 `json:"estimated_item_height,omitempty" yaml:"estimated_item_height,omitempty" jsonschema:"description=Height assigned to items before they are measured,default=200"`
	Spacing             float64 `json:"spacing,omitempty" yaml:"spacing,omitempty" jsonschema:"description=Vertical gap between adjacent items,default=2"`
}

// DefaultOptions returns the stock layout options.
func DefaultOptions() Options {
	return Options{
		EstimatedItemHeight: DefaultEstimatedItemHeight,
		Spacing:             DefaultSpacing,
	}
}

func (o Options) normalized() Options {
	if o.EstimatedItemHeight <= 0 {
		o.EstimatedItemHeight = DefaultEstimatedItemHeight
	}
	if o.Spacing < 0 {
		o.Spacing = 0
	}
	return o
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithOptions configures the engine geometry. It counts as the engine's one
// configuration, see Engine.Configure.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.Configure(opts)
	}
}

// WithStrict makes contract violations panic instead of being logged.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// Configure applies layout options. An engine is configured at most once: a
// later call with different options is a caller error. In strict mode it
// panics, otherwise it is logged and the first options stay in effect.
func (e *Engine) Configure(opts Options) {
	opts = opts.normalized()
	if !e.configured {
		e.opts = opts
		e.configured = true
		return
	}
	if opts == e.opts {
		return
	}
	err := fmt.Errorf("%w: have %+v, got %+v", ErrConflictingOptions, e.opts, opts)
	if e.strict {
		panic(err)
	}
	slog.Warn("Ignoring layout reconfiguration", "error", err)
}

// Options returns the options in effect.
func (e *Engine) Options() Options {
	return e.opts
}
