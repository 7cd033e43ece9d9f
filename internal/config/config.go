package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/yumosx/anchor/internal/layout"
)

const (
	appName              = "anchor"
	defaultDataDirectory = ".anchor"

	defaultEstimatedRows = 3
	defaultGap           = 1
	defaultFeedInterval  = 1200 * time.Millisecond
)

type TUIOptions struct {
	EstimatedRows int `json:"estimated_rows,omitempty" jsonschema:"description=Rows given to a message before it is measured,default=3,minimum=1"`
	Gap           int `json:"gap,omitempty" jsonschema:"description=Blank rows between messages,default=1,minimum=0"`
	// FeedInterval is a Go duration string such as "1.2s".
	FeedInterval string `json:"feed_interval,omitempty" jsonschema:"description=Delay between simulated conversation events,default=1.2s,example=500ms"`
}

// Interval parses FeedInterval, falling back to the default when unset.
func (o TUIOptions) Interval() (time.Duration, error) {
	if o.FeedInterval == "" {
		return defaultFeedInterval, nil
	}
	d, err := time.ParseDuration(o.FeedInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid feed_interval %q: %w", o.FeedInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid feed_interval %q: must be positive", o.FeedInterval)
	}
	return d, nil
}

type Options struct {
	Layout        layout.Options `json:"layout,omitzero" jsonschema:"description=Geometry used by the replay engine"`
	TUI           *TUIOptions    `json:"tui,omitempty" jsonschema:"description=Terminal transcript options"`
	Debug         bool           `json:"debug,omitempty" jsonschema:"description=Enable debug logging,default=false"`
	DataDirectory string         `json:"data_directory,omitempty" jsonschema:"description=Directory for logs and panic reports relative to the working directory,default=.anchor,example=.anchor"`
	MetricsAddr   string         `json:"metrics_addr,omitempty" jsonschema:"description=Listen address for the pprof and /metrics endpoint,example=localhost:6060"`
}

// Config holds the configuration for anchor.
type Config struct {
	Schema  string   `json:"$schema,omitempty"`
	Options *Options `json:"options,omitempty" jsonschema:"description=General application options"`

	workingDir string
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// LogFile is where Setup points the rotating logger.
func (c *Config) LogFile() string {
	return filepath.Join(c.Options.DataDirectory, "logs", fmt.Sprintf("%s.log", appName))
}

func (c *Config) setDefaults(workingDir string) {
	c.workingDir = workingDir
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	if c.Options.TUI.EstimatedRows <= 0 {
		c.Options.TUI.EstimatedRows = defaultEstimatedRows
	}
	if c.Options.TUI.Gap < 0 {
		c.Options.TUI.Gap = defaultGap
	}
	if c.Options.Layout.EstimatedItemHeight <= 0 {
		c.Options.Layout.EstimatedItemHeight = layout.DefaultEstimatedItemHeight
	}
	if c.Options.Layout.Spacing < 0 {
		c.Options.Layout.Spacing = layout.DefaultSpacing
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = defaultDataDirectory
	}
	if !filepath.IsAbs(c.Options.DataDirectory) {
		c.Options.DataDirectory = filepath.Join(workingDir, c.Options.DataDirectory)
	}
}
