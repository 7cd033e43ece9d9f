package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log/v2"
)

// traceTo sends slog records at debug level and above to w as colored,
// human-readable lines until the returned function is called.
func traceTo(w io.Writer) (restore func()) {
	prev := slog.Default()
	logger := log.NewWithOptions(w, log.Options{
		Level:  log.DebugLevel,
		Prefix: "trace",
	})
	slog.SetDefault(slog.New(logger))
	return func() { slog.SetDefault(prev) }
}
