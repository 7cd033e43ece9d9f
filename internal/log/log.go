package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
	// panicDir is where panic reports go; the working directory until Setup
	// runs.
	panicDir atomic.Value
)

// Setup sends the default slog logger to a rotating JSON log file. Only the
// first call has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,    // Max size in MB
			MaxBackups: 0,     // Number of backups
			MaxAge:     30,    // Days
			Compress:   false, // Enable compression
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		panicDir.Store(filepath.Dir(logFile))
		initialized.Store(true)
	})
}

func Initialized() bool {
	return initialized.Load()
}

// RecoverPanic must be deferred. It writes a timestamped report with the
// stack of a recovered panic next to the log file and runs cleanup.
func RecoverPanic(name string, cleanup func()) {
	r := recover()
	if r == nil {
		return
	}
	slog.Error("Recovered from panic", "name", name, "panic", r)
	if err := writePanicReport(name, r); err != nil {
		fmt.Fprintf(os.Stderr, "panic in %s: %v (report not written: %v)\n", name, r, err)
	}
	if cleanup != nil {
		cleanup()
	}
}

func writePanicReport(name string, r any) error {
	dir, _ := panicDir.Load().(string)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	now := time.Now()
	filename := filepath.Join(dir, fmt.Sprintf("anchor-panic-%s-%s.log", name, now.Format("20060102-150405")))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
	fmt.Fprintf(file, "Time: %s\n\n", now.Format(time.RFC3339))
	fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
	return nil
}
