package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/term"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yumosx/anchor/internal/fsext"
	"github.com/yumosx/anchor/internal/layout"
	"github.com/yumosx/anchor/internal/replay"
)

func init() {
	replayCmd.Flags().StringP("format", "f", string(replay.FormatTable), "Output format (table, json)")
	replayCmd.Flags().BoolP("watch", "w", false, "Replay again whenever the script changes")
	replayCmd.Flags().Bool("strict", false, "Fail on conflicting layout options instead of warning")
	replayCmd.Flags().Bool("diff", false, "With --watch, print only what changed since the previous run")
	replayCmd.Flags().Bool("trace", false, "Print engine debug logs to stderr")
}

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Play a scripted session against the layout engine",
	Long: heredoc.Doc(`
		Play a YAML or JSON script of layout steps against a fresh engine and print
		the geometry at every dump step. Appearing and disappearing steps print the
		rows the running update animates. The script is read from stdin when it is piped.
	`),
	Example: heredoc.Doc(`
		# Replay a script file
		anchor replay session.yaml

		# Replay every script under a directory
		anchor replay 'scripts/**/*.yaml'

		# Pipe a script and print JSON
		cat session.yaml | anchor replay --format json

		# Re-run on every save, showing only the changes
		anchor replay --watch --diff session.yaml
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		watch, _ := cmd.Flags().GetBool("watch")
		strict, _ := cmd.Flags().GetBool("strict")
		diff, _ := cmd.Flags().GetBool("diff")
		trace, _ := cmd.Flags().GetBool("trace")

		f := replay.Format(format)
		if f != replay.FormatTable && f != replay.FormatJSON {
			return fmt.Errorf("unknown format %q", format)
		}

		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		if trace {
			restore := traceTo(cmd.ErrOrStderr())
			defer restore()
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		}
		if watch && path == "" {
			return errors.New("--watch needs a script file")
		}

		r := replayer{
			runner:   replay.Runner{Out: cmd.OutOrStdout(), Format: f, Strict: strict},
			defaults: cfg.Options.Layout,
			diff:     diff,
		}
		ctx := cmd.Context()
		if fsext.IsPattern(path) {
			if watch {
				return errors.New("--watch needs a single script file")
			}
			return r.playAll(ctx, path)
		}
		if !watch {
			data, err := readScript(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return r.play(ctx, data)
		}
		return r.watch(ctx, path, cmd.ErrOrStderr())
	},
}

type replayer struct {
	runner   replay.Runner
	defaults layout.Options
	diff     bool
}

func (r replayer) play(ctx context.Context, data []byte) error {
	script, err := replay.ParseWithDefaults(data, r.defaults)
	if err != nil {
		return err
	}
	_, err = r.runner.Run(ctx, script)
	return err
}

func (r replayer) playFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return r.play(ctx, data)
}

// playAll plays every script matching pattern in order, each under a
// heading with its path.
func (r replayer) playAll(ctx context.Context, pattern string) error {
	paths, err := fsext.Glob(pattern)
	if err != nil {
		return fmt.Errorf("invalid script pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no scripts match %q", pattern)
	}
	for _, path := range paths {
		if r.runner.Format == replay.FormatTable {
			fmt.Fprintf(r.runner.Out, "# %s\n", fsext.PrettyPath(path))
		}
		if err := r.playFile(ctx, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// watch plays the script, then plays it again after every write until ctx
// is done. Errors from a run are reported on errOut and do not stop watching.
func (r replayer) watch(ctx context.Context, path string, errOut io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	out := r.runner.Out
	var last string
	first := true
	run := func() {
		if !r.diff {
			if err := r.playFile(ctx, abs); err != nil {
				fmt.Fprintf(errOut, "replay: %v\n", err)
			}
			return
		}

		var buf bytes.Buffer
		rr := r
		rr.runner.Out = &buf
		if err := rr.playFile(ctx, abs); err != nil {
			fmt.Fprintf(errOut, "replay: %v\n", err)
			return
		}
		current := buf.String()
		switch {
		case first:
			fmt.Fprint(out, current)
		case current == last:
			fmt.Fprintln(out, "no geometry changes")
		default:
			fmt.Fprint(out, udiff.Unified("previous", "current", last, current))
		}
		first = false
		last = current
	}
	run()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("Script changed", "path", abs, "op", event.Op.String())
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

// readScript reads the script at path, or stdin when path is empty and stdin
// is not a terminal.
func readScript(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		return data, nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(f.Fd()) {
		return nil, errors.New("no script given: pass a file or pipe one on stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read script from stdin: %w", err)
	}
	return data, nil
}
