package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/yumosx/anchor/internal/config"
	"github.com/yumosx/anchor/internal/tui"
	"github.com/yumosx/anchor/internal/version"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("paused", "p", false, "Start with the simulated conversation paused")
	rootCmd.Flags().Uint64("seed", 0, "Seed for the simulated conversation (0 picks one)")

	rootCmd.AddCommand(replayCmd, configCmd, schemaCmd)
}

var rootCmd = &cobra.Command{
	Use:   "anchor",
	Short: "Bottom-anchored chat transcript layout",
	Long: heredoc.Doc(`
		Anchor lays out a chat transcript bottom-up: the newest message sits at the
		bottom, messages change height as they are rendered, and the view stays put
		while history loads above it.

		Run without arguments to watch a simulated conversation, or replay a scripted
		session against the layout engine.
	`),
	Example: heredoc.Doc(`
		# Watch a simulated conversation
		anchor

		# Start paused and step with n
		anchor --paused

		# Replay a script and print the geometry
		anchor replay testdata/insert_at_bottom.yaml

		# Re-run a script whenever it changes
		anchor replay --watch session.yaml
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		interval, err := cfg.Options.TUI.Interval()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if cfg.Options.MetricsAddr != "" {
			go func() {
				if err := ServeDiagnostics(ctx, cfg.Options.MetricsAddr); err != nil {
					slog.Error("Diagnostics server stopped", "addr", cfg.Options.MetricsAddr, "error", err)
				}
			}()
		}

		paused, _ := cmd.Flags().GetBool("paused")
		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		slog.Info("Starting transcript", "seed", seed, "paused", paused)

		program := tea.NewProgram(
			tui.New(ctx, tui.Options{
				EstimatedRows: cfg.Options.TUI.EstimatedRows,
				Gap:           cfg.Options.TUI.Gap,
				FeedInterval:  interval,
				Seed:          seed,
				Paused:        paused,
			}),
			tea.WithContext(ctx),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func Execute(ctx context.Context) {
	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// setupConfig resolves the working directory and loads the configuration,
// which also sets up logging.
func setupConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")

	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}
	return config.Load(cwd, debug)
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
