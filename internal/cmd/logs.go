package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/log/v2"
	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
)

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Keep printing new log entries")
	logsCmd.Flags().IntP("tail", "t", 100, "Number of entries to show first")
	rootCmd.AddCommand(logsCmd)
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the anchor logs",
	Example: heredoc.Doc(`
		# Last hundred entries
		anchor logs

		# Follow the log while the transcript runs elsewhere
		anchor logs --follow
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		tailN, _ := cmd.Flags().GetInt("tail")

		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.LogFile()

		printer := newLogPrinter(cmd.OutOrStdout())
		if err := printLastLines(path, tailN, printer); err != nil {
			return err
		}
		if !follow {
			return nil
		}

		t, err := tail.TailFile(path, tail.Config{
			Follow:   true,
			ReOpen:   true,
			Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
			Logger:   tail.DiscardingLogger,
		})
		if err != nil {
			return fmt.Errorf("failed to follow %s: %w", path, err)
		}
		defer t.Cleanup()
		defer t.Stop() //nolint:errcheck

		ctx := cmd.Context()
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-t.Lines:
				if !ok {
					return t.Err()
				}
				if line.Err != nil {
					return line.Err
				}
				printer(line.Text)
			}
		}
	},
}

func printLastLines(path string, n int, printer func(string)) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = slices.Delete(lines, 0, 1)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}
	for _, line := range lines {
		printer(line)
	}
	return nil
}

// newLogPrinter renders JSON log records as styled lines. Lines that are not
// JSON records are printed as they are.
func newLogPrinter(w io.Writer) func(string) {
	logger := log.NewWithOptions(w, log.Options{
		Level: log.DebugLevel,
	})
	return func(line string) {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			fmt.Fprintln(w, line)
			return
		}
		msg, _ := rec["msg"].(string)
		level, err := log.ParseLevel(strings.ToLower(fmt.Sprint(rec["level"])))
		if err != nil {
			level = log.InfoLevel
		}

		keys := make([]string, 0, len(rec))
		for k := range rec {
			switch k {
			case "msg", "level", "time", "source":
				continue
			}
			keys = append(keys, k)
		}
		slices.Sort(keys)
		keyvals := make([]any, 0, len(keys)*2+2)
		if ts, ok := rec["time"].(string); ok {
			keyvals = append(keyvals, "time", ts)
		}
		for _, k := range keys {
			keyvals = append(keyvals, k, rec[k])
		}
		logger.Log(level, msg, keyvals...)
	}
}
