package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yumosx/anchor/internal/config"
)

func init() {
	configSetCmd.Flags().BoolP("global", "g", false, "Write to the global config instead of the project's")
	configCmd.AddCommand(configSetCmd, configShowCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration field",
	Example: `
# Use four blank rows between messages
anchor config set options.tui.gap 4

# Serve metrics for every project
anchor config set --global options.metrics_addr localhost:6060
  `,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")

		path := config.GlobalConfigData()
		if !global {
			cwd, err := ResolveCwd(cmd)
			if err != nil {
				return err
			}
			path = config.ProjectConfig(cwd)
		}
		if err := config.SetField(path, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		bts, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bts))
		return nil
	},
}
