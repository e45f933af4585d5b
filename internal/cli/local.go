package cli

import (
	"fmt"

	"github.com/opencode-ai/thememode/internal/binding"
	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}

type detectOutput struct {
	Source      string `json:"source"`
	PrefersDark bool   `json:"prefers_dark"`
	Theme       string `json:"theme"`
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the platform's dark-mode preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opened, err := openSignal(GetConfig())
		if err != nil {
			return err
		}
		defer opened.Close()

		dark := opened.PrefersDark()
		result := detectOutput{
			Source:      opened.Source,
			PrefersDark: dark,
			Theme:       string(mode.ThemeFor(dark)),
		}
		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), result)
		}
		return writeTable(cmd.OutOrStdout(), nil, [][]string{
			{"source:", result.Source},
			{"prefers dark:", formatYesNo(result.PrefersDark)},
			{"theme:", result.Theme},
		})
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [mode]",
	Short: "Resolve a mode against the platform preference",
	Long:  "Sanitize a mode string and print the theme it resolves to right now. Defaults to the configured initial mode.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		requested := cfg.Mode.Initial
		if len(args) == 1 {
			requested = args[0]
		}

		opened, err := openSignal(cfg)
		if err != nil {
			return err
		}
		defer opened.Close()

		return writeState(cmd.OutOrStdout(), binding.State{
			Mode:  mode.Sanitize(requested),
			Theme: mode.Resolve(requested, opened),
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "thememode %s\n", Version)
		return err
	},
}
