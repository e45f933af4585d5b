package cli

import (
	"github.com/opencode-ai/thememode/internal/binding"
	"github.com/opencode-ai/thememode/internal/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the mode switcher TUI",
	Long:  "Launch an interactive terminal view for switching between light, dark and system modes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use CLI subcommands",
			NextStep: "thememode --help",
		}
	}

	rt, err := startRuntime(cmd.Context(), GetConfig(), "ui")
	if err != nil {
		return err
	}
	defer rt.Close()

	return tui.Run(tui.Config{
		Provider: binding.NewProvider(rt.manager),
		Source:   rt.signal.Source,
	})
}
