// Package cli implements the thememode command line.
package cli

import (
	"context"
	"fmt"

	"github.com/opencode-ai/thememode/internal/config"
	"github.com/opencode-ai/thememode/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile        string
	jsonOutput     bool
	nonInteractive bool

	appConfig *config.Config
)

// flagBindings maps persistent flags onto config keys.
var flagBindings = map[string]string{
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"addr":       "server.addr",
	"signal":     "mode.signal",
	"initial":    "mode.initial",
	"journal":    "journal.enabled",
}

var rootCmd = &cobra.Command{
	Use:           "thememode",
	Short:         "Track a light/dark appearance mode",
	Long:          "thememode tracks a light, dark or system appearance mode, resolves it against the platform's dark-mode preference and reports changes.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/thememode/config.yaml)")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	flags.String("addr", "", "mode service address")
	flags.String("signal", "", "platform preference source (auto, portal, registry, defaults, terminal, static)")
	flags.String("initial", "", "initial mode (light, dark, system)")
	flags.Bool("journal", false, "record notifications to the journal")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt or start interactive views")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// GetConfig returns the configuration loaded for the running command.
func GetConfig() *config.Config {
	return appConfig
}

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	for flag, key := range flagBindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	logging.Init(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	appConfig = cfg
	return nil
}
