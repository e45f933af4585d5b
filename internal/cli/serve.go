package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/opencode-ai/thememode/internal/logging"
	"github.com/opencode-ai/thememode/internal/modesvc"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mode service",
	Long:  "Hold a mode manager and expose it over gRPC until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := startRuntime(ctx, cfg, "serve")
		if err != nil {
			return err
		}
		defer rt.Close()

		daemon, err := modesvc.NewDaemon(rt.manager, logging.Component("modesvc"), modesvc.Options{
			Addr:    cfg.Server.Addr,
			Version: Version,
		})
		if err != nil {
			return err
		}
		return daemon.Run(ctx)
	},
}
