package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opencode-ai/thememode/internal/binding"
	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/spf13/cobra"
)

const rpcTimeout = 5 * time.Second

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(watchCmd)
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the service's mode and theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dialService(GetConfig())
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
		defer cancel()

		state, err := client.Get(ctx)
		if err != nil {
			return fmt.Errorf("get mode: %w", err)
		}
		return writeState(cmd.OutOrStdout(), state)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <light|dark|system>",
	Short: "Change the service's mode",
	Long:  "Change the service's mode. Anything other than light or dark selects system.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requested := args[0]
		if sanitized := mode.Sanitize(requested); string(sanitized) != requested {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: %q is not light, dark or system; using %s\n", requested, sanitized)
		}

		client, err := dialService(GetConfig())
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
		defer cancel()

		state, err := client.Set(ctx, requested)
		if err != nil {
			return fmt.Errorf("set mode: %w", err)
		}
		return writeState(cmd.OutOrStdout(), state)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream mode and theme changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dialService(GetConfig())
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		var writeErr error
		err = client.Watch(ctx, func(state binding.State) {
			if writeErr != nil {
				return
			}
			if IsJSONOutput() {
				writeErr = WriteOutput(out, stateOutput{Mode: string(state.Mode), Theme: string(state.Theme)})
				return
			}
			_, writeErr = fmt.Fprintf(out, "%s mode=%s theme=%s\n", time.Now().Format("15:04:05"), state.Mode, state.Theme)
		})
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		return writeErr
	},
}
