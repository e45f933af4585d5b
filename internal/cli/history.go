package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/opencode-ai/thememode/internal/db"
	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled mode and theme notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if _, err := os.Stat(cfg.Journal.Path); errors.Is(err, os.ErrNotExist) {
			return &PreflightError{
				Message:  fmt.Sprintf("no journal at %s", cfg.Journal.Path),
				Hint:     "Enable the journal with --journal or journal.enabled in the config",
				NextStep: "thememode serve --journal",
			}
		}

		database, err := openJournal(cmd.Context(), cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer database.Close()

		entries, err := db.NewEventRepository(database).List(cmd.Context(), db.EventQuery{Limit: historyLimit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() {
			return WriteOutput(out, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No journal entries.")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
				string(entry.Type),
				entry.Value,
				entry.Source,
			})
		}
		return writeTable(out, []string{"TIME", "TYPE", "VALUE", "SOURCE"}, rows)
	},
}
