package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justin-mueller/Einkaufsliste/internal/config"
	"github.com/justin-mueller/Einkaufsliste/internal/history"
	"github.com/justin-mueller/Einkaufsliste/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently completed shopping lists",
	Long: `Shows lists archived locally when a shopping run was completed or the
list was cleared with --archive. The archive never leaves this machine.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "number of lists to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	// History is local only; no server connection is needed.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	printer := ui.New()
	ctx := cmd.Context()

	archive, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer archive.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := archive.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printer.Info("Noch keine archivierten Einkäufe.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s — %d Einträge\n",
			e.CompletedAt.Local().Format("02.01.2006 15:04"), len(e.Items))
		for _, it := range e.Items {
			fmt.Fprintf(cmd.OutOrStdout(), "  · %s\n", it.Name)
		}
	}
	return nil
}
