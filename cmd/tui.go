package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justin-mueller/Einkaufsliste/internal/config"
	"github.com/justin-mueller/Einkaufsliste/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interaktiven Einkaufsmodus starten",
	Long:  "Öffnet die heutige Liste und den Artikelkatalog als interaktiven Vollbildmodus.",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return tui.Run(cfg)
}
