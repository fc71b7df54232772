package cmd

import (
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the category directory",
	Long: `Shows all categories with their color badges. The directory is loaded
from the server; the synthetic Ad-Hoc category (id 0) is injected locally
and never stored.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	categories, err := s.client.FetchCategories(cmd.Context())
	if err != nil {
		return err
	}

	s.printer.Categories(categories)
	return nil
}
