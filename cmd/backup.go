package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justin-mueller/Einkaufsliste/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import offline snapshots of all collections",
}

func init() {
	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write all collections to a TOML snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runBackupExport,
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace articles, items, and recipes from a snapshot",
		Long: `Replaces the three mutable collections with the snapshot's contents,
one whole-collection write each. Categories are immutable and only carried
in the snapshot for reference. The writes are not atomic across
collections; on failure, re-run the import.`,
		Args: cobra.ExactArgs(1),
		RunE: runBackupImport,
	}
	importCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	backupCmd.AddCommand(exportCmd, importCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	doc, err := backup.Export(cmd.Context(), s.client, args[0])
	if err != nil {
		return err
	}

	s.printer.Success(fmt.Sprintf("Snapshot geschrieben: %s (%d Artikel, %d Einträge, %d Rezepte)",
		args[0], len(doc.Articles), len(doc.Items), len(doc.Recipes)))
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	doc, err := backup.Read(args[0])
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprintf(cmd.OutOrStdout(),
			"Artikel, Einkaufsliste und Rezepte auf dem Server ersetzen (Stand %s)? [j/N] ",
			doc.ExportedAt.Local().Format("02.01.2006 15:04"))
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "j" && answer != "J" && answer != "y" && answer != "Y" {
			s.printer.Info("Abgebrochen.")
			return nil
		}
	}

	if err := backup.Import(cmd.Context(), s.client, doc); err != nil {
		s.printer.Error(err.Error())
		s.printer.Warn("Der Import ist unvollständig — bitte erneut ausführen.")
		return err
	}

	s.printer.Success("Snapshot eingespielt.")
	return nil
}
