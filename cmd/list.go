package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/daily"
	"github.com/justin-mueller/Einkaufsliste/internal/history"
	"github.com/justin-mueller/Einkaufsliste/internal/sync"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage today's shopping list",
}

func init() {
	showList := &cobra.Command{
		Use:   "show",
		Short: "Show today's shopping list",
		Args:  cobra.NoArgs,
		RunE:  runListShow,
	}

	addItem := &cobra.Command{
		Use:   "add <article-id>",
		Short: "Put a catalog article on today's list",
		Args:  cobra.ExactArgs(1),
		RunE:  runListAdd,
	}

	adhocItem := &cobra.Command{
		Use:   "adhoc <name>",
		Short: "Put a one-off item on today's list",
		Long: `Adds an item that is not backed by a catalog article. Ad-hoc items
are marked with a star and belong to the reserved Ad-Hoc category.`,
		Args: cobra.ExactArgs(1),
		RunE: runListAdhoc,
	}

	removeItem := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item from today's list",
		Args:  cobra.ExactArgs(1),
		RunE:  runListRemove,
	}

	checkItem := &cobra.Command{
		Use:   "check <id>",
		Short: "Toggle an item's checked state",
		Args:  cobra.ExactArgs(1),
		RunE:  runListCheck,
	}

	clearList := &cobra.Command{
		Use:   "clear",
		Short: "Empty today's shopping list",
		Args:  cobra.NoArgs,
		RunE:  runListClear,
	}
	clearList.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	clearList.Flags().Bool("archive", false, "archive the cleared list locally before emptying it")

	listCmd.AddCommand(showList, addItem, adhocItem, removeItem, checkItem, clearList)
	rootCmd.AddCommand(listCmd)
}

func runListShow(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	items, err := s.client.FetchItems(ctx)
	if err != nil {
		return err
	}
	categories, err := s.client.FetchCategories(ctx)
	if err != nil {
		return err
	}

	s.printer.Items(items, categories)
	return nil
}

func runListAdd(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	articles, err := s.client.FetchArticles(ctx)
	if err != nil {
		return err
	}
	var article *catalog.Article
	for i := range articles {
		if articles[i].ID == args[0] {
			article = &articles[i]
			break
		}
	}
	if article == nil {
		return fmt.Errorf("no catalog article with id %s", args[0])
	}

	items, err := s.client.FetchItems(ctx)
	if err != nil {
		return err
	}
	if daily.Contains(items, article.ID) {
		s.printer.Info(fmt.Sprintf("%q steht bereits auf der heutigen Liste.", article.Name))
		return nil
	}

	engine := sync.New("items", items, s.client.ReplaceItems, s.events)
	if _, err := engine.Apply(ctx, func(current []daily.Item) []daily.Item {
		return daily.AddCatalogItem(current, *article)
	}); err != nil {
		return s.reportMutationErr("Artikel hinzufügen", err)
	}

	s.printer.Success(fmt.Sprintf("%q zur heutigen Einkaufsliste hinzugefügt", article.Name))
	return nil
}

func runListAdhoc(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	item, err := daily.NewAdHocItem(args[0], time.Now())
	if err != nil {
		s.printer.Error(err.Error())
		return err
	}

	items, err := s.client.FetchItems(ctx)
	if err != nil {
		return err
	}

	engine := sync.New("items", items, s.client.ReplaceItems, s.events)
	if _, err := engine.Apply(ctx, func(current []daily.Item) []daily.Item {
		return daily.Add(current, item)
	}); err != nil {
		return s.reportMutationErr("Artikel hinzufügen", err)
	}

	s.printer.Success(fmt.Sprintf("★ %q zur heutigen Einkaufsliste hinzugefügt", item.Name))
	return nil
}

func runListRemove(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	items, err := s.client.FetchItems(ctx)
	if err != nil {
		return err
	}

	engine := sync.New("items", items, s.client.ReplaceItems, s.events)
	if _, err := engine.Apply(ctx, func(current []daily.Item) []daily.Item {
		return daily.Remove(current, args[0])
	}); err != nil {
		return s.reportMutationErr("Artikel entfernen", err)
	}

	s.printer.Success("Eintrag " + args[0] + " entfernt")
	return nil
}

func runListCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	items, err := s.client.FetchItems(ctx)
	if err != nil {
		return err
	}
	if !daily.Contains(items, args[0]) {
		return fmt.Errorf("no item with id %s on today's list", args[0])
	}

	// The completion signal is evaluated against the pre-toggle state.
	completes := daily.WillCompleteList(items, args[0])

	engine := sync.New("items", items, s.client.ReplaceItems, s.events)
	toggled, err := engine.Apply(ctx, func(current []daily.Item) []daily.Item {
		return daily.Toggle(current, args[0])
	})
	if err != nil {
		return s.reportMutationErr("Abhaken", err)
	}

	s.printer.Success("Eintrag " + args[0] + " umgeschaltet")
	if completes {
		s.printer.Completed()
		archiveCompleted(cmd, s, toggled)
	}
	return nil
}

// archiveCompleted records a finished list in the local purchase archive.
// Archival is best effort; a failure never affects the remote mutation.
func archiveCompleted(cmd *cobra.Command, s *session, items []daily.Item) {
	ctx := cmd.Context()
	archive, err := history.Open(ctx, s.cfg.HistoryDB)
	if err != nil {
		s.printer.Warn("Einkaufshistorie nicht verfügbar: " + err.Error())
		return
	}
	defer archive.Close()
	if err := archive.Record(ctx, items, time.Now()); err != nil {
		s.printer.Warn("Einkauf konnte nicht archiviert werden: " + err.Error())
	}
}

func runListClear(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	items, err := s.client.FetchItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		s.printer.Info("Die Einkaufsliste ist bereits leer.")
		return nil
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprintf(cmd.OutOrStdout(), "Alle %d Einträge löschen? [j/N] ", len(items))
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "j" && answer != "J" && answer != "y" && answer != "Y" {
			s.printer.Info("Abgebrochen.")
			return nil
		}
	}

	if doArchive, _ := cmd.Flags().GetBool("archive"); doArchive {
		archiveCompleted(cmd, s, items)
	}

	// The engine keeps the pre-clear snapshot, so even this path reverts
	// cleanly when the persist fails.
	engine := sync.New("items", items, s.client.ReplaceItems, s.events)
	if _, err := engine.Apply(ctx, func([]daily.Item) []daily.Item {
		return daily.Clear()
	}); err != nil {
		return s.reportMutationErr("Liste leeren", err)
	}

	s.printer.Success(fmt.Sprintf("Einkaufsliste geleert (%d Einträge entfernt)", len(items)))
	return nil
}
