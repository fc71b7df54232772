package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/sync"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Manage the article catalog",
}

func init() {
	listArticles := &cobra.Command{
		Use:   "list",
		Short: "List all catalog articles",
		Args:  cobra.NoArgs,
		RunE:  runArticlesList,
	}

	addArticle := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an article to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runArticlesAdd,
	}
	addArticle.Flags().StringP("category", "c", "", "category id for the article (required)")

	removeArticle := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an article from the catalog",
		Long: `Removes an article by id. Daily-list items and recipes keep their
references; a removed article renders as unknown there and is skipped during
recipe expansion.`,
		Args: cobra.ExactArgs(1),
		RunE: runArticlesRemove,
	}

	articlesCmd.AddCommand(listArticles, addArticle, removeArticle)
	rootCmd.AddCommand(articlesCmd)
}

func runArticlesList(cmd *cobra.Command, _ []string) error {
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
	categories, err := s.client.FetchCategories(ctx)
	if err != nil {
		return err
	}

	s.printer.Articles(articles, categories)
	return nil
}

func runArticlesAdd(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	categoryID, _ := cmd.Flags().GetString("category")

	articles, err := s.client.FetchArticles(ctx)
	if err != nil {
		return err
	}

	next, err := catalog.Add(articles, args[0], categoryID)
	if err != nil {
		s.printer.Error(err.Error())
		return err
	}

	engine := sync.New("articles", articles, s.client.ReplaceArticles, s.events)
	if _, err := engine.Apply(ctx, func([]catalog.Article) []catalog.Article { return next }); err != nil {
		return s.reportMutationErr("Artikel hinzufügen", err)
	}

	added := next[len(next)-1]
	s.printer.Success(fmt.Sprintf("Artikel %q hinzugefügt (#%s)", added.Name, added.ID))
	return nil
}

func runArticlesRemove(cmd *cobra.Command, args []string) error {
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

	engine := sync.New("articles", articles, s.client.ReplaceArticles, s.events)
	if _, err := engine.Apply(ctx, func(current []catalog.Article) []catalog.Article {
		return catalog.Remove(current, args[0])
	}); err != nil {
		return s.reportMutationErr("Artikel entfernen", err)
	}

	s.printer.Success("Artikel #" + args[0] + " entfernt")
	return nil
}
