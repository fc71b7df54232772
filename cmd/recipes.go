package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/recipe"
	"github.com/justin-mueller/Einkaufsliste/internal/sync"
	"github.com/justin-mueller/Einkaufsliste/internal/telemetry"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Manage recipes and expand them onto today's list",
}

func init() {
	listRecipes := &cobra.Command{
		Use:   "list",
		Short: "List all recipes with their ingredients",
		Args:  cobra.NoArgs,
		RunE:  runRecipesList,
	}

	addRecipe := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a recipe from catalog articles",
		Long: `Creates a recipe. Stage ingredients with repeated --article flags; the
order of the flags becomes the ingredient order of the recipe. Staging the
same article twice is rejected with a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: runRecipesAdd,
	}
	addRecipe.Flags().StringArrayP("article", "a", nil, "article id to stage (repeatable)")

	removeRecipe := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a recipe",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecipesRemove,
	}

	expandRecipe := &cobra.Command{
		Use:   "expand <id>",
		Short: "Add a recipe's articles to today's shopping list",
		Long: `Fetches the current list fresh from the server, skips articles that are
already on it, and appends the rest in recipe order. Articles that have been
removed from the catalog are skipped silently.`,
		Args: cobra.ExactArgs(1),
		RunE: runRecipesExpand,
	}

	recipesCmd.AddCommand(listRecipes, addRecipe, removeRecipe, expandRecipe)
	rootCmd.AddCommand(recipesCmd)
}

func runRecipesList(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	recipes, err := s.client.FetchRecipes(ctx)
	if err != nil {
		return err
	}
	articles, err := s.client.FetchArticles(ctx)
	if err != nil {
		return err
	}
	categories, err := s.client.FetchCategories(ctx)
	if err != nil {
		return err
	}

	s.printer.Recipes(recipes, catalog.ByID(articles), categories)
	return nil
}

func runRecipesAdd(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	articleIDs, _ := cmd.Flags().GetStringArray("article")

	articles, err := s.client.FetchArticles(ctx)
	if err != nil {
		return err
	}
	byID := catalog.ByID(articles)

	var draft recipe.Draft
	for _, id := range articleIDs {
		a, ok := byID[id]
		if !ok {
			return fmt.Errorf("no catalog article with id %s", id)
		}
		if err := draft.Stage(a); err != nil {
			if errors.Is(err, recipe.ErrAlreadyStaged) {
				s.printer.Warn(err.Error())
				continue
			}
			return err
		}
	}

	recipes, err := s.client.FetchRecipes(ctx)
	if err != nil {
		return err
	}

	next, err := recipe.New(recipes, args[0], &draft)
	if err != nil {
		s.printer.Error(err.Error())
		return err
	}

	engine := sync.New("recipes", recipes, s.client.ReplaceRecipes, s.events)
	if _, err := engine.Apply(ctx, func([]recipe.Recipe) []recipe.Recipe { return next }); err != nil {
		return s.reportMutationErr("Rezept erstellen", err)
	}

	added := next[len(next)-1]
	s.printer.Success(fmt.Sprintf("Rezept %q erstellt (#%s, %d Zutaten)", added.Name, added.ID, len(added.Items)))
	return nil
}

func runRecipesRemove(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	recipes, err := s.client.FetchRecipes(ctx)
	if err != nil {
		return err
	}

	engine := sync.New("recipes", recipes, s.client.ReplaceRecipes, s.events)
	if _, err := engine.Apply(ctx, func(current []recipe.Recipe) []recipe.Recipe {
		return recipe.Remove(current, args[0])
	}); err != nil {
		return s.reportMutationErr("Rezept entfernen", err)
	}

	s.printer.Success("Rezept #" + args[0] + " entfernt")
	return nil
}

func runRecipesExpand(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	recipes, err := s.client.FetchRecipes(ctx)
	if err != nil {
		return err
	}
	var target *recipe.Recipe
	for i := range recipes {
		if recipes[i].ID == args[0] {
			target = &recipes[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no recipe with id %s", args[0])
	}

	articles, err := s.client.FetchArticles(ctx)
	if err != nil {
		return err
	}

	added, err := recipe.Expand(ctx, s.client, *target, catalog.ByID(articles))
	if err != nil {
		return s.reportMutationErr("Rezept hinzufügen", err)
	}

	_ = s.events.Emit(telemetry.Event{
		Kind:       telemetry.KindExpansion,
		Collection: "items",
		Count:      added,
		Data:       map[string]string{"recipe": target.ID},
	})

	s.printer.ExpansionResult(target.Name, added)
	return nil
}
