// Package recipe manages the Recipes collection and the expansion of a
// recipe into daily-list items. A recipe references catalog articles by id,
// in a fixed order, with no duplicates.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/category"
	"github.com/justin-mueller/Einkaufsliste/internal/daily"
	"github.com/justin-mueller/Einkaufsliste/internal/sync"
)

// ErrAlreadyStaged indicates an article staged twice on the same draft. It
// is a warning: the draft is left unchanged and the operation is aborted.
var ErrAlreadyStaged = errors.New("Artikel ist bereits zum Rezept hinzugefügt")

// Recipe is one entry of the Recipes collection. Items holds catalog Article
// ids (not daily-list Item ids) in insertion order.
type Recipe struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Draft collects articles for a recipe before it is saved. The staged
// sequence preserves insertion order and becomes Recipe.Items verbatim.
type Draft struct {
	staged []catalog.Article
}

// Stage appends an article to the draft. Staging an article that is already
// present fails with ErrAlreadyStaged and leaves the draft unchanged.
func (d *Draft) Stage(a catalog.Article) error {
	for _, s := range d.staged {
		if s.ID == a.ID {
			return fmt.Errorf("%w: %s", ErrAlreadyStaged, a.Name)
		}
	}
	d.staged = append(d.staged, a)
	return nil
}

// Unstage removes the article with the given id from the draft.
func (d *Draft) Unstage(id string) {
	kept := d.staged[:0]
	for _, s := range d.staged {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	d.staged = kept
}

// Articles returns a copy of the staged sequence in insertion order.
func (d *Draft) Articles() []catalog.Article {
	out := make([]catalog.Article, len(d.staged))
	copy(out, d.staged)
	return out
}

// Len returns the number of staged articles.
func (d *Draft) Len() int {
	return len(d.staged)
}

// New validates the draft and returns a new collection with the recipe
// appended. The id is generated the same way as article ids.
func New(recipes []Recipe, name string, draft *Draft) ([]Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &catalog.ValidationError{Field: "name", Msg: "Rezeptname darf nicht leer sein"}
	}
	if draft.Len() == 0 {
		return nil, &catalog.ValidationError{Field: "items", Msg: "mindestens ein Artikel muss hinzugefügt werden"}
	}

	ids := make([]string, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	items := make([]string, 0, draft.Len())
	for _, a := range draft.Articles() {
		items = append(items, a.ID)
	}

	next := make([]Recipe, len(recipes), len(recipes)+1)
	copy(next, recipes)
	return append(next, Recipe{ID: catalog.NextID(ids), Name: name, Items: items}), nil
}

// Remove returns a new collection without the recipe of the given id.
func Remove(recipes []Recipe, id string) []Recipe {
	next := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.ID != id {
			next = append(next, r)
		}
	}
	return next
}

// ItemStore is the slice of the collection store client that expansion
// needs: a fresh read of the Items collection and a whole-collection write.
type ItemStore interface {
	FetchItems(ctx context.Context) ([]daily.Item, error)
	ReplaceItems(ctx context.Context, items []daily.Item) error
}

// Expand adds a recipe's articles to the daily list. The Items collection is
// fetched fresh from the store rather than trusting a possibly-stale
// in-memory copy; articles already on the list (by non-ad-hoc id) are
// skipped, as are dangling article references. Returns the number of items
// added; zero with a nil error means there was nothing to add and no write
// was issued.
//
// The fetch-then-append window is not atomic with respect to other writers;
// concurrent expansions or edits may interleave. A failed write here mutated
// no local state, so there is nothing to revert.
func Expand(ctx context.Context, store ItemStore, r Recipe, articles map[string]catalog.Article) (int, error) {
	current, err := store.FetchItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("recipe: fetch daily list: %w", err)
	}

	onList := make(map[string]bool, len(current))
	for _, it := range current {
		if it.Category != category.AdHocID {
			onList[it.ID] = true
		}
	}

	var additions []daily.Item
	for _, id := range r.Items {
		if onList[id] {
			continue
		}
		a, ok := articles[id]
		if !ok {
			// Dangling reference: the article was removed from the catalog.
			continue
		}
		additions = append(additions, daily.FromArticle(a))
		onList[id] = true
	}

	if len(additions) == 0 {
		return 0, nil
	}

	if err := store.ReplaceItems(ctx, append(current, additions...)); err != nil {
		// No local state was mutated, so there is nothing to revert; the
		// remote write may or may not have landed.
		return 0, fmt.Errorf("recipe: persist expanded list: %w", &sync.StateUnknownError{Err: err})
	}
	return len(additions), nil
}
