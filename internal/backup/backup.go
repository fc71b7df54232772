// Package backup exports the four remote collections into a single TOML
// document and restores the mutable three from it. The store itself keeps no
// history, so a periodic export is the only way to get one.
package backup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/category"
	"github.com/justin-mueller/Einkaufsliste/internal/daily"
	"github.com/justin-mueller/Einkaufsliste/internal/recipe"
)

// Fetcher reads all four collections. *store.Client satisfies this.
type Fetcher interface {
	FetchCategories(ctx context.Context) ([]category.Category, error)
	FetchArticles(ctx context.Context) ([]catalog.Article, error)
	FetchItems(ctx context.Context) ([]daily.Item, error)
	FetchRecipes(ctx context.Context) ([]recipe.Recipe, error)
}

// Replacer writes the three mutable collections. *store.Client satisfies
// this; categories are immutable and only exported for reference.
type Replacer interface {
	ReplaceArticles(ctx context.Context, all []catalog.Article) error
	ReplaceItems(ctx context.Context, all []daily.Item) error
	ReplaceRecipes(ctx context.Context, all []recipe.Recipe) error
}

// Document is the on-disk backup format.
type Document struct {
	ExportedAt time.Time           `toml:"exported_at"`
	Categories []category.Category `toml:"categories"`
	Articles   []catalog.Article   `toml:"articles"`
	Items      []daily.Item        `toml:"items"`
	Recipes    []recipe.Recipe     `toml:"recipes"`
}

// Export fetches every collection and writes the document to path.
func Export(ctx context.Context, src Fetcher, path string) (*Document, error) {
	doc := &Document{ExportedAt: time.Now().UTC()}

	var err error
	if doc.Categories, err = src.FetchCategories(ctx); err != nil {
		return nil, fmt.Errorf("backup: export categories: %w", err)
	}
	if doc.Articles, err = src.FetchArticles(ctx); err != nil {
		return nil, fmt.Errorf("backup: export articles: %w", err)
	}
	if doc.Items, err = src.FetchItems(ctx); err != nil {
		return nil, fmt.Errorf("backup: export items: %w", err)
	}
	if doc.Recipes, err = src.FetchRecipes(ctx); err != nil {
		return nil, fmt.Errorf("backup: export recipes: %w", err)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("backup: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("backup: write %s: %w", path, err)
	}
	return doc, nil
}

// Read parses a backup document from path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("backup: read %s: %w", path, err)
	}
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("backup: parse %s: %w", path, err)
	}
	return &doc, nil
}

// Import replaces the mutable collections with the document's contents,
// one whole-collection write each. Writes are sequential; a failure leaves
// earlier collections already replaced, which the caller must report.
func Import(ctx context.Context, dst Replacer, doc *Document) error {
	if err := dst.ReplaceArticles(ctx, doc.Articles); err != nil {
		return fmt.Errorf("backup: import articles: %w", err)
	}
	if err := dst.ReplaceItems(ctx, doc.Items); err != nil {
		return fmt.Errorf("backup: import items: %w", err)
	}
	if err := dst.ReplaceRecipes(ctx, doc.Recipes); err != nil {
		return fmt.Errorf("backup: import recipes: %w", err)
	}
	return nil
}
