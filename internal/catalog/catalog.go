// Package catalog manages the Articles collection: the reusable catalog of
// groceries that the daily list and recipes draw from.
package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// Article is one entry of the Articles collection. Category references a
// Category id by value; the store enforces no referential integrity.
type Article struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ValidationError reports input rejected before any mutation. No network
// call is issued for a failed validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

// NextID returns the next free id for a collection: the maximum numeric id
// plus one, stringified. Non-numeric ids are ignored; an empty collection
// yields "1". Not safe under concurrent writers — two sessions can allocate
// the same id, a known gap of the store contract.
func NextID(ids []string) string {
	max := 0
	for _, id := range ids {
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// IDs returns the ids of all articles, in collection order.
func IDs(articles []Article) []string {
	ids := make([]string, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	return ids
}

// Add validates the input and returns a new collection with the article
// appended. The original slice is not modified.
func Add(articles []Article, name, categoryID string) ([]Article, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Msg: "Artikelname darf nicht leer sein"}
	}
	if categoryID == "" {
		return nil, &ValidationError{Field: "category", Msg: "Kategorie muss ausgewählt werden"}
	}
	next := make([]Article, len(articles), len(articles)+1)
	copy(next, articles)
	return append(next, Article{
		ID:       NextID(IDs(articles)),
		Name:     name,
		Category: categoryID,
	}), nil
}

// Remove returns a new collection without the article of the given id.
// Removing an absent id is a no-op; there is no cascading deletion of items
// or recipes that reference the article.
func Remove(articles []Article, id string) []Article {
	next := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.ID != id {
			next = append(next, a)
		}
	}
	return next
}

// ByID builds a lookup map over the collection.
func ByID(articles []Article) map[string]Article {
	m := make(map[string]Article, len(articles))
	for _, a := range articles {
		m[a.ID] = a
	}
	return m
}

// Sort orders articles for display: ascending numeric category, ties broken
// by case-sensitive lexicographic name. A non-numeric or absent category
// sorts as zero. Returns a sorted copy.
func Sort(articles []Article) []Article {
	sorted := make([]Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := categoryRank(sorted[i].Category), categoryRank(sorted[j].Category)
		if ci != cj {
			return ci < cj
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func categoryRank(category string) int {
	n, err := strconv.Atoi(category)
	if err != nil {
		return 0
	}
	return n
}
