// Package daily manages the Items collection, the shopping list for today.
// Items are either derived from catalog articles (sharing the article's id)
// or ad-hoc entries with a synthesized id and the reserved Ad-Hoc category.
package daily

import (
	"strconv"
	"strings"
	"time"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/category"
)

// AdHocPrefix starts the id of every ad-hoc item.
const AdHocPrefix = "custom_"

// Item is one entry of the Items collection. The id either equals a catalog
// Article id or carries the AdHocPrefix followed by a millisecond timestamp.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Checked  bool   `json:"checked"`
	Category string `json:"category"`
}

// IsAdHoc reports whether the item is an ad-hoc entry without catalog identity.
func (it Item) IsAdHoc() bool {
	return it.Category == category.AdHocID
}

// FromArticle materializes an unchecked daily-list item from a catalog article.
func FromArticle(a catalog.Article) Item {
	return Item{ID: a.ID, Name: a.Name, Checked: false, Category: a.Category}
}

// Contains reports whether an item with the given id is already on the list.
func Contains(items []Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// AddCatalogItem returns a new collection with the article's item appended.
// Adding an article whose id is already present is a no-op: a catalog
// article appears at most once on the daily list.
func AddCatalogItem(items []Item, a catalog.Article) []Item {
	if Contains(items, a.ID) {
		return items
	}
	next := make([]Item, len(items), len(items)+1)
	copy(next, items)
	return append(next, FromArticle(a))
}

// NewAdHocItem builds an ad-hoc item from a free-form name. The id is
// synthesized from the clock at millisecond resolution; collisions are
// practically impossible and not defended against.
func NewAdHocItem(name string, now time.Time) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, &catalog.ValidationError{Field: "name", Msg: "Artikelname darf nicht leer sein"}
	}
	return Item{
		ID:       AdHocPrefix + strconv.FormatInt(now.UnixMilli(), 10),
		Name:     name,
		Checked:  false,
		Category: category.AdHocID,
	}, nil
}

// Add appends a prebuilt item to a copy of the collection.
func Add(items []Item, it Item) []Item {
	next := make([]Item, len(items), len(items)+1)
	copy(next, items)
	return append(next, it)
}

// Remove returns a new collection without the item of the given id.
func Remove(items []Item, id string) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return next
}

// Toggle returns a new collection with the matching item's checked flag
// flipped. Unknown ids leave the collection unchanged.
func Toggle(items []Item, id string) []Item {
	next := make([]Item, len(items))
	copy(next, items)
	for i, it := range next {
		if it.ID == id {
			next[i].Checked = !it.Checked
		}
	}
	return next
}

// WillCompleteList reports whether toggling the given item finishes the
// list: the item itself is still unchecked and every other item is checked.
// It must be evaluated against the pre-toggle state. The result only drives
// the celebration display and is never persisted.
func WillCompleteList(items []Item, id string) bool {
	var found, itemUnchecked bool
	for _, it := range items {
		if it.ID == id {
			found = true
			itemUnchecked = !it.Checked
			continue
		}
		if !it.Checked {
			return false
		}
	}
	return found && itemUnchecked
}

// AvailableArticles returns the catalog articles not yet on the daily list.
// Ad-hoc items carry no article identity and never shadow an article.
func AvailableArticles(articles []catalog.Article, items []Item) []catalog.Article {
	onList := make(map[string]bool, len(items))
	for _, it := range items {
		if !it.IsAdHoc() {
			onList[it.ID] = true
		}
	}
	available := make([]catalog.Article, 0, len(articles))
	for _, a := range articles {
		if !onList[a.ID] {
			available = append(available, a)
		}
	}
	return available
}

// Clear returns the empty collection. Callers run this through the
// synchronization engine so the pre-clear snapshot is retained and the
// operation reverts cleanly when the persist fails.
func Clear() []Item {
	return []Item{}
}
