package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/category"
	"github.com/justin-mueller/Einkaufsliste/internal/daily"
	"github.com/justin-mueller/Einkaufsliste/internal/sync"
)

func TestDraft_Stage(t *testing.T) {
	t.Parallel()
	var d Draft

	if err := d.Stage(catalog.Article{ID: "1", Name: "Milch"}); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := d.Stage(catalog.Article{ID: "2", Name: "Brot"}); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	err := d.Stage(catalog.Article{ID: "1", Name: "Milch"})
	if !errors.Is(err, ErrAlreadyStaged) {
		t.Fatalf("duplicate stage: got %v, want ErrAlreadyStaged", err)
	}
	if d.Len() != 2 {
		t.Errorf("draft grew on rejected stage: %d", d.Len())
	}

	staged := d.Articles()
	if staged[0].ID != "1" || staged[1].ID != "2" {
		t.Errorf("staging order not preserved: %v", staged)
	}
}

func TestDraft_Unstage(t *testing.T) {
	t.Parallel()
	var d Draft
	_ = d.Stage(catalog.Article{ID: "1"})
	_ = d.Stage(catalog.Article{ID: "2"})

	d.Unstage("1")
	if d.Len() != 1 || d.Articles()[0].ID != "2" {
		t.Errorf("draft after unstage = %v", d.Articles())
	}

	d.Unstage("99")
	if d.Len() != 1 {
		t.Error("unstaging an absent id changed the draft")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	var d Draft
	_ = d.Stage(catalog.Article{ID: "4", Name: "Nudeln"})
	_ = d.Stage(catalog.Article{ID: "2", Name: "Tomaten"})

	recipes := []Recipe{{ID: "1", Name: "Pfannkuchen"}}
	next, err := New(recipes, " Pasta ", &d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(next))
	}
	r := next[1]
	if r.ID != "2" {
		t.Errorf("id = %q, want %q", r.ID, "2")
	}
	if r.Name != "Pasta" {
		t.Errorf("name = %q, want trimmed %q", r.Name, "Pasta")
	}
	if len(r.Items) != 2 || r.Items[0] != "4" || r.Items[1] != "2" {
		t.Errorf("items = %v, want staged order", r.Items)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()
	var empty Draft
	var filled Draft
	_ = filled.Stage(catalog.Article{ID: "1"})

	tests := []struct {
		name      string
		recipe    string
		draft     *Draft
		wantField string
	}{
		{name: "empty name", recipe: "  ", draft: &filled, wantField: "name"},
		{name: "empty draft", recipe: "Pasta", draft: &empty, wantField: "items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(nil, tt.recipe, tt.draft)
			var verr *catalog.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	recipes := []Recipe{{ID: "1"}, {ID: "2"}}
	next := Remove(recipes, "1")
	if len(next) != 1 || next[0].ID != "2" {
		t.Errorf("Remove = %v", next)
	}
}

// fakeItemStore serves a fixed daily list and records the replacement write.
type fakeItemStore struct {
	items      []daily.Item
	fetchErr   error
	replaceErr error

	replaced   []daily.Item
	replaceCnt int
}

func (s *fakeItemStore) FetchItems(ctx context.Context) ([]daily.Item, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.items, nil
}

func (s *fakeItemStore) ReplaceItems(ctx context.Context, items []daily.Item) error {
	s.replaceCnt++
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = items
	return nil
}

func testArticles() map[string]catalog.Article {
	return catalog.ByID([]catalog.Article{
		{ID: "1", Name: "Milch", Category: "1"},
		{ID: "2", Name: "Tomaten", Category: "4"},
		{ID: "3", Name: "Nudeln", Category: "6"},
	})
}

func TestExpand_AddsMissingItems(t *testing.T) {
	t.Parallel()
	store := &fakeItemStore{items: []daily.Item{{ID: "1", Name: "Milch", Category: "1"}}}
	r := Recipe{ID: "1", Name: "Pasta", Items: []string{"1", "2", "3"}}

	added, err := Expand(context.Background(), store, r, testArticles())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	if len(store.replaced) != 3 {
		t.Fatalf("replaced collection = %v", store.replaced)
	}
	if store.replaced[1].ID != "2" || store.replaced[2].ID != "3" {
		t.Errorf("appended items = %v", store.replaced[1:])
	}
	for _, it := range store.replaced[1:] {
		if it.Checked {
			t.Errorf("expanded item %s arrived checked", it.ID)
		}
	}
}

func TestExpand_NothingToAddSkipsWrite(t *testing.T) {
	t.Parallel()
	store := &fakeItemStore{items: []daily.Item{
		{ID: "1", Name: "Milch", Category: "1"},
		{ID: "2", Name: "Tomaten", Category: "4"},
	}}
	r := Recipe{ID: "1", Items: []string{"1", "2"}}

	added, err := Expand(context.Background(), store, r, testArticles())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	if store.replaceCnt != 0 {
		t.Error("a write was issued although nothing was added")
	}
}

func TestExpand_SkipsDanglingReferences(t *testing.T) {
	t.Parallel()
	store := &fakeItemStore{}
	r := Recipe{ID: "1", Items: []string{"1", "999"}}

	added, err := Expand(context.Background(), store, r, testArticles())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1 (dangling reference skipped)", added)
	}
}

func TestExpand_AdHocItemsNeverDeduplicate(t *testing.T) {
	t.Parallel()
	// An ad-hoc item with a colliding id must not count as "on the list" for
	// expansion: only catalog-derived items deduplicate.
	store := &fakeItemStore{items: []daily.Item{
		{ID: "1", Name: "Spontan", Category: category.AdHocID},
	}}
	r := Recipe{ID: "1", Items: []string{"1"}}

	added, err := Expand(context.Background(), store, r, testArticles())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
}

func TestExpand_FetchFailure(t *testing.T) {
	t.Parallel()
	store := &fakeItemStore{fetchErr: errors.New("connection refused")}

	_, err := Expand(context.Background(), store, Recipe{Items: []string{"1"}}, testArticles())
	if err == nil {
		t.Fatal("expected error")
	}
	// A failed fetch mutated nothing; it must not read as unknown state.
	if errors.Is(err, sync.ErrStateUnknown) {
		t.Error("fetch failure reported as unknown state")
	}
}

func TestExpand_PersistFailureIsStateUnknown(t *testing.T) {
	t.Parallel()
	store := &fakeItemStore{replaceErr: errors.New("write failed")}

	_, err := Expand(context.Background(), store, Recipe{Items: []string{"1"}}, testArticles())
	if !errors.Is(err, sync.ErrStateUnknown) {
		t.Errorf("persist failure: got %v, want ErrStateUnknown", err)
	}
}
