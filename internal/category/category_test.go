package category

import "testing"

func TestColorOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want ColorToken
	}{
		{id: "0", want: ColorPink},
		{id: "1", want: ColorCyan},
		{id: "6", want: ColorRed},
		{id: "99", want: ColorDefault},
		{id: "", want: ColorDefault},
	}
	for _, tt := range tests {
		if got := ColorOf(tt.id); got != tt.want {
			t.Errorf("ColorOf(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()
	categories := []Category{
		{ID: "1", Name: "Backwaren"},
		{ID: "2", Name: "Milchprodukte"},
	}

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "known id", id: "2", want: "Milchprodukte"},
		{name: "ad-hoc id", id: AdHocID, want: AdHocName},
		{name: "dangling reference", id: "42", want: "Kategorie 42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DisplayName(tt.id, categories); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestDisplayName_AdHocWinsOverStoredEntry(t *testing.T) {
	t.Parallel()
	// The synthetic category resolves by its reserved id even if a stored
	// collection were to carry a conflicting "0" entry.
	categories := []Category{{ID: "0", Name: "Etwas anderes"}}
	if got := DisplayName("0", categories); got != AdHocName {
		t.Errorf("DisplayName(\"0\") = %q, want %q", got, AdHocName)
	}
}
