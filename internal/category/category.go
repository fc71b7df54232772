// Package category provides the static category directory: the closed mapping
// from category ids to display color tokens, and name resolution with a
// fallback for dangling references. Category entities themselves live in the
// remote store; only the color assignment is compiled in.
package category

// AdHocID is the reserved id of the synthetic "Ad-Hoc" category. It is never
// present in the stored Categories collection and is injected at read time.
const AdHocID = "0"

// AdHocName is the display name of the synthetic Ad-Hoc category.
const AdHocName = "Ad-Hoc"

// Category is one entry of the Categories collection.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ColorToken identifies one of the closed set of badge colors. The TUI maps
// tokens to concrete terminal colors; CLI output maps them to ANSI codes.
type ColorToken string

// The closed set of color tokens. ColorDefault is used for ids outside the
// compiled-in directory.
const (
	ColorPink    ColorToken = "pink"
	ColorCyan    ColorToken = "cyan"
	ColorBlue    ColorToken = "blue"
	ColorOrange  ColorToken = "orange"
	ColorGreen   ColorToken = "green"
	ColorPurple  ColorToken = "purple"
	ColorRed     ColorToken = "red"
	ColorGray    ColorToken = "gray"
	ColorDefault ColorToken = ColorGray
)

// colors assigns a token to each category id of the deployment. The zero id
// is the synthetic Ad-Hoc category.
var colors = map[string]ColorToken{
	"0": ColorPink,   // Ad-Hoc
	"1": ColorCyan,   // Backwaren
	"2": ColorBlue,   // Milchprodukte
	"3": ColorOrange, // Öle
	"4": ColorGreen,  // Obst
	"5": ColorPurple, // Gemüse
	"6": ColorRed,    // Fleisch
	"7": ColorGray,   // Sonstiges
}

// ColorOf returns the color token for a category id, falling back to the
// default token for unknown ids.
func ColorOf(id string) ColorToken {
	if tok, ok := colors[id]; ok {
		return tok
	}
	return ColorDefault
}

// DisplayName resolves a category id against a fetched Categories slice.
// Dangling references render as "Kategorie <id>" rather than failing.
func DisplayName(id string, categories []Category) string {
	if id == AdHocID {
		return AdHocName
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "Kategorie " + id
}
