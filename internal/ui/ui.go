// Package ui renders CLI output: colored status lines and the article, item
// and recipe tables. The interactive TUI lives in internal/tui; this printer
// covers the one-shot commands.
package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/category"
	"github.com/justin-mueller/Einkaufsliste/internal/daily"
	"github.com/justin-mueller/Einkaufsliste/internal/recipe"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	strike  = "\033[9m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
)

// badgeColors maps the closed color-token set to ANSI codes.
var badgeColors = map[category.ColorToken]string{
	category.ColorPink:   magenta,
	category.ColorCyan:   cyan,
	category.ColorBlue:   blue,
	category.ColorOrange: yellow,
	category.ColorGreen:  green,
	category.ColorPurple: magenta,
	category.ColorRed:    red,
	category.ColorGray:   dim,
}

type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintf(os.Stderr, yellow+bold+"⚠ "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, dim+"%s"+reset+"\n", msg)
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(os.Stderr, green+"✓ "+reset+"%s\n", msg)
}

// Reverted reports a failed persist whose local change was rolled back.
func (p *Printer) Reverted(op string, err error) {
	fmt.Fprintf(os.Stderr, red+bold+"✗ %s fehlgeschlagen"+reset+" — Änderung zurückgenommen\n", op)
	fmt.Fprintf(os.Stderr, dim+"  %v"+reset+"\n", err)
}

// badge renders a category name in its assigned color.
func badge(categoryID string, categories []category.Category) string {
	color := badgeColors[category.ColorOf(categoryID)]
	return color + "[" + category.DisplayName(categoryID, categories) + "]" + reset
}

// Articles prints the catalog table in display order.
func (p *Printer) Articles(articles []catalog.Article, categories []category.Category) {
	if len(articles) == 0 {
		p.Info("Keine Artikel im Katalog.")
		return
	}
	for _, a := range catalog.Sort(articles) {
		fmt.Fprintf(os.Stdout, "%4s  %-30s %s\n", a.ID, a.Name, badge(a.Category, categories))
	}
}

// Items prints today's shopping list. Checked items are struck through, the
// ad-hoc star marks entries without catalog identity.
func (p *Printer) Items(items []daily.Item, categories []category.Category) {
	if len(items) == 0 {
		p.Info("Die heutige Einkaufsliste ist leer.")
		return
	}
	for _, it := range items {
		mark := "[ ]"
		name := it.Name
		if it.Checked {
			mark = green + "[✓]" + reset
			name = strike + dim + name + reset
		}
		star := "  "
		if it.IsAdHoc() {
			star = yellow + "★ " + reset
		}
		fmt.Fprintf(os.Stdout, "%s %s%-32s %s\n", mark, star, name, badge(it.Category, categories))
	}
}

// Recipes prints each recipe with its resolved ingredients. Dangling
// article references render with a fallback marker instead of failing.
func (p *Printer) Recipes(recipes []recipe.Recipe, articles map[string]catalog.Article, categories []category.Category) {
	if len(recipes) == 0 {
		p.Info("Keine Rezepte gefunden.")
		return
	}
	for _, r := range recipes {
		fmt.Fprintf(os.Stdout, bold+cyan+"%s"+reset+" "+dim+"(#%s, %d Zutaten)"+reset+"\n",
			r.Name, r.ID, len(r.Items))
		for _, id := range r.Items {
			a, ok := articles[id]
			if !ok {
				fmt.Fprintf(os.Stdout, "  "+dim+"· Artikel %s (nicht mehr im Katalog)"+reset+"\n", id)
				continue
			}
			fmt.Fprintf(os.Stdout, "  · %-30s %s\n", a.Name, badge(a.Category, categories))
		}
	}
}

// Categories prints the directory with color badges.
func (p *Printer) Categories(categories []category.Category) {
	for _, c := range categories {
		fmt.Fprintf(os.Stdout, "%4s  %s\n", c.ID, badge(c.ID, categories))
	}
}

// ExpansionResult reports the outcome of adding a recipe to the daily list.
func (p *Printer) ExpansionResult(recipeName string, added int) {
	if added == 0 {
		p.Info("Alle Artikel aus diesem Rezept sind bereits in der heutigen Einkaufsliste.")
		return
	}
	p.Success(strconv.Itoa(added) + " Artikel aus \"" + recipeName + "\" zur heutigen Einkaufsliste hinzugefügt")
}

// Completed celebrates a finished list on the terminal.
func (p *Printer) Completed() {
	fmt.Fprintln(os.Stderr, green+bold+"★ Einkauf erledigt! "+reset+green+strings.Repeat("✓", 3)+reset)
}
