package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justin-mueller/Einkaufsliste/internal/category"
)

// View renders the shopping screen.
func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Lade Einkaufsliste…\n", m.spin.View())
	}

	var b strings.Builder

	title := " Einkaufsliste "
	if m.persisting {
		title += m.spin.View() + " "
	}
	b.WriteString(styleTitleBar.Render(title))
	b.WriteString("\n\n")

	if m.confirmClear {
		b.WriteString(styleConfirmOverlay.Render(
			fmt.Sprintf("Liste mit %d Einträgen wirklich leeren?\n\n[j] Ja   [beliebige Taste] Nein", len(m.items))))
		b.WriteString("\n")
		return b.String()
	}

	left := m.renderListPane()
	right := m.renderAvailablePane()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))
	b.WriteString("\n")

	if m.adhocMode {
		b.WriteString("\n  Neuer Eintrag: " + m.adhocInput.View() + "\n")
	}

	if m.status != "" {
		style := styleInfo
		if m.statusIsErr {
			style = styleError
		}
		b.WriteString("\n  " + style.Render(m.status) + "\n")
	}

	b.WriteString("\n  " + styleFooter.Render(
		"tab Bereich wechseln · enter abhaken/hinzufügen · n ad-hoc · x entfernen · C leeren · r neu laden · q beenden"))
	b.WriteString("\n")
	return b.String()
}

// renderListPane renders today's list with check state and category badges.
func (m Model) renderListPane() string {
	var b strings.Builder

	titleStyle := stylePaneTitle
	if m.focus != paneList {
		titleStyle = stylePaneTitleDim
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Heutige Liste (%d)", len(m.items))))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(styleInfo.Render("  Liste ist leer."))
		return b.String()
	}

	for i, it := range m.items {
		selected := m.focus == paneList && i == m.cursorList

		indicator := " "
		if selected {
			indicator = styleSelectionIndicator.Render(selectionIndicator)
		}

		check := "☐"
		if it.Checked {
			check = styleCheckmark.Render("☑")
		}

		name := it.Name
		rowStyle := styleRowNormal
		switch {
		case m.celebrating && i < m.celebrationRow:
			rowStyle = styleCelebration
		case it.Checked:
			rowStyle = styleRowChecked
		case selected:
			rowStyle = styleRowSelected
		}

		star := " "
		if it.IsAdHoc() {
			star = styleAdHocStar.Render("★")
		}

		badge := badgeStyle(it.Category).Render("●")
		b.WriteString(fmt.Sprintf("%s %s %s %s %s\n", indicator, check, badge, rowStyle.Render(name), star))
	}

	if m.celebrating {
		b.WriteString("\n" + styleCelebration.Render("  Alles erledigt! 🎉"))
	}
	return b.String()
}

// renderAvailablePane renders the catalog articles not yet on the list.
func (m Model) renderAvailablePane() string {
	var b strings.Builder

	available := m.available()

	titleStyle := stylePaneTitle
	if m.focus != paneAvailable {
		titleStyle = stylePaneTitleDim
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Verfügbare Artikel (%d)", len(available))))
	b.WriteString("\n")

	if len(available) == 0 {
		b.WriteString(styleInfo.Render("  Alle Artikel sind bereits auf der Liste."))
		return b.String()
	}

	lastCategory := ""
	for i, a := range available {
		if a.Category != lastCategory {
			lastCategory = a.Category
			b.WriteString(badgeStyle(a.Category).Render(category.DisplayName(a.Category, m.cats)))
			b.WriteString("\n")
		}

		selected := m.focus == paneAvailable && i == m.cursorAvail
		indicator := " "
		rowStyle := styleRowNormal
		if selected {
			indicator = styleSelectionIndicator.Render(selectionIndicator)
			rowStyle = styleRowSelected
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", indicator, rowStyle.Render(a.Name)))
	}
	return b.String()
}
