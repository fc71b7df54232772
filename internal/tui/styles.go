package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/justin-mueller/Einkaufsliste/internal/category"
)

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan — primary accent
	colorAccent      = lipgloss.Color("#FFD700") // Gold — ad-hoc star, celebration
	colorSuccess     = lipgloss.Color("#00E676") // Green — checked items
	colorDanger      = lipgloss.Color("#FF5252") // Red — errors, reverts
	colorMuted       = lipgloss.Color("#636363") // Gray — de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray — normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white — primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white — emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface — status bar bg
)

// badgeColors maps the closed category color-token set to terminal colors.
var badgeColors = map[category.ColorToken]lipgloss.Color{
	category.ColorPink:   lipgloss.Color("#FF79C6"),
	category.ColorCyan:   lipgloss.Color("#00BFFF"),
	category.ColorBlue:   lipgloss.Color("#5B8DEF"),
	category.ColorOrange: lipgloss.Color("#FFB86C"),
	category.ColorGreen:  lipgloss.Color("#00E676"),
	category.ColorPurple: lipgloss.Color("#BD93F9"),
	category.ColorRed:    lipgloss.Color("#FF5252"),
	category.ColorGray:   lipgloss.Color("#8C8C8C"),
}

// badgeStyle renders a category badge in its token color.
func badgeStyle(id string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(badgeColors[category.ColorOf(id)])
}

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

var (
	styleTitleBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	stylePaneTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	stylePaneTitleDim = lipgloss.NewStyle().
				Foreground(colorMuted).
				Bold(true)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowChecked = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)

	styleCheckmark = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleAdHocStar = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleInfo = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCelebration = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	styleConfirmOverlay = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorAccent).
				Padding(1, 2).
				Bold(true)
)
