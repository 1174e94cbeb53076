package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/upfocus/internal/store"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 2)

	// Timer
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

// Heatmap shades, dimmest first.
var heatLevels = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(colorSubtle),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#1E5631")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#3CB371")),
	lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
}

// heatStyle shades a heatmap cell by the minutes focused that day.
func heatStyle(minutes int) lipgloss.Style {
	switch {
	case minutes <= 0:
		return heatLevels[0]
	case minutes < 30:
		return heatLevels[1]
	case minutes < 60:
		return heatLevels[2]
	case minutes < 120:
		return heatLevels[3]
	default:
		return heatLevels[4]
	}
}

var categoryColors = map[store.Category]lipgloss.Color{
	store.CategoryStudy:    colorHighlight,
	store.CategoryWork:     colorPrimary,
	store.CategoryCreative: colorAccent,
	store.CategoryHealth:   colorSuccess,
}

func categoryStyle(c store.Category) lipgloss.Style {
	if col, ok := categoryColors[c]; ok {
		return lipgloss.NewStyle().Foreground(col)
	}
	return mutedStyle
}

var noteColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("#4A90E2"),
	"purple": lipgloss.Color("#9B59B6"),
	"green":  lipgloss.Color("#2ECC71"),
	"orange": lipgloss.Color("#F39C12"),
	"red":    lipgloss.Color("#E74C3C"),
	"pink":   lipgloss.Color("#FF6FB5"),
}

func noteColorStyle(tag string) lipgloss.Style {
	if col, ok := noteColors[tag]; ok {
		return lipgloss.NewStyle().Foreground(col)
	}
	return mutedStyle
}
