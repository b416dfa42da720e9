package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tabstash/tabstash/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorCyan    = lipgloss.AdaptiveColor{Dark: "#66D9E8", Light: "#0987A0"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps overlay content areas (help, command palette, forms).
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// SectionHeaderStyle renders a collapsible category section header.
var SectionHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// DimmedStyle de-emphasizes secondary text.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DeadlineStyle highlights extracted deadlines on application tabs.
var DeadlineStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// PinBadgeStyle marks entries in the pinned view.
var PinBadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// FormBadgeStyle marks detected form types on application tabs.
var FormBadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorOrange)

// CategoryStyle returns a color-coded style for a category label.
func CategoryStyle(c model.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch c {
	case model.CategoryApplications:
		return base.Foreground(ColorRed)
	case model.CategoryAI:
		return base.Foreground(ColorMagenta)
	case model.CategoryWork:
		return base.Foreground(ColorBlue)
	case model.CategoryTech:
		return base.Foreground(ColorCyan)
	case model.CategoryEducation:
		return base.Foreground(ColorGreen)
	case model.CategoryNews:
		return base.Foreground(ColorOrange)
	case model.CategorySocial:
		return base.Foreground(ColorYellow)
	case model.CategoryEntertainment:
		return base.Foreground(ColorMagenta)
	case model.CategoryShopping:
		return base.Foreground(ColorGreen)
	case model.CategoryReference:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}
