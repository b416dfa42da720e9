package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tabstash/tabstash/internal/theme"
)

// Layout manages the terminal frame: a one-line header with the stash
// summary, the content area, and a one-line status bar for key hints
// and notices.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top bar with the app title on the left and
// a summary (tab counts, browser state) on the right.
func (l Layout) RenderHeader(title, summary string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Align(lipgloss.Right).Render(summary)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		fillBar(theme.HeaderStyle, l.Width-lipgloss.Width(left)-lipgloss.Width(right)),
		right,
	)
}

// RenderStatusBar renders the bottom bar. A transient notice takes the
// whole bar; otherwise hints are shown.
func (l Layout) RenderStatusBar(text string) string {
	rendered := theme.StatusBarStyle.Render(text)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		rendered,
		fillBar(theme.StatusBarStyle, l.Width-lipgloss.Width(rendered)),
	)
}

// RenderFrame composes the full terminal view.
func (l Layout) RenderFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// fillBar pads the remaining width of a bar with its background color.
func fillBar(style lipgloss.Style, gap int) string {
	if gap < 0 {
		gap = 0
	}
	return style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)
}
