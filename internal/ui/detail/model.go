// Package detail renders a single saved or pinned tab in a scrollable
// viewport: full title and URL, category, form detection results, and
// timestamps that get truncated in the list view.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabstash/tabstash/internal/keys"
	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model is the tab detail view component.
type Model struct {
	tab      *model.SavedTab
	pinnedAt string
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.tab == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No tab selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.tab == nil {
		return ""
	}

	tab := m.tab
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(tab.Title))

	// Badges line: category + form type + pinned marker
	badges := []string{
		theme.CategoryStyle(tab.Category).Render(string(tab.Category)),
	}
	if tab.FormType != "" {
		badges = append(badges, "  ", theme.FormBadgeStyle.Render("["+tab.FormType+"]"))
	}
	if m.pinnedAt != "" {
		badges = append(badges, "  ", theme.PinBadgeStyle.Render("pinned"))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, badges...))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	sections = append(sections, fmt.Sprintf(
		"%s      %s",
		metaStyle.Render("URL:"),
		valStyle.Render(tab.URL),
	))
	if tab.FavIconURL != "" {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Favicon:"),
			valStyle.Render(tab.FavIconURL),
		))
	}
	if !tab.SavedAt.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("Saved:"),
			valStyle.Render(tab.SavedAt.Local().Format("2006-01-02 15:04")),
		))
	}
	if m.pinnedAt != "" {
		sections = append(sections, fmt.Sprintf(
			"%s   %s",
			metaStyle.Render("Pinned:"),
			valStyle.Render(m.pinnedAt),
		))
	}

	if tab.Deadline != "" {
		sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
		separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
		sections = append(sections, "", separator, "")
		sections = append(sections, fmt.Sprintf(
			"%s %s",
			metaStyle.Render("Deadline:"),
			theme.DeadlineStyle.Render(tab.Deadline),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetTab updates the saved tab being displayed and re-renders.
func (m *Model) SetTab(tab model.SavedTab) {
	m.tab = &tab
	m.pinnedAt = ""
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetPinnedTab displays a pinned tab, including its pin time.
func (m *Model) SetPinnedTab(tab model.PinnedTab) {
	m.tab = &tab.SavedTab
	m.pinnedAt = tab.PinnedAt.Local().Format("2006-01-02 15:04")
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
