// Package editform is the huh-based form for editing a saved tab's
// title and category.
package editform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/theme"
)

// TabUpdatedMsg is dispatched when the user submits the form.
type TabUpdatedMsg struct {
	Tab model.SavedTab
}

// EditCancelMsg is dispatched when the user cancels the form.
type EditCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title    string
	category string
}

// Model is the Bubble Tea model for the tab edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	tab    model.SavedTab
	width  int
	height int
}

// New creates a new edit form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for the given tab.
func (m *Model) Start(tab model.SavedTab) tea.Cmd {
	m.tab = tab
	m.fb.title = tab.Title
	m.fb.category = string(tab.Category)
	m.form = m.buildForm()
	return m.form.Init()
}

// buildForm constructs the huh form with the current bindings.
func (m *Model) buildForm() *huh.Form {
	var categoryOptions []huh.Option[string]
	for _, c := range model.DisplayOrder {
		categoryOptions = append(categoryOptions,
			huh.NewOption(string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.fb.title),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&m.fb.category),
		),
	).WithWidth(m.width - 8)
}

// Update handles messages for the edit form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return EditCancelMsg{} }
	}

	return m, cmd
}

// handleSubmit produces the updated tab. When the category moves away
// from Applications, the form metadata no longer applies and is
// dropped.
func (m Model) handleSubmit() tea.Cmd {
	tab := m.tab
	tab.Title = m.fb.title
	tab.Category = model.Category(m.fb.category)
	if tab.Category != model.CategoryApplications {
		tab.FormType = ""
		tab.Deadline = ""
	}
	return func() tea.Msg {
		return TabUpdatedMsg{Tab: tab}
	}
}

// View renders the edit form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Edit Tab") + "\n" + m.form.View()

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
