// Package config is the huh-based settings form: browser endpoint,
// save behavior, rules override, and the feedback channel.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/theme"
)

// SettingsSavedMsg is dispatched when the user submits the form. The
// parent persists the config and applies it.
type SettingsSavedMsg struct {
	Config *model.AppConfig
}

// SettingsCancelMsg is dispatched when the user cancels the form.
type SettingsCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	endpoint     string
	closeOnSave  bool
	rulesPath    string
	formURL      string
	supportEmail string
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	cfg    *model.AppConfig
	width  int
	height int
}

// New creates a new settings form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form from the current configuration.
func (m *Model) Start(cfg *model.AppConfig) tea.Cmd {
	m.cfg = cfg
	m.fb.endpoint = cfg.Browser.Endpoint
	m.fb.closeOnSave = cfg.Browser.CloseOnSave
	m.fb.rulesPath = cfg.RulesPath
	m.fb.formURL = cfg.Feedback.FormURL
	m.fb.supportEmail = cfg.Feedback.SupportEmail
	m.form = m.buildForm()
	return m.form.Init()
}

// buildForm constructs the huh form with the current bindings.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Browser endpoint").
				Description("Root URL of the DevTools JSON API").
				Value(&m.fb.endpoint).
				Validate(validateEndpoint),
			huh.NewConfirm().
				Title("Close tabs after saving").
				Value(&m.fb.closeOnSave),
			huh.NewInput().
				Title("Rules file").
				Description("Optional YAML overriding the built-in categorization rules").
				Value(&m.fb.rulesPath).
				Validate(validateRulesPath),
			huh.NewInput().
				Title("Feedback form URL").
				Value(&m.fb.formURL),
			huh.NewInput().
				Title("Support email").
				Value(&m.fb.supportEmail),
		),
	).WithWidth(m.width - 8)
}

// validateEndpoint rejects endpoints the HTTP client cannot use.
func validateEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be a full URL, e.g. http://127.0.0.1:9222")
	}
	return nil
}

// validateRulesPath accepts empty (embedded defaults) or an existing file.
func validateRulesPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := os.Stat(s); err != nil {
		return fmt.Errorf("file not found")
	}
	return nil
}

// Update handles messages for the settings form.
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
		return m, func() tea.Msg { return SettingsCancelMsg{} }
	}

	return m, cmd
}

// handleSubmit copies the bindings back into a config for the parent
// to persist.
func (m Model) handleSubmit() tea.Cmd {
	cfg := *m.cfg
	cfg.Browser.Endpoint = strings.TrimRight(strings.TrimSpace(m.fb.endpoint), "/")
	cfg.Browser.CloseOnSave = m.fb.closeOnSave
	cfg.RulesPath = strings.TrimSpace(m.fb.rulesPath)
	cfg.Feedback.FormURL = strings.TrimSpace(m.fb.formURL)
	cfg.Feedback.SupportEmail = strings.TrimSpace(m.fb.supportEmail)
	return func() tea.Msg {
		return SettingsSavedMsg{Config: &cfg}
	}
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Settings") + "\n" + m.form.View()

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
