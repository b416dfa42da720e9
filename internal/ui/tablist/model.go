package tablist

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabstash/tabstash/internal/keys"
	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/store"
	"github.com/tabstash/tabstash/internal/theme"
)

// Mode selects which collection the list shows.
type Mode int

const (
	ModeSaved Mode = iota
	ModePinned
)

// TabsLoadedMsg is sent when both collections have been loaded from
// the store.
type TabsLoadedMsg struct {
	Saved  []model.SavedTab
	Pinned []model.PinnedTab
}

// RestoreMsg asks the app to reopen a saved tab and remove it.
type RestoreMsg struct{ Tab model.SavedTab }

// OpenMsg asks the app to open a URL without touching the store.
type OpenMsg struct{ URL string }

// DeleteMsg asks the app to delete a saved tab.
type DeleteMsg struct{ ID string }

// PinMsg asks the app to pin a saved tab.
type PinMsg struct{ Tab model.SavedTab }

// UnpinMsg asks the app to remove an entry from the pinned collection.
type UnpinMsg struct{ ID string }

// EditMsg asks the app to open the edit form for a saved tab.
type EditMsg struct{ Tab model.SavedTab }

// Model is the category-grouped tab list view.
type Model struct {
	list      list.Model
	store     store.Store
	keys      *keys.KeyMap
	mode      Mode
	collapsed map[model.Category]bool
	filter    store.TabFilter

	searchMode  bool
	searchInput textinput.Model

	saved  []model.SavedTab
	pinned []model.PinnedTab

	width  int
	height int
}

// New creates a new tab list model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, rowDelegate{}, width, height-2)
	l.Title = "Saved Tabs"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search title or url..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		mode:        ModeSaved,
		collapsed:   make(map[model.Category]bool),
		filter:      store.TabFilter{SortBy: "saved_at", SortDesc: true},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads both collections.
func (m Model) Init() tea.Cmd {
	return m.LoadTabs()
}

// Update handles messages for the tab list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TabsLoadedMsg:
		m.saved = msg.Saved
		m.pinned = msg.Pinned
		return m, m.list.SetItems(m.buildRows())

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode. The query
// is applied on every keystroke.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadTabs()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	query := m.searchInput.Value()
	if query != "" {
		m.filter.Query = &query
	} else {
		m.filter.Query = nil
	}
	return m, tea.Batch(cmd, m.LoadTabs())
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		switch row := m.list.SelectedItem().(type) {
		case HeaderRow:
			return m.toggleSection(row.Category)
		case TabRow:
			if row.Pinned {
				// Pinned tabs are long-term references; opening one
				// keeps it pinned.
				return m, func() tea.Msg { return OpenMsg{URL: row.Tab.URL} }
			}
			tab := row.Tab
			return m, func() tea.Msg { return RestoreMsg{Tab: tab} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		if row, ok := m.list.SelectedItem().(HeaderRow); ok {
			return m.toggleSection(row.Category)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Open):
		if row, ok := m.list.SelectedItem().(TabRow); ok {
			return m, func() tea.Msg { return OpenMsg{URL: row.Tab.URL} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		switch row := m.list.SelectedItem().(type) {
		case TabRow:
			if row.Pinned {
				id := row.PinnedID
				return m, func() tea.Msg { return UnpinMsg{ID: id} }
			}
			id := row.Tab.ID
			return m, func() tea.Msg { return DeleteMsg{ID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Pin):
		switch row := m.list.SelectedItem().(type) {
		case TabRow:
			if row.Pinned {
				id := row.PinnedID
				return m, func() tea.Msg { return UnpinMsg{ID: id} }
			}
			tab := row.Tab
			return m, func() tea.Msg { return PinMsg{Tab: tab} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if row, ok := m.list.SelectedItem().(TabRow); ok && !row.Pinned {
			tab := row.Tab
			return m, func() tea.Msg { return EditMsg{Tab: tab} }
		}
		return m, nil

	case key.Matches(msg, m.keys.TogglePinned):
		return m.ToggleMode()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggleSection flips the collapse state of one category section.
func (m Model) toggleSection(c model.Category) (Model, tea.Cmd) {
	m.collapsed[c] = !m.collapsed[c]
	return m, m.list.SetItems(m.buildRows())
}

// ToggleMode switches between the saved and pinned views.
func (m Model) ToggleMode() (Model, tea.Cmd) {
	if m.mode == ModeSaved {
		m.mode = ModePinned
		m.list.Title = "Pinned Tabs"
	} else {
		m.mode = ModeSaved
		m.list.Title = "Saved Tabs"
	}
	return m, m.list.SetItems(m.buildRows())
}

// Mode returns the active view mode.
func (m Model) Mode() Mode { return m.mode }

// Searching reports whether the search input currently captures keys.
func (m Model) Searching() bool { return m.searchMode }

// SetCategoryFilter restricts the list to one category; nil clears it.
func (m *Model) SetCategoryFilter(c *model.Category) tea.Cmd {
	m.filter.Category = c
	return m.LoadTabs()
}

// buildRows flattens the active collection into section headers and
// tab rows, grouped in the fixed category display order. Collapsed
// sections contribute only their header.
func (m Model) buildRows() []list.Item {
	grouped := make(map[model.Category][]TabRow)

	if m.mode == ModeSaved {
		for _, tab := range m.saved {
			grouped[tab.Category] = append(grouped[tab.Category], TabRow{Tab: tab})
		}
	} else {
		for _, p := range m.pinned {
			grouped[p.Category] = append(grouped[p.Category], TabRow{
				Tab:      p.SavedTab,
				Pinned:   true,
				PinnedID: p.ID,
				PinnedAt: p.PinnedAt,
			})
		}
	}

	var rows []list.Item
	for _, cat := range model.DisplayOrder {
		tabs := grouped[cat]
		if len(tabs) == 0 {
			continue
		}
		collapsed := m.collapsed[cat]
		rows = append(rows, HeaderRow{
			Category:  cat,
			Count:     len(tabs),
			Collapsed: collapsed,
		})
		if collapsed {
			continue
		}
		for _, row := range tabs {
			rows = append(rows, row)
		}
	}

	return rows
}

// View renders the tab list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when the list is empty.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.Category != nil || m.filter.Query != nil

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("No matching tabs.\nTry adjusting your filters.")
	}

	if m.mode == ModePinned {
		return style.Render("No pinned tabs.\n\nPress p on a saved tab to pin it.")
	}

	return style.Render(
		"No saved tabs.\n\n" +
			"Press s to save all open browser tabs.",
	)
}

// LoadTabs returns a tea.Cmd that queries both collections with the
// current filter.
func (m Model) LoadTabs() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		saved, err := s.GetSavedTabs(ctx, filter)
		if err != nil {
			return TabsLoadedMsg{}
		}

		pinnedFilter := filter
		pinnedFilter.SortBy = ""
		pinned, err := s.GetPinnedTabs(ctx, pinnedFilter)
		if err != nil {
			return TabsLoadedMsg{Saved: saved}
		}

		return TabsLoadedMsg{Saved: saved, Pinned: pinned}
	}
}

// SelectedTab returns the currently selected tab row, if any.
func (m Model) SelectedTab() (TabRow, bool) {
	row, ok := m.list.SelectedItem().(TabRow)
	return row, ok
}

// FilterSummary describes active filters for the status bar.
func (m Model) FilterSummary() string {
	var parts []string
	if m.filter.Category != nil {
		parts = append(parts, "category: "+string(*m.filter.Category))
	}
	if m.filter.Query != nil {
		parts = append(parts, "search: "+*m.filter.Query)
	}
	if len(parts) == 0 {
		return ""
	}
	summary := parts[0]
	for _, p := range parts[1:] {
		summary += " | " + p
	}
	return summary
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
