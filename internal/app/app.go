// Package app wires the Bubble Tea root model: view routing, global
// keys, and the store/browser commands behind every user action.
package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tabstash/tabstash/internal/browser"
	"github.com/tabstash/tabstash/internal/classify"
	"github.com/tabstash/tabstash/internal/keys"
	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/rules"
	"github.com/tabstash/tabstash/internal/store"
	"github.com/tabstash/tabstash/internal/ui"
	"github.com/tabstash/tabstash/internal/ui/command"
	configview "github.com/tabstash/tabstash/internal/ui/config"
	"github.com/tabstash/tabstash/internal/ui/detail"
	"github.com/tabstash/tabstash/internal/ui/editform"
	helpview "github.com/tabstash/tabstash/internal/ui/help"
	"github.com/tabstash/tabstash/internal/ui/tablist"
)

// openCountInterval is how often the header's open-tab count refreshes.
const openCountInterval = 30 * time.Second

// noticeDuration is how long a transient status notice stays visible.
const noticeDuration = 4 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewEdit
	ViewSettings
)

// tickMsg drives the periodic open-tab count refresh.
type tickMsg time.Time

// settingsResultMsg reports the outcome of persisting settings.
type settingsResultMsg struct{ err error }

// noticeExpiredMsg clears a transient status notice once it has aged
// out. The id guards against an old timer wiping a newer notice.
type noticeExpiredMsg struct{ id int }

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the persistence and browser layers.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout

	store      store.Store
	browser    browser.Browser
	classifier *classify.Classifier
	cfg        *model.AppConfig
	cfgPath    string
	logger     *zap.Logger
	keys       *keys.KeyMap

	tabList     tablist.Model
	detailView  detail.Model
	helpView    helpview.Model
	commandView command.Model
	editView    editform.Model
	configView  configview.Model

	ready        bool
	saving       bool
	confirmClear bool
	notice    string
	noticeID  int
	openCount int
	openKnown bool
}

// New creates the root application model.
func New(
	s store.Store,
	br browser.Browser,
	cls *classify.Classifier,
	cfg *model.AppConfig,
	cfgPath string,
	logger *zap.Logger,
) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewList,
		store:       s,
		browser:     br,
		classifier:  cls,
		cfg:         cfg,
		cfgPath:     cfgPath,
		logger:      logger,
		keys:        k,
		tabList:     tablist.New(s, k, 80, 24),
		detailView:  detail.New(k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		editView:    editform.New(80, 24),
		configView:  configview.New(80, 24),
	}
}

// Init loads the stored tabs and kicks off the open-tab counter.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tabList.Init(),
		m.fetchOpenCount(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(openCountInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		cw, ch := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.tabList.SetSize(cw, ch)
		m.detailView.SetSize(cw, ch)
		m.helpView.SetSize(cw, ch)
		m.commandView.SetSize(cw, ch)
		m.editView.SetSize(cw, ch)
		m.configView.SetSize(cw, ch)
		return m.updateActiveView(msg)

	case tickMsg:
		return m, tea.Batch(m.fetchOpenCount(), tickCmd())

	case openCountMsg:
		m.openCount = msg.count
		m.openKnown = msg.ok
		return m, nil

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tablist.RestoreMsg:
		return m, m.restoreTab(msg.Tab)

	case tablist.OpenMsg:
		return m, m.openURL(msg.URL)

	case tablist.DeleteMsg:
		return m, m.deleteTab(msg.ID)

	case tablist.PinMsg:
		return m, m.pinTab(msg.Tab)

	case tablist.UnpinMsg:
		return m, m.unpinTab(msg.ID)

	case tablist.EditMsg:
		m.previousView = m.currentView
		m.currentView = ViewEdit
		return m, m.editView.Start(msg.Tab)

	case editform.TabUpdatedMsg:
		m.currentView = ViewList
		return m, m.updateTab(msg.Tab)

	case editform.EditCancelMsg:
		m.currentView = ViewList
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case configview.SettingsSavedMsg:
		m.currentView = ViewList
		return m, m.applySettings(msg.Config)

	case configview.SettingsCancelMsg:
		m.currentView = ViewList
		return m, nil

	case settingsResultMsg:
		if msg.err != nil {
			return m, m.showNotice("Failed to save settings")
		}
		return m, m.showNotice("Settings saved")

	case savedResultMsg:
		return m.handleSavedResult(msg)

	case restoredResultMsg:
		if msg.err != nil {
			return m, m.showNotice("Failed to restore tab")
		}
		return m, tea.Batch(
			m.showNotice("Restored "+truncate(msg.title, 40)),
			m.tabList.LoadTabs(),
			m.fetchOpenCount(),
		)

	case openedResultMsg:
		if msg.err != nil {
			return m, m.showNotice("Failed to open tab")
		}
		return m, m.fetchOpenCount()

	case deletedResultMsg:
		if msg.err != nil {
			return m, m.showNotice("Failed to delete tab")
		}
		return m, m.tabList.LoadTabs()

	case pinnedResultMsg:
		return m.handlePinnedResult(msg)

	case unpinnedResultMsg:
		if msg.err != nil {
			return m, m.showNotice("Failed to unpin tab")
		}
		return m, m.tabList.LoadTabs()

	case clearedResultMsg:
		if msg.err != nil {
			return m, m.showNotice("Failed to clear saved tabs")
		}
		return m, tea.Batch(m.showNotice("Cleared saved tabs"), m.tabList.LoadTabs())

	case updatedResultMsg:
		if msg.err != nil {
			return m, m.showNotice("Failed to update tab")
		}
		return m, m.tabList.LoadTabs()

	case feedbackResultMsg:
		switch {
		case msg.err != nil:
			return m, m.showNotice("Failed to open feedback form")
		case msg.copiedEmail != "":
			return m, m.showNotice("Copied " + msg.copiedEmail + " to clipboard")
		default:
			return m, m.showNotice("Opened feedback form")
		}

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the active
// view. The edit form owns its keys entirely except ctrl+c.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}
	if m.currentView == ViewEdit {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewList && !m.tabList.Searching() {
			return m, tea.Quit, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		if m.currentView == ViewList && m.tabList.Searching() {
			break
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case ":":
		if m.currentView == ViewCommand {
			m.currentView = m.previousView
			return m, nil, true
		}
		if m.currentView == ViewList && m.tabList.Searching() {
			break
		}
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case "esc":
		if m.currentView == ViewHelp || m.currentView == ViewCommand {
			m.currentView = m.previousView
			return m, nil, true
		}

	case "v":
		if m.currentView == ViewList && !m.tabList.Searching() {
			row, ok := m.tabList.SelectedTab()
			if !ok {
				return m, nil, true
			}
			if row.Pinned {
				m.detailView.SetPinnedTab(model.PinnedTab{
					SavedTab: row.Tab,
					PinnedAt: row.PinnedAt,
				})
			} else {
				m.detailView.SetTab(row.Tab)
			}
			m.previousView = m.currentView
			m.currentView = ViewDetail
			return m, nil, true
		}

	case "c":
		if m.currentView == ViewList && !m.tabList.Searching() {
			m.previousView = m.currentView
			m.currentView = ViewSettings
			return m, m.configView.Start(m.cfg), true
		}

	case "s":
		if m.currentView == ViewList && !m.tabList.Searching() {
			if m.saving {
				return m, nil, true
			}
			m.saving = true
			return m, m.saveOpenTabs(), true
		}

	case "f":
		if m.currentView == ViewList && !m.tabList.Searching() {
			return m, m.sendFeedback(), true
		}

	case "r":
		if m.currentView == ViewList && !m.tabList.Searching() {
			return m, tea.Batch(m.tabList.LoadTabs(), m.fetchOpenCount()), true
		}
	}

	return m, nil, false
}

func (m Model) handleSavedResult(msg savedResultMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	var cmd tea.Cmd
	switch {
	case msg.err != nil && msg.count == 0:
		cmd = m.showNotice("Failed to save tabs")
	case msg.err != nil:
		cmd = m.showNotice(fmt.Sprintf("Saved %d tabs (closing originals failed)", msg.count))
	case msg.count == 0:
		cmd = m.showNotice("No open tabs to save")
	default:
		cmd = m.showNotice(fmt.Sprintf("Saved %d tabs", msg.count))
	}
	return m, tea.Batch(cmd, m.tabList.LoadTabs(), m.fetchOpenCount())
}

func (m Model) handlePinnedResult(msg pinnedResultMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.duplicate:
		return m, tea.Batch(
			m.showNotice("Already pinned: "+truncate(msg.title, 40)),
			m.tabList.LoadTabs(),
		)
	case msg.err != nil:
		return m, m.showNotice("Failed to pin tab")
	default:
		return m, tea.Batch(
			m.showNotice("Pinned "+truncate(msg.title, 40)),
			m.tabList.LoadTabs(),
		)
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.tabList, cmd = m.tabList.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewEdit:
		m.editView, cmd = m.editView.Update(msg)
	case ViewSettings:
		m.configView, cmd = m.configView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Tab Stash", m.headerSummary())
	statusBar := m.layout.RenderStatusBar(m.statusText())

	return m.layout.RenderFrame(header, m.renderContent(), statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.tabList.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewEdit:
		return m.editView.View()
	case ViewSettings:
		return m.configView.View()
	default:
		return ""
	}
}

// headerSummary describes the browser state for the header's right side.
func (m Model) headerSummary() string {
	if m.saving {
		return "saving..."
	}
	if !m.openKnown {
		return "browser unreachable"
	}
	return fmt.Sprintf("%d open tabs", m.openCount)
}

// statusText returns the status bar content: a transient notice when
// present, otherwise per-view key hints.
func (m Model) statusText() string {
	if m.notice != "" {
		return m.notice
	}

	switch m.currentView {
	case ViewDetail:
		return "j/k scroll | esc back"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewEdit, ViewSettings:
		return "enter submit | esc cancel"
	default:
		if summary := m.tabList.FilterSummary(); summary != "" {
			return summary + " | esc clear search"
		}
		if m.tabList.Mode() == tablist.ModePinned {
			return "q quit | tab saved view | enter open | p unpin | / search"
		}
		return "q quit | s save open tabs | enter restore | p pin | e edit | tab pinned view | / search"
	}
}

// applySettings swaps in the submitted configuration: the classifier
// and browser client are rebuilt immediately, persistence happens in a
// command. A bad rules file rejects the whole submission.
func (m *Model) applySettings(cfg *model.AppConfig) tea.Cmd {
	rs, err := rules.Load(cfg.RulesPath)
	if err != nil {
		m.logger.Warn("rejecting settings", zap.Error(err))
		return m.showNotice("Invalid rules file: settings not applied")
	}

	m.classifier = classify.New(rs)
	m.browser = browser.NewDevToolsClient(cfg.Browser.Endpoint)
	m.cfg = cfg

	path := m.cfgPath
	persist := func() tea.Msg {
		return settingsResultMsg{err: model.SaveConfig(path, cfg)}
	}
	return tea.Batch(persist, m.fetchOpenCount())
}

// showNotice sets a transient status notice and schedules its expiry.
func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeID++
	id := m.noticeID
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

// executeCommand runs a command string from the command palette.
// Clearing is destructive and needs to be issued twice in a row.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	if cmd != "clear" && cmd != "clear saved" {
		m.confirmClear = false
	}

	switch {
	case cmd == "save":
		if m.saving {
			return nil
		}
		m.saving = true
		return m.saveOpenTabs()

	case cmd == "restore":
		row, ok := m.tabList.SelectedTab()
		if !ok || row.Pinned {
			return m.showNotice("No saved tab selected")
		}
		return m.restoreTab(row.Tab)

	case cmd == "clear", cmd == "clear saved":
		if !m.confirmClear {
			m.confirmClear = true
			return m.showNotice("This deletes all saved tabs; run :clear again to confirm")
		}
		m.confirmClear = false
		return m.clearSavedTabs()

	case cmd == "saved":
		if m.tabList.Mode() == tablist.ModePinned {
			var c tea.Cmd
			m.tabList, c = m.tabList.ToggleMode()
			return c
		}
		return nil

	case cmd == "pinned":
		if m.tabList.Mode() == tablist.ModeSaved {
			var c tea.Cmd
			m.tabList, c = m.tabList.ToggleMode()
			return c
		}
		return nil

	case cmd == "settings", cmd == "config":
		m.previousView = ViewList
		m.currentView = ViewSettings
		return m.configView.Start(m.cfg)

	case cmd == "feedback":
		return m.sendFeedback()

	case cmd == "clear filters":
		return m.tabList.SetCategoryFilter(nil)

	case strings.HasPrefix(cmd, "filter "):
		name := strings.TrimSpace(strings.TrimPrefix(cmd, "filter "))
		for _, c := range model.DisplayOrder {
			if strings.EqualFold(string(c), name) {
				cat := c
				return m.tabList.SetCategoryFilter(&cat)
			}
		}
		return m.showNotice("Unknown category: " + name)

	case cmd == "quit", cmd == "q":
		return tea.Quit

	default:
		return m.showNotice("Unknown command: " + cmd)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
