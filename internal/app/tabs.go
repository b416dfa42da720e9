package app

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/store"
)

// opTimeout bounds every store/browser call issued from a handler.
const opTimeout = 10 * time.Second

// savedResultMsg reports the outcome of a snapshot save.
type savedResultMsg struct {
	count  int
	closed bool
	err    error
}

// restoredResultMsg reports the outcome of a restore (open + remove).
type restoredResultMsg struct {
	title string
	err   error
}

// openedResultMsg reports the outcome of opening a URL.
type openedResultMsg struct{ err error }

// deletedResultMsg reports the outcome of a delete.
type deletedResultMsg struct{ err error }

// pinnedResultMsg reports the outcome of a pin attempt.
type pinnedResultMsg struct {
	duplicate bool
	title     string
	err       error
}

// unpinnedResultMsg reports the outcome of an unpin.
type unpinnedResultMsg struct{ err error }

// clearedResultMsg reports the outcome of clearing the saved collection.
type clearedResultMsg struct{ err error }

// updatedResultMsg reports the outcome of an edit-form submit.
type updatedResultMsg struct{ err error }

// feedbackResultMsg reports how the feedback request was satisfied.
type feedbackResultMsg struct {
	copiedEmail string
	err         error
}

// openCountMsg carries the current number of open browser tabs.
type openCountMsg struct {
	count int
	ok    bool
}

// saveOpenTabs snapshots the browser: enumerate, categorize, persist,
// then close the originals. Each step is wrapped individually; a
// failure leaves earlier steps applied and reports the error.
func (m *Model) saveOpenTabs() tea.Cmd {
	br := m.browser
	s := m.store
	cls := m.classifier
	closeOriginals := m.cfg.Browser.CloseOnSave
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		open, err := br.ListTabs(ctx)
		if err != nil {
			log.Error("listing open tabs failed", zap.Error(err))
			return savedResultMsg{err: err}
		}
		if len(open) == 0 {
			return savedResultMsg{count: 0}
		}

		tabs := make([]model.SavedTab, 0, len(open))
		ids := make([]string, 0, len(open))
		for _, t := range open {
			if t.Pinned {
				continue
			}
			tabs = append(tabs, cls.Categorize(model.SavedTab{
				Title:      t.Title,
				URL:        t.URL,
				FavIconURL: t.FavIconURL,
			}))
			ids = append(ids, t.ID)
		}

		if err := s.SaveTabs(ctx, tabs); err != nil {
			log.Error("persisting tabs failed", zap.Error(err), zap.Int("count", len(tabs)))
			return savedResultMsg{err: err}
		}

		if !closeOriginals {
			return savedResultMsg{count: len(tabs)}
		}

		if err := br.CloseTabs(ctx, ids); err != nil {
			// The tabs are already saved; losing the close is the
			// smaller problem.
			log.Warn("closing originals failed", zap.Error(err))
			return savedResultMsg{count: len(tabs), err: err}
		}

		return savedResultMsg{count: len(tabs), closed: true}
	}
}

// restoreTab reopens a saved tab in the browser and removes it from
// the store.
func (m *Model) restoreTab(tab model.SavedTab) tea.Cmd {
	br := m.browser
	s := m.store
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := br.OpenTab(ctx, tab.URL); err != nil {
			log.Error("reopening tab failed", zap.Error(err), zap.String("url", tab.URL))
			return restoredResultMsg{err: err}
		}
		if err := s.DeleteSavedTab(ctx, tab.ID); err != nil {
			log.Error("removing restored tab failed", zap.Error(err), zap.String("id", tab.ID))
			return restoredResultMsg{err: err}
		}
		return restoredResultMsg{title: tab.Title}
	}
}

// openURL opens a URL without touching the store.
func (m *Model) openURL(url string) tea.Cmd {
	br := m.browser
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := br.OpenTab(ctx, url); err != nil {
			log.Error("opening tab failed", zap.Error(err), zap.String("url", url))
			return openedResultMsg{err: err}
		}
		return openedResultMsg{}
	}
}

// deleteTab removes a saved tab from the store.
func (m *Model) deleteTab(id string) tea.Cmd {
	s := m.store
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := s.DeleteSavedTab(ctx, id); err != nil {
			log.Error("deleting tab failed", zap.Error(err), zap.String("id", id))
			return deletedResultMsg{err: err}
		}
		return deletedResultMsg{}
	}
}

// pinTab copies a saved tab into the pinned collection. A duplicate
// URL is reported as a notice, not an error.
func (m *Model) pinTab(tab model.SavedTab) tea.Cmd {
	s := m.store
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		err := s.PinTab(ctx, tab)
		if errors.Is(err, store.ErrAlreadyPinned) {
			return pinnedResultMsg{duplicate: true, title: tab.Title}
		}
		if err != nil {
			log.Error("pinning tab failed", zap.Error(err), zap.String("url", tab.URL))
			return pinnedResultMsg{err: err}
		}
		return pinnedResultMsg{title: tab.Title}
	}
}

// unpinTab removes an entry from the pinned collection.
func (m *Model) unpinTab(id string) tea.Cmd {
	s := m.store
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := s.UnpinTab(ctx, id); err != nil {
			log.Error("unpinning tab failed", zap.Error(err), zap.String("id", id))
			return unpinnedResultMsg{err: err}
		}
		return unpinnedResultMsg{}
	}
}

// clearSavedTabs empties the saved collection. Pinned tabs survive.
func (m *Model) clearSavedTabs() tea.Cmd {
	s := m.store
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := s.ClearSavedTabs(ctx); err != nil {
			log.Error("clearing saved tabs failed", zap.Error(err))
			return clearedResultMsg{err: err}
		}
		return clearedResultMsg{}
	}
}

// updateTab persists an edit-form result.
func (m *Model) updateTab(tab model.SavedTab) tea.Cmd {
	s := m.store
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := s.UpdateSavedTab(ctx, tab); err != nil {
			log.Error("updating tab failed", zap.Error(err), zap.String("id", tab.ID))
			return updatedResultMsg{err: err}
		}
		return updatedResultMsg{}
	}
}

// sendFeedback opens the feedback form in the browser; when that
// fails, the support email lands on the clipboard instead.
func (m *Model) sendFeedback() tea.Cmd {
	br := m.browser
	formURL := m.cfg.Feedback.FormURL
	email := m.cfg.Feedback.SupportEmail
	log := m.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		err := br.OpenTab(ctx, formURL)
		if err == nil {
			return feedbackResultMsg{}
		}
		log.Warn("opening feedback form failed", zap.Error(err))

		if err := clipboard.WriteAll(email); err != nil {
			return feedbackResultMsg{err: err}
		}
		return feedbackResultMsg{copiedEmail: email}
	}
}

// fetchOpenCount asks the browser how many tabs are open, for the
// header summary. Failures just hide the count.
func (m *Model) fetchOpenCount() tea.Cmd {
	br := m.browser

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		tabs, err := br.ListTabs(ctx)
		if err != nil {
			return openCountMsg{}
		}
		return openCountMsg{count: len(tabs), ok: true}
	}
}
