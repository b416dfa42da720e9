package app

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabstash/tabstash/internal/browser"
	"github.com/tabstash/tabstash/internal/classify"
	"github.com/tabstash/tabstash/internal/logging"
	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/rules"
	"github.com/tabstash/tabstash/internal/store"
	"github.com/tabstash/tabstash/tests/testutil"
)

// fakeBrowser records calls instead of talking to a real endpoint.
type fakeBrowser struct {
	tabs   []browser.Tab
	opened []string
	closed []string

	listErr  error
	openErr  error
	closeErr error
}

func (f *fakeBrowser) ListTabs(_ context.Context) ([]browser.Tab, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tabs, nil
}

func (f *fakeBrowser) OpenTab(_ context.Context, url string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, url)
	return nil
}

func (f *fakeBrowser) CloseTabs(_ context.Context, ids []string) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closed = append(f.closed, ids...)
	return nil
}

func newTestModel(t *testing.T, fb *fakeBrowser) (Model, store.Store) {
	t.Helper()

	s := testutil.NewTestStore(t)
	rs, err := rules.Default()
	require.NoError(t, err)

	cfg := &model.AppConfig{
		Browser: model.BrowserConfig{
			Endpoint:    "http://127.0.0.1:9222",
			CloseOnSave: true,
		},
		Feedback: model.FeedbackConfig{
			FormURL:      "https://example.com/feedback",
			SupportEmail: "support@example.com",
		},
	}

	return New(s, fb, classify.New(rs), cfg, "", logging.Nop()), s
}

func TestSaveOpenTabs(t *testing.T) {
	fb := &fakeBrowser{
		tabs: []browser.Tab{
			{ID: "t1", Title: "user/repo", URL: "https://github.com/user/repo"},
			{ID: "t2", Title: "Random Page", URL: "https://example.com/random"},
			{ID: "t3", Title: "Pinned in browser", URL: "https://example.com/keep", Pinned: true},
		},
	}
	m, s := newTestModel(t, fb)

	msg := m.saveOpenTabs()()
	result, ok := msg.(savedResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)
	assert.Equal(t, 2, result.count)
	assert.True(t, result.closed)

	// Browser-pinned tabs stay open.
	assert.Equal(t, []string{"t1", "t2"}, fb.closed)

	saved, err := s.GetSavedTabs(context.Background(), store.TabFilter{SortBy: "url"})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, model.CategoryUncategorized, saved[0].Category)
	assert.Equal(t, model.CategoryTech, saved[1].Category)
}

func TestSaveOpenTabs_KeepOpen(t *testing.T) {
	fb := &fakeBrowser{
		tabs: []browser.Tab{
			{ID: "t1", Title: "Random Page", URL: "https://example.com/random"},
		},
	}
	m, _ := newTestModel(t, fb)
	m.cfg.Browser.CloseOnSave = false

	msg := m.saveOpenTabs()()
	result, ok := msg.(savedResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)
	assert.Equal(t, 1, result.count)
	assert.False(t, result.closed)
	assert.Empty(t, fb.closed)
}

func TestSaveOpenTabs_NoTabs(t *testing.T) {
	m, _ := newTestModel(t, &fakeBrowser{})

	msg := m.saveOpenTabs()()
	result, ok := msg.(savedResultMsg)
	require.True(t, ok)
	assert.Equal(t, 0, result.count)
	assert.NoError(t, result.err)
}

func TestSaveOpenTabs_BrowserUnreachable(t *testing.T) {
	fb := &fakeBrowser{listErr: errors.New("connection refused")}
	m, s := newTestModel(t, fb)

	msg := m.saveOpenTabs()()
	result, ok := msg.(savedResultMsg)
	require.True(t, ok)
	assert.Error(t, result.err)

	count, err := s.CountSavedTabs(context.Background(), store.TabFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSaveOpenTabs_CloseFailureStillSaves(t *testing.T) {
	fb := &fakeBrowser{
		tabs: []browser.Tab{
			{ID: "t1", Title: "Random Page", URL: "https://example.com/random"},
		},
		closeErr: errors.New("tab vanished"),
	}
	m, s := newTestModel(t, fb)

	msg := m.saveOpenTabs()()
	result, ok := msg.(savedResultMsg)
	require.True(t, ok)
	assert.Equal(t, 1, result.count)
	assert.Error(t, result.err)

	count, err := s.CountSavedTabs(context.Background(), store.TabFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count, "tabs persist even when closing fails")
}

func TestRestoreTab(t *testing.T) {
	fb := &fakeBrowser{}
	m, s := newTestModel(t, fb)
	ctx := context.Background()

	require.NoError(t, s.SaveTabs(ctx, []model.SavedTab{
		{Title: "Random Page", URL: "https://example.com/random"},
	}))
	saved, err := s.GetSavedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	msg := m.restoreTab(saved[0])()
	result, ok := msg.(restoredResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)

	// Restore opens the tab and removes it from the store.
	assert.Equal(t, []string{"https://example.com/random"}, fb.opened)
	count, err := s.CountSavedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRestoreTab_OpenFailureKeepsEntry(t *testing.T) {
	fb := &fakeBrowser{openErr: errors.New("connection refused")}
	m, s := newTestModel(t, fb)
	ctx := context.Background()

	require.NoError(t, s.SaveTabs(ctx, []model.SavedTab{
		{Title: "Random Page", URL: "https://example.com/random"},
	}))
	saved, err := s.GetSavedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)

	msg := m.restoreTab(saved[0])()
	result, ok := msg.(restoredResultMsg)
	require.True(t, ok)
	assert.Error(t, result.err)

	count, err := s.CountSavedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the entry survives a failed restore")
}

func TestPinTab_Duplicate(t *testing.T) {
	m, _ := newTestModel(t, &fakeBrowser{})
	tab := model.SavedTab{Title: "Docs", URL: "https://example.com/docs"}

	msg := m.pinTab(tab)()
	result, ok := msg.(pinnedResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)
	assert.False(t, result.duplicate)

	msg = m.pinTab(tab)()
	result, ok = msg.(pinnedResultMsg)
	require.True(t, ok)
	assert.True(t, result.duplicate)
	assert.NoError(t, result.err)
}

func TestSendFeedback_OpensForm(t *testing.T) {
	fb := &fakeBrowser{}
	m, _ := newTestModel(t, fb)

	msg := m.sendFeedback()()
	result, ok := msg.(feedbackResultMsg)
	require.True(t, ok)
	assert.NoError(t, result.err)
	assert.Empty(t, result.copiedEmail)
	assert.Equal(t, []string{"https://example.com/feedback"}, fb.opened)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde…", truncate("abcdefgh", 5))

	// Multibyte titles must never be cut mid-rune.
	got := truncate("日本語のタブタイトル", 4)
	assert.Equal(t, "日本語の…", got)
	assert.True(t, utf8.ValidString(got))
}

func TestFetchOpenCount(t *testing.T) {
	fb := &fakeBrowser{
		tabs: []browser.Tab{
			{ID: "t1", URL: "https://example.com/a"},
			{ID: "t2", URL: "https://example.com/b"},
		},
	}
	m, _ := newTestModel(t, fb)

	msg := m.fetchOpenCount()()
	result, ok := msg.(openCountMsg)
	require.True(t, ok)
	assert.True(t, result.ok)
	assert.Equal(t, 2, result.count)
}

func TestFetchOpenCount_Unreachable(t *testing.T) {
	fb := &fakeBrowser{listErr: errors.New("connection refused")}
	m, _ := newTestModel(t, fb)

	msg := m.fetchOpenCount()()
	result, ok := msg.(openCountMsg)
	require.True(t, ok)
	assert.False(t, result.ok)
}
