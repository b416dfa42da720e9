package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/store"
	"github.com/tabstash/tabstash/tests/testutil"
)

func TestPinTab(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tab := model.SavedTab{
		Title:    "user/repo: a CLI tool",
		URL:      "https://github.com/user/repo",
		Category: model.CategoryTech,
	}
	require.NoError(t, s.PinTab(ctx, tab))

	pinned, err := s.GetPinnedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	assert.Equal(t, tab.URL, pinned[0].URL)
	assert.Equal(t, model.CategoryTech, pinned[0].Category)
	assert.NotEmpty(t, pinned[0].ID)
	assert.False(t, pinned[0].PinnedAt.IsZero())
}

func TestPinTab_DeduplicatesByURL(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tab := model.SavedTab{Title: "Docs", URL: "https://example.com/docs"}
	require.NoError(t, s.PinTab(ctx, tab))

	// Same URL again, even with a different title, is rejected.
	tab.Title = "Docs (updated)"
	err := s.PinTab(ctx, tab)
	assert.ErrorIs(t, err, store.ErrAlreadyPinned)

	pinned, err := s.GetPinnedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	assert.Len(t, pinned, 1)
	assert.Equal(t, "Docs", pinned[0].Title, "first pin wins")
}

func TestPinTab_KeepsSavedEntry(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	saved := model.SavedTab{Title: "Keep me", URL: "https://example.com/keep"}
	require.NoError(t, s.SaveTabs(ctx, []model.SavedTab{saved}))

	tabs, err := s.GetSavedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	require.Len(t, tabs, 1)

	require.NoError(t, s.PinTab(ctx, tabs[0]))

	// Pinning copies; the saved entry is still there.
	count, err := s.CountSavedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// And the pinned copy has its own ID.
	pinned, err := s.GetPinnedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	assert.NotEqual(t, tabs[0].ID, pinned[0].ID)
}

func TestUnpinTab(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PinTab(ctx, model.SavedTab{
		Title: "Docs", URL: "https://example.com/docs",
	}))

	pinned, err := s.GetPinnedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	require.Len(t, pinned, 1)

	require.NoError(t, s.UnpinTab(ctx, pinned[0].ID))

	pinned, err = s.GetPinnedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	assert.Empty(t, pinned)

	// The URL can be pinned again after unpinning.
	assert.NoError(t, s.PinTab(ctx, model.SavedTab{
		Title: "Docs", URL: "https://example.com/docs",
	}))
}

func TestUnpinTab_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.UnpinTab(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIsPinned(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	ok, err := s.IsPinned(ctx, "https://example.com/docs")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PinTab(ctx, model.SavedTab{
		Title: "Docs", URL: "https://example.com/docs",
	}))

	ok, err = s.IsPinned(ctx, "https://example.com/docs")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClearSavedTabs_LeavesPinned(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTabs(ctx, []model.SavedTab{
		{Title: "Saved", URL: "https://example.com/saved"},
	}))
	require.NoError(t, s.PinTab(ctx, model.SavedTab{
		Title: "Pinned", URL: "https://example.com/pinned",
	}))

	require.NoError(t, s.ClearSavedTabs(ctx))

	count, err := s.CountSavedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	pinned, err := s.GetPinnedTabs(ctx, store.TabFilter{})
	require.NoError(t, err)
	assert.Len(t, pinned, 1)
}

func TestGetPinnedTabs_FilterByCategory(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PinTab(ctx, model.SavedTab{
		Title: "Repo", URL: "https://github.com/user/repo",
		Category: model.CategoryTech,
	}))
	require.NoError(t, s.PinTab(ctx, model.SavedTab{
		Title: "Random", URL: "https://example.com/random",
	}))

	cat := model.CategoryTech
	pinned, err := s.GetPinnedTabs(ctx, store.TabFilter{Category: &cat})
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	assert.Equal(t, "Repo", pinned[0].Title)
}
