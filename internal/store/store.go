package store

import (
	"context"
	"errors"

	"github.com/tabstash/tabstash/internal/model"
)

// ErrNotFound is returned when a lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

// ErrAlreadyPinned is returned when pinning a URL that is already in
// the pinned collection. Callers surface it as a notice, not a failure.
var ErrAlreadyPinned = errors.New("tab already pinned")

// TabFilter controls filtering, sorting, and pagination for tab queries.
type TabFilter struct {
	Category *model.Category // nil = all categories
	Query    *string         // substring over title + URL
	SortBy   string          // "saved_at", "pinned_at", "title", "category", "url"
	SortDesc bool
	Limit    int
	Offset   int
}

// Store defines the persistence interface for saved and pinned tabs.
type Store interface {
	// === Saved tabs ===

	SaveTabs(ctx context.Context, tabs []model.SavedTab) error
	GetSavedTabs(ctx context.Context, filter TabFilter) ([]model.SavedTab, error)
	GetSavedTabByID(ctx context.Context, id string) (*model.SavedTab, error)
	UpdateSavedTab(ctx context.Context, tab model.SavedTab) error
	DeleteSavedTab(ctx context.Context, id string) error
	ClearSavedTabs(ctx context.Context) error
	CountSavedTabs(ctx context.Context, filter TabFilter) (int, error)

	// === Pinned tabs ===

	PinTab(ctx context.Context, tab model.SavedTab) error
	GetPinnedTabs(ctx context.Context, filter TabFilter) ([]model.PinnedTab, error)
	UnpinTab(ctx context.Context, id string) error
	IsPinned(ctx context.Context, url string) (bool, error)
}
