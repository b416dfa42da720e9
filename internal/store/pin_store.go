package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tabstash/tabstash/internal/model"
)

// PinTab copies a saved tab into the pinned collection. Pinned tabs are
// unique by URL; pinning an already-pinned URL returns ErrAlreadyPinned
// and leaves the collection unchanged.
func (s *SQLiteStore) PinTab(ctx context.Context, tab model.SavedTab) error {
	pinned, err := s.IsPinned(ctx, tab.URL)
	if err != nil {
		return err
	}
	if pinned {
		return fmt.Errorf("pinning %s: %w", tab.URL, ErrAlreadyPinned)
	}

	now := time.Now().UTC()
	if tab.SavedAt.IsZero() {
		tab.SavedAt = now
	}
	if tab.Category == "" {
		tab.Category = model.CategoryUncategorized
	}

	// The pinned entry gets its own ID so unpinning never touches the
	// saved collection.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pinned_tabs (
			id, title, url, fav_icon_url,
			category, form_type, deadline, saved_at, pinned_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), tab.Title, tab.URL, tab.FavIconURL,
		string(tab.Category), tab.FormType, tab.Deadline,
		tab.SavedAt.UTC(), now,
	)
	if err != nil {
		return fmt.Errorf("pinning tab %s: %w", tab.URL, err)
	}

	return nil
}

// GetPinnedTabs retrieves pinned tabs matching the filter, newest
// pins first by default.
func (s *SQLiteStore) GetPinnedTabs(
	ctx context.Context,
	filter TabFilter,
) ([]model.PinnedTab, error) {
	if filter.SortBy == "" {
		filter.SortBy = "pinned_at"
		filter.SortDesc = true
	}
	query, args := buildTabQuery("SELECT * FROM pinned_tabs", filter)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pinned tabs: %w", err)
	}
	defer rows.Close()

	var tabs []model.PinnedTab
	for rows.Next() {
		tab, err := scanPinnedTab(rows)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, tab)
	}

	return tabs, rows.Err()
}

// UnpinTab removes a pinned tab by ID.
func (s *SQLiteStore) UnpinTab(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pinned_tabs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("unpinning tab %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("pinned tab %s: %w", id, ErrNotFound)
	}
	return nil
}

// IsPinned reports whether a URL is already in the pinned collection.
func (s *SQLiteStore) IsPinned(ctx context.Context, url string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM pinned_tabs WHERE url = ?", url)
	if err != nil {
		return false, fmt.Errorf("checking pinned url %s: %w", url, err)
	}
	return count > 0, nil
}

// scanPinnedTab scans a pinned_tabs row.
func scanPinnedTab(row interface{ Scan(dest ...interface{}) error }) (model.PinnedTab, error) {
	var (
		tab      model.PinnedTab
		category string
		savedAt  time.Time
		pinnedAt time.Time
	)

	err := row.Scan(
		&tab.ID, &tab.Title, &tab.URL, &tab.FavIconURL,
		&category, &tab.FormType, &tab.Deadline, &savedAt, &pinnedAt,
	)
	if err != nil {
		return model.PinnedTab{}, fmt.Errorf("scanning pinned tab row: %w", err)
	}

	tab.Category = model.Category(category)
	tab.SavedAt = savedAt
	tab.PinnedAt = pinnedAt

	return tab, nil
}
