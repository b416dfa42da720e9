package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tabstash/tabstash/internal/model"
)

// SaveTabs appends a batch of saved tabs in one transaction. IDs and
// SavedAt are filled in when missing. Duplicate URLs are allowed here;
// only the pinned collection deduplicates.
func (s *SQLiteStore) SaveTabs(ctx context.Context, tabs []model.SavedTab) error {
	if len(tabs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO saved_tabs (
			id, title, url, fav_icon_url,
			category, form_type, deadline, saved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, t := range tabs {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if t.SavedAt.IsZero() {
			t.SavedAt = now
		}
		if t.Category == "" {
			t.Category = model.CategoryUncategorized
		}

		_, err = stmt.ExecContext(ctx,
			t.ID, t.Title, t.URL, t.FavIconURL,
			string(t.Category), t.FormType, t.Deadline, t.SavedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("saving tab %s: %w", t.URL, err)
		}
	}

	return tx.Commit()
}

// GetSavedTabs retrieves saved tabs matching the filter.
func (s *SQLiteStore) GetSavedTabs(
	ctx context.Context,
	filter TabFilter,
) ([]model.SavedTab, error) {
	query, args := buildTabQuery("SELECT * FROM saved_tabs", filter)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying saved tabs: %w", err)
	}
	defer rows.Close()

	var tabs []model.SavedTab
	for rows.Next() {
		tab, err := scanSavedTab(rows)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, tab)
	}

	return tabs, rows.Err()
}

// GetSavedTabByID retrieves a single saved tab by ID.
func (s *SQLiteStore) GetSavedTabByID(
	ctx context.Context,
	id string,
) (*model.SavedTab, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM saved_tabs WHERE id = ?", id)

	tab, err := scanSavedTab(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saved tab %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting saved tab %s: %w", id, err)
	}

	return &tab, nil
}

// UpdateSavedTab updates the mutable fields of a saved tab
// (title, category, form type, deadline).
func (s *SQLiteStore) UpdateSavedTab(ctx context.Context, tab model.SavedTab) error {
	if strings.TrimSpace(tab.Title) == "" {
		return fmt.Errorf("tab title must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE saved_tabs SET
			title = ?, category = ?, form_type = ?, deadline = ?
		WHERE id = ?`,
		tab.Title, string(tab.Category), tab.FormType, tab.Deadline,
		tab.ID,
	)
	if err != nil {
		return fmt.Errorf("updating saved tab %s: %w", tab.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("saved tab %s: %w", tab.ID, ErrNotFound)
	}
	return nil
}

// DeleteSavedTab removes a saved tab by ID.
func (s *SQLiteStore) DeleteSavedTab(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM saved_tabs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting saved tab %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("saved tab %s: %w", id, ErrNotFound)
	}
	return nil
}

// ClearSavedTabs empties the saved collection. The pinned collection
// is untouched.
func (s *SQLiteStore) ClearSavedTabs(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM saved_tabs"); err != nil {
		return fmt.Errorf("clearing saved tabs: %w", err)
	}
	return nil
}

// CountSavedTabs returns the number of saved tabs matching the filter.
func (s *SQLiteStore) CountSavedTabs(
	ctx context.Context,
	filter TabFilter,
) (int, error) {
	// Sorting and pagination are irrelevant for a count.
	filter.SortBy = ""
	filter.Limit = 0
	filter.Offset = 0
	query, args := buildTabQuery("SELECT COUNT(*) FROM saved_tabs", filter)

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("counting saved tabs: %w", err)
	}
	return count, nil
}

// buildTabQuery constructs the SQL query and args for a TabFilter.
// The same filter shape applies to both tab tables.
func buildTabQuery(selectClause string, filter TabFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR url LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := selectClause
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := "saved_at"
	if filter.SortBy != "" {
		allowed := map[string]bool{
			"saved_at":  true,
			"pinned_at": true,
			"title":     true,
			"category":  true,
			"url":       true,
		}
		if allowed[filter.SortBy] {
			sortBy = filter.SortBy
		}
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return query, args
}

// scanSavedTab scans a saved_tabs row.
func scanSavedTab(row interface{ Scan(dest ...interface{}) error }) (model.SavedTab, error) {
	var (
		tab      model.SavedTab
		category string
		savedAt  time.Time
	)

	err := row.Scan(
		&tab.ID, &tab.Title, &tab.URL, &tab.FavIconURL,
		&category, &tab.FormType, &tab.Deadline, &savedAt,
	)
	if err != nil {
		return model.SavedTab{}, fmt.Errorf("scanning saved tab row: %w", err)
	}

	tab.Category = model.Category(category)
	tab.SavedAt = savedAt

	return tab, nil
}
