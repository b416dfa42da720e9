package tablist

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/theme"
)

// HeaderRow is a collapsible category section header in the list.
type HeaderRow struct {
	Category  model.Category
	Count     int
	Collapsed bool
}

// FilterValue returns "" because the list's built-in filtering is
// disabled; search goes through the store.
func (r HeaderRow) FilterValue() string { return "" }

// TabRow is a single saved or pinned tab entry in the list.
type TabRow struct {
	Tab model.SavedTab

	// Pinned marks rows shown in the pinned view. PinnedID is the
	// entry's ID in the pinned collection, PinnedAt its pin time.
	Pinned   bool
	PinnedID string
	PinnedAt time.Time
}

// FilterValue returns "" because search goes through the store.
func (r TabRow) FilterValue() string { return "" }

// rowDelegate renders header and tab rows.
type rowDelegate struct{}

// Height returns the number of lines each item takes.
func (d rowDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d rowDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list row.
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	isSelected := index == m.Index()

	switch row := item.(type) {
	case HeaderRow:
		d.renderHeader(w, row, isSelected)
	case TabRow:
		d.renderTab(w, row, isSelected)
	}
}

// renderHeader draws a category section header with its collapse state
// and entry count.
func (d rowDelegate) renderHeader(w io.Writer, row HeaderRow, isSelected bool) {
	arrow := "▾"
	if row.Collapsed {
		arrow = "▸"
	}

	label := theme.CategoryStyle(row.Category).Render(string(row.Category))
	line := fmt.Sprintf("%s %s %s", arrow, label,
		theme.DimmedStyle.Render(fmt.Sprintf("(%d)", row.Count)))

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.SectionHeaderStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// renderTab draws one tab entry line.
func (d rowDelegate) renderTab(w io.Writer, row TabRow, isSelected bool) {
	tab := row.Tab

	title := tab.Title
	if strings.TrimSpace(title) == "" {
		title = tab.URL
	}

	host := theme.DimmedStyle.Render(displayHost(tab.URL))

	badge := ""
	if row.Pinned {
		badge = theme.PinBadgeStyle.Render(" ⚲")
	}

	formBadge := ""
	if tab.Category == model.CategoryApplications && tab.FormType != "" {
		formBadge = theme.FormBadgeStyle.Render(" [" + tab.FormType + "]")
	}

	deadline := ""
	if tab.Deadline != "" {
		deadline = theme.DeadlineStyle.Render(" ⏰ " + tab.Deadline)
	}

	when := tab.SavedAt
	if row.Pinned {
		when = row.PinnedAt
	}
	timeStr := theme.DimmedStyle.Render(relativeTime(when))

	line := fmt.Sprintf("  ● %s  %s%s%s%s  %s",
		title, host, badge, formBadge, deadline, timeStr)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// displayHost returns the hostname for a URL, or a shortened raw string
// when the URL does not parse.
func displayHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		if len(rawURL) > 32 {
			return rawURL[:32] + "…"
		}
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
