package model

import "time"

// Category is the single grouping label assigned to a saved tab.
type Category string

const (
	CategoryApplications  Category = "Applications"
	CategoryAI            Category = "AI"
	CategoryWork          Category = "Work"
	CategorySocial        Category = "Social"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryNews          Category = "News"
	CategoryTech          Category = "Tech"
	CategoryEducation     Category = "Education"
	CategoryReference     Category = "Reference"
	CategoryUncategorized Category = "Uncategorized"
)

// DisplayOrder is the fixed priority in which category sections are
// rendered. Applications always come first so deadline-bearing tabs
// stay visible.
var DisplayOrder = []Category{
	CategoryApplications,
	CategoryAI,
	CategoryWork,
	CategoryTech,
	CategoryEducation,
	CategoryNews,
	CategorySocial,
	CategoryEntertainment,
	CategoryShopping,
	CategoryReference,
	CategoryUncategorized,
}

// KnownCategory reports whether c is one of the enumerated categories.
func KnownCategory(c Category) bool {
	for _, k := range DisplayOrder {
		if c == k {
			return true
		}
	}
	return false
}

// SavedTab is a browser tab captured into the local store.
type SavedTab struct {
	// ID is the internal unique identifier for this entry. Generated
	// as a UUID so rapid consecutive saves never collide.
	ID string `json:"id" db:"id"`

	// Title and URL are captured from the browser at save time.
	Title string `json:"title" db:"title"`
	URL   string `json:"url" db:"url"`

	// FavIconURL is the tab's favicon location, when the browser
	// reported one.
	FavIconURL string `json:"fav_icon_url,omitempty" db:"fav_icon_url"`

	// SavedAt is when the tab was captured.
	SavedAt time.Time `json:"saved_at" db:"saved_at"`

	// Category is the heuristic grouping label (use Category* constants).
	Category Category `json:"category" db:"category"`

	// FormType names the kind of form/application page detected.
	// Only meaningful when Category is Applications.
	FormType string `json:"form_type,omitempty" db:"form_type"`

	// Deadline is an opaque date-like substring extracted from the
	// title. Stored exactly as matched, never parsed.
	Deadline string `json:"deadline,omitempty" db:"deadline"`
}

// PinnedTab is a saved tab promoted to the long-term reference list.
// Pinned tabs live in their own collection and are unique by URL.
type PinnedTab struct {
	SavedTab

	// PinnedAt is when the tab was pinned.
	PinnedAt time.Time `json:"pinned_at" db:"pinned_at"`
}
