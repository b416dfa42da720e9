// Package browser abstracts the host browser's tab surface. The store
// and classifier never talk to a browser directly; they only see the
// Browser interface, so tests substitute a fake.
package browser

import "context"

// Tab is an open browser tab as reported by the host.
type Tab struct {
	// ID is the host's identifier for the tab (a DevTools target ID).
	ID string `json:"id"`

	Title      string `json:"title"`
	URL        string `json:"url"`
	FavIconURL string `json:"faviconUrl"`

	// Pinned marks tabs pinned inside the browser itself. Those are
	// excluded from snapshots. The DevTools /json/list payload does not
	// expose pin state, so DevToolsClient always reports false here;
	// only hosts that surface pin state can populate it.
	Pinned bool `json:"-"`
}

// Browser is the host tab-control surface consumed by the app:
// enumerate open tabs, open a URL, close a set of tabs.
type Browser interface {
	ListTabs(ctx context.Context) ([]Tab, error)
	OpenTab(ctx context.Context, url string) error
	CloseTabs(ctx context.Context, ids []string) error
}
