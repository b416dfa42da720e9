package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTabs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/json/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "t1", "type": "page", "title": "user/repo", "url": "https://github.com/user/repo", "faviconUrl": "https://github.com/favicon.ico"},
			{"id": "t2", "type": "page", "title": "Settings", "url": "chrome://settings/"},
			{"id": "t3", "type": "service_worker", "title": "sw", "url": "https://example.com/sw.js"},
			{"id": "t4", "type": "page", "title": "New Tab", "url": "about:blank"},
			{"id": "t5", "type": "page", "title": "Random Page", "url": "https://example.com/random"}
		]`))
	}))
	defer srv.Close()

	c := NewDevToolsClient(srv.URL)
	tabs, err := c.ListTabs(context.Background())
	require.NoError(t, err)

	// Only real page tabs survive filtering.
	require.Len(t, tabs, 2)
	assert.Equal(t, "t1", tabs[0].ID)
	assert.Equal(t, "user/repo", tabs[0].Title)
	assert.Equal(t, "https://github.com/favicon.ico", tabs[0].FavIconURL)
	assert.Equal(t, "t5", tabs[1].ID)

	// The endpoint has no pin state to report.
	for _, tab := range tabs {
		assert.False(t, tab.Pinned)
	}
}

func TestListTabs_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewDevToolsClient(srv.URL)
	tabs, err := c.ListTabs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tabs)
}

func TestListTabs_EndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewDevToolsClient(srv.URL)
	_, err := c.ListTabs(context.Background())
	assert.ErrorContains(t, err, "500")
}

func TestListTabs_Unreachable(t *testing.T) {
	// Grab a port that is guaranteed closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c := NewDevToolsClient(endpoint)
	_, err := c.ListTabs(context.Background())
	assert.Error(t, err)
}

func TestOpenTab(t *testing.T) {
	var gotMethod, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"id": "new"}`))
	}))
	defer srv.Close()

	c := NewDevToolsClient(srv.URL)
	err := c.OpenTab(context.Background(), "https://example.com/a?b=c")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, url.QueryEscape("https://example.com/a?b=c"), gotQuery)
}

func TestCloseTabs(t *testing.T) {
	var closed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		closed = append(closed, r.URL.Path)
		_, _ = w.Write([]byte("Target is closing"))
	}))
	defer srv.Close()

	c := NewDevToolsClient(srv.URL)
	require.NoError(t, c.CloseTabs(context.Background(), []string{"t1", "t2"}))

	assert.Equal(t, []string{"/json/close/t1", "/json/close/t2"}, closed)
}

func TestCloseTabs_StopsOnFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls > 1 {
			http.Error(w, "no such target", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("Target is closing"))
	}))
	defer srv.Close()

	c := NewDevToolsClient(srv.URL)
	err := c.CloseTabs(context.Background(), []string{"t1", "t2", "t3"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "t2")
	assert.Equal(t, 2, calls)
}

func TestIsInternalURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"chrome://settings/", true},
		{"chrome-extension://abcdef/popup.html", true},
		{"devtools://devtools/bundled/inspector.html", true},
		{"edge://flags/", true},
		{"about:blank", true},
		{"ABOUT:BLANK", true},
		{"https://example.com/", false},
		{"http://chrome.com/", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isInternalURL(tt.url), "url %q", tt.url)
	}
}
