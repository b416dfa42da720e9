package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// internalSchemes are host-internal pages that never belong in a
// snapshot.
var internalSchemes = []string{
	"chrome://",
	"chrome-extension://",
	"devtools://",
	"edge://",
	"about:",
}

// DevToolsClient talks to a Chromium-family browser through its remote
// debugging JSON endpoint (started with --remote-debugging-port). It is
// a thin HTTP client; every method is a single request.
type DevToolsClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewDevToolsClient creates a client for the DevTools endpoint root,
// e.g. http://127.0.0.1:9222.
func NewDevToolsClient(endpoint string) *DevToolsClient {
	return &DevToolsClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// target is the DevTools JSON description of one debuggable target.
type target struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	FavIconURL string `json:"faviconUrl"`
}

// ListTabs returns the open page tabs in the current browser session.
// Non-page targets (workers, extensions) and internal scheme pages are
// filtered out. The endpoint carries no pin state, so every returned
// tab has Pinned false.
func (c *DevToolsClient) ListTabs(ctx context.Context) ([]Tab, error) {
	var targets []target
	if err := c.get(ctx, "/json/list", &targets); err != nil {
		return nil, fmt.Errorf("listing tabs: %w", err)
	}

	var tabs []Tab
	for _, t := range targets {
		if t.Type != "page" {
			continue
		}
		if isInternalURL(t.URL) {
			continue
		}
		tabs = append(tabs, Tab{
			ID:         t.ID,
			Title:      t.Title,
			URL:        t.URL,
			FavIconURL: t.FavIconURL,
		})
	}

	return tabs, nil
}

// OpenTab opens a new browser tab at rawURL.
func (c *DevToolsClient) OpenTab(ctx context.Context, rawURL string) error {
	path := "/json/new?" + url.QueryEscape(rawURL)
	// Newer Chromium versions require PUT for /json/new.
	if err := c.do(ctx, http.MethodPut, path, nil); err != nil {
		return fmt.Errorf("opening tab %s: %w", rawURL, err)
	}
	return nil
}

// CloseTabs closes each identified tab. The first failure aborts; tabs
// closed before it stay closed, which matches the best-effort contract.
func (c *DevToolsClient) CloseTabs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := c.do(ctx, http.MethodGet, "/json/close/"+id, nil); err != nil {
			return fmt.Errorf("closing tab %s: %w", id, err)
		}
	}
	return nil
}

// get performs a GET request and unmarshals the JSON response.
func (c *DevToolsClient) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, result)
}

// do executes one request against the endpoint. A nil result discards
// the body.
func (c *DevToolsClient) do(
	ctx context.Context,
	method string,
	path string,
	result interface{},
) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("devtools endpoint returned %d for %s %s: %s",
			resp.StatusCode, method, path, strings.TrimSpace(string(body)))
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshaling response from %s: %w", path, err)
		}
	}

	return nil
}

// isInternalURL reports whether rawURL uses a host-internal scheme.
func isInternalURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, scheme := range internalSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
