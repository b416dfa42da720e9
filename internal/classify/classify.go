// Package classify assigns exactly one category to each saved tab using
// a first-match-wins rule chain: form detection, then the domain table,
// then per-category keyword lists. It is a heuristic, not a classifier
// with guarantees; overlapping keywords can and do misfire, and that is
// accepted.
package classify

import (
	"net/url"
	"strings"

	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/rules"
)

// Classifier applies a ruleset to tabs. It is pure and safe to share;
// all state is the immutable rule tables.
type Classifier struct {
	rules *rules.Ruleset
}

// New creates a Classifier over the given ruleset.
func New(rs *rules.Ruleset) *Classifier {
	return &Classifier{rules: rs}
}

// Categorize fills in Category, FormType, and Deadline on a single tab
// and returns it. The checks run in fixed order and the first match
// wins:
//
//  1. form detection -> Applications
//  2. domain table (exact, dot-suffix, substring)
//  3. category keyword lists in table order
//  4. Uncategorized
func (c *Classifier) Categorize(tab model.SavedTab) model.SavedTab {
	tab.FormType = ""
	tab.Deadline = ""

	if m := c.DetectForm(tab.Title, tab.URL); m.IsForm {
		tab.Category = model.CategoryApplications
		tab.FormType = m.FormType
		tab.Deadline = m.Deadline
		return tab
	}

	if cat, ok := c.categoryForDomain(tab.URL); ok {
		tab.Category = cat
		return tab
	}

	search := strings.ToLower(tab.Title) + " " + strings.ToLower(tab.URL)
	for _, rule := range c.rules.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(search, kw) {
				tab.Category = rule.Category
				return tab
			}
		}
	}

	tab.Category = model.CategoryUncategorized
	return tab
}

// CategorizeAll maps Categorize over a batch of tabs.
func (c *Classifier) CategorizeAll(tabs []model.SavedTab) []model.SavedTab {
	out := make([]model.SavedTab, len(tabs))
	for i, tab := range tabs {
		out[i] = c.Categorize(tab)
	}
	return out
}

// categoryForDomain matches the tab's hostname against the domain
// table. Each pass scans the table in order, so a hostname that could
// hit several entries resolves to the same one every run. A URL that
// fails to parse degrades to an empty domain and falls through to
// keyword matching.
func (c *Classifier) categoryForDomain(rawURL string) (model.Category, bool) {
	host := hostname(rawURL)
	if host == "" {
		return "", false
	}

	if cat, ok := c.rules.Domains.Category(host); ok {
		return cat, true
	}
	for _, rule := range c.rules.Domains {
		if strings.HasSuffix(host, "."+rule.Domain) {
			return rule.Category, true
		}
	}
	for _, rule := range c.rules.Domains {
		if strings.Contains(host, rule.Domain) {
			return rule.Category, true
		}
	}
	return "", false
}

// hostname extracts the lower-cased host from rawURL with any leading
// www. stripped. Parse failures return "".
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
