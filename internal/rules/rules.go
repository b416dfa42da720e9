// Package rules loads the static categorization tables used by the
// classifier. The tables are data, not code: a default set is embedded
// in the binary and a user-provided YAML file can replace it.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tabstash/tabstash/internal/model"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// DomainRule pairs a hostname with a category. Rules are evaluated in
// table order; the first match wins.
type DomainRule struct {
	Domain   string
	Category model.Category
}

// DomainTable is the ordered hostname-to-category table. It unmarshals
// from a YAML mapping and keeps the entries in file order, so matching
// stays deterministic when a hostname could hit more than one entry.
type DomainTable []DomainRule

func (t *DomainTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("domains: expected a mapping, got %v", node.Kind)
	}

	out := make(DomainTable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var rule DomainRule
		if err := node.Content[i].Decode(&rule.Domain); err != nil {
			return fmt.Errorf("domains: %w", err)
		}
		if err := node.Content[i+1].Decode(&rule.Category); err != nil {
			return fmt.Errorf("domain %s: %w", rule.Domain, err)
		}
		out = append(out, rule)
	}
	*t = out
	return nil
}

// Category returns the category for an exact domain entry.
func (t DomainTable) Category(domain string) (model.Category, bool) {
	for _, rule := range t {
		if rule.Domain == domain {
			return rule.Category, true
		}
	}
	return "", false
}

// CategoryRule pairs a category with its keyword list. Rules are
// evaluated in slice order; the first keyword hit wins.
type CategoryRule struct {
	Category model.Category `yaml:"category"`
	Keywords []string       `yaml:"keywords"`
}

// FormRule pairs a form type with its keyword list. Rules are evaluated
// in slice order; the first keyword hit wins.
type FormRule struct {
	Type     string   `yaml:"type"`
	Keywords []string `yaml:"keywords"`
}

// Ruleset holds all pattern tables used for categorization.
type Ruleset struct {
	// Domains is the ordered hostname (without leading www.) to
	// category table.
	Domains DomainTable `yaml:"domains"`

	// Categories is the ordered list of per-category keyword rules.
	Categories []CategoryRule `yaml:"categories"`

	// Forms is the ordered list of form-type keyword rules.
	Forms []FormRule `yaml:"forms"`

	// FormIndicators is the generic fallback list: any hit marks the
	// page as a form of type "general".
	FormIndicators []string `yaml:"form_indicators"`
}

// Default returns the embedded rule tables.
func Default() (*Ruleset, error) {
	return parse(defaultRulesYAML)
}

// Load reads rule tables from the YAML file at path. An empty path
// falls back to the embedded defaults.
func Load(path string) (*Ruleset, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}

	rs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return rs, nil
}

// parse unmarshals and validates a ruleset.
func parse(data []byte) (*Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("unmarshaling rules: %w", err)
	}
	if err := rs.validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// validate checks the tables for entries the classifier cannot use.
func (rs *Ruleset) validate() error {
	for _, rule := range rs.Domains {
		if strings.TrimSpace(rule.Domain) == "" {
			return fmt.Errorf("domain table contains an empty hostname")
		}
		if !model.KnownCategory(rule.Category) {
			return fmt.Errorf("domain %s maps to unknown category %q", rule.Domain, rule.Category)
		}
	}

	for _, rule := range rs.Categories {
		if !model.KnownCategory(rule.Category) {
			return fmt.Errorf("keyword rule for unknown category %q", rule.Category)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("category %s has no keywords", rule.Category)
		}
		for _, kw := range rule.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("category %s contains an empty keyword", rule.Category)
			}
		}
	}

	for _, rule := range rs.Forms {
		if strings.TrimSpace(rule.Type) == "" {
			return fmt.Errorf("form rule with empty type")
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("form type %s has no keywords", rule.Type)
		}
		for _, kw := range rule.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("form type %s contains an empty keyword", rule.Type)
			}
		}
	}

	return nil
}
