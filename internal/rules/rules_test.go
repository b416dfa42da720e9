package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabstash/tabstash/internal/model"
)

func TestDefault(t *testing.T) {
	rs, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, rs.Domains)
	assert.NotEmpty(t, rs.Categories)
	assert.NotEmpty(t, rs.Forms)
	assert.NotEmpty(t, rs.FormIndicators)

	// Spot-check a few table entries the classifier relies on.
	cat, ok := rs.Domains.Category("github.com")
	require.True(t, ok)
	assert.Equal(t, model.CategoryTech, cat)
	cat, ok = rs.Domains.Category("claude.ai")
	require.True(t, ok)
	assert.Equal(t, model.CategoryAI, cat)
	assert.Equal(t, "job", rs.Forms[0].Type)
}

func TestDomainTable_KeepsFileOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
domains:
  youtube.com: Entertainment
  cnn.com: News
categories:
  - category: Tech
    keywords: [golang]
forms:
  - type: job
    keywords: [apply]
form_indicators: [form]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rs.Domains, 2)
	assert.Equal(t, DomainRule{Domain: "youtube.com", Category: model.CategoryEntertainment}, rs.Domains[0])
	assert.Equal(t, DomainRule{Domain: "cnn.com", Category: model.CategoryNews}, rs.Domains[1])
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	rs, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, rs.Domains)
}

func TestLoad_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
domains:
  example.org: Tech
categories:
  - category: Tech
    keywords: [golang]
forms:
  - type: job
    keywords: [apply]
form_indicators: [form]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rs, err := Load(path)
	require.NoError(t, err)
	cat, ok := rs.Domains.Category("example.org")
	require.True(t, ok)
	assert.Equal(t, model.CategoryTech, cat)
	require.Len(t, rs.Categories, 1)
	assert.Equal(t, []string{"golang"}, rs.Categories[0].Keywords)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown domain category",
			content: `
domains:
  example.org: Bogus
`,
			wantErr: "unknown category",
		},
		{
			name: "unknown keyword category",
			content: `
categories:
  - category: Bogus
    keywords: [x]
`,
			wantErr: "unknown category",
		},
		{
			name: "category without keywords",
			content: `
categories:
  - category: Tech
    keywords: []
`,
			wantErr: "no keywords",
		},
		{
			name: "form without type",
			content: `
forms:
  - type: ""
    keywords: [apply]
`,
			wantErr: "empty type",
		},
		{
			name: "form without keywords",
			content: `
forms:
  - type: job
    keywords: []
`,
			wantErr: "no keywords",
		},
		{
			name: "empty keyword",
			content: `
categories:
  - category: Tech
    keywords: ["  "]
`,
			wantErr: "empty keyword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rules.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
