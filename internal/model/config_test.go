package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9222", cfg.Browser.Endpoint)
	assert.True(t, cfg.Browser.CloseOnSave)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.LogPath)
	assert.NotEmpty(t, cfg.Feedback.FormURL)
	assert.NotEmpty(t, cfg.Feedback.SupportEmail)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
browser:
  endpoint: http://localhost:9333
  close_on_save: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9333", cfg.Browser.Endpoint)
	assert.False(t, cfg.Browser.CloseOnSave)
	// Keys not present in the file fall back to defaults.
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "default", cfg.Display.Theme)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser: [not a map"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.Browser.Endpoint = "http://localhost:9444"
	cfg.RulesPath = "/tmp/rules.yaml"

	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9444", got.Browser.Endpoint)
	assert.Equal(t, "/tmp/rules.yaml", got.RulesPath)
}
