package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// BrowserConfig holds settings for reaching the browser's remote
// debugging endpoint.
type BrowserConfig struct {
	// Endpoint is the root URL of the DevTools JSON API
	// (e.g., http://127.0.0.1:9222).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// CloseOnSave controls whether originals are closed after a save.
	CloseOnSave bool `mapstructure:"close_on_save" yaml:"close_on_save"`
}

// FeedbackConfig holds the outbound feedback channel settings.
type FeedbackConfig struct {
	// FormURL is opened in the browser when the user requests feedback.
	FormURL string `mapstructure:"form_url" yaml:"form_url"`

	// SupportEmail is copied to the clipboard when the form cannot
	// be opened.
	SupportEmail string `mapstructure:"support_email" yaml:"support_email"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the SQLite database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// RulesPath optionally overrides the embedded categorization rules.
	RulesPath string `mapstructure:"rules_path" yaml:"rules_path"`

	// LogPath is the zap log file location. The TUI owns stdout, so
	// logs always go to a file.
	LogPath string `mapstructure:"log_path" yaml:"log_path"`

	Browser  BrowserConfig  `mapstructure:"browser" yaml:"browser"`
	Feedback FeedbackConfig `mapstructure:"feedback" yaml:"feedback"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located under the XDG config directory.
func DefaultConfigPath() string {
	path, err := xdg.ConfigFile(filepath.Join("tabstash", "config.yaml"))
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return path
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath:  defaultDBPath(),
		LogPath: defaultLogPath(),
		Browser: BrowserConfig{
			Endpoint:    "http://127.0.0.1:9222",
			CloseOnSave: true,
		},
		Feedback: FeedbackConfig{
			FormURL:      "https://forms.gle/tabstash-feedback",
			SupportEmail: "support@tabstash.dev",
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// defaultDBPath places the database under the XDG data directory.
func defaultDBPath() string {
	path, err := xdg.DataFile(filepath.Join("tabstash", "tabstash.db"))
	if err != nil {
		return filepath.Join(".", "tabstash.db")
	}
	return path
}

// defaultLogPath places the log file under the XDG state directory.
func defaultLogPath() string {
	path, err := xdg.StateFile(filepath.Join("tabstash", "tabstash.log"))
	if err != nil {
		return filepath.Join(".", "tabstash.log")
	}
	return path
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("log_path", defaultLogPath())
	v.SetDefault("browser.endpoint", "http://127.0.0.1:9222")
	v.SetDefault("browser.close_on_save", true)
	v.SetDefault("feedback.form_url", "https://forms.gle/tabstash-feedback")
	v.SetDefault("feedback.support_email", "support@tabstash.dev")
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("rules_path", cfg.RulesPath)
	v.Set("log_path", cfg.LogPath)
	v.Set("browser", cfg.Browser)
	v.Set("feedback", cfg.Feedback)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
