// Package main provides the entry point for the tabstash CLI.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tabstash/tabstash/internal/app"
	"github.com/tabstash/tabstash/internal/browser"
	"github.com/tabstash/tabstash/internal/classify"
	"github.com/tabstash/tabstash/internal/logging"
	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/rules"
	"github.com/tabstash/tabstash/internal/store"
)

// NewRootCmd creates the root command. Running it with no subcommand
// launches the interactive UI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabstash",
		Short: "Save, categorize, and restore browser tabs from the terminal",
		Long: `Tab Stash snapshots the browser's open tabs into local storage and
categorizes them by domain and title keywords. Saved tabs can be
browsed in a terminal UI, restored to the browser, pinned for later,
or deleted.

The browser must be running with remote debugging enabled, e.g.:

  chromium --remote-debugging-port=9222`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cmd.AddCommand(NewSaveCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime bundles the initialized application services for a command.
type runtime struct {
	cfg        *model.AppConfig
	cfgPath    string
	store      store.Store
	browser    browser.Browser
	classifier *classify.Classifier
	logger     *zap.Logger

	closers []func()
}

// close releases runtime resources in reverse initialization order.
func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

// initRuntime loads configuration and constructs the store, browser
// client, classifier, and logger shared by every command.
func initRuntime(cmd *cobra.Command, withLogger bool) (*runtime, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rt := &runtime{cfg: cfg, cfgPath: configPath, logger: logging.Nop()}

	if withLogger {
		debug, _ := cmd.Flags().GetBool("debug")
		logger, cleanup, err := logging.New(cfg.LogPath, debug)
		if err != nil {
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
		rt.logger = logger
		rt.closers = append(rt.closers, cleanup)
	}

	rs, err := rules.Load(cfg.RulesPath)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("loading categorization rules: %w", err)
	}
	rt.classifier = classify.New(rs)

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("opening tab store: %w", err)
	}
	rt.store = st
	rt.closers = append(rt.closers, func() { _ = st.Close() })

	rt.browser = browser.NewDevToolsClient(cfg.Browser.Endpoint)

	return rt, nil
}

// runTUI starts the interactive terminal UI.
func runTUI(cmd *cobra.Command, _ []string) error {
	rt, err := initRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.close()

	rt.logger.Info("starting tabstash",
		zap.String("db", rt.cfg.DBPath),
		zap.String("browser", rt.cfg.Browser.Endpoint),
	)

	m := app.New(rt.store, rt.browser, rt.classifier, rt.cfg, rt.cfgPath, rt.logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
