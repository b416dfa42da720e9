package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabstash/tabstash/internal/model"
)

// saveTimeout bounds the whole headless snapshot.
const saveTimeout = 30 * time.Second

// NewSaveCmd creates the save command.
func NewSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Snapshot all open browser tabs into local storage",
		Long: `Save enumerates the browser's open tabs, categorizes each one, and
persists them to the local database. By default the original tabs are
closed after saving; use --keep-open to leave them in the browser.

Examples:
  # Save and close all open tabs
  tabstash save

  # Save without closing the originals
  tabstash save --keep-open`,
		Args: cobra.NoArgs,
		RunE: runSaveCmd,
	}

	cmd.Flags().BoolP("keep-open", "k", false, "Leave the original tabs open in the browser")

	return cmd
}

func runSaveCmd(cmd *cobra.Command, _ []string) error {
	rt, err := initRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), saveTimeout)
	defer cancel()

	open, err := rt.browser.ListTabs(ctx)
	if err != nil {
		return fmt.Errorf("listing open tabs: %w", err)
	}
	if len(open) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No open tabs to save.")
		return nil
	}

	tabs := make([]model.SavedTab, 0, len(open))
	ids := make([]string, 0, len(open))
	for _, t := range open {
		if t.Pinned {
			continue
		}
		tabs = append(tabs, rt.classifier.Categorize(model.SavedTab{
			Title:      t.Title,
			URL:        t.URL,
			FavIconURL: t.FavIconURL,
		}))
		ids = append(ids, t.ID)
	}

	if err := rt.store.SaveTabs(ctx, tabs); err != nil {
		return fmt.Errorf("persisting tabs: %w", err)
	}

	keepOpen, _ := cmd.Flags().GetBool("keep-open")
	closeOriginals := rt.cfg.Browser.CloseOnSave && !keepOpen
	if closeOriginals {
		if err := rt.browser.CloseTabs(ctx, ids); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: tabs saved but closing originals failed: %v\n", err)
		}
	}

	printSaveSummary(cmd, tabs)
	return nil
}

// printSaveSummary prints the total and a per-category breakdown in
// display order.
func printSaveSummary(cmd *cobra.Command, tabs []model.SavedTab) {
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d tabs\n", len(tabs))

	counts := make(map[model.Category]int)
	for _, t := range tabs {
		counts[t.Category]++
	}

	cats := make([]model.Category, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	order := make(map[model.Category]int, len(model.DisplayOrder))
	for i, c := range model.DisplayOrder {
		order[c] = i
	}
	sort.Slice(cats, func(i, j int) bool { return order[cats[i]] < order[cats[j]] })

	for _, c := range cats {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %d\n", c, counts[c])
	}
}
