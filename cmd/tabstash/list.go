package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabstash/tabstash/internal/model"
	"github.com/tabstash/tabstash/internal/store"
)

// listTimeout bounds the store queries.
const listTimeout = 10 * time.Second

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print saved tabs",
		Long: `List prints the saved tabs, newest first, with their category and any
detected form deadline.

Examples:
  # All saved tabs
  tabstash list

  # Only one category
  tabstash list --category Applications

  # Title/URL substring search
  tabstash list --query github

  # The pinned collection instead of saved tabs
  tabstash list --pinned`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	cmd.Flags().StringP("category", "C", "", "Filter by category name")
	cmd.Flags().StringP("query", "q", "", "Filter by title or URL substring")
	cmd.Flags().Bool("pinned", false, "List the pinned collection")

	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	rt, err := initRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.close()

	filter := store.TabFilter{SortBy: "saved_at", SortDesc: true}

	if name, _ := cmd.Flags().GetString("category"); name != "" {
		cat, ok := matchCategory(name)
		if !ok {
			return fmt.Errorf("unknown category %q", name)
		}
		filter.Category = &cat
	}
	if q, _ := cmd.Flags().GetString("query"); q != "" {
		filter.Query = &q
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
	defer cancel()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	defer w.Flush()

	pinned, _ := cmd.Flags().GetBool("pinned")
	if pinned {
		filter.SortBy = "pinned_at"
		tabs, err := rt.store.GetPinnedTabs(ctx, filter)
		if err != nil {
			return fmt.Errorf("loading pinned tabs: %w", err)
		}
		if len(tabs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No pinned tabs.")
			return nil
		}
		fmt.Fprintln(w, "CATEGORY\tTITLE\tURL\tPINNED")
		for _, t := range tabs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				t.Category, t.Title, t.URL, t.PinnedAt.Format("2006-01-02"))
		}
		return nil
	}

	tabs, err := rt.store.GetSavedTabs(ctx, filter)
	if err != nil {
		return fmt.Errorf("loading saved tabs: %w", err)
	}
	if len(tabs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved tabs.")
		return nil
	}

	fmt.Fprintln(w, "CATEGORY\tTITLE\tURL\tSAVED\tDEADLINE")
	for _, t := range tabs {
		deadline := t.Deadline
		if t.FormType != "" && deadline == "" {
			deadline = "(" + t.FormType + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.Category, t.Title, t.URL, t.SavedAt.Format("2006-01-02"), deadline)
	}
	return nil
}

// matchCategory resolves a case-insensitive category name.
func matchCategory(name string) (model.Category, bool) {
	for _, c := range model.DisplayOrder {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}
