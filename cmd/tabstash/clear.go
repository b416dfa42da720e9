package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabstash/tabstash/internal/store"
)

// clearTimeout bounds the delete.
const clearTimeout = 10 * time.Second

// NewClearCmd creates the clear command.
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved tabs",
		Long: `Clear deletes every tab from the saved collection. Pinned tabs are
not affected. The command asks for confirmation unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: runClearCmd,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	rt, err := initRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), clearTimeout)
	defer cancel()

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		count, err := rt.store.CountSavedTabs(ctx, store.TabFilter{})
		if err != nil {
			return fmt.Errorf("counting saved tabs: %w", err)
		}
		if count == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved tabs to clear.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Delete %d saved tabs? [y/N] ", count)
		answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := rt.store.ClearSavedTabs(ctx); err != nil {
		return fmt.Errorf("clearing saved tabs: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Cleared saved tabs.")
	return nil
}
