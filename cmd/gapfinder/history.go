// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gapfinder/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent niche searches from the history store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.History.Path == "" {
			return fmt.Errorf("no history store configured: set history.path")
		}

		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.NewStore(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		defer store.Close()

		entries, err := store.Recent(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stdout, "No searches recorded.")
			return nil
		}

		for _, e := range entries {
			fmt.Fprintf(os.Stdout, "%s  %s\n", timestamp(e.CreatedAt), e.Query)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")

	rootCmd.AddCommand(historyCmd)
}
