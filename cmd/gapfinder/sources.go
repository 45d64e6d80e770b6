// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gapfinder/internal/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured platforms and their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		fmt.Fprintf(os.Stdout, "%-15s  %-8s  %-5s  %s\n", "Name", "Status", "Auth", "Description")
		for _, st := range source.Statuses(cfg.Sources) {
			auth := "no"
			if st.RequiresAuth {
				auth = "yes"
			}
			fmt.Fprintf(os.Stdout, "%-15s  %-8s  %-5s  %s\n", st.Name, st.Status, auth, st.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
