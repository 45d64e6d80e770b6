// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gapfinder/internal/aggregate"
	"github.com/pdiddy/gapfinder/internal/history"
	"github.com/pdiddy/gapfinder/internal/source"
	"github.com/pdiddy/gapfinder/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research <niche>",
	Short: "Aggregate platform results for a niche",
	Long: `Research queries all configured platforms for a niche, deduplicates
and ranks the results by engagement, and prints the top set as a table or
JSON. With --out the full report is saved to a YAML file; with --cached the
history store is read instead of the network.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		niche := strings.Join(args, " ")
		cfg := loadConfig()
		logger := newLogger()

		description, _ := cmd.Flags().GetString("description")
		asJSON, _ := cmd.Flags().GetBool("json")
		outPath, _ := cmd.Flags().GetString("out")
		cached, _ := cmd.Flags().GetBool("cached")

		if cached {
			return printCached(niche, cfg, asJSON)
		}

		out, err := aggregate.Aggregate(cmd.Context(), niche, description, source.Registry(cfg.Sources), cfg.Sources, logger)
		if err != nil {
			return err
		}

		for _, oc := range out.Outcomes {
			if oc.Err != nil {
				fmt.Fprintf(os.Stderr, "warning: source %s failed: %v\n", oc.Source, oc.Err)
			}
		}

		if outPath != "" {
			if err := aggregate.WriteReportFile(outPath, out, cfg.Sources.MaxResults); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Report saved to", outPath)
		}

		if asJSON {
			return aggregate.FormatJSON(out.Report, os.Stdout)
		}
		aggregate.FormatTable(out.Report, os.Stdout)
		return nil
	},
}

// printCached lists the stored result set for the niche without touching
// the network.
func printCached(niche string, cfg types.Config, asJSON bool) error {
	if cfg.History.Path == "" {
		return fmt.Errorf("no history store configured: set history.path")
	}

	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	results, err := store.CachedResults(niche)
	if err != nil {
		return err
	}

	report := types.Report{
		Query:   niche,
		Count:   len(results),
		Results: results,
	}
	if asJSON {
		return aggregate.FormatJSON(report, os.Stdout)
	}
	aggregate.FormatTable(report, os.Stdout)
	return nil
}

func init() {
	researchCmd.Flags().String("description", "", "optional free-text description of the niche")
	researchCmd.Flags().Bool("json", false, "output the report as JSON")
	researchCmd.Flags().String("out", "", "save the full report to a YAML file")
	researchCmd.Flags().Bool("cached", false, "read the history store instead of querying platforms")

	rootCmd.AddCommand(researchCmd)
}
