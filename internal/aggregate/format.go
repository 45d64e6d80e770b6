// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(report types.Report, w io.Writer) {
	if len(report.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-55s  %-10s  %s\n", "Rank", "Title", "Engage", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 95))

	for i, r := range report.Results {
		title := r.Title
		if len(title) > 55 {
			title = title[:52] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-55s  %-10d  %s\n", i+1, title, r.Engagement, r.Source)
	}

	fmt.Fprintf(w, "\n%d results, total engagement %d (avg %d), %s\n",
		report.Count, report.Stats.TotalEngagement, report.Stats.AverageEngagement,
		report.Stats.ProcessingTime)

	if len(report.Stats.SourceBreakdown) > 0 {
		fmt.Fprint(w, "Sources:")
		for source, count := range report.Stats.SourceBreakdown {
			fmt.Fprintf(w, " %s=%d", source, count)
		}
		fmt.Fprintln(w)
	}
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(report types.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
