// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// ReportFile is the on-disk representation of an aggregation run. A research
// run can be saved to a file and reloaded later without re-querying the
// platforms.
type ReportFile struct {
	Query   ReportParams   `yaml:"query"`
	Results []types.Result `yaml:"results"`
	Summary ReportSummary  `yaml:"summary"`
}

// ReportParams stores the query inputs in a serializable form.
type ReportParams struct {
	Niche       string `yaml:"niche"`
	Description string `yaml:"description,omitempty"`
	MaxResults  int    `yaml:"max_results"`
}

// ReportSummary stores result statistics and a timestamp.
type ReportSummary struct {
	Total             int            `yaml:"total"`
	TotalEngagement   int            `yaml:"total_engagement"`
	AverageEngagement int            `yaml:"average_engagement"`
	SourceBreakdown   map[string]int `yaml:"source_breakdown"`
	SourceErrors      []string       `yaml:"source_errors,omitempty"`
	Timestamp         time.Time      `yaml:"timestamp"`
}

// WriteReportFile saves an aggregation output to a YAML file.
func WriteReportFile(path string, out Output, maxResults int) error {
	var sourceErrors []string
	for _, oc := range out.Outcomes {
		if oc.Err != nil {
			sourceErrors = append(sourceErrors, fmt.Sprintf("%s: %v", oc.Source, oc.Err))
		}
	}

	rf := ReportFile{
		Query: ReportParams{
			Niche:       out.Report.Query,
			Description: out.Report.Description,
			MaxResults:  maxResults,
		},
		Results: out.Report.Results,
		Summary: ReportSummary{
			Total:             out.Report.Count,
			TotalEngagement:   out.Report.Stats.TotalEngagement,
			AverageEngagement: out.Report.Stats.AverageEngagement,
			SourceBreakdown:   out.Report.Stats.SourceBreakdown,
			SourceErrors:      sourceErrors,
			Timestamp:         out.Report.Timestamp,
		},
	}

	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling report file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	return nil
}

// ReadReportFile loads a previously saved report file.
func ReadReportFile(path string) (ReportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReportFile{}, fmt.Errorf("reading report file: %w", err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return ReportFile{}, fmt.Errorf("parsing report file %s: %w", path, err)
	}
	return rf, nil
}
