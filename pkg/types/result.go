// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the gapfinder pipeline.
package types

import "time"

// Result is the normalized shape every source produces. Platform-specific
// response fields are mapped into it by the source packages; it is never
// mutated after construction.
type Result struct {
	// Title is the item's display title. Sources drop items without one.
	Title string `json:"title" yaml:"title"`

	// Description is the item's display text. Sources substitute a
	// platform-appropriate fallback when the field is absent upstream.
	Description string `json:"description" yaml:"description"`

	// Source identifies the originating platform, possibly parameterized
	// (e.g. "Reddit (r/startups)").
	Source string `json:"source" yaml:"source"`

	// URL links to the original item. Synthesized for platforms that do
	// not return one directly.
	URL string `json:"url" yaml:"url"`

	// Engagement is a source-local popularity heuristic (stars+forks,
	// votes+comments, ...). Always >= 0; missing signals count as 0.
	// Not comparable in absolute terms across platforms.
	Engagement int `json:"engagement" yaml:"engagement"`

	// Metadata preserves raw source fields for display and debugging.
	Metadata map[string]any `json:"metadata" yaml:"metadata,omitempty"`
}

// Statistics summarizes a ranked result set.
type Statistics struct {
	TotalEngagement   int            `json:"totalEngagement" yaml:"total_engagement"`
	AverageEngagement int            `json:"averageEngagement" yaml:"average_engagement"`
	SourceBreakdown   map[string]int `json:"sourceBreakdown" yaml:"source_breakdown"`
	ProcessingTime    string         `json:"processingTime" yaml:"processing_time"`
}

// Report is the aggregator's output: the ranked, capped result set for one
// niche query plus derived statistics.
type Report struct {
	Query       string     `json:"query" yaml:"query"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Count       int        `json:"resultsCount" yaml:"results_count"`
	Results     []Result   `json:"results" yaml:"results"`
	Stats       Statistics `json:"statistics" yaml:"statistics"`
	Timestamp   time.Time  `json:"timestamp" yaml:"timestamp"`
}

// Gap is one market-opportunity entry in a fallback analysis. The shape
// mirrors what the external analysis service produces.
type Gap struct {
	Title       string `json:"title"`
	Reason      string `json:"reason"`
	MarketSize  string `json:"market_size"`
	Competition string `json:"competition"`
	Opportunity string `json:"opportunity"`
}

// Fallback is the deterministic, locally-built substitute analysis returned
// when the external analysis service is unreachable or unconfigured.
type Fallback struct {
	Gaps    []Gap  `json:"gaps"`
	Summary string `json:"summary"`
}

// SourceStatus describes one configured platform for the sources endpoint.
type SourceStatus struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	RequiresAuth bool   `json:"requiresAuth"`
	Description  string `json:"description"`
}
