// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate fans a niche query out to every content source
// concurrently, then merges the partial results into one ranked report:
// flatten, deduplicate by normalized title, rank by engagement, cap, and
// summarize. Individual source failures are absorbed here and never fail
// the aggregate call.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/gapfinder/internal/source"
	"github.com/pdiddy/gapfinder/pkg/types"
)

// ErrEmptyNiche is returned when the caller supplies a blank niche. It is
// the only error Aggregate produces; everything past input validation
// degrades instead of failing.
var ErrEmptyNiche = errors.New("niche is required")

// Outcome records how one source's fetch settled. Failures are kept here
// for observability even though the report only ever sees the empty set.
type Outcome struct {
	Source  string
	Results []types.Result
	Err     error
}

// Output is the aggregation result: the caller-facing report plus the
// per-source outcomes.
type Output struct {
	Report   types.Report
	Outcomes []Outcome
}

// Aggregate runs the full pipeline for one niche query. All sources are
// queried concurrently with the same niche; the merge stages run only after
// every fetch has settled, so the final ordering is deterministic regardless
// of completion order.
func Aggregate(ctx context.Context, niche, description string, sources []source.Source, cfg types.SourceConfig, logger *slog.Logger) (Output, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return Output{}, ErrEmptyNiche
	}
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()

	// Fan out one goroutine per source; outcomes land in their registry
	// slot so flattening order matches registry order.
	outcomes := make([]Outcome, len(sources))
	var wg sync.WaitGroup
	for i, s := range sources {
		wg.Add(1)
		go func(i int, s source.Source) {
			defer wg.Done()
			results, err := s.Fetch(ctx, niche, cfg)
			outcomes[i] = Outcome{Source: s.Name(), Results: results, Err: err}
		}(i, s)
	}
	wg.Wait()

	var all []types.Result
	for _, oc := range outcomes {
		if oc.Err != nil {
			logger.Warn("source fetch failed", "source", oc.Source, "error", oc.Err)
			continue
		}
		for _, r := range oc.Results {
			if r.Title == "" {
				continue
			}
			all = append(all, r)
		}
	}

	deduped := deduplicate(all)

	// Stable sort keeps flatten order among equal engagement.
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Engagement > deduped[j].Engagement
	})

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 30
	}
	if len(deduped) > maxResults {
		deduped = deduped[:maxResults]
	}

	elapsed := time.Since(start)

	report := types.Report{
		Query:       niche,
		Description: description,
		Count:       len(deduped),
		Results:     deduped,
		Stats:       computeStats(deduped, elapsed),
		Timestamp:   time.Now().UTC(),
	}
	return Output{Report: report, Outcomes: outcomes}, nil
}

// deduplicate drops later entries whose normalized title was already seen.
// First occurrence in flatten order wins, even across sources. This is a
// title heuristic, not content matching: unrelated items sharing a title
// collapse, and differently-titled duplicates survive.
func deduplicate(results []types.Result) []types.Result {
	seen := make(map[string]struct{}, len(results))
	deduped := make([]types.Result, 0, len(results))
	for _, r := range results {
		key := strings.ToLower(strings.TrimSpace(r.Title))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, r)
	}
	return deduped
}

// computeStats derives the summary statistics over the final, capped set.
// Engagement is a source-local heuristic; summing and averaging it across
// sources is a known comparability caveat kept for parity.
func computeStats(results []types.Result, elapsed time.Duration) types.Statistics {
	breakdown := make(map[string]int)
	total := 0
	for _, r := range results {
		breakdown[r.Source]++
		total += r.Engagement
	}

	avg := 0
	if len(results) > 0 {
		avg = int(math.Round(float64(total) / float64(len(results))))
	}

	return types.Statistics{
		TotalEngagement:   total,
		AverageEngagement: avg,
		SourceBreakdown:   breakdown,
		ProcessingTime:    fmt.Sprintf("%dms", elapsed.Milliseconds()),
	}
}
