// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze forwards aggregated results to the external AI analysis
// webhook and relays its response. When the webhook is unconfigured or
// unreachable it substitutes a deterministic local fallback so callers
// always get a renderable analysis body.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// ErrEmptyNiche is returned when the caller supplies a blank niche.
var ErrEmptyNiche = errors.New("niche is required")

// ErrNilResults is returned when the caller supplies no results slice.
// An empty slice is fine; it just yields a thin analysis.
var ErrNilResults = errors.New("results array is required")

// Response is the relay outcome. StatusCode is the HTTP status the server
// layer should answer with; Fallback is set whenever Analysis is not.
type Response struct {
	Success    bool
	StatusCode int
	// Analysis is the downstream service's body, relayed verbatim.
	Analysis any
	Fallback *types.Fallback
	Message  string
}

// Relay calls the external analysis service.
type Relay struct {
	// WebhookURL is the analysis endpoint; empty means unconfigured.
	WebhookURL string
	Client     *http.Client
	// Timeout bounds the webhook call (default 30s).
	Timeout time.Duration
	// MaxResults is how many top-ranked results are forwarded (default 20).
	MaxResults int
}

// NewRelay builds a Relay from configuration.
func NewRelay(cfg types.AnalysisConfig) *Relay {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Relay{
		WebhookURL: cfg.WebhookURL,
		Client:     &http.Client{Timeout: timeout},
		Timeout:    timeout,
		MaxResults: cfg.MaxResults,
	}
}

// analysisPayload is the JSON body sent to the webhook.
type analysisPayload struct {
	Niche        string         `json:"niche"`
	Description  string         `json:"description"`
	ResultsCount int            `json:"resultsCount"`
	Results      []types.Result `json:"results"`
	Timestamp    time.Time      `json:"timestamp"`
}

// Analyze forwards the niche and its top-ranked results to the analysis
// webhook. Input validation failures are the only errors; every downstream
// failure is reported inside Response with a fallback body attached.
func (r *Relay) Analyze(ctx context.Context, niche string, results []types.Result, description string) (Response, error) {
	if niche == "" {
		return Response{}, ErrEmptyNiche
	}
	if results == nil {
		return Response{}, ErrNilResults
	}

	if r.WebhookURL == "" {
		// Deliberate degraded mode: no network call is attempted.
		return Response{
			StatusCode: http.StatusServiceUnavailable,
			Fallback:   UnconfiguredFallback(niche),
			Message:    "analysis webhook URL is not configured",
		}, nil
	}

	maxResults := r.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	forwarded := results
	if len(forwarded) > maxResults {
		forwarded = forwarded[:maxResults]
	}

	payload := analysisPayload{
		Niche:        niche,
		Description:  description,
		ResultsCount: len(results),
		Results:      forwarded,
		Timestamp:    time.Now().UTC(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(0, fmt.Errorf("encoding analysis payload: %w", err)), nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return failure(0, fmt.Errorf("creating request: %w", err)), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return failure(0, fmt.Errorf("analysis service request: %w", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return failure(resp.StatusCode, fmt.Errorf("analysis service returned HTTP %d", resp.StatusCode)), nil
	}

	var analysis any
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return failure(0, fmt.Errorf("parsing analysis response: %w", err)), nil
	}

	return Response{
		Success:    true,
		StatusCode: http.StatusOK,
		Analysis:   analysis,
	}, nil
}

// failure builds a result-level failure carrying the upstream status when
// known, paired with an empty-gaps fallback so the caller can still render.
func failure(status int, err error) Response {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Response{
		StatusCode: status,
		Fallback:   UnavailableFallback(),
		Message:    err.Error(),
	}
}

// UnconfiguredFallback is the analysis substitute used when no webhook URL
// is set: one synthetic opportunity gap referencing the niche.
func UnconfiguredFallback(niche string) *types.Fallback {
	return &types.Fallback{
		Gaps: []types.Gap{
			{
				Title:       niche + " - Market Opportunity",
				Reason:      "Based on the research data, there appears to be significant interest and activity in this niche.",
				MarketSize:  "Analysis pending - AI service not available",
				Competition: "Medium",
				Opportunity: "Further analysis needed with AI service",
			},
		},
		Summary: "AI analysis service is not configured. Set up the analysis webhook for detailed gap analysis.",
	}
}

// UnavailableFallback is the analysis substitute used when the webhook call
// itself failed.
func UnavailableFallback() *types.Fallback {
	return &types.Fallback{
		Gaps:    []types.Gap{},
		Summary: "AI analysis service is currently unavailable. Please try again later.",
	}
}
