// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	RetryBaseDelay = 1 * time.Millisecond
}

// rateLimitedServer answers 429 for the first rateLimited calls and the given
// status afterwards, counting every request it sees.
func rateLimitedServer(t *testing.T, rateLimited int32, thenStatus int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= rateLimited {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(thenStatus)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestDoWithRetry(t *testing.T) {
	tests := []struct {
		name        string
		rateLimited int32
		thenStatus  int
		maxRetries  int
		wantStatus  int
		wantCalls   int32
	}{
		{"immediate success", 0, http.StatusOK, 5, http.StatusOK, 1},
		{"retries then success", 2, http.StatusOK, 5, http.StatusOK, 3},
		{"exhausts retries", 99, http.StatusOK, 3, http.StatusTooManyRequests, 4},
		{"default retry budget", 99, http.StatusOK, 0, http.StatusTooManyRequests, 4},
		{"non-429 error passes through", 0, http.StatusInternalServerError, 5, http.StatusInternalServerError, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, calls := rateLimitedServer(t, tt.rateLimited, tt.thenStatus)

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, tt.maxRetries)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(calls))
		})
	}
}

func TestDoWithRetryContextCancelled(t *testing.T) {
	ts, _ := rateLimitedServer(t, 99, http.StatusOK)

	// Stretch the base delay so the context expires during the backoff wait.
	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
