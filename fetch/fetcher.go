// Package fetch provides the HTTP GET helper the rest of the program talks
// through: an in-memory response cache keyed by URL, plus bounded exponential
// backoff when the remote side answers 429.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Backoff bounds. A rate-limited URL is retried with waits of
// 1, 2, 4, 8, ... seconds, capped at MaxWait, for at most MaxAttempts
// retries before the fetcher gives up on it.
const (
	MinWait     = 1 * time.Second
	MaxWait     = 60 * time.Second
	MaxAttempts = 10
)

// Fetcher performs GET requests with response caching and 429 backoff.
// It is meant for one sequential batch run: the cache never evicts.
type Fetcher struct {
	httpClient  *http.Client
	cache       *ResponseCache
	logger      zerolog.Logger
	sleep       func(time.Duration)
	minWait     time.Duration
	maxWait     time.Duration
	maxAttempts int
}

// New creates a Fetcher with an empty cache.
func New(logger zerolog.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		cache:       NewResponseCache(),
		logger:      logger,
		sleep:       time.Sleep,
		minWait:     MinWait,
		maxWait:     MaxWait,
		maxAttempts: MaxAttempts,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Cache exposes the fetcher's response cache.
func (f *Fetcher) Cache() *ResponseCache {
	return f.cache
}

// Fetch returns the response body for url. A URL that was fetched
// successfully before is served from the cache without a network call.
//
// On 429 the fetcher waits and retries: the wait starts at minWait, doubles
// per retry and is capped at maxWait. After maxAttempts retries it returns
// an *ExhaustedError. Any other non-2xx status is returned immediately as a
// *StatusError; transport errors are returned as-is. Errors are never
// retried except for 429.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := f.cache.Get(url); ok {
		f.logger.Trace().Str("url", url).Msg("Cache hit")
		return body, nil
	}

	var wait time.Duration
	for attempt := 0; ; attempt++ {
		if wait > 0 {
			f.logger.Info().
				Str("url", url).
				Dur("wait", wait).
				Int("attempt", attempt).
				Msg("Rate limited, waiting before retry")
			f.sleep(wait)
		}

		body, status, err := f.get(ctx, url)
		if err != nil {
			return nil, err
		}

		if status >= 200 && status < 300 {
			f.cache.Put(url, body)
			return body, nil
		}

		if status != http.StatusTooManyRequests {
			f.logger.Debug().
				Str("url", url).
				Int("status", status).
				Str("body", string(body)).
				Msg("Request failed")
			return nil, &StatusError{URL: url, StatusCode: status, Body: string(body)}
		}

		if attempt+1 > f.maxAttempts {
			f.logger.Warn().Str("url", url).Int("attempts", f.maxAttempts).
				Msg("Reached max attempts, giving up")
			return nil, &ExhaustedError{URL: url, Attempts: f.maxAttempts}
		}

		wait = f.nextWait(wait)
	}
}

// nextWait computes the backoff wait following prev: minWait for the first
// retry, then doubled and capped at maxWait.
func (f *Fetcher) nextWait(prev time.Duration) time.Duration {
	if prev == 0 {
		return f.minWait
	}
	return min(prev*2, f.maxWait)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}
