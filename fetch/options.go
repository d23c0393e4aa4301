package fetch

import (
	"net/http"
	"time"
)

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.httpClient.Timeout = timeout
	}
}

// WithMaxAttempts sets the maximum number of attempts for a rate-limited URL.
func WithMaxAttempts(attempts int) Option {
	return func(f *Fetcher) {
		if attempts > 0 {
			f.maxAttempts = attempts
		}
	}
}

// WithWaitBounds sets the first and the maximum backoff wait.
func WithWaitBounds(min, max time.Duration) Option {
	return func(f *Fetcher) {
		if min > 0 {
			f.minWait = min
		}
		if max > 0 {
			f.maxWait = max
		}
	}
}

// WithSleep replaces the sleep function used between retries. Tests use this
// to observe the backoff schedule without waiting it out.
func WithSleep(sleep func(time.Duration)) Option {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}
