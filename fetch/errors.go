package fetch

import (
	"fmt"
)

// StatusError represents a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

// IsRateLimited checks if the error indicates a rate-limit response
func (e *StatusError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// ExhaustedError indicates that a rate-limited URL was retried up to the
// attempt limit without ever getting through.
type ExhaustedError struct {
	URL      string
	Attempts int
}

// Error implements the error interface
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up on %s after %d rate-limited attempts", e.URL, e.Attempts)
}
