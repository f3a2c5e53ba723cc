package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// RateLimitError is returned when the feed API throttles a request.
type RateLimitError struct {
	Provider   string
	Resource   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
}

func (e *RateLimitError) Error() string {
	msg := "rate limited"
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Resource != "" {
		msg += " fetching " + e.Resource
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(", retry after %s", e.RetryAfter)
	}
	return msg
}

// StatusError is a non-success upstream response other than a rate limit.
type StatusError struct {
	Provider   string
	Resource   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: %s returned status %d", e.Provider, e.Resource, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// AsRateLimitError unwraps err into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// Retryable reports whether repeating the request could succeed. Client errors such as an unknown
// match id are final; server errors, rate limits and transport failures are not.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
