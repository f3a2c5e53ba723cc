package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitErrorString(t *testing.T) {
	cases := []struct {
		err  *RateLimitError
		want string
	}{
		{err: &RateLimitError{}, want: "rate limited"},
		{err: &RateLimitError{Provider: "feedapi", Resource: "snapshot"}, want: "feedapi: rate limited fetching snapshot"},
		{err: &RateLimitError{Provider: "feedapi", RetryAfter: 7 * time.Second}, want: "feedapi: rate limited, retry after 7s"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Provider: "feedapi", Resource: "scorecard", StatusCode: 502, Body: "upstream down"}
	if got := err.Error(); got != "feedapi: scorecard returned status 502: upstream down" {
		t.Fatalf("unexpected message %q", got)
	}
	bare := &StatusError{Provider: "feedapi", Resource: "snapshot", StatusCode: 404}
	if got := bare.Error(); got != "feedapi: snapshot returned status 404" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAsRateLimitErrorUnwrapsWrapped(t *testing.T) {
	wrapped := fmt.Errorf("fetch snapshot: %w", &RateLimitError{RetryAfter: 2 * time.Second})

	rl, ok := AsRateLimitError(wrapped)
	if !ok || rl.RetryAfter != 2*time.Second {
		t.Fatalf("expected to unwrap rate limit error, got %+v ok=%v", rl, ok)
	}
	if _, ok := AsRateLimitError(errors.New("boom")); ok {
		t.Fatal("expected plain error not to unwrap")
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "unavailable", err: ErrProviderUnavailable, want: false},
		{name: "not found", err: &StatusError{StatusCode: 404}, want: false},
		{name: "wrapped bad request", err: fmt.Errorf("x: %w", &StatusError{StatusCode: 400}), want: false},
		{name: "server error", err: &StatusError{StatusCode: 503}, want: true},
		{name: "rate limited", err: &RateLimitError{StatusCode: 429}, want: true},
		{name: "transport", err: errors.New("connection reset"), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Retryable(tc.err); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
