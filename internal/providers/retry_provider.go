package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	fallbackProviderName = "provider"
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a SnapshotProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        SnapshotProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
	rng          *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner SnapshotProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) SnapshotProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with an injectable jitter source.
func NewRetryingProviderWithRNG(inner SnapshotProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) SnapshotProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = fallbackProviderName
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		rng: rng,
	}
}

func (r *retryingProvider) FetchSnapshot(ctx context.Context, matchID string) ([]byte, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	var lastErr error
	attempts := r.maxAttempts

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		payload, err := r.inner.FetchSnapshot(ctx, matchID)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rl.RetryAfter)
		}

		if attempt == r.maxAttempts || !Retryable(err) {
			attempts = attempt
			break
		}

		delay := r.computeDelay(err, attempt)
		logging.Warn(providerLogger(ctx, r.logger, r.providerName), "provider fetch retry",
			logging.FieldMatchID, matchID,
			logging.FieldAttempt, attempt,
			"max_attempts", r.maxAttempts,
			logging.FieldDelayMS, delay.Milliseconds(),
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	logging.Warn(providerLogger(ctx, r.logger, r.providerName), "provider fetch failed",
		logging.FieldMatchID, matchID,
		"attempts", attempts,
		"error", lastErr,
	)
	return nil, lastErr
}

// computeDelay honours Retry-After on rate limits and otherwise jitters the backoff into [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	return half + time.Duration(r.rng.Int63n(int64(base-half)+1))
}
