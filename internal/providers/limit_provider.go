package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/logging"
)

const defaultScorecardInterval = 30 * time.Second

// throttledScorecardProvider wraps a ScorecardProvider and serves the last result for a match
// until the interval has elapsed, so refresh loops do not exceed upstream quotas.
type throttledScorecardProvider struct {
	next     ScorecardProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	cached  map[string]match.Scorecard
	fetched map[string]time.Time
}

// NewThrottledScorecardProvider limits upstream scorecard calls to one per interval per match.
func NewThrottledScorecardProvider(next ScorecardProvider, interval time.Duration, logger *slog.Logger) ScorecardProvider {
	if interval <= 0 {
		interval = defaultScorecardInterval
	}
	return &throttledScorecardProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		cached:   make(map[string]match.Scorecard),
		fetched:  make(map[string]time.Time),
	}
}

func (p *throttledScorecardProvider) FetchScorecard(ctx context.Context, matchID string) (match.Scorecard, error) {
	if p == nil || p.next == nil {
		return match.Scorecard{}, ErrProviderUnavailable
	}

	p.mu.Lock()
	last, seen := p.fetched[matchID]
	card := p.cached[matchID]
	p.mu.Unlock()
	if seen && p.now().Sub(last) < p.interval {
		return card, nil
	}

	if err := ctx.Err(); err != nil {
		return match.Scorecard{}, err
	}
	card, err := p.next.FetchScorecard(ctx, matchID)
	if err != nil {
		return match.Scorecard{}, err
	}

	p.mu.Lock()
	p.cached[matchID] = card
	p.fetched[matchID] = p.now()
	p.mu.Unlock()
	logging.Debug(providerLogger(ctx, p.logger, "scorecard"), "scorecard fetched", logging.FieldMatchID, matchID)
	return card, nil
}
