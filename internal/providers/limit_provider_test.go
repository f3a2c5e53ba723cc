package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/teststubs"
)

func TestThrottledScorecardProviderServesCacheWithinInterval(t *testing.T) {
	inner := &teststubs.StubScorecardProvider{Scorecard: match.Scorecard{Batters: []match.Participant{{Name: "Rohit"}}}}
	p := NewThrottledScorecardProvider(inner, time.Minute, nil).(*throttledScorecardProvider)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		card, err := p.FetchScorecard(context.Background(), "m1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if card.MatchID != "m1" || len(card.Batters) != 1 {
			t.Fatalf("unexpected scorecard %+v", card)
		}
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.Calls.Load())
	}

	now = now.Add(time.Minute)
	if _, err := p.FetchScorecard(context.Background(), "m1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected refetch after interval, got %d calls", inner.Calls.Load())
	}
}

func TestThrottledScorecardProviderTracksMatchesSeparately(t *testing.T) {
	inner := &teststubs.StubScorecardProvider{}
	p := NewThrottledScorecardProvider(inner, time.Minute, nil)

	_, _ = p.FetchScorecard(context.Background(), "m1")
	_, _ = p.FetchScorecard(context.Background(), "m2")
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected one call per match, got %d", inner.Calls.Load())
	}
}

func TestThrottledScorecardProviderDoesNotCacheErrors(t *testing.T) {
	inner := &teststubs.StubScorecardProvider{Err: errors.New("boom")}
	p := NewThrottledScorecardProvider(inner, time.Minute, nil)

	for i := 0; i < 2; i++ {
		if _, err := p.FetchScorecard(context.Background(), "m1"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected errors to bypass cache, got %d calls", inner.Calls.Load())
	}
}

func TestThrottledScorecardProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubScorecardProvider{}
	p := NewThrottledScorecardProvider(inner, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.FetchScorecard(ctx, "m1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 0 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestThrottledScorecardProviderHandlesNilInner(t *testing.T) {
	var inner ScorecardProvider
	p := NewThrottledScorecardProvider(inner, time.Millisecond, nil)

	_, err := p.FetchScorecard(context.Background(), "m1")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestThrottledScorecardProviderDefaultsInterval(t *testing.T) {
	p := NewThrottledScorecardProvider(&teststubs.StubScorecardProvider{}, 0, nil).(*throttledScorecardProvider)
	if p.interval != defaultScorecardInterval {
		t.Fatalf("expected default interval %s, got %s", defaultScorecardInterval, p.interval)
	}
}
