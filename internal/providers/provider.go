package providers

import (
	"context"
	"errors"

	"cricket-live-service/internal/domain/match"
)

// ErrProviderUnavailable is returned when no upstream is configured or reachable.
var ErrProviderUnavailable = errors.New("provider unavailable")

// SnapshotProvider fetches the full upstream snapshot document for a match. The bytes use the
// same loose field naming as live messages and go through the same merger.
type SnapshotProvider interface {
	FetchSnapshot(ctx context.Context, matchID string) ([]byte, error)
}

// ScorecardProvider fetches the richer out-of-band scorecard for a match.
type ScorecardProvider interface {
	FetchScorecard(ctx context.Context, matchID string) (match.Scorecard, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	SnapshotProvider
	ScorecardProvider
}
