package server

import (
	"context"

	"cricket-live-service/internal/poller"
)

// Poller is the scorecard refresh loop as the server drives it.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// Tracker is the engine surface the server drives over its lifetime: an initial Track at startup
// and Stop on shutdown.
type Tracker interface {
	Track(ctx context.Context, matchID string) error
	Stop()
}
