// Package poller runs the periodic refresh that advances staleness tiers and scorecard data
// between live messages.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/metrics"
)

const (
	defaultInterval = 5 * time.Second
	// maxFailures is the consecutive failure count at which readiness drops.
	maxFailures = 3
)

// Refresher re-derives the tracked match on a clock tick.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the loop has succeeded at least once and is not failing repeatedly.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.ConsecutiveFailures < maxFailures
}

// Poller calls a Refresher once on start and then every interval until stopped.
type Poller struct {
	refresher Refresher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	exited  chan struct{}
	status  Status
}

// New constructs a Poller; a non-positive interval uses the default.
func New(refresher Refresher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		refresher: refresher,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
	}
}

// Start launches the loop. It runs until ctx ends or Stop is called; later calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.exited = make(chan struct{})
	go p.loop(loopCtx, p.exited)
}

// Stop cancels the loop and waits for an in-flight refresh to return, or for ctx to end.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	cancel, exited := p.cancel, p.exited
	p.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the loop's recent health.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poller) loop(ctx context.Context, exited chan<- struct{}) {
	defer close(exited)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logging.Info(p.logger, "refresh loop started", logging.FieldDurationMS, p.interval.Milliseconds())
	p.refreshOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logging.Info(p.logger, "refresh loop stopped")
			return
		case <-ticker.C:
			p.refreshOnce(ctx)
		}
	}
}

func (p *Poller) refreshOnce(ctx context.Context) {
	start := p.now()
	err := p.refresher.Refresh(ctx)
	elapsed := p.now().Sub(start)
	p.metrics.RecordRefreshCycle(elapsed, err)

	p.mu.Lock()
	p.status.LastAttempt = start
	if err != nil {
		p.status.ConsecutiveFailures++
		p.status.LastError = err.Error()
	} else {
		p.status.ConsecutiveFailures = 0
		p.status.LastError = ""
		p.status.LastSuccess = start
	}
	failures := p.status.ConsecutiveFailures
	p.mu.Unlock()

	if err != nil {
		logging.Error(p.logger, "refresh failed", err,
			logging.FieldDurationMS, elapsed.Milliseconds(),
			logging.FieldAttempt, failures,
		)
		return
	}
	logging.Debug(p.logger, "refresh complete", logging.FieldDurationMS, elapsed.Milliseconds())
}
