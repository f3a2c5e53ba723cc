// Package engine runs the live pipeline for the tracked match: raw feed messages are merged into the
// match state, rebuilt into a snapshot, graded for staleness and rendered into a view model.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cricket-live-service/internal/connection"
	"cricket-live-service/internal/feed"
	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/metrics"
	"cricket-live-service/internal/providers"
	"cricket-live-service/internal/transport"
	"cricket-live-service/internal/viewmodel"
)

const (
	DefaultFetchTimeout = 8 * time.Second
	DefaultTopicPattern = "live/" + transport.MatchIDPlaceholder

	sourceLive     = "live"
	sourceSnapshot = "snapshot"
)

var (
	// ErrInvalidMatchID rejects an empty match id before anything is subscribed.
	ErrInvalidMatchID = errors.New("invalid match id")
	// ErrNotTracking is returned by operations that need a tracked match.
	ErrNotTracking = errors.New("no match is being tracked")
)

// ViewSink receives every emitted view model in version order. It must not block.
type ViewSink func(viewmodel.ViewModel)

// Config wires an Engine. Subscriber is required; both providers are optional.
type Config struct {
	Subscriber    transport.Subscriber
	Snapshots     providers.SnapshotProvider
	Scorecards    providers.ScorecardProvider
	TopicPatterns []string
	Aliases       feed.AliasTable
	FetchTimeout  time.Duration
	MaxAttempts   int
	OnView        ViewSink
	OnDiagnostics connection.DiagnosticsSink
	Logger        *slog.Logger
	Metrics       *metrics.Recorder
	Now           func() time.Time
	// After is handed to the connection manager for backoff waits.
	After func(time.Duration) <-chan time.Time
}

// Engine owns at most one tracked match at a time.
type Engine struct {
	cfg    Config
	merger *feed.Merger

	trackMu sync.Mutex
	mu      sync.RWMutex
	current *session
}

// Diagnostics summarizes the tracked match and its topic connections.
type Diagnostics struct {
	MatchID   string                   `json:"matchId,omitempty"`
	SessionID string                   `json:"sessionId,omitempty"`
	Version   uint64                   `json:"version"`
	Tracking  bool                     `json:"tracking"`
	Topics    []connection.Diagnostics `json:"topics"`
}

// New applies defaults to cfg.
func New(cfg Config) *Engine {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if len(cfg.TopicPatterns) == 0 {
		cfg.TopicPatterns = []string{DefaultTopicPattern}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		cfg:    cfg,
		merger: feed.NewMerger(cfg.Aliases, cfg.Now),
	}
}

// Track switches the engine to matchID. The previous match is fully torn down before the new
// topics are subscribed, and a cold snapshot fetch starts in the background when configured.
func (e *Engine) Track(ctx context.Context, matchID string) error {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		logging.Warn(e.cfg.Logger, "track rejected: empty match id")
		return ErrInvalidMatchID
	}

	e.trackMu.Lock()
	defer e.trackMu.Unlock()

	e.mu.Lock()
	prev := e.current
	e.current = nil
	e.mu.Unlock()
	if prev != nil {
		prev.teardown()
	}

	s := newSession(context.WithoutCancel(ctx), e, matchID)
	e.mu.Lock()
	e.current = s
	e.mu.Unlock()

	topics := transport.TopicsFor(e.cfg.TopicPatterns, matchID)
	logging.Info(s.logger, "tracking match", logging.FieldCount, len(topics))
	s.manager.Start(s.ctx, topics)
	if e.cfg.Snapshots != nil {
		go s.fetchInitial()
	}
	return nil
}

// MatchID returns the tracked match id, or "" when idle.
func (e *Engine) MatchID() string {
	if s := e.session(); s != nil {
		return s.matchID
	}
	return ""
}

// Current re-renders the latest state as seen at now. Staleness is always recomputed so the tier
// advances without new traffic. It reports false until the match has any data.
func (e *Engine) Current(now time.Time) (viewmodel.ViewModel, bool) {
	s := e.session()
	if s == nil {
		return viewmodel.ViewModel{}, false
	}
	return s.view(now)
}

// Refresh fetches the scorecard when configured and re-emits when it changed or the staleness tier
// moved. A scorecard failure is returned after the tier check has run.
func (e *Engine) Refresh(ctx context.Context) error {
	s := e.session()
	if s == nil {
		return nil
	}
	return s.refresh(ctx)
}

// ManualRetry resets reconnect attempts on every topic and reconnects immediately.
func (e *Engine) ManualRetry() error {
	s := e.session()
	if s == nil {
		return ErrNotTracking
	}
	s.manager.ManualRetry()
	return nil
}

// Diagnostics reports the tracked match and its per-topic connection state.
func (e *Engine) Diagnostics() Diagnostics {
	s := e.session()
	if s == nil {
		return Diagnostics{Topics: []connection.Diagnostics{}}
	}
	return Diagnostics{
		MatchID:   s.matchID,
		SessionID: s.id,
		Version:   s.currentVersion(),
		Tracking:  true,
		Topics:    s.manager.Diagnostics(),
	}
}

// Stop tears down the tracked match, if any.
func (e *Engine) Stop() {
	e.trackMu.Lock()
	defer e.trackMu.Unlock()

	e.mu.Lock()
	s := e.current
	e.current = nil
	e.mu.Unlock()
	if s != nil {
		s.teardown()
	}
}

func (e *Engine) session() *session {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}
