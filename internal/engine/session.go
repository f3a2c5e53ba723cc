package engine

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"cricket-live-service/internal/connection"
	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/feed"
	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/snapshot"
	"cricket-live-service/internal/staleness"
	"cricket-live-service/internal/viewmodel"
)

// session is the per-match context. Everything it owns is discarded on teardown.
type session struct {
	e       *Engine
	id      string
	matchID string
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	manager *connection.Manager

	mu          sync.Mutex
	closed      bool
	state       feed.LegacyState
	liveApplied bool
	scorecard   *match.Scorecard
	version     uint64
	last        *viewmodel.ViewModel
}

func newSession(parent context.Context, e *Engine, matchID string) *session {
	ctx, cancel := context.WithCancel(parent)
	s := &session{
		e:       e,
		id:      uuid.NewString(),
		matchID: matchID,
		ctx:     ctx,
		cancel:  cancel,
	}
	if e.cfg.Logger != nil {
		s.logger = e.cfg.Logger.With(
			slog.String(logging.FieldMatchID, matchID),
			slog.String(logging.FieldSessionID, s.id),
		)
	}
	s.manager = connection.NewManager(connection.Config{
		Subscriber:    e.cfg.Subscriber,
		OnMessage:     s.handleMessage,
		OnDiagnostics: e.cfg.OnDiagnostics,
		Logger:        s.logger,
		Metrics:       e.cfg.Metrics,
		MaxAttempts:   e.cfg.MaxAttempts,
		Now:           e.cfg.Now,
		After:         e.cfg.After,
	})
	return s
}

// teardown cancels the pending fetch and backoff timers and closes every subscription. Nothing
// resolving afterwards is applied.
func (s *session) teardown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.manager.Stop()
	logging.Info(s.logger, "match teardown complete")
}

func (s *session) handleMessage(topic string, raw []byte) {
	payload, err := feed.DecodePayload(raw)
	if err != nil {
		logging.Debug(s.logger, "feed message ignored", logging.FieldTopic, topic, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = s.e.merger.Merge(s.state, payload, true)
	s.liveApplied = true
	s.e.cfg.Metrics.RecordMerge(sourceLive)
	s.emitLocked(s.e.cfg.Now())
}

func (s *session) fetchInitial() {
	ctx, cancel := context.WithTimeout(s.ctx, s.e.cfg.FetchTimeout)
	defer cancel()

	raw, err := s.e.cfg.Snapshots.FetchSnapshot(ctx, s.matchID)
	if err != nil {
		if s.ctx.Err() != nil {
			return
		}
		logging.Warn(s.logger, "initial snapshot unavailable, continuing with live feed only", "error", err)
		return
	}
	payload, err := feed.DecodePayload(raw)
	if err != nil {
		logging.Warn(s.logger, "initial snapshot unreadable, continuing with live feed only", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	next := s.e.merger.Merge(s.state, payload, false)
	if s.liveApplied && next.LastUpdatedMs <= s.state.LastUpdatedMs {
		logging.Debug(s.logger, "initial snapshot older than live state, dropped")
		return
	}
	s.state = next
	s.e.cfg.Metrics.RecordMerge(sourceSnapshot)
	s.emitLocked(s.e.cfg.Now())
}

func (s *session) refresh(ctx context.Context) error {
	var (
		card     match.Scorecard
		fetchErr error
		fetched  bool
	)
	if s.e.cfg.Scorecards != nil {
		card, fetchErr = s.e.cfg.Scorecards.FetchScorecard(ctx, s.matchID)
		fetched = fetchErr == nil && !card.IsEmpty()
		if fetchErr != nil {
			logging.Warn(s.logger, "scorecard refresh failed", "error", fetchErr)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fetchErr
	}
	changed := false
	if fetched && !sameScorecard(s.scorecard, card) {
		s.scorecard = &card
		changed = true
	}
	if s.state.HasData() {
		tier := staleness.Classify(s.state.LastUpdatedMs, s.e.cfg.Now().UnixMilli()).Tier
		if s.last == nil || tier != s.last.Staleness.Tier {
			changed = true
		}
		if changed {
			s.emitLocked(s.e.cfg.Now())
		}
	}
	return fetchErr
}

func (s *session) view(now time.Time) (viewmodel.ViewModel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.HasData() {
		return viewmodel.ViewModel{}, false
	}
	vm := s.renderLocked(now)
	vm.Version = s.version
	vm.SessionID = s.id
	return vm, true
}

func (s *session) currentVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *session) renderLocked(now time.Time) viewmodel.ViewModel {
	snap := staleness.Apply(snapshot.Build(s.state, s.matchID), now)
	return viewmodel.Adapt(snap, s.last, s.scorecard)
}

// emitLocked renders, stamps the next version and pushes the result while s.mu is held, so sinks
// observe versions in order.
func (s *session) emitLocked(now time.Time) {
	vm := s.renderLocked(now)
	s.version++
	vm.Version = s.version
	vm.SessionID = s.id
	s.last = &vm
	s.e.cfg.Metrics.RecordEmit(string(vm.Staleness.Tier))
	logging.Debug(s.logger, "view model emitted",
		logging.FieldSequence, vm.Version,
		logging.FieldTier, string(vm.Staleness.Tier),
	)
	if s.e.cfg.OnView != nil {
		s.e.cfg.OnView(vm)
	}
}

func sameScorecard(prev *match.Scorecard, next match.Scorecard) bool {
	if prev == nil {
		return false
	}
	return reflect.DeepEqual(prev.Batters, next.Batters) &&
		reflect.DeepEqual(prev.Bowler, next.Bowler) &&
		reflect.DeepEqual(prev.Partnership, next.Partnership)
}
