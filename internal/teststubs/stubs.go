package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"cricket-live-service/internal/domain/match"
	"cricket-live-service/internal/transport"
)

// StubSubscriber is a test double for transport.Subscriber. The first FailFirst calls return Err;
// a negative FailFirst fails every call. Successful calls publish the new subscription on Subs
// when it is set.
type StubSubscriber struct {
	FailFirst int
	Err       error
	Subs      chan *StubSubscription
	Calls     atomic.Int32

	mu     sync.Mutex
	topics []string
}

// Subscribe records the topic and returns a scripted result.
func (s *StubSubscriber) Subscribe(ctx context.Context, topic string) (transport.Subscription, error) {
	_ = ctx
	n := int(s.Calls.Add(1))
	s.mu.Lock()
	s.topics = append(s.topics, topic)
	s.mu.Unlock()

	if s.Err != nil && (s.FailFirst < 0 || n <= s.FailFirst) {
		return nil, s.Err
	}
	sub := NewStubSubscription(topic)
	if s.Subs != nil {
		s.Subs <- sub
	}
	return sub, nil
}

// Topics returns every topic passed to Subscribe, in call order.
func (s *StubSubscriber) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.topics...)
}

// StubSubscription is a test double for transport.Subscription driven by Send and End.
type StubSubscription struct {
	Topic  string
	Closed atomic.Bool

	ch        chan []byte
	done      chan struct{}
	closeOnce sync.Once
	endOnce   sync.Once
	mu        sync.Mutex
	err       error
}

// NewStubSubscription returns an open subscription for topic.
func NewStubSubscription(topic string) *StubSubscription {
	return &StubSubscription{
		Topic: topic,
		ch:    make(chan []byte, 16),
		done:  make(chan struct{}),
	}
}

func (s *StubSubscription) Messages() <-chan []byte { return s.ch }

func (s *StubSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close marks the subscription closed by the consumer.
func (s *StubSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.Closed.Store(true)
		s.setErr(transport.ErrClosed)
		close(s.done)
	})
	return nil
}

// Send delivers a message, reporting false when the consumer already closed the subscription.
func (s *StubSubscription) Send(msg []byte) bool {
	select {
	case s.ch <- msg:
		return true
	case <-s.done:
		return false
	}
}

// End simulates the transport dropping with err. Send must not be called afterwards.
func (s *StubSubscription) End(err error) {
	s.endOnce.Do(func() {
		s.setErr(err)
		close(s.ch)
	})
}

func (s *StubSubscription) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// StubSnapshotProvider is a test double for providers.SnapshotProvider. When Release is set the
// fetch blocks until it is closed or the context ends.
type StubSnapshotProvider struct {
	Payload []byte
	Err     error
	Release chan struct{}
	Calls   atomic.Int32
	Notify  chan struct{}
}

// FetchSnapshot returns the configured payload and error while tracking calls.
func (s *StubSnapshotProvider) FetchSnapshot(ctx context.Context, matchID string) ([]byte, error) {
	_ = matchID
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	if s.Release != nil {
		select {
		case <-s.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.Payload, s.Err
}

// StubScorecardProvider is a test double for providers.ScorecardProvider.
type StubScorecardProvider struct {
	Scorecard match.Scorecard
	Err       error
	Calls     atomic.Int32
}

// FetchScorecard returns the configured scorecard and error while tracking calls.
func (s *StubScorecardProvider) FetchScorecard(ctx context.Context, matchID string) (match.Scorecard, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Err != nil {
		return match.Scorecard{}, s.Err
	}
	card := s.Scorecard
	card.MatchID = matchID
	return card, nil
}

// StubRefresher is a test double for poller.Refresher. Notify is closed on the first call.
type StubRefresher struct {
	Calls  atomic.Int32
	Notify chan struct{}

	mu  sync.Mutex
	err error
}

// SetErr changes the error returned by later calls.
func (s *StubRefresher) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Refresh records the call and returns the configured error.
func (s *StubRefresher) Refresh(ctx context.Context) error {
	_ = ctx
	if s.Calls.Add(1) == 1 && s.Notify != nil {
		close(s.Notify)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
