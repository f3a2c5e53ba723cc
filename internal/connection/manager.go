// Package connection keeps live topic subscriptions alive with capped exponential backoff.
package connection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/metrics"
	"cricket-live-service/internal/transport"
)

// State is the lifecycle position of one topic.
type State string

const (
	StateIdle       State = "IDLE"
	StateConnecting State = "CONNECTING"
	StateConnected  State = "CONNECTED"
	StateBackoff    State = "BACKOFF"
	StateExhausted  State = "EXHAUSTED"
	StateStopped    State = "STOPPED"
)

const (
	DefaultMaxAttempts  = 10
	DefaultInitialDelay = 2 * time.Second
	DefaultMaxDelay     = 30 * time.Second
	backoffMultiplier   = 2
)

// ErrExhausted is recorded on a topic that used up its reconnect attempts.
var ErrExhausted = errors.New("reconnect attempts exhausted")

// errStreamEnded stands in when a subscription ends without reporting a cause.
var errStreamEnded = errors.New("subscription ended")

// Diagnostics is the observable state of one topic.
type Diagnostics struct {
	Topic          string    `json:"topic"`
	State          State     `json:"state"`
	Attempts       int       `json:"attempts"`
	MaxAttempts    int       `json:"maxAttempts"`
	LastError      string    `json:"lastError,omitempty"`
	NextDelayMs    int64     `json:"nextDelayMs,omitempty"`
	SubscriptionID string    `json:"subscriptionId,omitempty"`
	Messages       int64     `json:"messages"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// MessageHandler receives every raw message in arrival order for its topic.
type MessageHandler func(topic string, payload []byte)

// DiagnosticsSink observes topic state changes. It must not block.
type DiagnosticsSink func(Diagnostics)

// Config wires a Manager. Subscriber and OnMessage are required.
type Config struct {
	Subscriber    transport.Subscriber
	OnMessage     MessageHandler
	OnDiagnostics DiagnosticsSink
	Logger        *slog.Logger
	Metrics       *metrics.Recorder
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Now           func() time.Time
	// After schedules backoff waits; tests replace it to observe and skip delays.
	After func(time.Duration) <-chan time.Time
}

// Manager owns the subscriptions for a set of topics.
type Manager struct {
	cfg Config

	mu      sync.Mutex
	topics  map[string]*topicLoop
	order   []string
	cancel  context.CancelFunc
	started bool
	wg      sync.WaitGroup
}

type topicLoop struct {
	topic   string
	backoff *backoff.ExponentialBackOff
	retry   chan struct{}
	diag    Diagnostics
}

// NewManager applies defaults to cfg.
func NewManager(cfg Config) *Manager {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.After == nil {
		cfg.After = time.After
	}
	return &Manager{cfg: cfg, topics: make(map[string]*topicLoop)}
}

// Start subscribes to every topic. Calling Start again is a no-op until Stop.
func (m *Manager) Start(ctx context.Context, topics []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true
	ctx, m.cancel = context.WithCancel(ctx)
	m.topics = make(map[string]*topicLoop, len(topics))
	m.order = nil

	for _, topic := range topics {
		if _, dup := m.topics[topic]; dup || topic == "" {
			continue
		}
		tl := &topicLoop{
			topic:   topic,
			backoff: m.newBackoff(),
			retry:   make(chan struct{}, 1),
			diag: Diagnostics{
				Topic:       topic,
				State:       StateIdle,
				MaxAttempts: m.cfg.MaxAttempts,
				UpdatedAt:   m.cfg.Now(),
			},
		}
		m.topics[topic] = tl
		m.order = append(m.order, topic)
		m.wg.Add(1)
		go m.run(ctx, tl)
	}
}

// Stop closes every subscription and waits for the topic loops to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.started = false
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// ManualRetry resets attempts and backoff on every topic and reconnects immediately, including
// topics that are exhausted. A topic that is still connecting keeps its pending attempt.
func (m *Manager) ManualRetry() {
	m.mu.Lock()
	signalled := 0
	for _, topic := range m.order {
		tl := m.topics[topic]
		tl.diag.Attempts = 0
		tl.diag.LastError = ""
		tl.backoff.Reset()
		if !acceptsRetry(tl.diag.State) {
			continue
		}
		select {
		case tl.retry <- struct{}{}:
		default:
		}
		signalled++
	}
	total := len(m.order)
	m.mu.Unlock()

	logging.Info(m.cfg.Logger, "manual reconnect requested", logging.FieldCount, total, "signalled", signalled)
}

// acceptsRetry reports whether a retry token would be consumed by a loop in state s. Tokens sent
// while idle or connecting would tear down the connection being established.
func acceptsRetry(s State) bool {
	switch s {
	case StateConnected, StateBackoff, StateExhausted:
		return true
	default:
		return false
	}
}

// Diagnostics returns the state of every topic in start order.
func (m *Manager) Diagnostics() []Diagnostics {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Diagnostics, 0, len(m.order))
	for _, topic := range m.order {
		out = append(out, m.topics[topic].diag)
	}
	return out
}

func (m *Manager) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.cfg.InitialDelay
	b.Multiplier = backoffMultiplier
	b.MaxInterval = m.cfg.MaxDelay
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (m *Manager) run(ctx context.Context, tl *topicLoop) {
	defer m.wg.Done()
	defer m.update(tl, func(d *Diagnostics) {
		d.State = StateStopped
		d.NextDelayMs = 0
	})

	for {
		drain(tl.retry)
		if ctx.Err() != nil {
			return
		}

		subID := uuid.NewString()
		m.update(tl, func(d *Diagnostics) {
			d.State = StateConnecting
			d.SubscriptionID = subID
			d.NextDelayMs = 0
		})
		sub, err := m.cfg.Subscriber.Subscribe(ctx, tl.topic)
		if err == nil {
			m.update(tl, func(d *Diagnostics) { d.State = StateConnected })
			logging.Info(m.cfg.Logger, "feed topic connected", logging.FieldTopic, tl.topic, "subscription_id", subID)
			var retried bool
			retried, err = m.consume(ctx, tl, sub)
			if retried {
				continue
			}
			if err == nil {
				err = errStreamEnded
			}
		}
		if ctx.Err() != nil {
			return
		}
		if !m.recover(ctx, tl, err) {
			return
		}
	}
}

// consume forwards messages until the stream ends, returning the transport's reason. It reports
// true when a manual retry interrupted it.
func (m *Manager) consume(ctx context.Context, tl *topicLoop, sub transport.Subscription) (bool, error) {
	defer func() { _ = sub.Close() }()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-tl.retry:
			return true, nil
		case msg, ok := <-sub.Messages():
			if !ok {
				return false, sub.Err()
			}
			m.noteMessage(tl)
			m.cfg.OnMessage(tl.topic, msg)
		}
	}
}

func (m *Manager) noteMessage(tl *topicLoop) {
	m.mu.Lock()
	tl.diag.Messages++
	reset := tl.diag.Attempts != 0 || tl.diag.LastError != ""
	if reset {
		tl.diag.Attempts = 0
		tl.diag.LastError = ""
		tl.backoff.Reset()
		tl.diag.UpdatedAt = m.cfg.Now()
	}
	diag := tl.diag
	m.mu.Unlock()

	m.cfg.Metrics.RecordFeedMessage(tl.topic)
	if reset {
		m.emit(diag)
	}
}

// recover counts a failure and waits out the backoff, or for a manual retry once exhausted.
// It returns false when the manager is stopping.
func (m *Manager) recover(ctx context.Context, tl *topicLoop, cause error) bool {
	m.mu.Lock()
	tl.diag.Attempts++
	attempts := tl.diag.Attempts
	exhausted := attempts >= m.cfg.MaxAttempts
	var delay time.Duration
	if !exhausted {
		delay = tl.backoff.NextBackOff()
	}
	m.mu.Unlock()

	if exhausted {
		m.update(tl, func(d *Diagnostics) {
			d.State = StateExhausted
			d.LastError = errors.Join(ErrExhausted, cause).Error()
		})
		m.cfg.Metrics.RecordTopicExhausted(tl.topic)
		logging.Error(m.cfg.Logger, "feed topic exhausted reconnect attempts", cause,
			logging.FieldTopic, tl.topic,
			logging.FieldAttempt, attempts,
		)
		select {
		case <-ctx.Done():
			return false
		case <-tl.retry:
			return true
		}
	}

	m.update(tl, func(d *Diagnostics) {
		d.State = StateBackoff
		d.LastError = cause.Error()
		d.NextDelayMs = delay.Milliseconds()
	})
	m.cfg.Metrics.RecordReconnectAttempt(tl.topic, delay)
	logging.Warn(m.cfg.Logger, "feed topic disconnected",
		logging.FieldTopic, tl.topic,
		logging.FieldAttempt, attempts,
		logging.FieldDelayMS, delay.Milliseconds(),
		"error", cause,
	)
	select {
	case <-ctx.Done():
		return false
	case <-tl.retry:
		return true
	case <-m.cfg.After(delay):
		return true
	}
}

func (m *Manager) update(tl *topicLoop, fn func(*Diagnostics)) {
	m.mu.Lock()
	fn(&tl.diag)
	tl.diag.UpdatedAt = m.cfg.Now()
	diag := tl.diag
	m.mu.Unlock()
	m.emit(diag)
}

func (m *Manager) emit(d Diagnostics) {
	if m.cfg.OnDiagnostics != nil {
		m.cfg.OnDiagnostics(d)
	}
}

func drain(ch chan struct{}) {
	select {
	case <-ch:
	default:
	}
}
