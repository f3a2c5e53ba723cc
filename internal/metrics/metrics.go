package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type topicStats struct {
	messages   int
	reconnects int
	exhausted  int
}

// Recorder captures lightweight, in-memory metrics about provider calls and the live feed,
// and forwards them to OpenTelemetry instruments when Setup enabled them.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*providerStats
	topics      map[string]*topicStats
	merges      map[string]int
	emits       map[string]int
	refreshN    int
	refreshErrN int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:  make(map[string]*providerStats),
		topics: make(map[string]*topicStats),
		merges: make(map[string]int),
		emits:  make(map[string]int),
		otel:   otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordFeedMessage counts a raw message received on a topic.
func (r *Recorder) RecordFeedMessage(topic string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureTopic(topic).messages++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordTopicEvent(r.otel.feedMessages, topic)
	}
}

// RecordReconnectAttempt counts a scheduled reconnect for a topic.
func (r *Recorder) RecordReconnectAttempt(topic string, delay time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureTopic(topic).reconnects++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordReconnect(topic, delay)
	}
}

// RecordTopicExhausted counts a topic giving up after its final attempt.
func (r *Recorder) RecordTopicExhausted(topic string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureTopic(topic).exhausted++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordTopicEvent(r.otel.exhausted, topic)
	}
}

// RecordMerge counts a payload merged into match state, by source (live or snapshot).
func (r *Recorder) RecordMerge(source string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.merges[source]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordLabelled(r.otel.merges, AttrSource, source)
	}
}

// RecordEmit counts a view model pushed to subscribers, by staleness tier.
func (r *Recorder) RecordEmit(tier string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.emits[tier]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordLabelled(r.otel.emits, AttrTier, tier)
	}
}

// RecordRefreshCycle tracks refresh cycles and errors.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refreshN++
	if err != nil {
		r.refreshErrN++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRefresh(duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[provider]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// FeedSnapshot is a copy of the live feed counters.
type FeedSnapshot struct {
	Messages      map[string]int
	Reconnects    map[string]int
	Exhausted     map[string]int
	Merges        map[string]int
	Emits         map[string]int
	RefreshCycles int
	RefreshErrors int
}

// Feed returns a copy of the live feed counters.
func (r *Recorder) Feed() FeedSnapshot {
	out := FeedSnapshot{
		Messages:   map[string]int{},
		Reconnects: map[string]int{},
		Exhausted:  map[string]int{},
		Merges:     map[string]int{},
		Emits:      map[string]int{},
	}
	if r == nil {
		return out
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for topic, s := range r.topics {
		out.Messages[topic] = s.messages
		out.Reconnects[topic] = s.reconnects
		out.Exhausted[topic] = s.exhausted
	}
	for k, v := range r.merges {
		out.Merges[k] = v
	}
	for k, v := range r.emits {
		out.Emits[k] = v
	}
	out.RefreshCycles = r.refreshN
	out.RefreshErrors = r.refreshErrN
	return out
}

// ensureStats requires r.mu.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

// ensureTopic requires r.mu.
func (r *Recorder) ensureTopic(topic string) *topicStats {
	stats, ok := r.topics[topic]
	if !ok {
		stats = &topicStats{}
		r.topics[topic] = stats
	}
	return stats
}
