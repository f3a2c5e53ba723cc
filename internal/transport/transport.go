// Package transport delivers raw live-feed messages for a topic.
package transport

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrClosed is reported by Err after the subscriber side closed the subscription.
var ErrClosed = errors.New("subscription closed")

// MatchIDPlaceholder is replaced by the match id in topic patterns.
const MatchIDPlaceholder = "{matchId}"

// Subscriber opens topic subscriptions.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (Subscription, error)
}

// Subscription is one live topic stream. Messages is closed when the stream ends; Err then reports why.
type Subscription interface {
	Messages() <-chan []byte
	Err() error
	Close() error
}

// TopicFor expands a topic pattern for a match. Patterns without the placeholder get the id appended.
func TopicFor(pattern, matchID string) string {
	if strings.Contains(pattern, MatchIDPlaceholder) {
		return strings.ReplaceAll(pattern, MatchIDPlaceholder, matchID)
	}
	return strings.TrimSuffix(pattern, "/") + "/" + matchID
}

// TopicsFor expands every pattern for a match, skipping blanks and duplicates.
func TopicsFor(patterns []string, matchID string) []string {
	seen := make(map[string]struct{}, len(patterns))
	topics := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		topic := TopicFor(p, matchID)
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	return topics
}

// stream is the Subscription shared by the transports. A single producer goroutine delivers
// messages and calls finish exactly once.
type stream struct {
	messages chan []byte
	done     chan struct{}

	mu  sync.Mutex
	err error

	closeOnce  sync.Once
	finishOnce sync.Once
	closeFn    func() error
}

func newStream(ctx context.Context, buffer int, closeFn func() error) *stream {
	s := &stream{
		messages: make(chan []byte, buffer),
		done:     make(chan struct{}),
		closeFn:  closeFn,
	}
	go func() {
		select {
		case <-ctx.Done():
			_ = s.Close()
		case <-s.done:
		}
	}()
	return s
}

func (s *stream) Messages() <-chan []byte { return s.messages }

func (s *stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.setErr(ErrClosed)
		close(s.done)
		if s.closeFn != nil {
			err = s.closeFn()
		}
	})
	return err
}

// deliver hands msg to the consumer, reporting false once the stream was closed.
func (s *stream) deliver(msg []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.messages <- msg:
		return true
	case <-s.done:
		return false
	}
}

func (s *stream) finish(err error) {
	s.finishOnce.Do(func() {
		s.setErr(err)
		close(s.messages)
	})
}

func (s *stream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}
