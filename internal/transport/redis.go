package transport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"cricket-live-service/internal/logging"
)

// RedisSubscriber delivers topic messages from Redis pub/sub channels.
type RedisSubscriber struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisSubscriber wraps an existing client; the caller owns its lifecycle.
func NewRedisSubscriber(client *redis.Client, logger *slog.Logger) *RedisSubscriber {
	return &RedisSubscriber{client: client, logger: logger}
}

// Subscribe subscribes to the channel named topic and waits for the server confirmation.
func (s *RedisSubscriber) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	ps := s.client.Subscribe(ctx, topic)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe redis channel %s: %w", topic, err)
	}

	st := newStream(ctx, messageBuffer, ps.Close)
	go func() {
		for {
			msg, err := ps.ReceiveMessage(context.Background())
			if err != nil {
				logging.Debug(s.logger, "redis subscription ended", logging.FieldTopic, topic, "error", err)
				st.finish(err)
				return
			}
			if !st.deliver([]byte(msg.Payload)) {
				st.finish(ErrClosed)
				return
			}
		}
	}()
	logging.Debug(s.logger, "redis channel subscribed", logging.FieldTopic, topic)
	return st, nil
}
