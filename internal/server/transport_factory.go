package server

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"cricket-live-service/internal/config"
	"cricket-live-service/internal/transport"
)

// buildSubscriber returns the configured topic transport and a close hook for any client it owns.
func buildSubscriber(cfg config.Config, logger *slog.Logger) (transport.Subscriber, func() error) {
	switch cfg.Feed.Transport {
	case config.TransportRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Feed.RedisAddr})
		if logger != nil {
			logger.Info("feed transport selected", slog.String("transport", config.TransportRedis), slog.String("addr", cfg.Feed.RedisAddr))
		}
		return transport.NewRedisSubscriber(client, logger), client.Close
	default:
		if logger != nil {
			logger.Info("feed transport selected", slog.String("transport", config.TransportWebSocket), slog.String("url", cfg.Feed.WebSocketURL))
		}
		return transport.NewWebSocketSubscriber(transport.WebSocketConfig{
			URL:    cfg.Feed.WebSocketURL,
			Logger: logger,
		}), nil
	}
}
