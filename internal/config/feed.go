package config

import (
	"strings"
	"time"
)

// FeedConfig controls the live topic transport and reconnect behaviour.
type FeedConfig struct {
	Transport            string
	WebSocketURL         string
	RedisAddr            string
	TopicPatterns        []string
	FetchTimeout         time.Duration
	MaxReconnectAttempts int
	// AliasesFile optionally extends the upstream field alias table.
	AliasesFile string
}

func loadFeed() FeedConfig {
	transport := strings.ToLower(strings.TrimSpace(envOrDefault(envTransport, defaultTransport)))
	if transport != TransportWebSocket && transport != TransportRedis {
		transport = defaultTransport
	}
	return FeedConfig{
		Transport:            transport,
		WebSocketURL:         envOrDefault(envFeedWSURL, defaultFeedWSURL),
		RedisAddr:            envOrDefault(envRedisAddr, defaultRedisAddr),
		TopicPatterns:        listEnvOrDefault(envTopicPatterns, []string{defaultTopicPattern}),
		FetchTimeout:         durationEnvOrDefault(envFetchTimeout, defaultFetchTimeout),
		MaxReconnectAttempts: intEnvOrDefault(envMaxReconnect, defaultMaxReconnect),
		AliasesFile:          envOrDefault(envAliasesFile, ""),
	}
}
