package config

import "time"

const (
	envPort            = "PORT"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMatchID         = "MATCH_ID"
	envRefreshInterval = "REFRESH_INTERVAL"

	envTransport     = "TRANSPORT"
	envFeedWSURL     = "FEED_WS_URL"
	envRedisAddr     = "REDIS_ADDR"
	envTopicPatterns = "TOPIC_PATTERNS"
	envFetchTimeout  = "FETCH_TIMEOUT"
	envMaxReconnect  = "MAX_RECONNECT_ATTEMPTS"
	envAliasesFile   = "FIELD_ALIASES_FILE"

	envSnapshotProvider  = "SNAPSHOT_PROVIDER"
	envFeedAPIBaseURL    = "FEED_API_BASE_URL"
	envFeedAPIKey        = "FEED_API_KEY"
	envScorecardInterval = "SCORECARD_MIN_INTERVAL"

	envExportDir       = "VIEW_EXPORT_DIR"
	envExportRetention = "VIEW_EXPORT_RETENTION"
	envAdminToken      = "ADMIN_TOKEN"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envOtelInterval = "METRICS_EXPORT_INTERVAL"

	defaultPort            = "4000"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultRefreshInterval = 5 * Duration(time.Second)

	defaultTransport    = TransportWebSocket
	defaultFeedWSURL    = "ws://localhost:8081/feed"
	defaultRedisAddr    = "localhost:6379"
	defaultTopicPattern = "live/{matchId}"
	defaultFetchTimeout = 8 * Duration(time.Second)
	defaultMaxReconnect = 10
	defaultProvider     = "fixture"
	defaultFeedAPIURL   = "http://localhost:8081/v1"

	// Scorecards change slowly; keep upstream traffic well under the refresh cadence.
	defaultScorecardInterval = 30 * Duration(time.Second)

	defaultExportRetention = 24 * Duration(time.Hour)
	defaultMetricsPort     = "9090"
	defaultExportInterval  = 15 * Duration(time.Second)
	defaultServiceName     = "cricket-live-service"
)

const (
	TransportWebSocket = "websocket"
	TransportRedis     = "redis"
)
