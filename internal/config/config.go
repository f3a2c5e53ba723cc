package config

// Config holds runtime configuration for the server.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	// MatchID is tracked at startup when set; otherwise the engine idles until POST /live/track.
	MatchID         string
	RefreshInterval Duration
	Feed            FeedConfig
	Provider        ProviderConfig
	Export          ExportConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		LogLevel:        envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:       envOrDefault(envLogFormat, defaultLogFormat),
		MatchID:         envOrDefault(envMatchID, ""),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Feed:            loadFeed(),
		Provider:        loadProvider(),
		Export:          loadExport(),
		Metrics:         loadMetrics(),
	}
}
