package config

import (
	"strings"

	"cricket-live-service/internal/metrics"
)

// MetricsConfig controls the Prometheus endpoint and optional OTLP push.
type MetricsConfig struct {
	Enabled        bool
	Port           string
	OtlpEndpoint   string
	ServiceName    string
	OtlpInsecure   bool
	ExportInterval Duration
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:        boolEnvOrDefault(envMetricsOn, true),
		Port:           envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint:   trimScheme(envOrDefault(envOtelEndpoint, "")),
		ServiceName:    envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure:   boolEnvOrDefault(envOtelInsecure, true),
		ExportInterval: durationEnvOrDefault(envOtelInterval, defaultExportInterval),
	}
}

// Telemetry converts the settings into the form metrics.Setup takes.
func (c MetricsConfig) Telemetry() metrics.TelemetryConfig {
	return metrics.TelemetryConfig{
		Enabled:        c.Enabled,
		Port:           c.Port,
		ServiceName:    c.ServiceName,
		OtlpEndpoint:   c.OtlpEndpoint,
		OtlpInsecure:   c.OtlpInsecure,
		ExportInterval: c.ExportInterval,
	}
}

// trimScheme reduces a collector URL to the host:port the OTLP exporter takes.
func trimScheme(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	for _, scheme := range []string{"http://", "https://", "grpc://"} {
		if strings.HasPrefix(strings.ToLower(endpoint), scheme) {
			return strings.TrimSuffix(endpoint[len(scheme):], "/")
		}
	}
	return endpoint
}
