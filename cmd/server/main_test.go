package main

import (
	"context"
	"log/slog"
	"testing"

	"cricket-live-service/internal/config"
)

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	cfg := config.Config{LogLevel: "warn", LogFormat: "json"}
	cfg.Metrics.ServiceName = "cricket-live-service"

	logger := newLogger(cfg)
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("expected info disabled at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatalf("expected warn enabled")
	}
}
