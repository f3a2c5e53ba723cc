package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cricket-live-service/internal/config"
	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/server"
)

// appVersion is stamped at build time with -ldflags "-X main.appVersion=...".
var appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := newLogger(cfg)
	logger.Info("configuration loaded",
		logging.FieldMatchID, cfg.MatchID,
		"transport", cfg.Feed.Transport,
		logging.FieldProvider, cfg.Provider.Name,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})
}
