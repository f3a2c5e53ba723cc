package server

import (
	"log/slog"

	"cricket-live-service/internal/config"
	"cricket-live-service/internal/connection"
	"cricket-live-service/internal/engine"
	"cricket-live-service/internal/feed"
	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/metrics"
	"cricket-live-service/internal/providers"
	"cricket-live-service/internal/transport"
)

func buildEngine(
	cfg config.Config,
	logger *slog.Logger,
	recorder *metrics.Recorder,
	subscriber transport.Subscriber,
	snaps providers.SnapshotProvider,
	cards providers.ScorecardProvider,
	sink engine.ViewSink,
) *engine.Engine {
	return engine.New(engine.Config{
		Subscriber:    subscriber,
		Snapshots:     snaps,
		Scorecards:    cards,
		TopicPatterns: cfg.Feed.TopicPatterns,
		Aliases:       loadAliases(cfg, logger),
		FetchTimeout:  cfg.Feed.FetchTimeout,
		MaxAttempts:   cfg.Feed.MaxReconnectAttempts,
		OnView:        sink,
		OnDiagnostics: logDiagnostics(logger),
		Logger:        logger,
		Metrics:       recorder,
	})
}

// logDiagnostics pushes every topic state change to the debug log.
func logDiagnostics(logger *slog.Logger) connection.DiagnosticsSink {
	if logger == nil {
		return nil
	}
	return func(d connection.Diagnostics) {
		logging.Debug(logger, "feed topic state changed",
			logging.FieldTopic, d.Topic,
			"state", d.State,
			logging.FieldAttempt, d.Attempts,
			logging.FieldDelayMS, d.NextDelayMs,
			"last_error", d.LastError,
		)
	}
}

// loadAliases returns nil (built-in aliases) when no file is configured or it cannot be used.
func loadAliases(cfg config.Config, logger *slog.Logger) feed.AliasTable {
	if cfg.Feed.AliasesFile == "" {
		return nil
	}
	table, err := feed.LoadAliasFile(cfg.Feed.AliasesFile)
	if err != nil {
		logging.Warn(logger, "field alias file ignored, using built-in aliases", "path", cfg.Feed.AliasesFile, "error", err)
		return nil
	}
	logging.Info(logger, "field alias file loaded", "path", cfg.Feed.AliasesFile)
	return table
}
