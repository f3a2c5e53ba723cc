package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"cricket-live-service/internal/app/live"
	"cricket-live-service/internal/config"
	httpserver "cricket-live-service/internal/http"
	"cricket-live-service/internal/http/handlers"
	"cricket-live-service/internal/http/middleware"
	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/metrics"
	"cricket-live-service/internal/poller"
	"cricket-live-service/internal/snapshots"
	"cricket-live-service/internal/store"
	"cricket-live-service/internal/transport"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	engine        Tracker
	live          *live.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	closeFeed     func() error
}

// New constructs a server with the configured transport and provider wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	subscriber, closeFeed := buildSubscriber(cfg, logger)
	srv := newServerWithSubscriber(cfg, logger, subscriber, nil)
	srv.closeFeed = closeFeed
	return srv
}

func newServerWithSubscriber(cfg config.Config, logger *slog.Logger, subscriber transport.Subscriber, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	snaps, cards := newProviderFactory(logger, recorder).build(cfg)
	writer := buildExporter(cfg)
	svc := buildLiveService(writer, logger)
	eng := buildEngine(cfg, logger, recorder, subscriber, snaps, cards, svc.Publish)
	plr := poller.New(eng, logger, recorder, cfg.RefreshInterval)
	httpSrv := buildHTTPServer(cfg, eng, svc, writer, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		engine:        eng,
		live:          svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, eng Tracker, svc *live.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		engine:     eng,
		live:       svc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildLiveService(writer *snapshots.Writer, logger *slog.Logger) *live.Service {
	var exporter live.Exporter
	if writer != nil {
		exporter = writer
	}
	return live.NewService(store.NewMemoryStore(), exporter, logger)
}

// buildExporter returns nil when export is disabled.
func buildExporter(cfg config.Config) *snapshots.Writer {
	if cfg.Export.Dir == "" {
		return nil
	}
	return snapshots.NewWriter(cfg.Export.Dir, cfg.Export.Retention)
}

func buildHTTPServer(cfg config.Config, eng handlers.LiveEngine, svc *live.Service, writer *snapshots.Writer, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(eng, svc, logger, statusFn)
	// Mount admin export only when a token is configured.
	var admin *handlers.AdminHandler
	if cfg.Export.AdminToken != "" {
		admin = handlers.NewAdminHandler(svc, writer, cfg.Export.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(cfg.Port, wrapped)
}

// Run starts the poller and HTTP server, tracks the configured match, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.trackInitial(ctx)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) trackInitial(ctx context.Context) {
	if s.cfg.MatchID == "" || s.engine == nil {
		logging.Info(s.logger, "no initial match configured, waiting for POST /live/track")
		return
	}
	if err := s.engine.Track(ctx, s.cfg.MatchID); err != nil {
		logging.Warn(s.logger, "initial match not tracked", logging.FieldMatchID, s.cfg.MatchID, "error", err)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops the refresh loop and HTTP before the engine, so no emit races the export
// queue drain.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "scorecard refresh loop did not stop", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.engine != nil {
		s.engine.Stop()
	}
	if s.live != nil {
		s.live.Close()
	}
	if s.closeFeed != nil {
		if err := s.closeFeed(); err != nil {
			logging.Warn(s.logger, "feed transport close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := cfg.Metrics.Telemetry()

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, name+" server starting", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(logger, name+" server failed", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
