package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"cricket-live-service/internal/app/live"
	"cricket-live-service/internal/engine"
	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/poller"
	"cricket-live-service/internal/viewmodel"
)

type nowFunc func() time.Time

// LiveEngine is the slice of the sync engine the HTTP layer drives.
type LiveEngine interface {
	Current(now time.Time) (viewmodel.ViewModel, bool)
	MatchID() string
	Track(ctx context.Context, matchID string) error
	ManualRetry() error
	Diagnostics() engine.Diagnostics
}

// Handler wires HTTP routes to the live engine and the published views.
type Handler struct {
	engine   LiveEngine
	views    *live.Service
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(eng LiveEngine, views *live.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		engine:   eng,
		views:    views,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// ServeHTTP dispatches without a mux; the router registers the handlers individually.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/live":
		h.Live(w, r)
	case r.URL.Path == "/live/diagnostics":
		h.LiveDiagnostics(w, r)
	case r.URL.Path == "/live/retry":
		h.Retry(w, r)
	case r.URL.Path == "/live/track":
		h.Track(w, r)
	case r.URL.Path == "/matches":
		h.Matches(w, r)
	case strings.HasPrefix(r.URL.Path, "/matches/"):
		h.MatchByID(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Live returns the tracked match's view with staleness graded at request time.
func (h *Handler) Live(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.engine == nil || h.engine.MatchID() == "" {
		writeError(w, r, nethttp.StatusNotFound, "no match tracked", h.logger)
		return
	}
	vm, ok := h.engine.Current(h.now())
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, "waiting for live data", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, vm, h.logger)
}

// LiveDiagnostics reports per-topic connection state for the tracked match.
func (h *Handler) LiveDiagnostics(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.engine == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "engine not configured", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.engine.Diagnostics(), h.logger)
}

// Retry resets reconnect attempts on every topic, including exhausted ones.
func (h *Handler) Retry(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	if h.engine == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "engine not configured", h.logger)
		return
	}
	if err := h.engine.ManualRetry(); err != nil {
		if errors.Is(err, engine.ErrNotTracking) {
			writeError(w, r, nethttp.StatusConflict, err.Error(), h.logger)
			return
		}
		writeError(w, r, nethttp.StatusInternalServerError, "retry failed", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusAccepted, map[string]string{
		"status":  "retrying",
		"matchId": h.engine.MatchID(),
	}, h.logger)
}

// Track switches the engine to the match named by the matchId query parameter.
func (h *Handler) Track(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	if h.engine == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "engine not configured", h.logger)
		return
	}
	matchID := strings.TrimSpace(r.URL.Query().Get("matchId"))
	if err := h.engine.Track(r.Context(), matchID); err != nil {
		if errors.Is(err, engine.ErrInvalidMatchID) {
			writeError(w, r, nethttp.StatusBadRequest, "matchId is required", h.logger)
			return
		}
		writeError(w, r, nethttp.StatusInternalServerError, "track failed", h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "match tracking switched", logging.FieldMatchID, matchID)
	writeJSON(w, nethttp.StatusAccepted, map[string]string{
		"status":  "tracking",
		"matchId": matchID,
	}, h.logger)
}

// Matches lists every published view ordered by match id.
func (h *Handler) Matches(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	views := []viewmodel.ViewModel{}
	if h.views != nil {
		views = h.views.Views(h.now())
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"count":   len(views),
		"matches": views,
	}, h.logger)
}

// MatchByID returns the last published view for a match.
func (h *Handler) MatchByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	// Expect path: /matches/{id}
	idRaw := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/matches"), "/")
	id, err := url.PathUnescape(idRaw)
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", h.logger)
		return
	}
	if h.views == nil {
		writeError(w, r, nethttp.StatusNotFound, "match not found", h.logger)
		return
	}
	vm, ok := h.views.View(id, h.now())
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "match not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, vm, h.logger)
}
