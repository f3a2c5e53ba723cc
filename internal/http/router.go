package http

import (
	nethttp "net/http"

	"cricket-live-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. The admin handler is optional.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/live", handler.Live)
	mux.HandleFunc("/live/diagnostics", handler.LiveDiagnostics)
	mux.HandleFunc("/live/retry", handler.Retry)
	mux.HandleFunc("/live/track", handler.Track)
	mux.HandleFunc("/matches", handler.Matches)
	mux.HandleFunc("/matches/", handler.MatchByID)
	if admin != nil {
		mux.HandleFunc("/admin/export", admin.ExportViews)
	}
	return mux
}
