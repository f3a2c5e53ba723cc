package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cricket-live-service/internal/app/live"
	"cricket-live-service/internal/http/requestutil"
	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/snapshots"
)

// AdminHandler serves operator endpoints guarded by a bearer token.
type AdminHandler struct {
	views  *live.Service
	writer *snapshots.Writer
	token  string
	logger *slog.Logger
	now    nowFunc
}

type exportResponse struct {
	Status   string   `json:"status"`
	Exported int      `json:"exported"`
	Failed   []string `json:"failed,omitempty"`
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(views *live.Service, writer *snapshots.Writer, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		views:  views,
		writer: writer,
		token:  token,
		logger: logger,
		now:    time.Now,
	}
}

// ExportViews rewrites every stored view to the export directory and refreshes the manifest. A
// failing match does not stop the others; any failure turns the response into a 500 listing them.
func (h *AdminHandler) ExportViews(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if !h.authorized(r) {
		logging.Warn(logger, "admin request rejected", slog.String("client_ip", requestutil.ClientIP(r)))
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.views == nil || h.writer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "view export not configured", logger)
		return
	}

	resp := exportResponse{Status: "ok"}
	for _, vm := range h.views.Views(h.now()) {
		if err := h.writer.WriteView(vm); err != nil {
			logging.Error(logger, "view export failed", err, logging.FieldMatchID, vm.MatchID)
			resp.Failed = append(resp.Failed, vm.MatchID)
			continue
		}
		resp.Exported++
	}

	status := http.StatusOK
	if len(resp.Failed) > 0 {
		resp.Status = "partial"
		status = http.StatusInternalServerError
	}
	logging.Info(logger, "admin export finished", logging.FieldCount, resp.Exported, "failed", len(resp.Failed))
	writeJSON(w, status, resp, logger)
}

func (h *AdminHandler) authorized(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	presented, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.token)) == 1
}
