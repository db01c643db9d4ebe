package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/equipment-tracker/internal/app/reports"
	"github.com/preston-bernstein/equipment-tracker/internal/http/requestutil"
	"github.com/preston-bernstein/equipment-tracker/internal/logging"
)

// Refresher forces an immediate roster re-list.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AdminHandler exposes operational endpoints guarded by a bearer token.
type AdminHandler struct {
	reports   *reports.Service
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every
// admin endpoint.
func NewAdminHandler(reportSvc *reports.Service, refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reports:   reportSvc,
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// ExportReport writes the current CSV report to the configured sink.
func (h *AdminHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	location, err := h.reports.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"location": location,
		"status":   "ok",
	}, logger)
}

// RefreshRoster re-lists the store without waiting for the next interval.
func (h *AdminHandler) RefreshRoster(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "roster sync not configured", logger)
		return
	}
	if err := h.refresher.Refresh(r.Context()); err != nil {
		logging.Warn(logger, "admin roster refresh failed", "err", err)
		writeError(w, r, http.StatusBadGateway, "failed to refresh roster", logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}

func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if requestutil.TokenMatches(r, h.token) {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}
