package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/equipment-tracker/internal/logging"
)

// MissingReport lists incomplete players with reminder messages.
func (h *Handler) MissingReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reports.Missing(), h.logger)
}

// Stats returns the statistics panel.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reports.Stats(), h.logger)
}

// ExportCSV streams the inventory report as a download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, name, err := h.reports.CSV()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "report download interrupted", "err", err)
	}
}
