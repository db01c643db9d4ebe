package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/equipment-tracker/internal/app/players"
	"github.com/preston-bernstein/equipment-tracker/internal/app/reports"
	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/syncer"
)

// Handler wires HTTP routes to the roster and report services.
type Handler struct {
	players  *players.Service
	reports  *reports.Service
	logger   *slog.Logger
	statusFn func() syncer.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the
// service always reports ready.
func NewHandler(playerSvc *players.Service, reportSvc *reports.Service, logger *slog.Logger, statusFn func() syncer.Status) *Handler {
	return &Handler{
		players:  playerSvc,
		reports:  reportSvc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the first roster snapshot has loaded.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ready",
			"players": status.Players,
			"seeding": status.Seeding,
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// playerView is a roster entry with its completion figures.
type playerView struct {
	roster.Player
	Progress     roster.Progress `json:"progress"`
	Percent      int             `json:"percent"`
	MissingCount int             `json:"missingCount"`
	JerseyOnly   bool            `json:"jerseyOnly"`
}

func newPlayerView(d players.Detail) playerView {
	return playerView{
		Player:       d.Player,
		Progress:     d.Progress,
		Percent:      d.Percent,
		MissingCount: len(d.Missing),
		JerseyOnly:   d.JerseyOnly,
	}
}

func viewsFor(svc *players.Service, list []roster.Player) []playerView {
	out := make([]playerView, 0, len(list))
	for _, p := range list {
		out = append(out, newPlayerView(svc.Describe(p)))
	}
	return out
}

type listResponse struct {
	Players      []playerView `json:"players"`
	Count        int          `json:"count"`
	UnknownGrade []playerView `json:"unknownGrade,omitempty"`
}

// ListPlayers returns the filtered canonical roster.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing := h.players.List(players.Filter{
		Query:    q.Get("q"),
		Grade:    strings.TrimSpace(q.Get("grade")),
		Position: strings.TrimSpace(q.Get("position")),
		Period:   strings.TrimSpace(q.Get("period")),
	})

	resp := listResponse{
		Players: viewsFor(h.players, listing.Players),
		Count:   len(listing.Players),
	}
	if listing.UnknownGrade != nil {
		resp.UnknownGrade = viewsFor(h.players, listing.UnknownGrade)
	}
	logging.Info(loggerFromContext(r, h.logger), "served roster", logging.FieldCount, resp.Count)
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// PlayerByID returns one player with checklist details.
func (h *Handler) PlayerByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	detail, err := h.players.PlayerByID(id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail, h.logger)
}

// playerInput is the add-player form. Number accepts a JSON number or string.
type playerInput struct {
	Name      string          `json:"name"`
	StudentID string          `json:"studentId"`
	Number    json.RawMessage `json:"number"`
	Period    string          `json:"period"`
	Grade     string          `json:"grade"`
	Position  string          `json:"position"`
	Height    string          `json:"height"`
	Weight    string          `json:"weight"`
}

// CreatePlayer adds a player and returns its id.
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var in playerInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	p := roster.Player{
		Name:      strings.TrimSpace(in.Name),
		StudentID: strings.TrimSpace(in.StudentID),
		Period:    strings.TrimSpace(in.Period),
		Grade:     strings.TrimSpace(in.Grade),
		Position:  strings.TrimSpace(in.Position),
		Height:    strings.TrimSpace(in.Height),
		Weight:    strings.TrimSpace(in.Weight),
	}
	if raw, ok := rawNumber(in.Number); ok {
		p.Number = roster.ParseNumber(raw)
	}

	id, err := h.players.AddPlayer(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "player added", logging.FieldPlayerID, id)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id}, h.logger)
}

type equipmentInput struct {
	Equipment *roster.Equipment `json:"equipment"`
	Number    json.RawMessage   `json:"number"`
}

// UpdateEquipment saves the equipment form. A present number field is
// applied; null or an empty string clears the jersey number.
func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in equipmentInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if in.Equipment == nil {
		writeError(w, r, http.StatusBadRequest, "equipment is required", h.logger)
		return
	}

	update := players.EquipmentUpdate{Equipment: *in.Equipment}
	if raw, ok := rawNumber(in.Number); ok {
		update.Number = &raw
	}
	if err := h.players.UpdateEquipment(r.Context(), id, update); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "equipment updated", logging.FieldPlayerID, id)
	w.WriteHeader(http.StatusNoContent)
}

// rawNumber flattens a JSON number field into the text form jersey numbers
// are parsed from. ok is false when the field was omitted; null yields "".
func rawNumber(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	if bytes.Equal(raw, []byte("null")) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	// Other JSON types behave like an invalid entry and clear the number.
	return "", true
}
