package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/equipment-tracker/internal/app/players"
	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Watcher streams canonical roster snapshots until ctx is done.
type Watcher interface {
	Watch(ctx context.Context) <-chan []roster.Player
}

// StreamHandler pushes the canonical roster to websocket clients on every change.
type StreamHandler struct {
	watcher  Watcher
	players  *players.Service
	logger   *slog.Logger
	upgrader websocket.Upgrader

	done      chan struct{}
	closeOnce sync.Once
}

type rosterMessage struct {
	Type    string       `json:"type"`
	Players []playerView `json:"players"`
	Count   int          `json:"count"`
}

// NewStreamHandler constructs a StreamHandler. allowedOrigins follows the
// CORS list: "*" accepts any origin and an empty list only same-host requests.
func NewStreamHandler(watcher Watcher, playerSvc *players.Service, allowedOrigins []string, logger *slog.Logger) *StreamHandler {
	h := &StreamHandler{
		watcher: watcher,
		players: playerSvc,
		logger:  logger,
		done:    make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// Close disconnects every open stream.
func (h *StreamHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ServeRoster upgrades the connection and streams roster snapshots.
func (h *StreamHandler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logger, "websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go readPump(conn, cancel)

	updates := h.watcher.Watch(ctx)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	logging.Info(logger, "roster stream opened")
	for {
		select {
		case <-ctx.Done():
			logging.Info(logger, "roster stream closed")
			return
		case <-h.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case snapshot, ok := <-updates:
			if !ok {
				return
			}
			msg := rosterMessage{Type: "roster", Players: viewsFor(h.players, snapshot), Count: len(snapshot)}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logging.Warn(logger, "roster stream write failed", "err", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
// Clients never send data; the first read error ends the stream.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	wildcard := false
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			wildcard = true
		}
		if o != "" {
			set[strings.ToLower(o)] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		if _, ok := set[strings.ToLower(origin)]; ok {
			return true
		}
		return sameHost(origin, r.Host)
	}
}

func sameHost(origin, host string) bool {
	_, rest, ok := strings.Cut(origin, "://")
	if !ok {
		return false
	}
	return strings.EqualFold(rest, host)
}
