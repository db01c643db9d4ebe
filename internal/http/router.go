package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/equipment-tracker/internal/http/handlers"
	"github.com/preston-bernstein/equipment-tracker/internal/http/middleware"
	"github.com/preston-bernstein/equipment-tracker/internal/http/requestutil"
	"github.com/preston-bernstein/equipment-tracker/internal/metrics"
)

// RouterConfig collects the handlers and cross-cutting settings for the API.
// Admin and Stream are optional.
type RouterConfig struct {
	Handler        *handlers.Handler
	Admin          *handlers.AdminHandler
	Stream         *handlers.StreamHandler
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(corsOptions(cfg.AllowedOrigins)))
	r.Use(middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics))

	h := cfg.Handler
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.ListPlayers)
		r.Post("/", h.CreatePlayer)
		r.Get("/{id}", h.PlayerByID)
		r.Patch("/{id}/equipment", h.UpdateEquipment)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/missing", h.MissingReport)
		r.Get("/stats", h.Stats)
		r.Get("/export.csv", h.ExportCSV)
	})

	if cfg.Admin != nil {
		r.Post("/admin/reports/export", cfg.Admin.ExportReport)
		r.Post("/admin/roster/refresh", cfg.Admin.RefreshRoster)
	}
	if cfg.Stream != nil {
		r.Get("/ws/roster", cfg.Stream.ServeRoster)
	}
	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			nethttp.MethodGet,
			nethttp.MethodPost,
			nethttp.MethodPatch,
			nethttp.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID, "Content-Disposition"},
		MaxAge:         300,
	}
}
