package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/equipment-tracker/internal/app/players"
	"github.com/preston-bernstein/equipment-tracker/internal/app/reports"
	"github.com/preston-bernstein/equipment-tracker/internal/config"
	httpserver "github.com/preston-bernstein/equipment-tracker/internal/http"
	"github.com/preston-bernstein/equipment-tracker/internal/http/handlers"
	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/metrics"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/syncer"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	stores        storeComponents
	syncer        Syncer
	stream        *handlers.StreamHandler
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New wires the store, roster syncer, services, and HTTP surface from cfg.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	resolver, err := loadResolver(cfg.Roster, logger)
	if err != nil {
		return nil, err
	}
	sink, err := buildSink(ctx, cfg.Exports)
	if err != nil {
		return nil, err
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	stores, err := buildStore(ctx, cfg, logger, recorder)
	if err != nil {
		stopMetrics(metricsShutdown)
		return nil, err
	}
	seeder, err := buildSeeder(cfg.Roster, stores.store, logger)
	if err != nil {
		stores.close()
		stopMetrics(metricsShutdown)
		return nil, err
	}

	sync := syncer.New(syncer.Options{
		Store:    stores.store,
		Resolver: resolver,
		Table:    roster.DefaultJerseyTable(),
		Seeder:   seeder,
		Logger:   logger,
		Metrics:  recorder,
		Interval: cfg.SyncInterval,
	})

	playerSvc := players.NewService(sync, stores.store)
	reportSvc := reports.NewService(sync, sink, logger, recorder)
	stream := handlers.NewStreamHandler(sync, playerSvc, cfg.AllowedOrigins, logger)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler:        handlers.NewHandler(playerSvc, reportSvc, logger, sync.Status),
		Admin:          buildAdmin(cfg, reportSvc, sync, logger),
		Stream:         stream,
		Logger:         logger,
		Metrics:        recorder,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		stores:        stores,
		syncer:        sync,
		stream:        stream,
		httpServer:    netHTTPServer{srv: srv},
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, s Syncer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		syncer:     s,
	}
}

// buildAdmin mounts admin routes only when a token is configured.
func buildAdmin(cfg config.Config, reportSvc *reports.Service, refresher handlers.Refresher, logger *slog.Logger) *handlers.AdminHandler {
	if cfg.AdminToken == "" {
		logging.Info(logger, "admin endpoints disabled; set ADMIN_TOKEN to enable")
		return nil
	}
	return handlers.NewAdminHandler(reportSvc, refresher, cfg.AdminToken, logger)
}

// Run starts the syncer and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.syncer.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
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
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown drains HTTP first so no request writes to a stopped
// syncer or a closed store.
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

	if s.stream != nil {
		s.stream.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.syncer.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop roster syncer", err)
	}

	s.stores.close()

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func stopMetrics(shutdown func(context.Context) error) {
	if shutdown != nil {
		_ = shutdown(context.Background())
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
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
