package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/equipment-tracker/internal/config"
	"github.com/preston-bernstein/equipment-tracker/internal/exports"
	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/metrics"
	"github.com/preston-bernstein/equipment-tracker/internal/notify"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/seed"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
	"github.com/preston-bernstein/equipment-tracker/internal/syncer"
)

// Overridable in tests so no database, broker, or bucket is needed.
var (
	openPostgres = func(ctx context.Context, url string) (*store.PostgresStore, error) {
		return store.NewPostgresStore(ctx, url)
	}
	connectBus = func(url, subject string, logger *slog.Logger) (notify.Bus, error) {
		return notify.Connect(url, subject, logger)
	}
	openS3Sink = func(ctx context.Context, cfg exports.S3Config) (exports.Sink, error) {
		return exports.NewS3Sink(ctx, cfg)
	}
)

// storeComponents is the assembled store stack plus the cleanups it needs.
type storeComponents struct {
	store   store.PlayerStore
	closers []func()
}

func (c storeComponents) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// buildStore opens the configured backend, instruments it, and wraps it
// with NATS fan-out when a broker is configured. Postgres reads are retried.
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (storeComponents, error) {
	var out storeComponents

	var base store.PlayerStore
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pg, err := openPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return out, fmt.Errorf("open postgres store: %w", err)
		}
		out.closers = append(out.closers, pg.Close)
		base = store.NewRetrying(pg, logger, 0, 0)
	default:
		base = store.NewMemoryStore()
	}
	logging.Info(logger, "player store ready", logging.FieldBackend, cfg.Store.Backend)

	st := store.Instrument(base, recorder)
	if cfg.Notify.Enabled() {
		bus, err := connectBus(cfg.Notify.URL, cfg.Notify.Subject, logger)
		if err != nil {
			out.close()
			return storeComponents{}, fmt.Errorf("connect change notifier: %w", err)
		}
		out.closers = append(out.closers, bus.Close)
		st = notify.Wrap(st, bus, logger)
		logging.Info(logger, "change notifier connected", logging.FieldSubject, cfg.Notify.Subject)
	}
	out.store = st
	return out, nil
}

// loadResolver compiles the configured rules file, falling back to the
// built-in rules when none is set.
func loadResolver(cfg config.RosterConfig, logger *slog.Logger) (*roster.Resolver, error) {
	if cfg.RulesFile == "" {
		return roster.NewResolver(roster.DefaultRules()), nil
	}
	rules, err := roster.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	logging.Info(logger, "roster rules loaded", "file", cfg.RulesFile, "version", rules.Version())
	return roster.NewResolver(rules), nil
}

// buildSeeder returns nil when seeding is disabled.
func buildSeeder(cfg config.RosterConfig, st store.PlayerStore, logger *slog.Logger) (syncer.Seeder, error) {
	if !cfg.SeedingEnabled() {
		return nil, nil
	}
	initial, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed file: %w", err)
	}
	logging.Info(logger, "seed roster loaded", "file", cfg.SeedFile, logging.FieldCount, len(initial))
	return seed.New(st, initial, logger), nil
}

// buildSink returns nil when exports are disabled.
func buildSink(ctx context.Context, cfg config.ExportsConfig) (exports.Sink, error) {
	switch cfg.Sink {
	case config.SinkNone:
		return nil, nil
	case config.SinkS3:
		sink, err := openS3Sink(ctx, exports.S3Config{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build s3 export sink: %w", err)
		}
		return sink, nil
	default:
		return exports.NewFSSink(cfg.Dir, cfg.RetentionDays), nil
	}
}
