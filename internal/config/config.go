package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	SyncInterval   Duration
	AdminToken     string
	AllowedOrigins []string
	Log            LogConfig
	Store          StoreConfig
	Notify         NotifyConfig
	Roster         RosterConfig
	Exports        ExportsConfig
	Metrics        MetricsConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// RosterConfig points at the optional rules and seed files. Empty paths use
// the built-in rules and skip seeding.
type RosterConfig struct {
	RulesFile   string
	SeedFile    string
	SeedEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		SyncInterval:   durationEnvOrDefault(envSyncInterval, defaultSyncInterval),
		AdminToken:     envOrDefault(envAdminToken, ""),
		AllowedOrigins: listEnv(envAllowedOrigins),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Store:  loadStore(),
		Notify: loadNotify(),
		Roster: RosterConfig{
			RulesFile:   envOrDefault(envRulesFile, ""),
			SeedFile:    envOrDefault(envSeedFile, ""),
			SeedEnabled: boolEnvOrDefault(envSeedEnabled, defaultSeedEnabled),
		},
		Exports: loadExports(),
		Metrics: loadMetrics(),
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("%s is required for the %s backend", envDatabaseURL, BackendPostgres))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown %s %q", envStoreBackend, c.Store.Backend))
	}

	switch c.Exports.Sink {
	case SinkFS, SinkNone:
	case SinkS3:
		if c.Exports.S3.Bucket == "" {
			errs = append(errs, fmt.Errorf("%s is required for the %s sink", envS3Bucket, SinkS3))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown %s %q", envExportSink, c.Exports.Sink))
	}
	return errors.Join(errs...)
}

// SeedingEnabled reports whether a seed file should be applied.
func (r RosterConfig) SeedingEnabled() bool {
	return r.SeedEnabled && strings.TrimSpace(r.SeedFile) != ""
}
