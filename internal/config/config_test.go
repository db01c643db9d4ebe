package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.SyncInterval != defaultSyncInterval {
		t.Fatalf("expected default sync interval %s, got %s", defaultSyncInterval, cfg.SyncInterval)
	}
	if cfg.Store.Backend != BackendMemory || cfg.Notify.Enabled() {
		t.Fatalf("expected in-memory store without notify, got %+v / %+v", cfg.Store, cfg.Notify)
	}
	if cfg.Exports.Sink != SinkFS || cfg.Exports.Dir != defaultExportDir || cfg.Exports.RetentionDays != defaultExportRetention {
		t.Fatalf("unexpected export defaults %+v", cfg.Exports)
	}
	if cfg.Roster.SeedingEnabled() {
		t.Fatalf("expected seeding off without a seed file")
	}
	if cfg.AllowedOrigins != nil {
		t.Fatalf("expected no explicit origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envSyncInterval, "45s")
	t.Setenv(envStoreBackend, "Postgres")
	t.Setenv(envDatabaseURL, "postgres://localhost/equipment")
	t.Setenv(envNatsURL, "nats://localhost:4222")
	t.Setenv(envSeedFile, "configs/seed.yaml")
	t.Setenv(envRulesFile, "configs/rules.yaml")
	t.Setenv(envExportSink, "s3")
	t.Setenv(envS3Bucket, "reports")
	t.Setenv(envS3Endpoint, "https://account.r2.cloudflarestorage.com")
	t.Setenv(envAllowedOrigins, "https://coach.example, ,https://admin.example")
	t.Setenv(envAdminToken, "secret")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.SyncInterval != 45*time.Second {
		t.Fatalf("expected sync interval 45s, got %s", cfg.SyncInterval)
	}
	if cfg.Store.Backend != BackendPostgres || cfg.Store.DatabaseURL == "" {
		t.Fatalf("expected postgres backend, got %+v", cfg.Store)
	}
	if !cfg.Notify.Enabled() || cfg.Notify.Subject != defaultNatsSubject {
		t.Fatalf("expected notify enabled with default subject, got %+v", cfg.Notify)
	}
	if !cfg.Roster.SeedingEnabled() || cfg.Roster.RulesFile != "configs/rules.yaml" {
		t.Fatalf("unexpected roster config %+v", cfg.Roster)
	}
	if cfg.Exports.Sink != SinkS3 || cfg.Exports.S3.Bucket != "reports" {
		t.Fatalf("unexpected export config %+v", cfg.Exports)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("expected admin token override")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected overrides to validate, got %v", err)
	}
}

func TestSeedDisabledByFlag(t *testing.T) {
	t.Setenv(envSeedFile, "configs/seed.yaml")
	t.Setenv(envSeedEnabled, "false")

	if Load().Roster.SeedingEnabled() {
		t.Fatalf("expected SEED_ENABLED=false to disable seeding")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Load()
	cfg.Store.Backend = BackendPostgres
	cfg.Exports.Sink = SinkS3

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{envDatabaseURL, envS3Bucket} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %v", want, err)
		}
	}

	cfg = Load()
	cfg.Store.Backend = "sqlite"
	cfg.Exports.Sink = "ftp"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "sqlite") || !strings.Contains(err.Error(), "ftp") {
		t.Fatalf("expected unknown values to be reported, got %v", err)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envSyncInterval, "not-a-duration")

	cfg := Load()

	if cfg.SyncInterval != defaultSyncInterval {
		t.Fatalf("expected default sync interval on invalid value, got %s", cfg.SyncInterval)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envSyncInterval, "0s")

	cfg := Load()

	if cfg.SyncInterval != defaultSyncInterval {
		t.Fatalf("expected default sync interval on non-positive value, got %s", cfg.SyncInterval)
	}
}
