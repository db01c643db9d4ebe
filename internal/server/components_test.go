package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/equipment-tracker/internal/config"
	"github.com/preston-bernstein/equipment-tracker/internal/exports"
	"github.com/preston-bernstein/equipment-tracker/internal/metrics"
	"github.com/preston-bernstein/equipment-tracker/internal/notify"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
	"github.com/preston-bernstein/equipment-tracker/internal/teststubs"
)

type fakeBus struct {
	closed int
}

func (b *fakeBus) Publish(ctx context.Context, ev notify.Event) error     { return nil }
func (b *fakeBus) Listen(ctx context.Context, fn func(notify.Event)) error { return nil }
func (b *fakeBus) Close()                                                   { b.closed++ }

func TestBuildStoreMemory(t *testing.T) {
	cfg := testConfig()
	stores, err := buildStore(context.Background(), cfg, nil, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer stores.close()

	if _, ok := stores.store.(*notify.Store); ok {
		t.Fatalf("expected no notifier wrap without NATS_URL")
	}
	if _, err := stores.store.Create(context.Background(), roster.Player{Name: "Pat Doe"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	players, err := stores.store.List(context.Background())
	if err != nil || len(players) != 1 {
		t.Fatalf("expected one player, got %v (err %v)", players, err)
	}
}

func TestBuildStoreWrapsWithNotifier(t *testing.T) {
	orig := connectBus
	defer func() { connectBus = orig }()

	bus := &fakeBus{}
	connectBus = func(url, subject string, logger *slog.Logger) (notify.Bus, error) {
		if url != "nats://example:4222" || subject != "roster.test" {
			t.Fatalf("unexpected bus settings %q %q", url, subject)
		}
		return bus, nil
	}

	cfg := testConfig()
	cfg.Notify = config.NotifyConfig{URL: "nats://example:4222", Subject: "roster.test"}
	stores, err := buildStore(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stores.store.(*notify.Store); !ok {
		t.Fatalf("expected notifier-wrapped store, got %T", stores.store)
	}
	stores.close()
	if bus.closed != 1 {
		t.Fatalf("expected bus to be closed once, got %d", bus.closed)
	}
}

func TestBuildStoreConnectFailure(t *testing.T) {
	orig := connectBus
	defer func() { connectBus = orig }()
	connectBus = func(url, subject string, logger *slog.Logger) (notify.Bus, error) {
		return nil, errors.New("no broker")
	}

	cfg := testConfig()
	cfg.Notify = config.NotifyConfig{URL: "nats://example:4222", Subject: "roster.test"}
	if _, err := buildStore(context.Background(), cfg, nil, nil); err == nil {
		t.Fatalf("expected connect failure")
	}
}

func TestBuildStorePostgresOpenFailure(t *testing.T) {
	orig := openPostgres
	defer func() { openPostgres = orig }()
	openPostgres = func(ctx context.Context, url string) (*store.PostgresStore, error) {
		return nil, errors.New("connection refused")
	}

	cfg := testConfig()
	cfg.Store = config.StoreConfig{Backend: config.BackendPostgres, DatabaseURL: "postgres://localhost/roster"}
	if _, err := buildStore(context.Background(), cfg, nil, nil); err == nil {
		t.Fatalf("expected open failure")
	}
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected New to surface the open failure")
	}
}

func TestBuildSink(t *testing.T) {
	sink, err := buildSink(context.Background(), config.ExportsConfig{Sink: config.SinkNone})
	if err != nil || sink != nil {
		t.Fatalf("expected nil sink when disabled, got %v (err %v)", sink, err)
	}

	dir := t.TempDir()
	sink, err = buildSink(context.Background(), config.ExportsConfig{Sink: config.SinkFS, Dir: dir, RetentionDays: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs, ok := sink.(*exports.FSSink)
	if !ok || fs.BasePath() != dir {
		t.Fatalf("expected filesystem sink at %s, got %T", dir, sink)
	}
}

func TestBuildSinkS3(t *testing.T) {
	orig := openS3Sink
	defer func() { openS3Sink = orig }()

	var got exports.S3Config
	stub := &teststubs.StubSink{}
	openS3Sink = func(ctx context.Context, cfg exports.S3Config) (exports.Sink, error) {
		got = cfg
		return stub, nil
	}

	cfg := config.ExportsConfig{Sink: config.SinkS3, S3: config.S3Config{Bucket: "reports", Prefix: "equipment", Region: "us-west-2"}}
	sink, err := buildSink(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink != stub {
		t.Fatalf("expected injected sink")
	}
	if got.Bucket != "reports" || got.Prefix != "equipment" || got.Region != "us-west-2" {
		t.Fatalf("unexpected s3 config %+v", got)
	}

	openS3Sink = func(ctx context.Context, cfg exports.S3Config) (exports.Sink, error) {
		return nil, errors.New("no credentials")
	}
	if _, err := buildSink(context.Background(), cfg); err == nil {
		t.Fatalf("expected s3 build failure")
	}
}

func TestLoadResolver(t *testing.T) {
	r, err := loadResolver(config.RosterConfig{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Rules().Version() != roster.DefaultRules().Version() {
		t.Fatalf("expected built-in rules")
	}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := "version: 7\nkeepSeparate:\n  - name: Kale Hansen\n"
	if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	r, err = loadResolver(config.RosterConfig{RulesFile: path}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Rules().Version() != 7 {
		t.Fatalf("expected version 7, got %d", r.Rules().Version())
	}

	if err := os.WriteFile(path, []byte("version: [nope"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	if _, err := loadResolver(config.RosterConfig{RulesFile: path}, nil); err == nil {
		t.Fatalf("expected parse failure")
	}
}

func TestBuildSeeder(t *testing.T) {
	st := store.NewMemoryStore()

	seeder, err := buildSeeder(config.RosterConfig{SeedFile: "ignored.yaml", SeedEnabled: false}, st, nil)
	if err != nil || seeder != nil {
		t.Fatalf("expected no seeder when disabled, got %v (err %v)", seeder, err)
	}

	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("players:\n  - name: Pat Doe\n    studentId: S1\n"), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	seeder, err = buildSeeder(config.RosterConfig{SeedFile: path, SeedEnabled: true}, st, nil)
	if err != nil || seeder == nil {
		t.Fatalf("expected seeder, got %v (err %v)", seeder, err)
	}
	res, err := seeder.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("seed run: %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("expected one created player, got %+v", res)
	}
}
