package syncer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/equipment-tracker/internal/metrics"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/seed"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
)

func newTestSyncer(st store.PlayerStore, opts Options) *Syncer {
	opts.Store = st
	if opts.Clock == nil {
		opts.Clock = clockwork.NewFakeClock()
	}
	return New(opts)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSyncerBuildsCanonicalRoster(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	_, _ = st.Create(ctx, roster.Player{Name: "Pat Doe", StudentID: "S1"})
	_, _ = st.Create(ctx, roster.Player{Name: "Patrick Doe", StudentID: "S1", Number: roster.IntPtr(4)})
	_, _ = st.Create(ctx, roster.Player{Name: "Lee Kim"})

	rec := metrics.NewRecorder()
	s := newTestSyncer(st, Options{Metrics: rec})
	if s.Status().IsReady() {
		t.Fatalf("expected not ready before first snapshot")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.Start(runCtx)
	defer s.Stop(context.Background())

	waitFor(t, "first snapshot", func() bool { return s.Status().IsReady() })

	players := s.Players()
	if len(players) != 2 {
		t.Fatalf("expected 2 canonical players, got %d", len(players))
	}
	if players[0].Name != "Patrick Doe" || players[1].Name != "Lee Kim" {
		t.Fatalf("unexpected canonical roster %+v", players)
	}
	if s.Status().Players != 2 {
		t.Fatalf("expected status to count canonical players")
	}
	if cycles, _ := rec.SyncCycles(); cycles < 1 {
		t.Fatalf("expected sync cycle to be recorded")
	}

	if _, ok := s.Player(players[1].ID); !ok {
		t.Fatalf("expected lookup by id to succeed")
	}
	if _, ok := s.Player("missing"); ok {
		t.Fatalf("expected lookup miss")
	}
}

func TestSyncerFollowsStoreChanges(t *testing.T) {
	st := store.NewMemoryStore()
	s := newTestSyncer(st, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, "first snapshot", func() bool { return s.Status().IsReady() })
	_, _ = st.Create(ctx, roster.Player{Name: "Late Add"})
	waitFor(t, "new player", func() bool { return len(s.Players()) == 1 })
}

func TestSyncerAssignsJerseyNumbers(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	id, _ := st.Create(ctx, roster.Player{Name: "Noah Behm"})
	other, _ := st.Create(ctx, roster.Player{Name: "Nobody Known"})

	rec := metrics.NewRecorder()
	s := newTestSyncer(st, Options{Table: roster.DefaultJerseyTable(), Metrics: rec})
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.Start(runCtx)

	waitFor(t, "number write-back", func() bool {
		p, _ := st.Get(id)
		return p.NumberOr(-1) == 5
	})
	waitFor(t, "canonical roster update", func() bool {
		p, ok := s.Player(id)
		return ok && p.NumberOr(-1) == 5
	})
	if p, _ := st.Get(other); p.HasNumber() {
		t.Fatalf("expected unknown name to stay unassigned")
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if rec.Assignments() != 1 {
		t.Fatalf("expected one assignment recorded, got %d", rec.Assignments())
	}
}

type countingStore struct {
	*store.MemoryStore
	batches atomic.Int32
}

func (c *countingStore) Batch(ctx context.Context, writes []store.Write) error {
	c.batches.Add(1)
	return c.MemoryStore.Batch(ctx, writes)
}

func TestSyncerSkipsAssignmentWhileOneIsInFlight(t *testing.T) {
	st := &countingStore{MemoryStore: store.NewMemoryStore()}
	_, _ = st.Create(context.Background(), roster.Player{Name: "Noah Behm"})
	players, _ := st.List(context.Background())

	s := newTestSyncer(st, Options{Table: roster.DefaultJerseyTable()})
	s.assigning.Store(true)
	s.maybeAssign(players)
	s.tasks.Wait()
	if st.batches.Load() != 0 {
		t.Fatalf("expected no write while an assignment is in flight")
	}

	s.assigning.Store(false)
	s.maybeAssign(players)
	s.tasks.Wait()
	if st.batches.Load() != 1 {
		t.Fatalf("expected one assignment batch, got %d", st.batches.Load())
	}
	if s.assigning.Load() {
		t.Fatalf("expected guard to be released")
	}
}

// gatedStore holds each batch until release is closed, then fails it if the
// write context was cancelled in the meantime.
type gatedStore struct {
	*store.MemoryStore
	release chan struct{}
	errs    chan error
}

func (g *gatedStore) Batch(ctx context.Context, writes []store.Write) error {
	select {
	case <-g.release:
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		g.errs <- err
		return err
	}
	err := g.MemoryStore.Batch(ctx, writes)
	g.errs <- err
	return err
}

func TestSyncerRefreshWritesOutliveCallerContext(t *testing.T) {
	st := &gatedStore{MemoryStore: store.NewMemoryStore(), release: make(chan struct{}), errs: make(chan error, 1)}
	id, _ := st.Create(context.Background(), roster.Player{Name: "Noah Behm"})

	s := newTestSyncer(st, Options{Table: roster.DefaultJerseyTable()})
	reqCtx, cancel := context.WithCancel(context.Background())
	if err := s.Refresh(reqCtx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	cancel()
	close(st.release)
	s.tasks.Wait()

	if err := <-st.errs; err != nil {
		t.Fatalf("expected assignment write to succeed after the caller returned, got %v", err)
	}
	if p, _ := st.Get(id); p.NumberOr(-1) != 5 {
		t.Fatalf("expected number 5 to be written, got %v", p.Number)
	}
}

func TestSyncerStopCancelsWritesAfterDeadline(t *testing.T) {
	st := &gatedStore{MemoryStore: store.NewMemoryStore(), release: make(chan struct{}), errs: make(chan error, 1)}
	_, _ = st.Create(context.Background(), roster.Player{Name: "Noah Behm"})

	s := newTestSyncer(st, Options{Table: roster.DefaultJerseyTable()})
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := s.Stop(stopCtx); err == nil {
		t.Fatalf("expected stop to report the blocked write")
	}
	select {
	case err := <-st.errs:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected the write to be cancelled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the blocked write to be cancelled by stop")
	}
	s.tasks.Wait()
}

type stubSeeder struct {
	mu       sync.Mutex
	calls    int
	existing []roster.Player
	err      error
}

func (s *stubSeeder) Run(ctx context.Context, existing []roster.Player) (seed.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.existing = existing
	return seed.Result{Created: 1}, s.err
}

func (s *stubSeeder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestSyncerSeedsOnce(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	_, _ = st.Create(ctx, roster.Player{Name: "Pat Doe", StudentID: "S1"})
	_, _ = st.Create(ctx, roster.Player{Name: "Pat Doe", StudentID: "S1"})

	seeder := &stubSeeder{}
	s := newTestSyncer(st, Options{Seeder: seeder})
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.Start(runCtx)

	waitFor(t, "seeding", func() bool { return seeder.count() == 1 })
	_, _ = st.Create(ctx, roster.Player{Name: "Another"})
	waitFor(t, "next snapshot", func() bool { return len(s.Players()) == 2 })
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if seeder.count() != 1 {
		t.Fatalf("expected seeding to run once, got %d", seeder.count())
	}
	if len(seeder.existing) != 2 {
		t.Fatalf("expected seeder to see raw records, got %d", len(seeder.existing))
	}
	if s.Status().Seeding {
		t.Fatalf("expected seeding flag to clear")
	}
}

type pollingStore struct {
	*store.MemoryStore
	lists   atomic.Int32
	failing atomic.Bool
}

func (p *pollingStore) Subscribe(ctx context.Context) (<-chan []roster.Player, error) {
	return nil, errors.New("subscriptions unsupported")
}

func (p *pollingStore) List(ctx context.Context) ([]roster.Player, error) {
	p.lists.Add(1)
	if p.failing.Load() {
		return nil, errors.New("connection reset")
	}
	return p.MemoryStore.List(ctx)
}

func TestSyncerPollsOnInterval(t *testing.T) {
	st := &pollingStore{MemoryStore: store.NewMemoryStore()}
	clock := clockwork.NewFakeClock()
	s := newTestSyncer(st, Options{Clock: clock, Interval: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, "initial list", func() bool { return st.lists.Load() == 1 })
	_, _ = st.Create(ctx, roster.Player{Name: "Polled"})

	blockCtx, blockCancel := context.WithTimeout(ctx, time.Second)
	defer blockCancel()
	if err := clock.BlockUntilContext(blockCtx, 1); err != nil {
		t.Fatalf("ticker not registered: %v", err)
	}
	clock.Advance(time.Minute)
	waitFor(t, "interval re-list", func() bool { return len(s.Players()) == 1 })
}

func TestSyncerKeepsLastGoodRosterOnFailure(t *testing.T) {
	st := &pollingStore{MemoryStore: store.NewMemoryStore()}
	_, _ = st.Create(context.Background(), roster.Player{Name: "Kept"})
	s := newTestSyncer(st, Options{})

	ctx := context.Background()
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	st.failing.Store(true)
	for i := 0; i < 3; i++ {
		if err := s.Refresh(ctx); err == nil {
			t.Fatalf("expected refresh error")
		}
	}

	if len(s.Players()) != 1 {
		t.Fatalf("expected cached roster to survive failures")
	}
	status := s.Status()
	if status.ConsecutiveFailures != 3 || status.LastError == "" {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after repeated failures")
	}

	st.failing.Store(false)
	_ = s.Refresh(ctx)
	if !s.Status().IsReady() {
		t.Fatalf("expected recovery to reset failures")
	}
}

func TestSyncerWatchStreamsRoster(t *testing.T) {
	st := store.NewMemoryStore()
	s := newTestSyncer(st, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx)
	if first := <-ch; len(first) != 0 {
		t.Fatalf("expected empty initial roster")
	}

	_, _ = st.Create(ctx, roster.Player{Name: "Streamed"})
	_ = s.Refresh(ctx)
	select {
	case snap := <-ch:
		if len(snap) != 1 || snap[0].Name != "Streamed" {
			t.Fatalf("unexpected snapshot %+v", snap)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for roster")
	}
}

func TestSyncerPlayersReturnsCopies(t *testing.T) {
	st := store.NewMemoryStore()
	_, _ = st.Create(context.Background(), roster.Player{Name: "Original", Equipment: roster.NewEquipment()})
	s := newTestSyncer(st, Options{})
	_ = s.Refresh(context.Background())

	players := s.Players()
	players[0].Name = "Changed"
	players[0].Equipment.CustomItems = append(players[0].Equipment.CustomItems, "Mouthguard")
	again := s.Players()
	if again[0].Name != "Original" || len(again[0].Equipment.CustomItems) != 0 {
		t.Fatalf("expected cache to be isolated from callers")
	}
}

func TestSyncerStartAndStopAreIdempotent(t *testing.T) {
	s := newTestSyncer(store.NewMemoryStore(), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	s.Start(ctx)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("first stop: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestSyncerDefaults(t *testing.T) {
	s := New(Options{Store: store.NewMemoryStore()})
	if s.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, s.interval)
	}
	if s.Resolver() == nil || s.clock == nil {
		t.Fatalf("expected resolver and clock defaults")
	}
	if s.Players() == nil {
		t.Fatalf("expected empty, non-nil roster")
	}
}
