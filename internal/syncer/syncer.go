package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/metrics"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/seed"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
)

const defaultInterval = time.Minute

// Seeder reconciles the store with an initial roster.
type Seeder interface {
	Run(ctx context.Context, existing []roster.Player) (seed.Result, error)
}

// Options configures a Syncer. Store and Resolver are required.
type Options struct {
	Store    store.PlayerStore
	Resolver *roster.Resolver
	Table    *roster.JerseyTable
	Seeder   Seeder
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Interval time.Duration
	Clock    clockwork.Clock
}

// Syncer keeps the canonical roster in memory. It rebuilds the cache from
// every store snapshot, re-lists on an interval, writes auto-assigned jersey
// numbers back, and runs the seeding pass once.
type Syncer struct {
	store    store.PlayerStore
	resolver *roster.Resolver
	table    *roster.JerseyTable
	seeder   Seeder
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	clock    clockwork.Clock

	ticker   clockwork.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	tasks    sync.WaitGroup

	// writeCtx scopes seeding and assignment writes. It outlives the
	// caller that triggered them and is cancelled by Stop.
	writeCtx    context.Context
	cancelWrite context.CancelFunc

	mu       sync.RWMutex
	players  []roster.Player
	watchers *store.Hub

	assigning atomic.Bool
	seeding   atomic.Bool
	seeded    atomic.Bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the sync loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Players             int
	Seeding             bool
}

// IsReady reports whether a snapshot has loaded and syncing is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Syncer with sane defaults.
func New(opts Options) *Syncer {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Resolver == nil {
		opts.Resolver = roster.NewResolver(roster.DefaultRules())
	}
	writeCtx, cancelWrite := context.WithCancel(context.Background())
	return &Syncer{
		store:       opts.Store,
		resolver:    opts.Resolver,
		table:       opts.Table,
		seeder:      opts.Seeder,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		interval:    opts.Interval,
		clock:       opts.Clock,
		done:        make(chan struct{}),
		writeCtx:    writeCtx,
		cancelWrite: cancelWrite,
		players:     []roster.Player{},
		watchers:    store.NewHub(),
	}
}

// Start subscribes to the store and begins the sync loop until the context is
// cancelled or Stop is called. When the subscription cannot be opened the
// loop falls back to interval re-lists.
func (s *Syncer) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	snapshots, err := s.store.Subscribe(runCtx)
	if err != nil {
		logging.Warn(s.logger, "store subscription failed, falling back to polling", "error", err)
		snapshots = nil
	}
	s.ticker = s.clock.NewTicker(s.interval)

	go func() {
		defer cancel()
		logging.Info(s.logger, "syncer started", logging.FieldDurationMS, s.interval.Milliseconds())
		if snapshots == nil {
			s.refresh(runCtx)
		}

		for {
			select {
			case <-runCtx.Done():
				s.stopTicker()
				logging.Info(s.logger, "syncer stopped")
				return
			case <-s.done:
				s.stopTicker()
				logging.Info(s.logger, "syncer stopped")
				return
			case snap, ok := <-snapshots:
				if !ok {
					snapshots = nil
					continue
				}
				s.apply(snap)
			case <-s.ticker.Chan():
				s.refresh(runCtx)
			}
		}
	}()
}

// Stop halts the loop and waits for in-flight seeding or assignment writes
// until ctx expires, then cancels whatever is still writing.
func (s *Syncer) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	defer s.cancelWrite()

	finished := make(chan struct{})
	go func() {
		s.tasks.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for sync tasks: %w", ctx.Err())
	}
}

// Refresh re-lists the store and rebuilds the cache immediately.
func (s *Syncer) Refresh(ctx context.Context) error {
	return s.refresh(ctx)
}

func (s *Syncer) refresh(ctx context.Context) error {
	start := s.clock.Now()
	s.recordAttempt(start)
	players, err := s.store.List(ctx)
	if err != nil {
		s.metrics.RecordSyncCycle(s.clock.Since(start), err)
		logging.Error(s.logger, "roster sync failed", err, logging.FieldDurationMS, s.clock.Since(start).Milliseconds())
		s.recordFailure(err, start)
		return fmt.Errorf("list players: %w", err)
	}
	s.apply(players)
	return nil
}

// apply rebuilds the canonical cache from a raw store snapshot. The previous
// cache is only replaced here, so a failed re-list keeps the last good roster.
func (s *Syncer) apply(raw []roster.Player) {
	start := s.clock.Now()
	s.recordAttempt(start)
	canonical := s.resolver.Dedupe(raw)

	s.mu.Lock()
	s.players = canonical
	s.mu.Unlock()
	s.watchers.Publish(canonical)

	s.recordSuccess(start, len(canonical))
	s.metrics.RecordSyncCycle(s.clock.Since(start), nil)
	logging.Info(s.logger, "roster synced",
		logging.FieldCount, len(canonical),
		"records", len(raw),
	)

	s.maybeSeed(raw)
	s.maybeAssign(canonical)
}

// maybeSeed runs the seeder once per process against the first snapshot.
func (s *Syncer) maybeSeed(raw []roster.Player) {
	if s.seeder == nil || !s.seeded.CompareAndSwap(false, true) {
		return
	}
	s.seeding.Store(true)
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		defer s.seeding.Store(false)
		res, err := s.seeder.Run(s.writeCtx, raw)
		if err != nil {
			logging.Error(s.logger, "roster seeding incomplete", err, "failed", res.Failed)
			return
		}
		if res != (seed.Result{}) {
			logging.Info(s.logger, "roster seeded", "periods_updated", res.PeriodsUpdated, "created", res.Created)
		}
	}()
}

// maybeAssign writes auto-assigned jersey numbers back to the store. A pass is
// skipped while a previous one is still writing; the resulting snapshot
// triggers a fresh pass.
func (s *Syncer) maybeAssign(canonical []roster.Player) {
	if s.table == nil || len(canonical) == 0 || s.assigning.Load() {
		return
	}
	assignments := roster.AssignNumbers(canonical, s.table)
	if len(assignments) == 0 {
		return
	}
	if !s.assigning.CompareAndSwap(false, true) {
		return
	}
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		defer s.assigning.Store(false)
		s.writeAssignments(s.writeCtx, assignments)
	}()
}

func (s *Syncer) writeAssignments(ctx context.Context, assignments map[string]int) {
	ids := make([]string, 0, len(assignments))
	for id := range assignments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	writes := make([]store.Write, 0, len(ids))
	for _, id := range ids {
		n := assignments[id]
		writes = append(writes, store.UpdateWrite(id, store.NumberFields(&n)))
	}

	var (
		g       errgroup.Group
		written atomic.Int64
	)
	for i, chunk := range seed.Chunk(writes, seed.DefaultBatchSize) {
		g.Go(func() error {
			if err := s.store.Batch(ctx, chunk); err != nil {
				logging.Error(s.logger, "jersey assignment batch failed", err, logging.FieldBatch, i, logging.FieldCount, len(chunk))
				return err
			}
			written.Add(int64(len(chunk)))
			return nil
		})
	}
	err := g.Wait()

	n := int(written.Load())
	s.metrics.RecordAssignments(n)
	if err != nil {
		logging.Warn(s.logger, "jersey assignment partially applied", "assigned", n, "planned", len(writes))
		return
	}
	logging.Info(s.logger, "assigned jersey numbers", logging.FieldCount, n)
}

// Players returns a copy of the canonical roster.
func (s *Syncer) Players() []roster.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]roster.Player, len(s.players))
	for i, p := range s.players {
		out[i] = p.Clone()
	}
	return out
}

// Player looks up a canonical player by store ID.
func (s *Syncer) Player(id string) (roster.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return roster.Player{}, false
}

// Watch streams the canonical roster: the current one immediately, then one
// per change. Slow readers only see the latest roster. The channel closes
// when ctx is done.
func (s *Syncer) Watch(ctx context.Context) <-chan []roster.Player {
	return s.watchers.Subscribe(ctx, s.Players())
}

// Resolver exposes the rules used to build the canonical roster.
func (s *Syncer) Resolver() *roster.Resolver {
	return s.resolver
}

// Store exposes the underlying player store.
func (s *Syncer) Store() store.PlayerStore {
	return s.store
}

func (s *Syncer) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

func (s *Syncer) recordAttempt(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = at
}

func (s *Syncer) recordSuccess(at time.Time, players int) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
	s.status.Players = players
}

func (s *Syncer) recordFailure(err error, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.LastAttempt = at
}

// Status returns a snapshot of the syncer's recent health.
func (s *Syncer) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	st := s.status
	st.Seeding = s.seeding.Load()
	return st
}
