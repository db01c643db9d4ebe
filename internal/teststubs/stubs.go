package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
)

// StubSink is a test double for exports.Sink.
type StubSink struct {
	mu       sync.Mutex
	Saved    map[string][]byte
	Err      error
	Location string
	Calls    atomic.Int32
}

// Name identifies the sink in logs and metrics.
func (s *StubSink) Name() string {
	return "stub"
}

// Save records the report for verification in tests.
func (s *StubSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Saved == nil {
		s.Saved = make(map[string][]byte)
	}
	s.Saved[name] = append([]byte(nil), data...)
	if s.Location != "" {
		return s.Location, nil
	}
	return "stub://" + name, nil
}

// StubStore wraps an in-memory store and injects write failures.
type StubStore struct {
	*store.MemoryStore
	CreateErr error
	UpdateErr error
	Updates   atomic.Int32
}

// NewStubStore returns a StubStore preloaded with players.
func NewStubStore(players ...roster.Player) *StubStore {
	ms := store.NewMemoryStore()
	if len(players) > 0 {
		ms.SetPlayers(players)
	}
	return &StubStore{MemoryStore: ms}
}

// Create fails with CreateErr when set.
func (s *StubStore) Create(ctx context.Context, p roster.Player) (string, error) {
	if s.CreateErr != nil {
		return "", s.CreateErr
	}
	return s.MemoryStore.Create(ctx, p)
}

// Update fails with UpdateErr when set and counts attempts.
func (s *StubStore) Update(ctx context.Context, id string, f store.Fields) error {
	s.Updates.Add(1)
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	return s.MemoryStore.Update(ctx, id, f)
}
