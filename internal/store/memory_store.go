package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

// MemoryStore keeps a thread-safe roster in memory. Listing preserves
// insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	players map[string]roster.Player
	hub     *Hub
	newID   func() string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: make(map[string]roster.Player),
		hub:     NewHub(),
		newID:   uuid.NewString,
	}
}

// List returns a copy of the current roster.
func (s *MemoryStore) List(ctx context.Context) ([]roster.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

// Get retrieves a player by ID.
func (s *MemoryStore) Get(id string) (roster.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return roster.Player{}, false
	}
	return p.Clone(), true
}

// Create stores p under a fresh ID.
func (s *MemoryStore) Create(ctx context.Context, p roster.Player) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.insertLocked(p)
	s.publishLocked()
	return id, nil
}

// Update applies a partial update.
func (s *MemoryStore) Update(ctx context.Context, id string, f Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.updateLocked(id, f); err != nil {
		return err
	}
	s.publishLocked()
	return nil
}

// Batch applies every write it can. Failed writes are reported together and
// do not roll back the others.
func (s *MemoryStore) Batch(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	applied := 0
	for _, w := range writes {
		if w.IsCreate() {
			s.insertLocked(w.Player)
			applied++
			continue
		}
		if err := s.updateLocked(w.ID, w.Fields); err != nil {
			errs = append(errs, err)
			continue
		}
		applied++
	}
	if applied > 0 {
		s.publishLocked()
	}
	return errors.Join(errs...)
}

// Subscribe streams roster snapshots until ctx is done.
func (s *MemoryStore) Subscribe(ctx context.Context) (<-chan []roster.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hub.Subscribe(ctx, s.snapshotLocked()), nil
}

// SetPlayers replaces the roster with players, keeping their IDs. Entries
// without an ID get a fresh one.
func (s *MemoryStore) SetPlayers(players []roster.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.players = make(map[string]roster.Player, len(players))
	for _, p := range players {
		if p.ID == "" {
			s.insertLocked(p)
			continue
		}
		if _, exists := s.players[p.ID]; !exists {
			s.order = append(s.order, p.ID)
		}
		s.players[p.ID] = p.Clone()
	}
	s.publishLocked()
}

func (s *MemoryStore) insertLocked(p roster.Player) string {
	p = p.Clone()
	p.ID = s.newID()
	s.players[p.ID] = p
	s.order = append(s.order, p.ID)
	return p.ID
}

func (s *MemoryStore) updateLocked(id string, f Fields) error {
	p, ok := s.players[id]
	if !ok {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	f.Apply(&p)
	s.players[id] = p
	return nil
}

// publishLocked runs under the write lock so subscribers see snapshots in order.
func (s *MemoryStore) publishLocked() {
	s.hub.Publish(s.snapshotLocked())
}

func (s *MemoryStore) snapshotLocked() []roster.Player {
	out := make([]roster.Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.players[id].Clone())
	}
	return out
}
