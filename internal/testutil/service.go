package testutil

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
	"github.com/preston-bernstein/equipment-tracker/internal/syncer"
)

// NewSyncerWithPlayers builds a syncer over an in-memory store preloaded with
// players and refreshes it once so the canonical roster is populated. The
// syncer is not started.
func NewSyncerWithPlayers(t *testing.T, players []roster.Player) (*syncer.Syncer, *store.MemoryStore) {
	t.Helper()
	ms := store.NewMemoryStore()
	if len(players) > 0 {
		ms.SetPlayers(players)
	}
	s := syncer.New(syncer.Options{Store: ms, Clock: clockwork.NewFakeClock()})
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh syncer: %v", err)
	}
	return s, ms
}
