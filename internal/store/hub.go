package store

import (
	"context"
	"sync"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

// Hub fans roster snapshots out to subscribers. Each subscriber channel holds
// at most one pending snapshot; a newer one replaces it.
type Hub struct {
	mu   sync.Mutex
	subs map[chan []roster.Player]struct{}
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan []roster.Player]struct{})}
}

// Subscribe registers a channel primed with initial and removes it once ctx is done.
func (h *Hub) Subscribe(ctx context.Context, initial []roster.Player) <-chan []roster.Player {
	ch := make(chan []roster.Player, 1)
	ch <- initial

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	}()
	return ch
}

// Publish hands every subscriber its own copy of snapshot.
func (h *Hub) Publish(snapshot []roster.Player) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		copyOf := clonePlayers(snapshot)
		select {
		case ch <- copyOf:
			continue
		default:
		}
		// Drop the stale pending snapshot, then retry once.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- copyOf:
		default:
		}
	}
}

// Size reports the number of live subscribers.
func (h *Hub) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func clonePlayers(players []roster.Player) []roster.Player {
	out := make([]roster.Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
