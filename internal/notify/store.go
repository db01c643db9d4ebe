package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
)

// Store wraps a PlayerStore so local writes are announced on the bus and
// subscribers also receive fresh snapshots after writes on other instances.
type Store struct {
	store.PlayerStore
	bus    Bus
	origin string
	logger *slog.Logger
	now    func() time.Time
}

// Wrap decorates inner. Each wrapper gets its own origin ID so it ignores
// its own announcements.
func Wrap(inner store.PlayerStore, bus Bus, logger *slog.Logger) *Store {
	return &Store{
		PlayerStore: inner,
		bus:         bus,
		origin:      uuid.NewString(),
		logger:      logger,
		now:         time.Now,
	}
}

// Origin identifies this instance on the bus.
func (s *Store) Origin() string {
	return s.origin
}

func (s *Store) Create(ctx context.Context, p roster.Player) (string, error) {
	id, err := s.PlayerStore.Create(ctx, p)
	if err == nil {
		s.announce(ctx)
	}
	return id, err
}

func (s *Store) Update(ctx context.Context, id string, f store.Fields) error {
	err := s.PlayerStore.Update(ctx, id, f)
	if err == nil {
		s.announce(ctx)
	}
	return err
}

// Batch announces even on partial failure since some writes may have landed.
func (s *Store) Batch(ctx context.Context, writes []store.Write) error {
	err := s.PlayerStore.Batch(ctx, writes)
	if len(writes) > 0 {
		s.announce(ctx)
	}
	return err
}

// Subscribe merges local snapshots with re-lists triggered by remote events.
func (s *Store) Subscribe(ctx context.Context) (<-chan []roster.Player, error) {
	local, err := s.PlayerStore.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	remote := make(chan struct{}, 1)
	err = s.bus.Listen(ctx, func(ev Event) {
		if ev.Origin == s.origin {
			return
		}
		select {
		case remote <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return nil, fmt.Errorf("listen for roster events: %w", err)
	}

	out := make(chan []roster.Player, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-local:
				if !ok {
					return
				}
				offerLatest(out, snap)
			case <-remote:
				players, err := s.PlayerStore.List(ctx)
				if err != nil {
					logging.Warn(s.logger, "re-list after remote change failed", "error", err)
					continue
				}
				offerLatest(out, players)
			}
		}
	}()
	return out, nil
}

func (s *Store) announce(ctx context.Context) {
	ev := Event{Origin: s.origin, At: s.now().UTC()}
	if err := s.bus.Publish(ctx, ev); err != nil {
		logging.Warn(s.logger, "failed to announce roster change", "error", err)
	}
}

// offerLatest replaces any pending snapshot. Only the forwarding goroutine
// sends on out, so the second send cannot block.
func offerLatest(out chan []roster.Player, snap []roster.Player) {
	select {
	case out <- snap:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	out <- snap
}
