package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// Retrying retries idempotent store calls (List and Update) with linear
// backoff. Creates and batches pass straight through since replaying them
// could duplicate players.
type Retrying struct {
	PlayerStore
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetrying wraps inner with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetrying(inner PlayerStore, logger *slog.Logger, maxAttempts int, backoff time.Duration) *Retrying {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &Retrying{
		PlayerStore: inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *Retrying) List(ctx context.Context) ([]roster.Player, error) {
	var players []roster.Player
	err := r.do(ctx, "list", func() error {
		var err error
		players, err = r.PlayerStore.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *Retrying) Update(ctx context.Context, id string, f Fields) error {
	return r.do(ctx, "update", func() error {
		return r.PlayerStore.Update(ctx, id, f)
	})
}

func (r *Retrying) do(ctx context.Context, op string, call func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrNotFound) {
			return err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, "store call retry", "op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		delay := r.backoffFn(attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn(ctx, "store call failed", "op", op, "attempts", r.maxAttempts, "err", lastErr)
	return lastErr
}

func (r *Retrying) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
