package store

import (
	"context"
	"time"

	"github.com/preston-bernstein/equipment-tracker/internal/metrics"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

// Instrumented records call counts and latency for every store operation.
type Instrumented struct {
	inner    PlayerStore
	recorder *metrics.Recorder
	now      func() time.Time
}

// Instrument wraps s; a nil recorder returns s unchanged.
func Instrument(s PlayerStore, recorder *metrics.Recorder) PlayerStore {
	if recorder == nil {
		return s
	}
	return &Instrumented{inner: s, recorder: recorder, now: time.Now}
}

func (i *Instrumented) List(ctx context.Context) ([]roster.Player, error) {
	start := i.now()
	players, err := i.inner.List(ctx)
	i.recorder.RecordStoreOp(metrics.OpList, i.now().Sub(start), err)
	return players, err
}

func (i *Instrumented) Create(ctx context.Context, p roster.Player) (string, error) {
	start := i.now()
	id, err := i.inner.Create(ctx, p)
	i.recorder.RecordStoreOp(metrics.OpCreate, i.now().Sub(start), err)
	return id, err
}

func (i *Instrumented) Update(ctx context.Context, id string, f Fields) error {
	start := i.now()
	err := i.inner.Update(ctx, id, f)
	i.recorder.RecordStoreOp(metrics.OpUpdate, i.now().Sub(start), err)
	return err
}

func (i *Instrumented) Batch(ctx context.Context, writes []Write) error {
	start := i.now()
	err := i.inner.Batch(ctx, writes)
	i.recorder.RecordStoreOp(metrics.OpBatch, i.now().Sub(start), err)
	return err
}

func (i *Instrumented) Subscribe(ctx context.Context) (<-chan []roster.Player, error) {
	return i.inner.Subscribe(ctx)
}
