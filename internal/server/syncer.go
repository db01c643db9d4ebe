package server

import (
	"context"

	"github.com/preston-bernstein/equipment-tracker/internal/syncer"
)

// Syncer defines the roster sync behavior the server manages.
type Syncer interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() syncer.Status
}
