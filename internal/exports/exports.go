// Package exports persists generated equipment reports outside the process.
package exports

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no export destination is set up.
var ErrNotConfigured = errors.New("export sink not configured")

// Sink stores a named report and returns where it landed.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Name identifies the sink in logs and metrics.
	Name() string
}
