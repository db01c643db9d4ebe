package testutil

import (
	"testing"

	"github.com/preston-bernstein/equipment-tracker/internal/exports"
)

// NewTempSink returns a filesystem export sink rooted in a temp dir.
func NewTempSink(t *testing.T, retention int) *exports.FSSink {
	t.Helper()
	return exports.NewFSSink(t.TempDir(), retention)
}
