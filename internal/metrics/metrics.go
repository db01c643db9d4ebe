package metrics

import (
	"sync"
	"time"
)

// Store operation names used as metric attributes.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpBatch  = "batch"
)

type opStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about store traffic and
// sync work, and forwards to OpenTelemetry instruments when configured.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*opStats
	syncCycles  int
	syncErrors  int
	assignments int
	exports     int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*opStats),
		otel:  otel,
	}
}

// RecordStoreOp increments counters for a store call and stores the last observed latency.
func (r *Recorder) RecordStoreOp(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[op]
	if !ok {
		stats = &opStats{}
		r.stats[op] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOp(op, duration, err)
	}
}

// Snapshot is a copy of the counters for one store operation.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

// Snapshot returns a copy of the current stats for a store operation.
func (r *Recorder) Snapshot(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[op]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}

// StoreCalls returns the total calls recorded for a store operation.
func (r *Recorder) StoreCalls(op string) int {
	return r.Snapshot(op).Calls
}

// StoreErrors returns the failed calls recorded for a store operation.
func (r *Recorder) StoreErrors(op string) int {
	return r.Snapshot(op).Errors
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordSyncCycle tracks roster rebuilds and their failures.
func (r *Recorder) RecordSyncCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.syncCycles++
	if err != nil {
		r.syncErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSync(duration, err)
	}
}

// SyncCycles returns how many sync cycles ran and how many failed.
func (r *Recorder) SyncCycles() (cycles, failures int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncCycles, r.syncErrors
}

// RecordAssignments counts jersey numbers written back by an assignment pass.
func (r *Recorder) RecordAssignments(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	r.assignments += n
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAssignments(n)
	}
}

// Assignments returns the total jersey numbers assigned.
func (r *Recorder) Assignments() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.assignments
}

// RecordExport tracks report exports per sink.
func (r *Recorder) RecordExport(sink string, err error) {
	if r == nil {
		return
	}
	if err == nil {
		r.mu.Lock()
		r.exports++
		r.mu.Unlock()
	}
	if r.otel != nil {
		r.otel.recordExport(sink, err)
	}
}

// Exports returns the number of successful report exports.
func (r *Recorder) Exports() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exports
}
