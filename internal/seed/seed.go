// Package seed loads the initial roster and brings the store in line with it:
// missing class periods are backfilled and absent players are created.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/equipment-tracker/internal/logging"
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
)

const (
	// DefaultBatchSize caps writes per store batch.
	DefaultBatchSize = 500
	maxParallel      = 4
)

// File is the on-disk initial roster.
type File struct {
	Players []Entry `yaml:"players"`
}

// Entry is one initial roster row.
type Entry struct {
	Name      string `yaml:"name"`
	StudentID string `yaml:"studentId"`
	Number    *int   `yaml:"number"`
	Period    string `yaml:"period"`
	Grade     string `yaml:"grade"`
	Position  string `yaml:"position"`
	Height    string `yaml:"height"`
	Weight    string `yaml:"weight"`
}

// Load reads an initial roster YAML file.
func Load(path string) ([]roster.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes initial roster YAML. Entries get empty equipment; invalid
// jersey numbers are dropped.
func Parse(data []byte) ([]roster.Player, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	players := make([]roster.Player, 0, len(f.Players))
	for _, e := range f.Players {
		p := roster.Player{
			Name:      strings.TrimSpace(e.Name),
			StudentID: strings.TrimSpace(e.StudentID),
			Period:    strings.TrimSpace(e.Period),
			Grade:     strings.TrimSpace(e.Grade),
			Position:  strings.TrimSpace(e.Position),
			Height:    strings.TrimSpace(e.Height),
			Weight:    strings.TrimSpace(e.Weight),
			Equipment: roster.NewEquipment(),
		}
		if e.Number != nil && roster.ValidNumber(*e.Number) {
			p.Number = roster.IntPtr(*e.Number)
		}
		players = append(players, p)
	}
	return players, nil
}

// Plan lists the writes needed to reconcile the store with the initial roster.
type Plan struct {
	PeriodUpdates []store.Write
	Creates       []store.Write
}

// Empty reports whether there is nothing to write.
func (p Plan) Empty() bool {
	return len(p.PeriodUpdates) == 0 && len(p.Creates) == 0
}

// BuildPlan compares existing store records with the initial roster. Players
// without a period take it from the first initial entry with the same student
// ID or the same case-insensitive trimmed name. Initial entries whose student
// ID and name are both unknown to the store are created.
func BuildPlan(existing, initial []roster.Player) Plan {
	var plan Plan

	for _, p := range existing {
		if strings.TrimSpace(p.Period) != "" {
			continue
		}
		match, ok := findInitial(initial, p)
		if !ok || match.Period == "" {
			continue
		}
		plan.PeriodUpdates = append(plan.PeriodUpdates, store.UpdateWrite(p.ID, store.PeriodFields(match.Period)))
	}

	studentIDs := make(map[string]struct{}, len(existing))
	names := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		if id := strings.TrimSpace(p.StudentID); id != "" {
			studentIDs[id] = struct{}{}
		}
		names[nameKey(p.Name)] = struct{}{}
	}
	for _, p := range initial {
		if _, ok := studentIDs[p.StudentID]; ok && p.StudentID != "" {
			continue
		}
		if _, ok := names[nameKey(p.Name)]; ok {
			continue
		}
		plan.Creates = append(plan.Creates, store.CreateWrite(p))
	}
	return plan
}

func findInitial(initial []roster.Player, p roster.Player) (roster.Player, bool) {
	studentID := strings.TrimSpace(p.StudentID)
	name := nameKey(p.Name)
	for _, candidate := range initial {
		if studentID != "" && candidate.StudentID == studentID {
			return candidate, true
		}
		if candidate.Name != "" && nameKey(candidate.Name) == name {
			return candidate, true
		}
	}
	return roster.Player{}, false
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Result summarizes a seeding run.
type Result struct {
	PeriodsUpdated int
	Created        int
	Failed         int
}

// Seeder applies a Plan to the store in parallel batches.
type Seeder struct {
	store     store.PlayerStore
	initial   []roster.Player
	logger    *slog.Logger
	batchSize int
}

// New constructs a Seeder for the given initial roster.
func New(st store.PlayerStore, initial []roster.Player, logger *slog.Logger) *Seeder {
	return &Seeder{
		store:     st,
		initial:   initial,
		logger:    logger,
		batchSize: DefaultBatchSize,
	}
}

// Run reconciles existing records with the initial roster. Period updates are
// committed before creates. Failed batches are logged, counted, and not retried.
func (s *Seeder) Run(ctx context.Context, existing []roster.Player) (Result, error) {
	if len(s.initial) == 0 {
		return Result{}, nil
	}
	start := time.Now()
	plan := BuildPlan(existing, s.initial)
	if plan.Empty() {
		return Result{}, nil
	}

	var res Result
	var errs []error

	if n := len(plan.PeriodUpdates); n > 0 {
		logging.Info(s.logger, "backfilling player periods", logging.FieldCount, n)
		ok, err := s.commit(ctx, plan.PeriodUpdates)
		res.PeriodsUpdated = ok
		res.Failed += n - ok
		if err != nil {
			errs = append(errs, err)
		}
	}

	if n := len(plan.Creates); n > 0 {
		logging.Info(s.logger, "adding missing players", logging.FieldCount, n)
		ok, err := s.commit(ctx, plan.Creates)
		res.Created = ok
		res.Failed += n - ok
		if err != nil {
			errs = append(errs, err)
		}
	}

	logging.Info(s.logger, "seeding finished",
		"periods_updated", res.PeriodsUpdated,
		"created", res.Created,
		"failed", res.Failed,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return res, errors.Join(errs...)
}

// commit splits writes into batches and sends them concurrently. It returns
// how many writes belonged to batches that succeeded.
func (s *Seeder) commit(ctx context.Context, writes []store.Write) (int, error) {
	chunks := Chunk(writes, s.batchSize)

	var (
		g         errgroup.Group
		mu        sync.Mutex
		succeeded int
	)
	g.SetLimit(maxParallel)

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := s.store.Batch(ctx, chunk); err != nil {
				logging.Error(s.logger, "seed batch failed", err, logging.FieldBatch, i, logging.FieldCount, len(chunk))
				return fmt.Errorf("seed batch %d: %w", i, err)
			}
			mu.Lock()
			succeeded += len(chunk)
			done := succeeded
			mu.Unlock()
			logging.Info(s.logger, "seed batch committed",
				logging.FieldBatch, i,
				logging.FieldCount, len(chunk),
				"progress", fmt.Sprintf("%d/%d", done, len(writes)),
			)
			return nil
		})
	}
	err := g.Wait()
	return succeeded, err
}

// Chunk splits writes into consecutive slices of at most size elements.
func Chunk(writes []store.Write, size int) [][]store.Write {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var chunks [][]store.Write
	for start := 0; start < len(writes); start += size {
		end := start + size
		if end > len(writes) {
			end = len(writes)
		}
		chunks = append(chunks, writes[start:end])
	}
	return chunks
}
