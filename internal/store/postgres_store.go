package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS players (
	id          TEXT PRIMARY KEY,
	seq         BIGSERIAL,
	number      INTEGER,
	name        TEXT NOT NULL DEFAULT '',
	student_id  TEXT NOT NULL DEFAULT '',
	period      TEXT NOT NULL DEFAULT '',
	grade       TEXT NOT NULL DEFAULT '',
	position    TEXT NOT NULL DEFAULT '',
	height      TEXT NOT NULL DEFAULT '',
	weight      TEXT NOT NULL DEFAULT '',
	equipment   JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const selectPlayersSQL = `
SELECT id, number, name, student_id, period, grade, position, height, weight, equipment
FROM players
ORDER BY seq`

const insertPlayerSQL = `
INSERT INTO players (id, number, name, student_id, period, grade, position, height, weight, equipment)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// pgxConn is the subset of *pgxpool.Pool the store uses.
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresStore keeps players in a single table with equipment as JSONB.
// Change notifications only cover writes made through this instance; see the
// notify package for fan-out between instances.
type PostgresStore struct {
	db    pgxConn
	pool  *pgxpool.Pool
	hub   *Hub
	newID func() string
}

// NewPostgresStore connects, verifies the connection, and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := newPostgresStore(pool)
	s.pool = pool
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func newPostgresStore(db pgxConn) *PostgresStore {
	return &PostgresStore{
		db:    db,
		hub:   NewHub(),
		newID: uuid.NewString,
	}
}

// EnsureSchema creates the players table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure players schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// List returns every player in insertion order.
func (s *PostgresStore) List(ctx context.Context) ([]roster.Player, error) {
	rows, err := s.db.Query(ctx, selectPlayersSQL)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := []roster.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

// Create inserts p under a fresh ID.
func (s *PostgresStore) Create(ctx context.Context, p roster.Player) (string, error) {
	id := s.newID()
	args, err := insertArgs(id, p)
	if err != nil {
		return "", err
	}
	if _, err := s.db.Exec(ctx, insertPlayerSQL, args...); err != nil {
		return "", fmt.Errorf("insert player: %w", err)
	}
	s.notify(ctx)
	return id, nil
}

// Update applies a partial update.
func (s *PostgresStore) Update(ctx context.Context, id string, f Fields) error {
	sql, args, err := buildUpdate(id, f)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update player %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	s.notify(ctx)
	return nil
}

// Batch pipelines all writes in one round trip. A failing statement aborts
// the statements queued after it; every failure is reported.
func (s *PostgresStore) Batch(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, w := range writes {
		if w.IsCreate() {
			args, err := insertArgs(s.newID(), w.Player)
			if err != nil {
				return err
			}
			batch.Queue(insertPlayerSQL, args...)
			continue
		}
		sql, args, err := buildUpdate(w.ID, w.Fields)
		if err != nil {
			return err
		}
		batch.Queue(sql, args...)
	}

	results := s.db.SendBatch(ctx, batch)
	var errs []error
	applied := 0
	for _, w := range writes {
		tag, err := results.Exec()
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("batch write %s: %w", describeWrite(w), err))
		case !w.IsCreate() && tag.RowsAffected() == 0:
			errs = append(errs, fmt.Errorf("update %s: %w", w.ID, ErrNotFound))
		default:
			applied++
		}
	}
	if err := results.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close batch: %w", err))
	}

	if applied > 0 {
		s.notify(ctx)
	}
	return errors.Join(errs...)
}

// Subscribe streams roster snapshots until ctx is done.
func (s *PostgresStore) Subscribe(ctx context.Context) (<-chan []roster.Player, error) {
	players, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.hub.Subscribe(ctx, players), nil
}

// notify re-lists and publishes to local subscribers. A failed re-list is
// skipped; the next write or sync tick catches up.
func (s *PostgresStore) notify(ctx context.Context) {
	if s.hub.Size() == 0 {
		return
	}
	players, err := s.List(ctx)
	if err != nil {
		return
	}
	s.hub.Publish(players)
}

func describeWrite(w Write) string {
	if w.IsCreate() {
		return "create " + w.Player.Name
	}
	return "update " + w.ID
}

func insertArgs(id string, p roster.Player) ([]any, error) {
	equipment, err := json.Marshal(p.Equipment)
	if err != nil {
		return nil, fmt.Errorf("encode equipment: %w", err)
	}
	return []any{
		id, numberArg(p.Number), p.Name, p.StudentID, p.Period,
		p.Grade, p.Position, p.Height, p.Weight, equipment,
	}, nil
}

func numberArg(n *int) pgtype.Int4 {
	if n == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*n), Valid: true}
}

// buildUpdate renders a partial UPDATE touching only the set fields.
func buildUpdate(id string, f Fields) (string, []any, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.SetNumber {
		add("number", numberArg(f.Number))
	}
	if f.Period != nil {
		add("period", *f.Period)
	}
	if f.Equipment != nil {
		equipment, err := json.Marshal(f.Equipment)
		if err != nil {
			return "", nil, fmt.Errorf("encode equipment: %w", err)
		}
		add("equipment", equipment)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	sql := fmt.Sprintf("UPDATE players SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return sql, args, nil
}

func scanPlayer(rows pgx.Rows) (roster.Player, error) {
	var (
		p         roster.Player
		number    pgtype.Int4
		equipment []byte
	)
	if err := rows.Scan(&p.ID, &number, &p.Name, &p.StudentID, &p.Period,
		&p.Grade, &p.Position, &p.Height, &p.Weight, &equipment); err != nil {
		return roster.Player{}, fmt.Errorf("scan player: %w", err)
	}
	if number.Valid {
		p.Number = roster.IntPtr(int(number.Int32))
	}
	p.Equipment = roster.NewEquipment()
	if len(equipment) > 0 {
		if err := json.Unmarshal(equipment, &p.Equipment); err != nil {
			return roster.Player{}, fmt.Errorf("decode equipment for %s: %w", p.ID, err)
		}
	}
	if p.Equipment.CustomItems == nil {
		p.Equipment.CustomItems = []string{}
	}
	if p.Equipment.NeverReceived == nil {
		p.Equipment.NeverReceived = []string{}
	}
	return p, nil
}
