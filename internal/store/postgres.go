package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Querier abstracts the subset of pgxpool.Pool used by PostgresStore.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createLookupsTable = `
	CREATE TABLE IF NOT EXISTS lookups (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresStore keeps the last lookup in a shared Postgres database
type PostgresStore struct {
	q     Querier
	close func()
}

// OpenPostgres opens a pgxpool connection, verifies it with a ping and
// creates the lookups table if needed.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating pgxpool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresStore{q: pool, close: pool.Close}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreWithQuerier constructs a store with a custom Querier (for tests).
func NewPostgresStoreWithQuerier(q Querier) *PostgresStore {
	return &PostgresStore{q: q}
}

// EnsureSchema creates the lookups table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, createLookupsTable); err != nil {
		return fmt.Errorf("creating lookups table: %w", err)
	}
	return nil
}

// SaveLast upserts the last lookup.
// On conflict (key), updates value and updated_at.
func (s *PostgresStore) SaveLast(ctx context.Context, last models.LastLookup) error {
	if last.SavedAt.IsZero() {
		last.SavedAt = time.Now()
	}

	value, err := json.Marshal(last)
	if err != nil {
		return fmt.Errorf("marshaling last lookup: %w", err)
	}

	const q = `
		INSERT INTO lookups (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := s.q.Exec(ctx, q, lastKey, value, last.SavedAt); err != nil {
		return fmt.Errorf("upserting last lookup: %w", err)
	}
	return nil
}

// LoadLast returns nil, nil when nothing has been saved
func (s *PostgresStore) LoadLast(ctx context.Context) (*models.LastLookup, error) {
	var value []byte
	err := s.q.QueryRow(ctx, `SELECT value FROM lookups WHERE key = $1`, lastKey).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying last lookup: %w", err)
	}

	var last models.LastLookup
	if err := json.Unmarshal(value, &last); err != nil {
		return nil, fmt.Errorf("unmarshaling last lookup: %w", err)
	}
	return &last, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	if err := s.q.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
