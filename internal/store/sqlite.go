package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// SQLiteStore keeps the last lookup in a local SQLite file
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (and if needed creates) the database at path.
// An empty path means database.DBPath().
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = database.DBPath()
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// SaveLast upserts the last lookup
func (s *SQLiteStore) SaveLast(ctx context.Context, last models.LastLookup) error {
	if last.SavedAt.IsZero() {
		last.SavedAt = time.Now()
	}

	value, err := json.Marshal(last)
	if err != nil {
		return fmt.Errorf("marshaling last lookup: %w", err)
	}

	query := `
		INSERT INTO lookups (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, lastKey, string(value), last.SavedAt); err != nil {
		return fmt.Errorf("saving last lookup: %w", err)
	}
	return nil
}

// LoadLast returns the last lookup, or nil, nil if none was saved
func (s *SQLiteStore) LoadLast(ctx context.Context) (*models.LastLookup, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM lookups WHERE key = ?", lastKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading last lookup: %w", err)
	}

	var last models.LastLookup
	if err := json.Unmarshal([]byte(value), &last); err != nil {
		return nil, fmt.Errorf("unmarshaling last lookup: %w", err)
	}
	return &last, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
