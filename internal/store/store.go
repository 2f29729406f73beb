// Package store remembers the most recently resolved location between runs.
package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// lastKey is the key the last lookup is stored under in every backend
const lastKey = "last"

// LocationStore persists the last lookup
type LocationStore interface {
	// SaveLast replaces the remembered lookup
	SaveLast(ctx context.Context, last models.LastLookup) error

	// LoadLast returns the remembered lookup, or nil, nil if there is none
	LoadLast(ctx context.Context) (*models.LastLookup, error)

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error

	Close() error
}

// Config selects and configures a backend
type Config struct {
	SQLitePath  string
	RedisURL    string
	RedisTTL    time.Duration
	DatabaseURL string
}

// Open connects to the configured backend: Postgres when DatabaseURL is
// set, else Redis when RedisURL is set, else SQLite at SQLitePath.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (LocationStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch {
	case cfg.DatabaseURL != "":
		s, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		logger.Info("using postgres store")
		return s, nil

	case cfg.RedisURL != "":
		s, err := OpenRedis(ctx, cfg.RedisURL, cfg.RedisTTL)
		if err != nil {
			return nil, fmt.Errorf("opening redis store: %w", err)
		}
		logger.Info("using redis store", zap.Duration("ttl", cfg.RedisTTL))
		return s, nil

	default:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Info("using sqlite store", zap.String("path", s.path))
		return s, nil
	}
}
