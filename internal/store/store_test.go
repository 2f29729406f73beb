package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

func sampleLookup() models.LastLookup {
	return models.LastLookup{
		Query: "02633,us",
		Location: models.Location{
			Name:        "Chatham",
			Country:     "US",
			Zip:         "02633",
			Coordinates: models.Coordinates{Latitude: 41.6885, Longitude: -69.9596},
		},
		TimezoneOffset: -18000,
		SavedAt:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOpen_DefaultsToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.db")

	s, err := Open(context.Background(), Config{SQLitePath: path}, nil)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*SQLiteStore)
	assert.True(t, ok, "expected *SQLiteStore, got %T", s)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpen_PrefersRedisOverSQLite(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := Open(context.Background(), Config{
		SQLitePath: filepath.Join(t.TempDir(), "unused.db"),
		RedisURL:   "redis://" + mr.Addr(),
	}, nil)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*RedisStore)
	assert.True(t, ok, "expected *RedisStore, got %T", s)
}

func TestOpen_BadRedisURL(t *testing.T) {
	_, err := Open(context.Background(), Config{RedisURL: "not a url"}, nil)
	assert.Error(t, err)
}

func TestOpen_BadDatabaseURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Open(ctx, Config{DatabaseURL: "postgres://nobody@127.0.0.1:1/none?connect_timeout=1"}, nil)
	assert.Error(t, err)
}
