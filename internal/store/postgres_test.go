package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Row ----

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (f *fakeRow) Scan(dest ...any) error { return f.scanFn(dest...) }

func TestPostgresStore_SaveLast(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	q := &mockQuerier{
		execFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotSQL = sql
			gotArgs = args
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	s := NewPostgresStoreWithQuerier(q)
	require.NoError(t, s.SaveLast(context.Background(), sampleLookup()))

	assert.True(t, strings.Contains(gotSQL, "ON CONFLICT (key)"))
	require.Len(t, gotArgs, 3)
	assert.Equal(t, "last", gotArgs[0])

	var saved map[string]any
	require.NoError(t, json.Unmarshal(gotArgs[1].([]byte), &saved))
	assert.Equal(t, "02633,us", saved["query"])
}

func TestPostgresStore_SaveLast_Error(t *testing.T) {
	q := &mockQuerier{
		execFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("connection reset")
		},
	}

	err := NewPostgresStoreWithQuerier(q).SaveLast(context.Background(), sampleLookup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgresStore_LoadLast(t *testing.T) {
	b, err := json.Marshal(sampleLookup())
	require.NoError(t, err)

	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			assert.Equal(t, "last", args[0])
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*[]byte) = b
				return nil
			}}
		},
	}

	got, err := NewPostgresStoreWithQuerier(q).LoadLast(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Chatham", got.Location.Name)
	assert.Equal(t, -18000, got.TimezoneOffset)
}

func TestPostgresStore_LoadLast_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanFn: func(...any) error { return pgx.ErrNoRows }}
		},
	}

	got, err := NewPostgresStoreWithQuerier(q).LoadLast(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostgresStore_LoadLast_BadJSON(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*[]byte) = []byte("{oops")
				return nil
			}}
		},
	}

	_, err := NewPostgresStoreWithQuerier(q).LoadLast(context.Background())
	assert.Error(t, err)
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	var gotSQL string
	q := &mockQuerier{
		execFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			gotSQL = sql
			return pgconn.CommandTag{}, nil
		},
	}

	require.NoError(t, NewPostgresStoreWithQuerier(q).EnsureSchema(context.Background()))
	assert.Contains(t, gotSQL, "CREATE TABLE IF NOT EXISTS lookups")
}

func TestPostgresStore_Ping(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*int) = 1
				return nil
			}}
		},
	}

	s := NewPostgresStoreWithQuerier(q)
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
}
