package database

import (
	"path/filepath"
	"testing"
)

func TestDBPath(t *testing.T) {
	expected := filepath.Join("data", "weather-terminal.db")
	if got := DBPath(); got != expected {
		t.Errorf("DBPath() = %v, want %v", got, expected)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='lookups'").Scan(&count)
	if err != nil {
		t.Fatalf("checking for lookups table: %v", err)
	}
	if count != 1 {
		t.Errorf("lookups table count = %d, want 1", count)
	}
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO lookups (key, value) VALUES ('k', '{}')`); err != nil {
		t.Errorf("insert into in-memory lookups failed: %v", err)
	}
}
