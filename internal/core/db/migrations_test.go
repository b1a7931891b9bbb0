package db

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	database, err := sqlx.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sqlx.Open failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrateUp(t *testing.T) {
	database := openTestDB(t)

	if err := MigrateUp(database); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	// Idempotent: a second run applies nothing and succeeds
	if err := MigrateUp(database); err != nil {
		t.Fatalf("MigrateUp (second run) failed: %v", err)
	}

	var count int
	if err := database.Get(&count, "SELECT COUNT(*) FROM conditions"); err != nil {
		t.Fatalf("conditions table not created: %v", err)
	}
	if count != 0 {
		t.Errorf("conditions count = %d, want 0", count)
	}
}

func TestMigrateStatus(t *testing.T) {
	database := openTestDB(t)

	statuses, err := MigrateStatus(database)
	if err != nil {
		t.Fatalf("MigrateStatus failed: %v", err)
	}
	if len(statuses) == 0 {
		t.Fatal("MigrateStatus returned no migrations")
	}
	for _, s := range statuses {
		if s.Applied {
			t.Errorf("migration %s reported applied before MigrateUp", s.ID)
		}
	}

	if err := MigrateUp(database); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	statuses, err = MigrateStatus(database)
	if err != nil {
		t.Fatalf("MigrateStatus failed: %v", err)
	}
	for _, s := range statuses {
		if !s.Applied {
			t.Errorf("migration %s reported pending after MigrateUp", s.ID)
		}
		if s.AppliedAt == nil {
			t.Errorf("migration %s has no applied_at", s.ID)
		}
	}
}
