package database

import (
	"path/filepath"
	"testing"
)

func TestNewConnection(t *testing.T) {
	_, err := NewConnection(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	if err == nil {
		t.Error("Expected error for database in a nonexistent directory")
	}
}

func TestRunMigrations(t *testing.T) {
	db := setupTestDB(t)

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
	if version != 1 {
		t.Errorf("Expected version 1, got %d", version)
	}
	if dirty {
		t.Error("Expected clean migration state")
	}
}
