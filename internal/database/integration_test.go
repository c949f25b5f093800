package database

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDatabaseIntegration tests the complete database lifecycle with SQLite
func TestDatabaseIntegration(t *testing.T) {
	// Skip if not in integration test mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_integration.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	migrationsPath := writeTestMigrations(t)

	if err := db.RunMigrations(migrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Table created by the migration
	var name string
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
	if err := db.QueryRow(query, "app_state").Scan(&name); err != nil {
		t.Fatalf("Table app_state not found: %v", err)
	}

	// Running again must be a no-op
	if err := db.RunMigrations(migrationsPath); err != nil {
		t.Fatalf("Re-running migrations failed: %v", err)
	}

	// Upsert twice, expect the second value to win
	upsert := db.Dialect.UpsertState()
	if _, err := db.Exec(upsert, "greeting", "annyeong"); err != nil {
		t.Fatalf("Failed to insert state: %v", err)
	}
	if _, err := db.Exec(upsert, "greeting", "annyeonghaseyo"); err != nil {
		t.Fatalf("Failed to update state: %v", err)
	}

	var value string
	if err := db.QueryRow("SELECT value FROM app_state WHERE state_key = ?", "greeting").Scan(&value); err != nil {
		t.Fatalf("Failed to read state: %v", err)
	}
	if value != "annyeonghaseyo" {
		t.Errorf("value = %v, want annyeonghaseyo", value)
	}
}

// writeTestMigrations creates a throwaway migrations dir mirroring migrations/sqlite
func writeTestMigrations(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "sqlite")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create migrations dir: %v", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS app_state (
			state_key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	if err := os.WriteFile(filepath.Join(dir, "001_create_app_state.sql"), []byte(schema), 0644); err != nil {
		t.Fatalf("Failed to write migration file: %v", err)
	}

	return root
}
