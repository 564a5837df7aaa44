package database

import (
	"path/filepath"
	"testing"

	"lifetrack/internal/models"
)

func TestNewManager_SQLite(t *testing.T) {
	cfg := &Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = m.Close() }()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error: %v", err)
	}

	for _, model := range models.All() {
		if !m.DB().Migrator().HasTable(model) {
			t.Errorf("expected table for %T", model)
		}
	}

	if err := m.RollbackMigrations(1); err == nil {
		t.Error("expected rollback to be rejected for sqlite")
	}
}

func TestNewManager_UnknownDriver(t *testing.T) {
	if _, err := NewManager(&Config{Driver: "mongo"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestConfig_URLs(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "lt", SSLMode: "disable"}

	if got := cfg.DSN(); got != "host=db port=5432 user=u password=p dbname=lt sslmode=disable" {
		t.Errorf("DSN() = %q", got)
	}
	if got := cfg.MigrationURL(); got != "postgres://u:p@db:5432/lt?sslmode=disable" {
		t.Errorf("MigrationURL() = %q", got)
	}
}
