// Package testutil holds the sqlite-backed fixtures and assertions shared by
// service and handler tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lifetrack/internal/models"
)

var dbSeq atomic.Int64

// SetupTestDB opens a fresh in-memory sqlite database with the schema
// migrated. Each call gets its own named database so tests never observe
// each other's rows.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:lifetrack_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// TeardownTestDB closes db, which discards the in-memory database.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("teardown: %v", err)
	}
}
