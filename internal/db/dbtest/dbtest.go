// Package dbtest opens throwaway SQLite databases with the full schema
// applied, for repository and router tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"bloodbank/internal/config"
	"bloodbank/internal/db"
	"bloodbank/pkg/logger"
	"gorm.io/gorm"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "bloodbank.db"),
	}

	gormDB, err := db.Open(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(gormDB)
	})

	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gormDB
}
