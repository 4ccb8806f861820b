// Package storetest provides an in-memory store for tests.
package storetest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/tasknest/tasknest/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(t testing.TB) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open in-memory database: %+v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("could not access underlying database: %+v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys=on").Error; err != nil {
		t.Fatalf("could not enable foreign keys: %+v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return store.New(db)
}
