// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"testing"

	"budgetmate/internal/config"
	"budgetmate/internal/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database with foreign keys on, migrated and seeded
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	gdb, err := db.Open(config.DriverSQLite, dsn, true)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})

	require.NoError(t, db.Migrate(gdb), "Failed to migrate schema")
	require.NoError(t, db.Seed(gdb), "Failed to seed database")
	return gdb
}
