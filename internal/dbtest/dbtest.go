// Package dbtest provides a migrated in-memory database for package tests.
package dbtest

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/AdamBeresnev/domino-league/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Setup creates an in-memory SQLite database and applies migrations. The pool
// is pinned to one connection since every connection to ":memory:" would
// otherwise see its own empty database.
func Setup(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	err = db.RunMigrations(database.DB, "file://"+migrationsDir())
	require.NoError(t, err, "Failed to apply migrations")

	return database
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
