// Package dbtest provisions throwaway SQLite databases migrated with the
// embedded schema.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskmaster/focusboard/internal/infrastructure/config"
	"github.com/taskmaster/focusboard/internal/infrastructure/database"
)

// Config returns a SQLite configuration backed by a file in t.TempDir().
func Config(t testing.TB) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "focusboard.db"),
	}
}

// New returns a migrated database that is closed when the test ends.
func New(t testing.TB) *database.DB {
	t.Helper()

	cfg := Config(t)
	require.NoError(t, database.Migrate(cfg))

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}
