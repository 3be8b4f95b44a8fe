package database_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/focusboard/internal/infrastructure/config"
	"github.com/taskmaster/focusboard/internal/infrastructure/database"
	"github.com/taskmaster/focusboard/internal/infrastructure/database/dbtest"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "postgres url passes through",
			cfg:  config.DatabaseConfig{Driver: "postgres", URL: "postgres://u:p@db/app"},
			want: "postgres://u:p@db/app",
		},
		{
			name: "postgres fields",
			cfg:  config.DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "app", SSLMode: "disable"},
			want: "host=db port=5432 user=u password=p dbname=app sslmode=disable",
		},
		{
			name: "sqlite path",
			cfg:  config.DatabaseConfig{Driver: "sqlite", Name: "dev.db"},
			want: "file:dev.db?_pragma=foreign_keys(1)&_time_format=sqlite",
		},
		{
			name: "sqlite url keeps explicit pragmas",
			cfg:  config.DatabaseConfig{Driver: "sqlite", URL: "file:dev.db?_pragma=foreign_keys(0)"},
			want: "file:dev.db?_pragma=foreign_keys(0)&_time_format=sqlite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, database.DSN(tt.cfg))
		})
	}
}

func TestMigrator(t *testing.T) {
	cfg := dbtest.Config(t)

	mg, err := database.NewMigrator(cfg)
	require.NoError(t, err)
	defer mg.Close()

	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	applied, err := mg.Up()
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = mg.Up()
	require.NoError(t, err)
	assert.False(t, applied)

	version, _, err = mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	applied, err = mg.Down(1)
	require.NoError(t, err)
	assert.True(t, applied)

	version, _, err = mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestNew_SQLite(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.HealthCheck(context.Background()))
	assert.Equal(t, database.DriverSQLite, db.Driver())
	assert.Equal(t, "sqlite", db.GetConnectionInfo()["driver"])

	var count int
	require.NoError(t, db.DB.Get(&count, `SELECT COUNT(*) FROM todos`))
	assert.Zero(t, count)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	err := database.WithTransaction(ctx, db.DB, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO users (id, email, created_at, updated_at) VALUES ('u1', 'a@b.c', '2025-01-01 00:00:00', '2025-01-01 00:00:00')`)
		require.NoError(t, err)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	var count int
	require.NoError(t, db.DB.Get(&count, `SELECT COUNT(*) FROM users`))
	assert.Zero(t, count)
}
