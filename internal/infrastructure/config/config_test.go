package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "focusboard.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 365, cfg.Analytics.HeatmapDays)
	assert.Equal(t, time.UTC, cfg.Analytics.Location())
	assert.False(t, cfg.AI.Enabled())
	assert.False(t, cfg.OAuth.GoogleEnabled())
	assert.Equal(t, "focusboard.db", cfg.Database.GetDSN())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://app@db/focusboard")
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("ANALYTICS_TIMEZONE", "Europe/Berlin")
	t.Setenv("REDIS_HOST", "cache")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.AI.Enabled())
	assert.True(t, cfg.OAuth.GoogleEnabled())
	assert.Equal(t, "Europe/Berlin", cfg.Analytics.Location().String())
	assert.Equal(t, "cache:6379", cfg.Redis.GetAddr())
	assert.Equal(t, "postgres://app@db/focusboard", cfg.Database.GetDSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"bad timezone", map[string]string{"DB_DRIVER": "sqlite", "DB_NAME": "x.db", "ANALYTICS_TIMEZONE": "Mars/Olympus"}},
		{"default secret in production", map[string]string{"DB_DRIVER": "sqlite", "DB_NAME": "x.db", "APP_ENVIRONMENT": "production"}},
		{"port out of range", map[string]string{"DB_DRIVER": "sqlite", "DB_NAME": "x.db", "PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
