package cache

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/focusboard/internal/infrastructure/config"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Noop

	require.NoError(t, c.Set(ctx, "k", payload{Name: "x"}, time.Minute))

	var got payload
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ports.ErrCacheMiss)
	assert.NoError(t, c.DeletePattern(ctx, "k*"))
	assert.NoError(t, c.Ping(ctx))
}

// TestRedisCache runs against a live server named by REDIS_TEST_ADDR.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	host, portStr, ok := strings.Cut(addr, ":")
	require.True(t, ok, "REDIS_TEST_ADDR must be host:port")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	ctx := context.Background()
	c, err := NewRedisCache(ctx, config.RedisConfig{Host: host, Port: port, DB: 15}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	prefix := "test:" + uuid.NewString() + ":"

	require.NoError(t, c.Set(ctx, prefix+"a", payload{Name: "a", Count: 1}, time.Minute))
	require.NoError(t, c.Set(ctx, prefix+"b", payload{Name: "b", Count: 2}, time.Minute))
	require.NoError(t, c.Set(ctx, "other:"+prefix, payload{Name: "keep"}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, prefix+"b", &got))
	assert.Equal(t, payload{Name: "b", Count: 2}, got)

	require.NoError(t, c.DeletePattern(ctx, prefix+"*"))
	assert.ErrorIs(t, c.Get(ctx, prefix+"a", &got), ports.ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, prefix+"b", &got), ports.ErrCacheMiss)

	require.NoError(t, c.Get(ctx, "other:"+prefix, &got))
	assert.Equal(t, "keep", got.Name)
	require.NoError(t, c.DeletePattern(ctx, "other:"+prefix))

	info := c.GetConnectionInfo()
	assert.Equal(t, addr, info["address"])
}
