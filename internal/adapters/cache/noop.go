package cache

import (
	"context"
	"time"

	"github.com/taskmaster/focusboard/internal/ports"
)

// Noop is used when Redis is disabled. Every read misses.
type Noop struct{}

func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Noop) Get(context.Context, string, interface{}) error { return ports.ErrCacheMiss }

func (Noop) DeletePattern(context.Context, string) error { return nil }

func (Noop) Ping(context.Context) error { return nil }

var _ ports.CacheRepository = Noop{}
