package server

import (
	"context"
	"fmt"

	"github.com/taskmaster/focusboard/internal/adapters/cache"
	"github.com/taskmaster/focusboard/internal/adapters/gemini"
	"github.com/taskmaster/focusboard/internal/adapters/oauth"
	"github.com/taskmaster/focusboard/internal/infrastructure/config"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/infrastructure/metrics"
	"github.com/taskmaster/focusboard/internal/ports"
)

// Dependencies are the optional external collaborators of the server.
// Nil fields disable the feature they back.
type Dependencies struct {
	Cache     ports.CacheRepository
	Generator ports.TextGenerator
	Google    ports.OAuthProvider
	Metrics   *metrics.Metrics
}

// Close releases connections held by the dependencies
func (d Dependencies) Close() error {
	if closer, ok := d.Cache.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// BuildDependencies connects the collaborators enabled in cfg. An unreachable
// Redis is logged and replaced by a no-op cache.
func BuildDependencies(ctx context.Context, cfg *config.Config, log *logger.Logger) (Dependencies, error) {
	deps := Dependencies{
		Cache:   cache.Noop{},
		Metrics: metrics.New(),
	}

	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis, log)
		if err != nil {
			log.Warnw("Redis unavailable, analytics caching disabled", "error", err, "addr", cfg.Redis.GetAddr())
		} else {
			deps.Cache = redisCache
		}
	}

	if cfg.AI.Enabled() {
		generator, err := gemini.New(ctx, cfg.AI)
		if err != nil {
			return deps, fmt.Errorf("failed to create AI client: %w", err)
		}
		deps.Generator = generator
		log.Infow("AI assistant enabled", "model", generator.Model())
	} else {
		log.Warnw("GEMINI_API_KEY not set, AI endpoints will answer 503")
	}

	if cfg.OAuth.GoogleEnabled() {
		deps.Google = oauth.NewGoogleProvider(cfg.OAuth)
	}

	return deps, nil
}
