package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster/focusboard/internal/domain/analytics"
	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/infrastructure/metrics"
	"github.com/taskmaster/focusboard/internal/ports"
)

// AnalyticsService computes gamification stats and heatmaps from a user's
// todos and caches the results per user and calendar day.
type AnalyticsService struct {
	todoRepo ports.TodoRepository
	userRepo ports.UserRepository
	cache    ports.CacheRepository
	ttl      time.Duration
	metrics  *metrics.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(todoRepo ports.TodoRepository, userRepo ports.UserRepository, cache ports.CacheRepository, ttl time.Duration, m *metrics.Metrics, logger *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		todoRepo: todoRepo,
		userRepo: userRepo,
		cache:    cache,
		ttl:      ttl,
		metrics:  m,
		logger:   logger.WithComponent("analytics"),
		now:      time.Now,
	}
}

// Stats returns the caller's gamification profile evaluated in loc
func (s *AnalyticsService) Stats(ctx context.Context, userID uuid.UUID, loc *time.Location) (*analytics.Stats, error) {
	now := s.now().In(loc)
	key := fmt.Sprintf("%sstats:%s:%s", userKeyPrefix(userID), loc.String(), now.Format(time.DateOnly))

	var stats analytics.Stats
	if s.fromCache(ctx, key, &stats) {
		return &stats, nil
	}

	todos, err := s.todoRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	stats = analytics.ComputeStats(todos, now)
	s.persistSnapshot(ctx, userID, snapshot(stats, todos))
	s.toCache(ctx, key, stats)

	return &stats, nil
}

// Heatmap returns daily completion activity for the trailing days ending today
func (s *AnalyticsService) Heatmap(ctx context.Context, userID uuid.UUID, loc *time.Location, days int) ([]analytics.Day, error) {
	days = analytics.ClampHeatmapDays(days)
	now := s.now().In(loc)
	key := fmt.Sprintf("%sheatmap:%d:%s:%s", userKeyPrefix(userID), days, loc.String(), now.Format(time.DateOnly))

	var heatmap []analytics.Day
	if s.fromCache(ctx, key, &heatmap) {
		return heatmap, nil
	}

	todos, err := s.todoRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	heatmap = analytics.BuildHeatmap(todos, now, days)
	s.toCache(ctx, key, heatmap)

	return heatmap, nil
}

// Invalidate drops every cached analytics entry for the user
func (s *AnalyticsService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, userKeyPrefix(userID)+"*"); err != nil {
		s.logger.Warnw("Failed to invalidate analytics cache", "user_id", userID, "error", err)
	}
}

func (s *AnalyticsService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}

	err := s.cache.Get(ctx, key, dest)
	switch {
	case err == nil:
		s.metrics.ObserveCacheResult("hit")
		return true
	case errors.Is(err, ports.ErrCacheMiss):
		s.metrics.ObserveCacheResult("miss")
	default:
		s.metrics.ObserveCacheResult("error")
		s.logger.Warnw("Analytics cache read failed", "key", key, "error", err)
	}
	return false
}

func (s *AnalyticsService) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warnw("Analytics cache write failed", "key", key, "error", err)
	}
}

// persistSnapshot stores the derived progress on the user row when it moved.
func (s *AnalyticsService) persistSnapshot(ctx context.Context, userID uuid.UUID, g entities.Gamification) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warnw("Failed to load user for gamification snapshot", "user_id", userID, "error", err)
		return
	}
	if user.Gamification().Equal(g) {
		return
	}
	if err := s.userRepo.UpdateGamification(ctx, userID, g); err != nil {
		s.logger.Warnw("Failed to persist gamification snapshot", "user_id", userID, "error", err)
	}
}

func snapshot(stats analytics.Stats, todos []entities.Todo) entities.Gamification {
	g := entities.Gamification{
		XP:            stats.TotalXP,
		Level:         stats.Level,
		CurrentStreak: stats.CurrentStreak,
		LongestStreak: stats.LongestStreak,
	}
	for _, t := range todos {
		if !t.IsDone() {
			continue
		}
		if g.LastActiveDate == nil || t.CompletedAt.After(*g.LastActiveDate) {
			completed := t.CompletedAt.UTC()
			g.LastActiveDate = &completed
		}
	}
	return g
}

func userKeyPrefix(userID uuid.UUID) string {
	return "analytics:" + userID.String() + ":"
}
