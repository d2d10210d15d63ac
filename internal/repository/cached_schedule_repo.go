package repository

import (
	"context"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/schedule"
)

// ScheduleCache stores each user's computed schedule in Redis. Entries carry
// their source hash; validity against current inputs is the caller's check, a
// mismatch means regenerate and Put the replacement, never patch the entry.
type ScheduleCache struct {
	cache *RedisCacheRepository
}

func NewScheduleCache(cache *RedisCacheRepository) *ScheduleCache {
	return &ScheduleCache{cache: cache}
}

// Get returns the cached schedule for a user, or ErrCacheMiss.
func (c *ScheduleCache) Get(ctx context.Context, userID string) (*schedule.ComputedSchedule, error) {
	var cs schedule.ComputedSchedule
	if err := c.cache.Get(ctx, scheduleKeyPrefix+userID, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// Put stores a freshly computed schedule (cache errors are the caller's to
// ignore, the schedule itself is recomputable).
func (c *ScheduleCache) Put(ctx context.Context, userID string, cs *schedule.ComputedSchedule) error {
	return c.cache.Set(ctx, scheduleKeyPrefix+userID, cs, scheduleCacheTTL)
}

// Invalidate drops the cached schedule after any input mutation.
func (c *ScheduleCache) Invalidate(ctx context.Context, userID string) error {
	return c.cache.Delete(ctx, scheduleKeyPrefix+userID)
}

// HistoryCache stores each user's session-log listing. The short TTL covers
// the common poll-after-workout burst; any new log drops the entry.
type HistoryCache struct {
	cache *RedisCacheRepository
}

func NewHistoryCache(cache *RedisCacheRepository) *HistoryCache {
	return &HistoryCache{cache: cache}
}

// Get returns the cached history listing for a user, or ErrCacheMiss.
func (c *HistoryCache) Get(ctx context.Context, userID string) ([]*domain.SessionLog, error) {
	var logs []*domain.SessionLog
	if err := c.cache.Get(ctx, historyKeyPrefix+userID, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Put stores a freshly listed history (errors are the caller's to ignore).
func (c *HistoryCache) Put(ctx context.Context, userID string, logs []*domain.SessionLog) error {
	return c.cache.Set(ctx, historyKeyPrefix+userID, logs, historyCacheTTL)
}

// Invalidate drops the cached listing after a log is written.
func (c *HistoryCache) Invalidate(ctx context.Context, userID string) error {
	return c.cache.Delete(ctx, historyKeyPrefix+userID)
}
