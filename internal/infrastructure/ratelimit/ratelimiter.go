// Package ratelimit bounds how often a user may invoke billable actions.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limits caps requests per window; zero disables a window.
type Limits struct {
	PerMinute int
	PerHour   int
	PerDay    int
}

type Limiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Reset(ctx context.Context, key string) error
}

// RedisLimiter keeps a sliding window per key as a sorted set of request
// timestamps, shared by every instance pointing at the same Redis.
type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limits Limits) (bool, error) {
	now := l.now()
	windows := []struct {
		d     time.Duration
		limit int
	}{
		{time.Minute, limits.PerMinute},
		{time.Hour, limits.PerHour},
		{24 * time.Hour, limits.PerDay},
	}

	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		ok, err := l.check(ctx, key, w.d, w.limit, now)
		if err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}

func (l *RedisLimiter) check(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error) {
	redisKey := windowKey(key, window)
	nowNano := now.UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
	card := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit pipeline: %w", err)
	}
	return card.Val() < int64(limit), nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	keys := []string{windowKey(key, time.Minute), windowKey(key, time.Hour), windowKey(key, 24*time.Hour)}
	if err := l.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func windowKey(key string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%s", key, window)
}
