// Package ratelimit throttles chat events per identity with a fixed-window
// counter in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/metrics"
)

// Counter is the subset of the Redis client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	logger  *zap.Logger
}

func New(counter Counter, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{
		counter: counter,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

// NewClient connects to the Redis server at url and pings it.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Allow counts one event for the identity and reports whether it is within
// the limit. Redis errors let the event through.
func (l *Limiter) Allow(ctx context.Context, telegramID int64) bool {
	key := fmt.Sprintf("rentbot:rate:%d", telegramID)

	count, err := l.counter.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Error("Rate limit check failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return true
	}

	if count == 1 {
		if err := l.counter.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Error("Failed to set rate limit window", zap.String("key", key), zap.Error(err))
		}
	}

	if count > int64(l.limit) {
		metrics.RateLimitedTotal.Inc()
		l.logger.Debug("Event rate limited", zap.Int64("telegram_id", telegramID), zap.Int64("count", count))
		return false
	}
	return true
}
