// Package ratelimit counts failed attempts per key inside a fixed window.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

type FailureLimiter interface {
	// Allow reports whether the key is still below its failure budget
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// RedisLimiter shares counters across instances. The window starts at the first failure.
type RedisLimiter struct {
	rdb         *redis.Client
	prefix      string
	maxFailures int
	window      time.Duration
}

func NewRedisLimiter(rdb *redis.Client, prefix string, maxFailures int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: prefix, maxFailures: maxFailures, window: window}
}

func (l *RedisLimiter) key(key string) string {
	return fmt.Sprintf("%s:%s", l.prefix, key)
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.rdb.Get(ctx, l.key(key)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return count < l.maxFailures, nil
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, key string) error {
	k := l.key(key)
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	return err
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, l.key(key)).Err()
}

// MemoryLimiter keeps counters in process
type MemoryLimiter struct {
	cache       *cache.Cache
	maxFailures int
	window      time.Duration
}

func NewMemoryLimiter(maxFailures int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		cache:       cache.New(window, 2*window),
		maxFailures: maxFailures,
		window:      window,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if x, found := l.cache.Get(key); found {
		return x.(int) < l.maxFailures, nil
	}
	return true, nil
}

func (l *MemoryLimiter) RecordFailure(ctx context.Context, key string) error {
	// Add fails when the key exists, in which case the running window is kept
	if err := l.cache.Add(key, 1, l.window); err == nil {
		return nil
	}
	if _, err := l.cache.IncrementInt(key, 1); err != nil {
		// expired between Add and Increment
		l.cache.Set(key, 1, l.window)
	}
	return nil
}

func (l *MemoryLimiter) Reset(ctx context.Context, key string) error {
	l.cache.Delete(key)
	return nil
}
