package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// releaseScript deletes the lock only if the caller still owns it, so an
// expired-and-reacquired lock is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker serializes check-and-reserve sections across processes
// with a per-key Redis lock (SET NX PX). Waiters poll until the holder
// releases, the TTL expires, or their context ends.
type RedisLocker struct {
	Client *redis.Client
	// RetryInterval is the poll interval while waiting; zero means 50ms.
	RetryInterval time.Duration
}

// Acquire blocks until the key's lock is held, returning the release
// function. The lock self-expires after ttl if never released.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.New().String()
	interval := l.RetryInterval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	for {
		ok, err := l.Client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lock %s: %w", key, ctx.Err())
		case <-time.After(interval):
		}
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.Client, []string{key}, token).Err(); err != nil {
			GetLogger().Warn("failed to release scheduling lock; it will expire",
				zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}
