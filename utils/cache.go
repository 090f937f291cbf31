package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"studioflow/config"
)

var (
	// LockClient is the dedicated client for scheduling locks.
	LockClient *redis.Client
)

// InitLockClient initializes the Redis client the scheduling locks run on.
func InitLockClient() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LockClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Locks): %v", err)
	}
}

// GetLockClient returns the Redis client for scheduling locks.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockClient()
	}
	return LockClient
}
