package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the optional cross-run cache. It stays nil when
// REDIS_ADDR is unset or the server is unreachable; callers must check.
var RedisClient *redis.Client

// InitRedis connects the client if REDIS_ADDR is configured. An
// unreachable server disables caching instead of failing the run.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if err := client.Ping(RedisCtx()).Err(); err != nil {
		RedisClient = nil
		return
	}
	RedisClient = client
}

func RedisCtx() context.Context {
	return context.Background()
}
