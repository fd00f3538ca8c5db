package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/eventops/staffing-backend/internal/config"
)

// Cache is the minimal key-value surface the dashboard needs. A nil
// implementation is valid and means caching is disabled.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ErrMiss is go-redis' cache miss sentinel, re-exported so callers don't
// import the redis package directly.
var ErrMiss = redis.Nil

// RedisCache implements Cache on top of go-redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedis connects to Redis. Returns nil (cache disabled) when no address
// is configured or the server is unreachable; the dashboard then always
// falls through to the database.
func NewRedis(cfg config.RedisConfig, logger *logrus.Logger) *RedisCache {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, dashboard caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.WithError(err).Warn("Unable to reach redis, dashboard caching disabled")
		client.Close()
		return nil
	}

	logger.Info("Connected to redis")
	return &RedisCache{client: client}
}

// Get fetches a cached value; returns ErrMiss when absent.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

// Set stores a value with a TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close closes the client.
func (c *RedisCache) Close() {
	if c != nil && c.client != nil {
		_ = c.client.Close()
	}
}
