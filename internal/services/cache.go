package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyCategories = "menu:categories"
	cacheKeyItems      = "menu:items:active"
)

// SnapshotCache keeps JSON copies of the public category and item listings
// in Redis. A nil client turns every call into a miss.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache creates a cache; client may be nil
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{client: client, ttl: ttl, logger: logger}
}

// ConnectRedis parses a redis:// URL and verifies the connection with a ping
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Enabled reports whether a Redis client is configured
func (c *SnapshotCache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetCategories loads the cached category listing into dst; false on miss
func (c *SnapshotCache) GetCategories(ctx context.Context, dst any) bool {
	return c.get(ctx, cacheKeyCategories, dst)
}

// SetCategories stores the category listing
func (c *SnapshotCache) SetCategories(ctx context.Context, v any) {
	c.set(ctx, cacheKeyCategories, v)
}

// GetItems loads the cached active-item listing into dst; false on miss
func (c *SnapshotCache) GetItems(ctx context.Context, dst any) bool {
	return c.get(ctx, cacheKeyItems, dst)
}

// SetItems stores the active-item listing
func (c *SnapshotCache) SetItems(ctx context.Context, v any) {
	c.set(ctx, cacheKeyItems, v)
}

// Invalidate drops both listings. Any write to categories or items must call it.
func (c *SnapshotCache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Del(ctx, cacheKeyCategories, cacheKeyItems).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.Error(err))
	}
}

func (c *SnapshotCache) get(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *SnapshotCache) set(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
