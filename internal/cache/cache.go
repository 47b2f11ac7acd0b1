// Package cache is an explicit TTL cache for read-side views, backed by
// Redis. Entries are tagged; write-side operations invalidate by tag after
// their transaction commits instead of relying on TTL expiry alone.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "assettrack:cache:"
const tagPrefix = "assettrack:tag:"

// Well-known tags invalidated by the lifecycle engine.
const (
	TagDashboard = "dashboard"
	TagActivity  = "activity"
)

// Invalidator is the capability the lifecycle engine calls post-commit.
type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string)
}

// Cache stores JSON-encoded views in Redis with an injected TTL.
type Cache struct {
	Rdb *redis.Client
	TTL time.Duration
}

// New builds a cache. A nil client disables caching (every Get misses).
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Rdb: rdb, TTL: ttl}
}

// GetJSON loads a cached view into dest. Returns false on miss or any Redis
// failure; cache errors degrade to a miss, never to an operation failure.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.Rdb == nil {
		return false
	}
	raw, err := c.Rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache decode failed")
		return false
	}
	return true
}

// SetJSON stores a view under key and registers it with the given tags.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, tags ...string) {
	if c == nil || c.Rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	pipe := c.Rdb.TxPipeline()
	pipe.Set(ctx, keyPrefix+key, raw, c.TTL)
	for _, tag := range tags {
		pipe.SAdd(ctx, tagPrefix+tag, keyPrefix+key)
		// tag sets outlive entries slightly so invalidation still finds them
		pipe.Expire(ctx, tagPrefix+tag, c.TTL*2)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Invalidate drops every entry registered under the given tags.
func (c *Cache) Invalidate(ctx context.Context, tags ...string) {
	if c == nil || c.Rdb == nil {
		return
	}
	for _, tag := range tags {
		keys, err := c.Rdb.SMembers(ctx, tagPrefix+tag).Result()
		if err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("cache invalidate failed")
			continue
		}
		if len(keys) > 0 {
			if err := c.Rdb.Del(ctx, keys...).Err(); err != nil {
				log.Warn().Err(err).Str("tag", tag).Msg("cache invalidate failed")
			}
		}
		if err := c.Rdb.Del(ctx, tagPrefix+tag).Err(); err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("cache invalidate failed")
		}
	}
}
