package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsKeyPrefix     = "citizenloop:stats:"
	statsGenerationKey = statsKeyPrefix + "generation"
)

// StatsCache stores serialized dashboard statistics in Redis.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache returns a cache with the given TTL. A nil client or a
// non-positive TTL yields nil, which callers treat as "no cache".
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Generation returns the current invalidation generation, 0 before the
// first invalidation.
func (c *StatsCache) Generation(ctx context.Context) (int64, error) {
	generation, err := c.client.Get(ctx, statsGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

// Get decodes the value cached for key at generation into dest. It reports
// false on a miss.
func (c *StatsCache) Get(ctx context.Context, key string, generation int64, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, entryKey(key, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key at generation for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, key string, generation int64, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, entryKey(key, generation), raw, c.ttl).Err()
}

// Invalidate bumps the generation. Entries written under an older generation
// are never read again and expire with their TTL.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, statsGenerationKey).Err()
}

func entryKey(key string, generation int64) string {
	return statsKeyPrefix + key + ":" + strconv.FormatInt(generation, 10)
}
