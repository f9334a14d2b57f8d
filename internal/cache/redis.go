package cache

import (
	"catalog-engine/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FacetKey is the Redis key holding the encoded facet summary
const FacetKey = "catalog:facets"

// RedisCache is a FacetCache shared by every instance that talks to the same Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache on an existing client
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and verifies the server answers
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// Get reads and decodes the cached summary
func (c *RedisCache) Get(ctx context.Context) (models.FacetSummary, bool, error) {
	raw, err := c.client.Get(ctx, FacetKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.FacetSummary{}, false, nil
	}
	if err != nil {
		return models.FacetSummary{}, false, fmt.Errorf("redis get facets: %w", err)
	}

	var summary models.FacetSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return models.FacetSummary{}, false, fmt.Errorf("decode cached facets: %w", err)
	}
	return summary, true, nil
}

// Set stores the summary with the cache TTL
func (c *RedisCache) Set(ctx context.Context, summary models.FacetSummary) error {
	if c.ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode facets: %w", err)
	}
	if err := c.client.Set(ctx, FacetKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set facets: %w", err)
	}
	return nil
}

// Invalidate deletes the cached summary
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, FacetKey).Err(); err != nil {
		return fmt.Errorf("redis invalidate facets: %w", err)
	}
	return nil
}
