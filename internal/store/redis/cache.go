// Package redis caches trend predictions under short TTLs.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cedears-engine/internal/model"

	goredis "github.com/go-redis/redis/v8"
)

// CacheConfig configures the Redis prediction cache.
type CacheConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
}

// Cache stores JSON-encoded trend predictions with per-entry TTLs.
type Cache struct {
	client *goredis.Client
}

// Client returns the underlying Redis client for health checks.
func (c *Cache) Client() *goredis.Client { return c.client }

// New creates a new Cache and pings the server.
func New(cfg CacheConfig) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[redis] connected to %s", cfg.Addr)
	return &Cache{client: client}, nil
}

// Get returns the cached prediction for the key, or (nil, nil) on miss.
func (c *Cache) Get(ctx context.Context, key string) (*model.TrendPrediction, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis GET %s: %w", key, err)
	}

	var p model.TrendPrediction
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		log.Printf("[redis] corrupt cache entry %s: %v", key, err)
		return nil, nil
	}
	return &p, nil
}

// Set stores the prediction under the key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, p *model.TrendPrediction, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, p.JSON(), ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (c *Cache) Close() error {
	return c.client.Close()
}
