// Package cache keeps the brand ranking in Redis between product writes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cleaning-supplies-api/models"

	"github.com/redis/go-redis/v9"
)

const brandsKey = "cleaning-supplies:brands"

func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Println("Redis connected")
	return client, nil
}

// BrandCache stores the /brands aggregation. Redis failures are logged and
// treated as a miss so the request falls through to the database.
type BrandCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBrandCache(client *redis.Client, ttl time.Duration) *BrandCache {
	return &BrandCache{client: client, ttl: ttl}
}

func (c *BrandCache) Get(ctx context.Context) ([]models.BrandRating, bool) {
	raw, err := c.client.Get(ctx, brandsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("brand cache get: %v", err)
		return nil, false
	}

	var rows []models.BrandRating
	if err := json.Unmarshal(raw, &rows); err != nil {
		log.Printf("brand cache decode: %v", err)
		return nil, false
	}
	return rows, true
}

func (c *BrandCache) Set(ctx context.Context, rows []models.BrandRating) {
	raw, err := json.Marshal(rows)
	if err != nil {
		log.Printf("brand cache encode: %v", err)
		return
	}
	if err := c.client.Set(ctx, brandsKey, raw, c.ttl).Err(); err != nil {
		log.Printf("brand cache set: %v", err)
	}
}

func (c *BrandCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, brandsKey).Err(); err != nil {
		log.Printf("brand cache invalidate: %v", err)
	}
}
