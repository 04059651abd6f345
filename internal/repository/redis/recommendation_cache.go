package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"adventura/business/recommender"
	"adventura/domain"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "recommendations:user:"

// RecommendationCache stores merged rankings in Redis, one key per user.
// Entries have no TTL; they live until the next retrain invalidates them.
type RecommendationCache struct {
	client *redis.Client
}

var _ recommender.RecommendationCache = (*RecommendationCache)(nil)

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{client: client}
}

func cacheKey(userID uint) string {
	return fmt.Sprintf("%s%d", cacheKeyPrefix, userID)
}

func (c *RecommendationCache) Get(ctx context.Context, userID uint) ([]domain.RecommendedItem, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached recommendations: %w", err)
	}

	var items []domain.RecommendedItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return items, true, nil
}

func (c *RecommendationCache) Put(ctx context.Context, userID uint, items []domain.RecommendedItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store recommendations in Redis: %w", err)
	}

	return nil
}

// InvalidateAll deletes every cached ranking. Called on each successful
// retrain so model-derived results never outlive their model.
func (c *RecommendationCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return nil
}
