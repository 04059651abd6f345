package recommender

import (
	"context"
	"sync"

	"adventura/domain"
)

// MemoryCache is a process-local RecommendationCache. It backs tests and
// deployments running without Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[uint][]domain.RecommendedItem
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[uint][]domain.RecommendedItem),
	}
}

func (c *MemoryCache) Get(_ context.Context, userID uint) ([]domain.RecommendedItem, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, ok := c.entries[userID]
	if !ok {
		return nil, false, nil
	}

	out := make([]domain.RecommendedItem, len(items))
	copy(out, items)
	return out, true, nil
}

func (c *MemoryCache) Put(_ context.Context, userID uint, items []domain.RecommendedItem) error {
	stored := make([]domain.RecommendedItem, len(items))
	copy(stored, items)

	c.mu.Lock()
	c.entries[userID] = stored
	c.mu.Unlock()

	return nil
}

func (c *MemoryCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[uint][]domain.RecommendedItem)
	c.mu.Unlock()

	return nil
}
