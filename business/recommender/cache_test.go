package recommender

import (
	"context"
	"testing"

	"adventura/domain"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	if _, ok, err := cache.Get(ctx, 1); ok || err != nil {
		t.Fatalf("empty cache Get = ok=%v err=%v", ok, err)
	}

	items := []domain.RecommendedItem{
		{ID: 10, Type: domain.RecommendedItemTypeActivity},
		{ID: 20, Type: domain.RecommendedItemTypeActivity},
	}
	if err := cache.Put(ctx, 1, items); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := cache.Get(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].ID != 10 || got[1].ID != 20 {
		t.Errorf("Get() = %v, want %v", got, items)
	}

	// Mutating the returned slice must not corrupt the stored entry.
	got[0].ID = 999
	again, _, _ := cache.Get(ctx, 1)
	if again[0].ID != 10 {
		t.Error("cache handed out its internal slice")
	}

	if err := cache.InvalidateAll(ctx); err != nil {
		t.Fatalf("InvalidateAll() error = %v", err)
	}
	if _, ok, _ := cache.Get(ctx, 1); ok {
		t.Error("entry survived InvalidateAll")
	}
}
