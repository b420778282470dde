package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheDefaultTTLApplied(t *testing.T) {
	mc := NewMemoryCache(WithDefaultTTL(5 * time.Millisecond))
	defer mc.Close()

	ctx := context.Background()
	if err := mc.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, err := mc.Get(ctx, "k"); err != nil || v != "v" {
		t.Fatalf("get before expiry: %q, %v", v, err)
	}

	time.Sleep(50 * time.Millisecond)
	if _, err := mc.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after default TTL, got %v", err)
	}
}

func TestMemoryCacheEvictsLRU(t *testing.T) {
	mc := NewMemoryCache(WithMaxSize(2))
	defer mc.Close()

	ctx := context.Background()
	mc.Set(ctx, "a", "1", time.Minute)
	time.Sleep(time.Millisecond)
	mc.Set(ctx, "b", "2", time.Minute)
	time.Sleep(time.Millisecond)
	mc.Set(ctx, "c", "3", time.Minute)

	if _, err := mc.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected oldest key evicted, got %v", err)
	}
	if v, err := mc.Get(ctx, "c"); err != nil || v != "3" {
		t.Fatalf("newest key must survive: %q, %v", v, err)
	}
}
