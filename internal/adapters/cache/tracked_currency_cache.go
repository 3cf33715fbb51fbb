package cache

import (
	"context"
	"fmt"

	"fxcross/internal/adapters"
	"fxcross/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// TrackedCurrencyCache decorates a CurrencyRepository with a positive Exists cache.
// Tracked codes are never removed, so a cached hit never goes stale.
type TrackedCurrencyCache struct {
	next  adapters.CurrencyRepository
	cache *ristretto.Cache
}

func NewTrackedCurrencyCache(next adapters.CurrencyRepository, maxItems int64) (*TrackedCurrencyCache, error) {
	if maxItems <= 0 {
		maxItems = 1024
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create tracked currency cache failed: %w", err)
	}
	return &TrackedCurrencyCache{next: next, cache: c}, nil
}

func (c *TrackedCurrencyCache) List(ctx context.Context) ([]domain.CurrencyCode, error) {
	return c.next.List(ctx)
}

func (c *TrackedCurrencyCache) Add(ctx context.Context, code domain.CurrencyCode) error {
	if err := c.next.Add(ctx, code); err != nil {
		return err
	}
	c.cache.Set(code.String(), struct{}{}, 1)
	return nil
}

func (c *TrackedCurrencyCache) Exists(ctx context.Context, code domain.CurrencyCode) (bool, error) {
	if _, ok := c.cache.Get(code.String()); ok {
		return true, nil
	}
	exists, err := c.next.Exists(ctx, code)
	if err != nil {
		return false, err
	}
	if exists {
		c.cache.Set(code.String(), struct{}{}, 1)
	}
	return exists, nil
}

func (c *TrackedCurrencyCache) Close() { c.cache.Close() }
