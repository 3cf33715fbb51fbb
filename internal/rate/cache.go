package rate

import (
	"slices"
	"sync/atomic"

	"fxcross/internal/domain"
)

// RateCache holds the latest published RateTable.
// A published table is never mutated, readers see either the old or the new one.
type RateCache struct {
	table atomic.Pointer[domain.RateTable]
}

func NewRateCache() *RateCache {
	return &RateCache{}
}

// Get returns the rates published for base, or domain.ErrRatesNotFound.
func (c *RateCache) Get(base domain.CurrencyCode) ([]domain.RateObservation, error) {
	table := c.table.Load()
	if table == nil {
		return nil, domain.ErrRatesNotFound
	}
	rates, ok := (*table)[base]
	if !ok {
		return nil, domain.ErrRatesNotFound
	}
	return slices.Clone(rates), nil
}

// Publish replaces the whole table. The caller must not modify table afterwards.
func (c *RateCache) Publish(table domain.RateTable) {
	c.table.Store(&table)
}

func (c *RateCache) IsEmpty() bool {
	return c.table.Load() == nil
}

func (c *RateCache) Bases() []domain.CurrencyCode {
	table := c.table.Load()
	if table == nil {
		return nil
	}
	return table.Bases()
}
