package rate

import (
	"context"
	"fmt"

	"fxcross/internal/adapters"
	"fxcross/internal/domain"

	"golang.org/x/sync/singleflight"
)

type TableRefresher interface {
	RefreshTracked(ctx context.Context) (domain.RateTable, error)
}

type RateReader interface {
	Get(base domain.CurrencyCode) ([]domain.RateObservation, error)
	IsEmpty() bool
}

type Service struct {
	currencies adapters.CurrencyRepository
	refresher  TableRefresher
	cache      RateReader
	warmup     singleflight.Group
}

// AddCurrency starts tracking code and refreshes rates synchronously so the new currency can be queried right away.
// The currency stays tracked even if the refresh fails.
func (s *Service) AddCurrency(ctx context.Context, code domain.CurrencyCode) error {
	if err := s.currencies.Add(ctx, code); err != nil {
		return fmt.Errorf("failed to add currency %q: %w", code, err)
	}
	if _, err := s.refresher.RefreshTracked(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Service) ListCurrencies(ctx context.Context) ([]domain.CurrencyCode, error) {
	codes, err := s.currencies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return codes, nil
}

// GetRates returns the published rates of base against every other tracked currency.
// An untracked base fails before the cache is consulted; an empty cache triggers a synchronous refresh.
func (s *Service) GetRates(ctx context.Context, base domain.CurrencyCode) ([]domain.RateObservation, error) {
	tracked, err := s.currencies.Exists(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to check currency %q: %w", base, err)
	}
	if !tracked {
		return nil, domain.ErrUntrackedCurrency
	}

	if s.cache.IsEmpty() {
		// concurrent first lookups share one provider call, not bound to the first caller's lifetime
		warmupCtx := context.WithoutCancel(ctx)
		_, err, _ = s.warmup.Do("warmup", func() (any, error) {
			return s.refresher.RefreshTracked(warmupCtx)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmptyCache, err)
		}
	}

	return s.cache.Get(base)
}

func NewService(currencies adapters.CurrencyRepository, refresher TableRefresher, cache RateReader) *Service {
	return &Service{currencies: currencies, refresher: refresher, cache: cache}
}
