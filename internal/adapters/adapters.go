package adapters

import (
	"context"
	"fxcross/internal/domain"
)

type ProviderClient interface {
	GetSnapshot(ctx context.Context, codes []domain.CurrencyCode, base domain.CurrencyCode) (domain.ProviderSnapshot, error)
}

type CurrencyRepository interface {
	List(ctx context.Context) ([]domain.CurrencyCode, error)
	Add(ctx context.Context, code domain.CurrencyCode) error
	Exists(ctx context.Context, code domain.CurrencyCode) (bool, error)
}

type HistoryLogger interface {
	Append(ctx context.Context, observations []domain.RateObservation) error
}
