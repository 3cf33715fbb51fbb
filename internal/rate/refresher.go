package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxcross/internal/adapters"
	"fxcross/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	perRequestTimeout = 10 * time.Second
	historyTimeout    = 5 * time.Second
)

// Refresher runs refresh cycles: fetch a provider snapshot, build the rate table, publish it.
// Concurrent refreshes are allowed; the last publish wins.
type Refresher struct {
	provider   adapters.ProviderClient
	currencies adapters.CurrencyRepository
	history    adapters.HistoryLogger
	cache      *RateCache
	pivot      domain.CurrencyCode
	metrics    *Metrics
	now        func() time.Time
}

func NewRefresher(
	provider adapters.ProviderClient,
	currencies adapters.CurrencyRepository,
	history adapters.HistoryLogger,
	cache *RateCache,
	pivot domain.CurrencyCode,
	metrics *Metrics,
) *Refresher {
	return &Refresher{
		provider:   provider,
		currencies: currencies,
		history:    history,
		cache:      cache,
		pivot:      pivot,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Refresh fetches rates for codes against base, publishes the resulting table and returns a copy of it.
// On provider failure the cache is left untouched and the error satisfies errors.Is(err, domain.ErrProvider).
func (r *Refresher) Refresh(ctx context.Context, codes []domain.CurrencyCode, base domain.CurrencyCode) (domain.RateTable, error) {
	return r.refresh(ctx, codes, base, triggerOnDemand)
}

// RefreshTracked refreshes the currently tracked set against the configured pivot.
func (r *Refresher) RefreshTracked(ctx context.Context) (domain.RateTable, error) {
	codes, err := r.currencies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked currencies: %w", err)
	}
	return r.refresh(ctx, codes, r.pivot, triggerOnDemand)
}

// RunScheduled is one scheduled cycle. Observations of a successful refresh go to history;
// a history failure is only logged.
func (r *Refresher) RunScheduled(ctx context.Context, execID string) error {
	codes, err := r.currencies.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tracked currencies: %w", err)
	}
	if len(codes) == 0 {
		logrus.Infof("Nothing to refresh this time; execID: %s", execID)
		return nil
	}

	table, err := r.refresh(ctx, codes, r.pivot, triggerScheduled)
	if err != nil {
		return err
	}
	logrus.Infof("Rates for %d base currencies were published; execID: %s", len(table), execID)

	r.appendHistory(ctx, execID, table.Observations())
	return nil
}

func (r *Refresher) refresh(ctx context.Context, codes []domain.CurrencyCode, base domain.CurrencyCode, trigger string) (domain.RateTable, error) {
	if len(codes) == 0 {
		return domain.RateTable{}, nil
	}

	start := r.now()
	defer func() {
		r.metrics.RefreshDuration.WithLabelValues(trigger).Observe(r.now().Sub(start).Seconds())
	}()

	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()

	snapshot, err := r.provider.GetSnapshot(reqCtx, codes, base)
	if err != nil {
		r.metrics.RefreshTotal.WithLabelValues(trigger, outcomeFailure).Inc()
		if !errors.Is(err, domain.ErrProvider) {
			err = fmt.Errorf("%w: %w", domain.ErrProvider, err)
		}
		return nil, err
	}
	if snapshot.ObservedAt.IsZero() {
		snapshot.ObservedAt = r.now().UTC()
	}

	for _, code := range MissingCodes(snapshot, codes) {
		r.metrics.MissingProviderRates.Inc()
		logrus.WithFields(logrus.Fields{"code": code, "provider_base": snapshot.ProviderBase}).
			Warn("Provider returned no usable rate, pairs with this currency are skipped")
	}

	table := BuildMatrix(snapshot, codes)
	r.cache.Publish(table)

	r.metrics.PublishedBases.Set(float64(len(table)))
	r.metrics.RefreshTotal.WithLabelValues(trigger, outcomeSuccess).Inc()
	// the published table is shared with readers
	return table.Clone(), nil
}

func (r *Refresher) appendHistory(ctx context.Context, execID string, observations []domain.RateObservation) {
	if len(observations) == 0 {
		return
	}
	histCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyTimeout)
	defer cancel()

	if err := r.history.Append(histCtx, observations); err != nil {
		r.metrics.HistoryAppendFailures.Inc()
		logrus.WithError(err).Warnf("Failed to append %d observations to history; execID: %s", len(observations), execID)
		return
	}
	r.metrics.HistoryAppendedRecords.Add(float64(len(observations)))
}
