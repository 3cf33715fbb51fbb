package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fxcross/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RateHistoryRepository is an append-only log of published rate observations.
type RateHistoryRepository struct {
	pool *pgxpool.Pool
}

type historyRow struct {
	BaseCurrency    string          `json:"base_currency"`
	CounterCurrency string          `json:"counter_currency"`
	Rate            decimal.Decimal `json:"rate"`
	ObservedAt      time.Time       `json:"observed_at"`
	Triangulated    bool            `json:"triangulated"`
}

func (r *RateHistoryRepository) Append(ctx context.Context, observations []domain.RateObservation) error {
	if len(observations) == 0 {
		return nil
	}
	payload := make([]historyRow, 0, len(observations))
	for _, o := range observations {
		payload = append(payload, historyRow{
			BaseCurrency:    o.BaseCurrency.String(),
			CounterCurrency: o.CounterCurrency.String(),
			Rate:            o.Rate,
			ObservedAt:      o.ObservedAt.UTC(),
			Triangulated:    o.Triangulated,
		})
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal rate observations: %w", err)
	}

	const q = `
		insert into currency_rate_history(base_currency, counter_currency, rate, observed_at, triangulated, logged_at)
		select ir.base_currency, ir.counter_currency, ir.rate, ir.observed_at, ir.triangulated, now()
		from json_to_recordset($1::json) as ir(
			base_currency text,
			counter_currency text,
			rate numeric,
			observed_at timestamptz,
			triangulated boolean
		);
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, q, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to insert rate history: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func NewRateHistoryRepository(pool *pgxpool.Pool) *RateHistoryRepository {
	return &RateHistoryRepository{pool: pool}
}
