package postgres

import (
	"context"
	"fmt"

	"fxcross/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CurrencyRepository stores the tracked currency set.
type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func (r *CurrencyRepository) List(ctx context.Context) ([]domain.CurrencyCode, error) {
	const q = `select code from currencies order by code;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	codes := make([]domain.CurrencyCode, 0, 32)
	for rows.Next() {
		var code string
		if err = rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		codes = append(codes, domain.CurrencyCode(code))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return codes, nil
}

// Add is idempotent: adding a tracked code again is not an error.
func (r *CurrencyRepository) Add(ctx context.Context, code domain.CurrencyCode) error {
	const q = `insert into currencies(code) values ($1) on conflict (code) do nothing;`

	if _, err := r.pool.Exec(ctx, q, code.String()); err != nil {
		return fmt.Errorf("failed to insert currency %q: %w", code, err)
	}
	return nil
}

func (r *CurrencyRepository) Exists(ctx context.Context, code domain.CurrencyCode) (bool, error) {
	const q = `select exists(select 1 from currencies where code = $1);`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, code.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check currency %q: %w", code, err)
	}
	return exists, nil
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}
