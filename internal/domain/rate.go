package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type CurrencyCode string

func (c CurrencyCode) String() string { return string(c) }

// RateObservation is the amount of CounterCurrency per one unit of BaseCurrency.
type RateObservation struct {
	BaseCurrency    CurrencyCode
	CounterCurrency CurrencyCode
	Rate            decimal.Decimal
	ObservedAt      time.Time
	Triangulated    bool
}

// RateTable maps every base currency to its rates against the other tracked currencies.
type RateTable map[CurrencyCode][]RateObservation

func (t RateTable) Bases() []CurrencyCode {
	bases := make([]CurrencyCode, 0, len(t))
	for base := range t {
		bases = append(bases, base)
	}
	slices.Sort(bases)
	return bases
}

// Clone copies the table and every observation slice.
func (t RateTable) Clone() RateTable {
	if t == nil {
		return nil
	}
	out := make(RateTable, len(t))
	for base, rates := range t {
		out[base] = slices.Clone(rates)
	}
	return out
}

// Observations flattens the table ordered by base, then by counter.
func (t RateTable) Observations() []RateObservation {
	size := 0
	for _, rates := range t {
		size += len(rates)
	}
	out := make([]RateObservation, 0, size)
	for _, base := range t.Bases() {
		out = append(out, t[base]...)
	}
	return out
}

// ProviderSnapshot holds one provider response: every rate is quoted against ProviderBase.
type ProviderSnapshot struct {
	ProviderBase     CurrencyCode
	ObservedAt       time.Time
	RatesAgainstBase map[CurrencyCode]decimal.Decimal
}
