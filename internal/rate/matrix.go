package rate

import (
	"slices"

	"fxcross/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// significantDigits matches the decimal64 context: 16 significant digits, half-even.
	significantDigits = 16
	// divisionGuardPlaces keeps enough fractional digits before the significant-digit rounding.
	divisionGuardPlaces = 40
)

var one = decimal.NewFromInt(1)

// BuildMatrix derives the full pairwise rate table for codes from a single provider snapshot.
// The provider base acts as the pivot: rate(B->C) = rate(P->C) / rate(P->B).
// Codes the snapshot can't price are left out instead of getting a synthetic value.
func BuildMatrix(snapshot domain.ProviderSnapshot, codes []domain.CurrencyCode) domain.RateTable {
	tracked := uniqueSorted(codes)
	table := make(domain.RateTable, len(tracked))

	for _, base := range tracked {
		isPivot := base == snapshot.ProviderBase
		baseRate, ok := priceOf(snapshot, base)
		if !ok {
			continue
		}

		rates := make([]domain.RateObservation, 0, len(tracked)-1)
		for _, counter := range tracked {
			if counter == base {
				continue
			}
			counterRate, ok := priceOf(snapshot, counter)
			if !ok {
				continue
			}

			var value decimal.Decimal
			switch {
			case isPivot:
				value = counterRate
			case counter == snapshot.ProviderBase:
				value = divide(one, baseRate)
			default:
				value = divide(counterRate, baseRate)
			}

			rates = append(rates, domain.RateObservation{
				BaseCurrency:    base,
				CounterCurrency: counter,
				Rate:            value,
				ObservedAt:      snapshot.ObservedAt,
				Triangulated:    !isPivot,
			})
		}
		table[base] = rates
	}
	return table
}

// MissingCodes returns the codes BuildMatrix had to skip because the snapshot has no usable rate for them.
func MissingCodes(snapshot domain.ProviderSnapshot, codes []domain.CurrencyCode) []domain.CurrencyCode {
	var missing []domain.CurrencyCode
	for _, code := range uniqueSorted(codes) {
		if _, ok := priceOf(snapshot, code); !ok {
			missing = append(missing, code)
		}
	}
	return missing
}

func priceOf(snapshot domain.ProviderSnapshot, code domain.CurrencyCode) (decimal.Decimal, bool) {
	if code == snapshot.ProviderBase {
		return one, true
	}
	v, ok := snapshot.RatesAgainstBase[code]
	if !ok || !v.IsPositive() {
		return decimal.Decimal{}, false
	}
	return v, true
}

func divide(numerator, denominator decimal.Decimal) decimal.Decimal {
	return roundSignificant(numerator.DivRound(denominator, divisionGuardPlaces), significantDigits)
}

func roundSignificant(d decimal.Decimal, digits int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	// count of digits left of the decimal point; negative for values below 0.1
	intDigits := int32(len(d.Coefficient().String())) + d.Exponent()
	if d.IsNegative() {
		intDigits--
	}
	return d.RoundBank(digits - intDigits)
}

func uniqueSorted(codes []domain.CurrencyCode) []domain.CurrencyCode {
	out := slices.Clone(codes)
	slices.Sort(out)
	return slices.Compact(out)
}
