package rate

import (
	"testing"
	"time"

	"fxcross/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func eurSnapshot(t *testing.T) domain.ProviderSnapshot {
	return domain.ProviderSnapshot{
		ProviderBase: "EUR",
		ObservedAt:   time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC),
		RatesAgainstBase: map[domain.CurrencyCode]decimal.Decimal{
			"EUR": dec(t, "1"),
			"USD": dec(t, "1.05"),
			"UAH": dec(t, "43.214"),
		},
	}
}

func findRate(t *testing.T, rates []domain.RateObservation, counter domain.CurrencyCode) domain.RateObservation {
	t.Helper()
	for _, r := range rates {
		if r.CounterCurrency == counter {
			return r
		}
	}
	require.Failf(t, "counter not found", "no rate for %s", counter)
	return domain.RateObservation{}
}

func TestBuildMatrix_PivotBaseUsesDirectRates(t *testing.T) {
	snapshot := eurSnapshot(t)
	table := BuildMatrix(snapshot, []domain.CurrencyCode{"EUR", "USD", "UAH"})

	eur := table["EUR"]
	require.Len(t, eur, 2)

	usd := findRate(t, eur, "USD")
	require.True(t, usd.Rate.Equal(dec(t, "1.05")))
	require.False(t, usd.Triangulated)
	require.Equal(t, domain.CurrencyCode("EUR"), usd.BaseCurrency)

	uah := findRate(t, eur, "UAH")
	require.True(t, uah.Rate.Equal(dec(t, "43.214")))
	require.False(t, uah.Triangulated)
}

func TestBuildMatrix_NonPivotBaseIsTriangulated(t *testing.T) {
	table := BuildMatrix(eurSnapshot(t), []domain.CurrencyCode{"EUR", "USD", "UAH"})

	usd := table["USD"]
	require.Len(t, usd, 2)

	uah := findRate(t, usd, "UAH")
	require.True(t, uah.Triangulated)
	require.Equal(t, "41.15619047619048", uah.Rate.String())

	eur := findRate(t, usd, "EUR")
	require.True(t, eur.Triangulated, "pivot as counter still needs a division")
	require.Equal(t, "0.9523809523809524", eur.Rate.String())
}

func TestBuildMatrix_EveryBaseHasAllOtherCodes(t *testing.T) {
	snapshot := domain.ProviderSnapshot{
		ProviderBase: "EUR",
		RatesAgainstBase: map[domain.CurrencyCode]decimal.Decimal{
			"EUR": dec(t, "1"),
			"USD": dec(t, "1.0812"),
			"GBP": dec(t, "0.8391"),
			"JPY": dec(t, "161.27"),
			"PLN": dec(t, "4.3107"),
		},
	}
	codes := []domain.CurrencyCode{"USD", "GBP", "EUR", "JPY", "PLN"}

	table := BuildMatrix(snapshot, codes)

	require.Len(t, table, len(codes))
	for _, base := range codes {
		rates := table[base]
		require.Len(t, rates, len(codes)-1, "base %s", base)
		seen := make(map[domain.CurrencyCode]struct{}, len(rates))
		for _, r := range rates {
			require.Equal(t, base, r.BaseCurrency)
			require.NotEqual(t, base, r.CounterCurrency)
			seen[r.CounterCurrency] = struct{}{}
		}
		require.Len(t, seen, len(codes)-1)
	}
}

func TestBuildMatrix_CountersSortedByCode(t *testing.T) {
	table := BuildMatrix(eurSnapshot(t), []domain.CurrencyCode{"USD", "UAH", "EUR"})

	rates := table["USD"]
	require.Equal(t, domain.CurrencyCode("EUR"), rates[0].CounterCurrency)
	require.Equal(t, domain.CurrencyCode("UAH"), rates[1].CounterCurrency)
}

func TestBuildMatrix_RoundTripIsCloseToOne(t *testing.T) {
	snapshot := domain.ProviderSnapshot{
		ProviderBase: "EUR",
		RatesAgainstBase: map[domain.CurrencyCode]decimal.Decimal{
			"USD": dec(t, "1.0812"),
			"JPY": dec(t, "161.27"),
			"VND": dec(t, "27512.44"),
			"KWD": dec(t, "0.3329"),
		},
	}
	codes := []domain.CurrencyCode{"EUR", "USD", "JPY", "VND", "KWD"}
	table := BuildMatrix(snapshot, codes)
	tolerance := dec(t, "0.000000000001")

	for _, b := range codes {
		for _, c := range codes {
			if b == c {
				continue
			}
			forward := findRate(t, table[b], c).Rate
			backward := findRate(t, table[c], b).Rate
			product := forward.Mul(backward)
			require.True(t, product.Sub(one).Abs().LessThan(tolerance), "%s/%s round trip = %s", b, c, product)
		}
	}
}

func TestBuildMatrix_ObservedAtCopiedFromSnapshot(t *testing.T) {
	snapshot := eurSnapshot(t)
	table := BuildMatrix(snapshot, []domain.CurrencyCode{"EUR", "USD", "UAH"})

	for _, r := range table.Observations() {
		require.True(t, r.ObservedAt.Equal(snapshot.ObservedAt))
	}
}

func TestBuildMatrix_MissingCounterIsOmitted(t *testing.T) {
	snapshot := eurSnapshot(t)
	table := BuildMatrix(snapshot, []domain.CurrencyCode{"EUR", "USD", "UAH", "CHF"})

	require.Len(t, table["EUR"], 2)
	require.Len(t, table["USD"], 2)
	_, hasCHF := table["CHF"]
	require.False(t, hasCHF)
	for _, r := range table.Observations() {
		require.NotEqual(t, domain.CurrencyCode("CHF"), r.CounterCurrency)
	}
}

func TestBuildMatrix_NonPositiveRateTreatedAsMissing(t *testing.T) {
	snapshot := eurSnapshot(t)
	snapshot.RatesAgainstBase["USD"] = decimal.Zero

	table := BuildMatrix(snapshot, []domain.CurrencyCode{"EUR", "USD", "UAH"})

	_, hasUSD := table["USD"]
	require.False(t, hasUSD)
	require.Len(t, table["EUR"], 1)
	require.Len(t, table["UAH"], 1)
}

func TestBuildMatrix_SingleCodeHasEmptyRates(t *testing.T) {
	table := BuildMatrix(eurSnapshot(t), []domain.CurrencyCode{"USD"})

	rates, ok := table["USD"]
	require.True(t, ok)
	require.Empty(t, rates)
}

func TestBuildMatrix_DuplicateCodesIgnored(t *testing.T) {
	table := BuildMatrix(eurSnapshot(t), []domain.CurrencyCode{"USD", "EUR", "USD"})

	require.Len(t, table, 2)
	require.Len(t, table["USD"], 1)
}

func TestBuildMatrix_PivotNotTracked(t *testing.T) {
	table := BuildMatrix(eurSnapshot(t), []domain.CurrencyCode{"USD", "UAH"})

	require.Len(t, table, 2)
	usd := table["USD"]
	require.Len(t, usd, 1)
	require.Equal(t, domain.CurrencyCode("UAH"), usd[0].CounterCurrency)
	require.True(t, usd[0].Triangulated)
}

func TestMissingCodes(t *testing.T) {
	missing := MissingCodes(eurSnapshot(t), []domain.CurrencyCode{"EUR", "CHF", "USD", "AUD"})
	require.Equal(t, []domain.CurrencyCode{"AUD", "CHF"}, missing)
}

func TestRoundSignificant(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "41.156190476190476190476", want: "41.15619047619048"},
		{in: "0.0000363471293", want: "0.0000363471293"},
		{in: "0.000036347129312345678901", want: "0.00003634712931234568"},
		{in: "123456789.123456789123", want: "123456789.1234568"},
		{in: "-2.50000000000000050", want: "-2.5"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := roundSignificant(dec(t, tc.in), significantDigits)
			require.True(t, got.Equal(dec(t, tc.want)), "got %s", got)
		})
	}
}
