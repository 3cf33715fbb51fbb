package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fxcross/internal/domain"

	"github.com/shopspring/decimal"
)

// FixerClient reads the latest rates from a fixer.io compatible API.
type FixerClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type fixerError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

type fixerResponse struct {
	Success   bool                       `json:"success"`
	Timestamp int64                      `json:"timestamp"`
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Error     *fixerError                `json:"error"`
}

func (c *FixerClient) GetSnapshot(ctx context.Context, codes []domain.CurrencyCode, base domain.CurrencyCode) (domain.ProviderSnapshot, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.ProviderSnapshot{}, fmt.Errorf("%w: failed to parse base URL: %w", domain.ErrProvider, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/latest"

	symbols := make([]string, 0, len(codes))
	for _, code := range codes {
		symbols = append(symbols, code.String())
	}
	q := u.Query()
	q.Set("access_key", c.apiKey)
	q.Set("base", base.String())
	q.Set("symbols", strings.Join(symbols, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.ProviderSnapshot{}, fmt.Errorf("%w: failed to create request for base %q: %w", domain.ErrProvider, base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ProviderSnapshot{}, fmt.Errorf("%w: failed to execute request for base %q: %w", domain.ErrProvider, base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ProviderSnapshot{}, fmt.Errorf("%w: unexpected status code %d for base %q", domain.ErrProvider, resp.StatusCode, base)
	}

	var body fixerResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.ProviderSnapshot{}, fmt.Errorf("%w: failed to decode response for base %q: %w", domain.ErrProvider, base, err)
	}

	if !body.Success {
		if body.Error != nil {
			return domain.ProviderSnapshot{}, fmt.Errorf("%w: api error %d (%s): %s", domain.ErrProvider, body.Error.Code, body.Error.Type, body.Error.Info)
		}
		return domain.ProviderSnapshot{}, fmt.Errorf("%w: api returned non-success result for base %q", domain.ErrProvider, base)
	}
	if len(body.Rates) == 0 {
		return domain.ProviderSnapshot{}, fmt.Errorf("%w: api returned no rates for base %q", domain.ErrProvider, base)
	}

	snapshot := domain.ProviderSnapshot{
		ProviderBase:     base,
		RatesAgainstBase: make(map[domain.CurrencyCode]decimal.Decimal, len(body.Rates)+1),
	}
	if body.Base != "" {
		snapshot.ProviderBase = domain.CurrencyCode(strings.ToUpper(body.Base))
	}
	if body.Timestamp > 0 {
		snapshot.ObservedAt = time.Unix(body.Timestamp, 0).UTC()
	}
	for code, rate := range body.Rates {
		snapshot.RatesAgainstBase[domain.CurrencyCode(strings.ToUpper(code))] = rate
	}
	// the provider base is priced as 1 even when it is not among the requested symbols
	snapshot.RatesAgainstBase[snapshot.ProviderBase] = decimal.NewFromInt(1)

	return snapshot, nil
}

func NewFixerClient(httpClient *http.Client, baseURL, apiKey string) *FixerClient {
	return &FixerClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
