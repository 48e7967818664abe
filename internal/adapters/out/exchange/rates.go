// Package exchange provides the currency conversion rates used to
// normalize carrier charges and customs values to yen.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"warehouse/internal/pkg/errs"
)

const (
	defaultBaseURL = "https://api.exchangerate-api.com"

	// cacheTTL bounds how long a fetched rate is reused before the source
	// is consulted again.
	cacheTTL = time.Hour
)

// fallbackRate is used whenever the rate source is unreachable. A stale
// approximation beats failing the quote.
var fallbackRate = decimal.NewFromInt(150)

// Config carries the rate source settings.
type Config struct {
	// BaseURL overrides the production API host, used by tests
	BaseURL string

	// Now overrides the clock, used by tests to control cache expiry
	Now func() time.Time
}

type cachedRate struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

// RateSource fetches yen conversion rates from a public exchange rate API
// and memoizes them for an hour per currency. It implements
// ports.ExchangeRates.
type RateSource struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string]cachedRate
}

// NewRateSource creates a rate source with an empty cache.
func NewRateSource(config Config, logger *slog.Logger) (*RateSource, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &RateSource{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        config.Now,
		logger:     logger,
		cache:      make(map[string]cachedRate),
	}, nil
}

// YenPer returns how many yen one unit of the given currency buys. A fresh
// cached value is reused; a fetch failure falls back to a fixed rate
// without caching it, so the next lookup retries the source.
func (s *RateSource) YenPer(ctx context.Context, currency string) (decimal.Decimal, error) {
	if currency == "" {
		return decimal.Decimal{}, errs.NewValueIsRequiredError("currency")
	}
	if currency == "JPY" {
		return decimal.NewFromInt(1), nil
	}

	now := s.now()

	s.mu.Lock()
	cached, ok := s.cache[currency]
	s.mu.Unlock()
	if ok && now.Before(cached.expiresAt) {
		return cached.rate, nil
	}

	rate, err := s.fetch(ctx, currency)
	if err != nil {
		s.logger.Warn("exchange rate fetch failed, using fallback", "currency", currency, "error", err)
		return fallbackRate, nil
	}

	s.mu.Lock()
	s.cache[currency] = cachedRate{rate: rate, expiresAt: now.Add(cacheTTL)}
	s.mu.Unlock()

	return rate, nil
}

type latestRatesResponse struct {
	Rates map[string]json.Number `json:"rates"`
}

func (s *RateSource) fetch(ctx context.Context, currency string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, s.baseURL+"/v4/latest/"+currency, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("rate request failed with status %d", resp.StatusCode)
	}

	var parsed latestRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return decimal.Decimal{}, err
	}

	raw, ok := parsed.Rates["JPY"]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no JPY rate in response")
	}

	rate, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse JPY rate: %w", err)
	}
	if rate.IsZero() || rate.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("non-positive JPY rate %s", rate)
	}

	return rate, nil
}
