package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExchangeRates provides the latest conversion rate between the reference
// currency (yen) and a carrier billing currency. Implementations memoize
// the rate and fall back to a fixed value when the source is unreachable,
// so lookups are best-effort and never abort a quote.
type ExchangeRates interface {
	// YenPer returns how many yen one unit of the given currency buys.
	YenPer(ctx context.Context, currency string) (decimal.Decimal, error)
}
