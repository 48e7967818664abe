package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"warehouse/internal/core/domain/model/address"
)

// QuoteRequest describes a shipment to quote across carrier service tiers.
type QuoteRequest struct {
	// WeightKg is the parcel weight in kilograms (must be measured)
	WeightKg float64

	// Destination is the delivery address to quote against
	Destination *address.Address

	// CustomsValueYen is the declared customs value in yen
	CustomsValueYen int64

	// ShipDate is the planned ship date used for delivery estimates
	ShipDate time.Time
}

// Quote is one service tier's normalized rate.
type Quote struct {
	// ServiceType is the carrier's raw service identifier, locked onto the
	// parcel when the owner selects this tier
	ServiceType string

	// ServiceName is the human-readable tier name
	ServiceName string

	// BillingAmount is the net charge in the carrier's billing currency
	BillingAmount decimal.Decimal

	// BillingCurrency is the carrier's billing currency code
	BillingCurrency string

	// AmountYen is the net charge converted to yen, the sort key
	AmountYen int64

	// EstimatedDelivery is the expected delivery time
	EstimatedDelivery time.Time
}

// QuoteResult is the soft outcome of a rate shopping call. External
// failures never surface as errors: a failed call reports Success=false
// with an actionable message instead.
type QuoteResult struct {
	// Success reports that at least one tier produced a quote
	Success bool

	// Message explains the failure when Success is false
	Message string

	// Quotes lists the successful tiers sorted ascending by AmountYen
	Quotes []Quote
}

// RateQuoter obtains comparative shipment quotes across the service tiers
// of a carrier. One tier's failure is skipped; the result reports failure
// only when every tier failed.
type RateQuoter interface {
	// GetQuotes returns ranked quotes for the shipment. The error return
	// covers programming mistakes only (invalid request); carrier and
	// network failures come back as a soft QuoteResult.
	GetQuotes(ctx context.Context, request QuoteRequest) (QuoteResult, error)
}
