package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/address"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/ledger"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// ShippingOutcome is the result of a shipping request. Either the owner
// still has to pick a carrier service from Options, or the request was
// locked in and ChargedYen was collected.
type ShippingOutcome struct {
	// NeedsCarrierSelection reports that no service was selected yet
	NeedsCarrierSelection bool

	// Options lists the ranked carrier quotes to choose from
	Options []ports.Quote

	// ChargedYen is the shipping cost collected on lock-in
	ChargedYen int64

	// NewBalanceYen is the owner's balance after the charge
	NewBalanceYen int64
}

// RequestShippingCommandHandler files outbound shipping requests. Parcels on
// the flat method debit the cost stored at intake and skip the carrier
// entirely. Carrier-method parcels run the two-phase flow: quote comparison
// first, then lock-in of the selected service with payment. The cost is
// always re-quoted at lock-in so a stale browser tab cannot lock an outdated
// rate.
type RequestShippingCommandHandler struct {
	uowFactory ShippingUoWFactory
	quoter     ports.RateQuoter
	calculator services.StorageCalculator
	notifier   ports.Notifier
}

// NewRequestShippingCommandHandler creates a handler for outbound shipping
// requests.
func NewRequestShippingCommandHandler(
	uowFactory ShippingUoWFactory,
	quoter ports.RateQuoter,
	notifier ports.Notifier,
) RequestShippingCommandHandler {
	return RequestShippingCommandHandler{
		uowFactory: uowFactory,
		quoter:     quoter,
		calculator: services.NewStorageCalculator(),
		notifier:   notifier,
	}
}

// Handle quotes or locks outbound shipping for the parcel.
//
// Guards checked before any carrier call: ownership, measured weight, settled
// domestic shipping (including the shared group), no pending service or merge
// request, and a clean storage state. A parcel with unpaid storage days
// cannot ship until the fee is settled; past the grace period shipping is
// closed entirely.
func (h *RequestShippingCommandHandler) Handle(ctx context.Context, cmd RequestShippingCommand) (ShippingOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return ShippingOutcome{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ShippingOutcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requested, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return ShippingOutcome{}, err
	}
	if requested.OwnerID() != cmd.OwnerID() {
		return ShippingOutcome{}, errs.NewAuthorizationError("parcelID", cmd.ParcelID())
	}

	if err := h.ensureReadyToShip(ctx, uow, requested); err != nil {
		return ShippingOutcome{}, err
	}

	destination, err := h.resolveDestination(ctx, uow, cmd)
	if err != nil {
		return ShippingOutcome{}, err
	}

	if !requested.ShippingMethod().IsCarrier() {
		return h.lockFlat(ctx, uow, requested, destination.ID())
	}

	contents, err := uow.ItemRepository().Get(ctx, requested.ItemID())
	if err != nil {
		return ShippingOutcome{}, err
	}

	result, err := h.quoter.GetQuotes(ctx, ports.QuoteRequest{
		WeightKg:        requested.WeightKg(),
		Destination:     destination,
		CustomsValueYen: contents.PriceYen(),
		ShipDate:        time.Now().UTC(),
	})
	if err != nil {
		return ShippingOutcome{}, err
	}
	if !result.Success {
		return ShippingOutcome{}, errs.NewExternalServiceError("carrier", errors.New(result.Message))
	}

	if cmd.SelectedService() == "" {
		return ShippingOutcome{
			NeedsCarrierSelection: true,
			Options:               result.Quotes,
		}, nil
	}

	selected, err := pickQuote(result.Quotes, cmd.SelectedService())
	if err != nil {
		return ShippingOutcome{}, err
	}

	owner, err := uow.AccountRepository().Get(ctx, requested.OwnerID())
	if err != nil {
		return ShippingOutcome{}, err
	}
	if err := owner.Debit(selected.AmountYen); err != nil {
		return ShippingOutcome{}, err
	}

	if err := requested.RequestShipping(destination.ID(), selected.ServiceType, selected.AmountYen); err != nil {
		return ShippingOutcome{}, err
	}

	if err := uow.AccountRepository().Update(ctx, owner); err != nil {
		return ShippingOutcome{}, err
	}
	if err := uow.ParcelRepository().Update(ctx, requested); err != nil {
		return ShippingOutcome{}, err
	}

	parcelID := requested.ID()
	entry, err := ledger.NewEntry(
		kernel.NewUUID(),
		owner.ID(),
		&parcelID,
		-selected.AmountYen,
		ledger.KindShipping,
		fmt.Sprintf("international shipping, %s", selected.ServiceName),
		time.Now().UTC(),
	)
	if err != nil {
		return ShippingOutcome{}, err
	}
	if err := uow.LedgerRepository().Add(ctx, entry); err != nil {
		return ShippingOutcome{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return ShippingOutcome{}, err
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: owner.ID(),
			ParcelID:  &parcelID,
			Subject:   "shipping requested",
			Body: fmt.Sprintf(
				"Your parcel is queued for shipment via %s (¥%d).",
				selected.ServiceName, selected.AmountYen,
			),
		})
	}

	return ShippingOutcome{
		ChargedYen:    selected.AmountYen,
		NewBalanceYen: owner.BalanceYen(),
	}, nil
}

// resolveDestination finds the address to ship to. An explicitly named
// address must belong to the requesting owner; without one the owner's first
// saved address is used.
func (h *RequestShippingCommandHandler) resolveDestination(
	ctx context.Context,
	uow ShippingUoW,
	cmd RequestShippingCommand,
) (*address.Address, error) {
	if addressID := cmd.AddressID(); addressID != nil {
		destination, err := uow.AddressRepository().Get(ctx, *addressID)
		if err != nil {
			return nil, err
		}
		if destination.AccountID() != cmd.OwnerID() {
			return nil, errs.NewAuthorizationError("addressID", *addressID)
		}
		return destination, nil
	}

	return uow.AddressRepository().GetFirstByOwner(ctx, cmd.OwnerID())
}

// lockFlat files the shipping request at the flat cost stored on the parcel,
// charging it without contacting the carrier.
func (h *RequestShippingCommandHandler) lockFlat(
	ctx context.Context,
	uow ShippingUoW,
	requested *parcel.Parcel,
	destinationID kernel.UUID,
) (ShippingOutcome, error) {
	owner, err := uow.AccountRepository().Get(ctx, requested.OwnerID())
	if err != nil {
		return ShippingOutcome{}, err
	}

	cost := requested.ShippingCost()
	if cost > 0 {
		if err := owner.Debit(cost); err != nil {
			return ShippingOutcome{}, err
		}
	}

	if err := requested.RequestShipping(destinationID, "", cost); err != nil {
		return ShippingOutcome{}, err
	}

	if err := uow.AccountRepository().Update(ctx, owner); err != nil {
		return ShippingOutcome{}, err
	}
	if err := uow.ParcelRepository().Update(ctx, requested); err != nil {
		return ShippingOutcome{}, err
	}

	parcelID := requested.ID()
	if cost > 0 {
		entry, err := ledger.NewEntry(
			kernel.NewUUID(),
			owner.ID(),
			&parcelID,
			-cost,
			ledger.KindShipping,
			"international shipping, flat rate",
			time.Now().UTC(),
		)
		if err != nil {
			return ShippingOutcome{}, err
		}
		if err := uow.LedgerRepository().Add(ctx, entry); err != nil {
			return ShippingOutcome{}, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return ShippingOutcome{}, err
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: owner.ID(),
			ParcelID:  &parcelID,
			Subject:   "shipping requested",
			Body:      fmt.Sprintf("Your parcel is queued for shipment (¥%d).", cost),
		})
	}

	return ShippingOutcome{
		ChargedYen:    cost,
		NewBalanceYen: owner.BalanceYen(),
	}, nil
}

// ensureReadyToShip checks every precondition that must hold before the
// carrier is contacted.
func (h *RequestShippingCommandHandler) ensureReadyToShip(
	ctx context.Context,
	uow ShippingUoW,
	requested *parcel.Parcel,
) error {
	if requested.WeightKg() <= 0 {
		return errs.NewPreconditionError("parcel weight is not measured")
	}
	if requested.IsShippingRequested() {
		return errs.NewPreconditionError("shipping is already requested")
	}
	if !requested.IsDomesticShippingPaid() {
		return errs.NewPreconditionError("domestic shipping is not paid")
	}
	if requested.HasPendingService() {
		return errs.NewPreconditionError("parcel has a pending service")
	}
	if requested.IsConsolidationRequested() {
		return errs.NewPreconditionError("parcel has a pending consolidation request")
	}
	if requested.IsDisposalRequested() {
		return errs.NewPreconditionError("parcel has a pending disposal request")
	}

	if groupID := requested.SharedShippingGroupID(); groupID != nil {
		group, err := uow.ShipGroupRepository().Get(ctx, *groupID)
		if err != nil {
			return err
		}
		if !group.IsPaid() {
			return errs.NewPreconditionError("shared domestic shipping is not paid")
		}
	}

	info := h.calculator.Calculate(requested.ArrivedAt(), requested.LastStoragePayment(), time.Now().UTC())
	if info.IsExpired {
		return errs.NewExpiredStateError("parcel")
	}
	if !info.CanShip {
		return errs.NewPreconditionErrorWithCause(
			"storage fees are outstanding",
			fmt.Errorf(
				"fee ¥%d over %d unpaid days, %d days until disposal",
				info.CurrentFeeYen, info.UnpaidDays, info.DaysUntilDisposal,
			),
		)
	}

	return nil
}

// pickQuote finds the quote the owner selected among the carrier's current
// offers.
func pickQuote(quotes []ports.Quote, serviceType string) (ports.Quote, error) {
	for _, quote := range quotes {
		if quote.ServiceType == serviceType {
			return quote, nil
		}
	}
	return ports.Quote{}, errs.NewValueIsInvalidErrorWithCause(
		"selectedService is invalid",
		fmt.Errorf("service %q is not offered for this shipment", serviceType),
	)
}
