package commands

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/ledger"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// PayDomesticShippingCommandHandler settles inbound courier charges from the
// owner's balance.
type PayDomesticShippingCommandHandler struct {
	uowFactory GroupBillingUoWFactory
	notifier   ports.Notifier
}

// NewPayDomesticShippingCommandHandler creates a handler for domestic
// shipping payment operations.
func NewPayDomesticShippingCommandHandler(
	uowFactory GroupBillingUoWFactory,
	notifier ports.Notifier,
) PayDomesticShippingCommandHandler {
	return PayDomesticShippingCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle debits the owner and marks the charge settled. A grouped parcel
// settles its whole shipping group in one debit; the group row is locked so
// two members paying at once cannot both be charged.
func (h *PayDomesticShippingCommandHandler) Handle(ctx context.Context, cmd PayDomesticShippingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paidParcel, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}
	if paidParcel.OwnerID() != cmd.OwnerID() {
		return errs.NewAuthorizationError("parcelID", cmd.ParcelID())
	}

	var amountYen int64
	if groupID := paidParcel.SharedShippingGroupID(); groupID != nil {
		amountYen, err = h.payGroup(ctx, uow, *groupID)
	} else {
		amountYen, err = h.payParcel(ctx, uow, paidParcel)
	}
	if err != nil {
		return err
	}

	if err := h.debit(ctx, uow, paidParcel, amountYen); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		parcelID := paidParcel.ID()
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: paidParcel.OwnerID(),
			ParcelID:  &parcelID,
			Subject:   "domestic shipping paid",
			Body:      fmt.Sprintf("The domestic shipping charge of %d yen was paid.", amountYen),
		})
	}

	return nil
}

func (h *PayDomesticShippingCommandHandler) payGroup(
	ctx context.Context,
	uow GroupBillingUoW,
	groupID kernel.UUID,
) (int64, error) {
	group, err := uow.ShipGroupRepository().Get(ctx, groupID)
	if err != nil {
		return 0, err
	}

	if err := group.Pay(); err != nil {
		return 0, err
	}

	if err := uow.ShipGroupRepository().Update(ctx, group); err != nil {
		return 0, err
	}

	return group.CostYen(), nil
}

func (h *PayDomesticShippingCommandHandler) payParcel(
	ctx context.Context,
	uow GroupBillingUoW,
	paidParcel *parcel.Parcel,
) (int64, error) {
	if err := paidParcel.PayDomesticShipping(); err != nil {
		return 0, err
	}

	if err := uow.ParcelRepository().Update(ctx, paidParcel); err != nil {
		return 0, err
	}

	return paidParcel.DomesticShippingCost(), nil
}

func (h *PayDomesticShippingCommandHandler) debit(
	ctx context.Context,
	uow GroupBillingUoW,
	paidParcel *parcel.Parcel,
	amountYen int64,
) error {
	owner, err := uow.AccountRepository().Get(ctx, paidParcel.OwnerID())
	if err != nil {
		return err
	}

	if err := owner.Debit(amountYen); err != nil {
		return err
	}

	if err := uow.AccountRepository().Update(ctx, owner); err != nil {
		return err
	}

	parcelID := paidParcel.ID()
	entry, err := ledger.NewEntry(
		kernel.NewUUID(),
		owner.ID(),
		&parcelID,
		-amountYen,
		ledger.KindDomesticShipping,
		"domestic shipping charge",
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return uow.LedgerRepository().Add(ctx, entry)
}
