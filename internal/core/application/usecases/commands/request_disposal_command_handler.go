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

// DisposalReceipt reports the outcome of a disposal request.
type DisposalReceipt struct {
	// DisposalCostYen is the fee collected for the disposal
	DisposalCostYen int64

	// NewBalanceYen is the owner's balance after the fee was debited
	NewBalanceYen int64
}

// RequestDisposalCommandHandler files disposal requests and collects the
// weight-based fee.
type RequestDisposalCommandHandler struct {
	uowFactory BillingUoWFactory
	notifier   ports.Notifier
}

// NewRequestDisposalCommandHandler creates a handler for disposal request
// operations.
func NewRequestDisposalCommandHandler(uowFactory BillingUoWFactory, notifier ports.Notifier) RequestDisposalCommandHandler {
	return RequestDisposalCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle charges the disposal fee and flags the parcel for disposal by
// warehouse staff. The fee is refunded if staff later decline the request.
func (h *RequestDisposalCommandHandler) Handle(
	ctx context.Context,
	cmd RequestDisposalCommand,
) (DisposalReceipt, error) {
	if err := cmd.Validate(); err != nil {
		return DisposalReceipt{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DisposalReceipt{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	disposed, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return DisposalReceipt{}, err
	}
	if disposed.OwnerID() != cmd.OwnerID() {
		return DisposalReceipt{}, errs.NewAuthorizationError("parcelID", cmd.ParcelID())
	}

	cost := parcel.DisposalCost(disposed.WeightKg())
	if err := disposed.RequestDisposal(cost); err != nil {
		return DisposalReceipt{}, err
	}

	owner, err := uow.AccountRepository().Get(ctx, cmd.OwnerID())
	if err != nil {
		return DisposalReceipt{}, err
	}
	if err := owner.Debit(cost); err != nil {
		return DisposalReceipt{}, err
	}

	if err := uow.AccountRepository().Update(ctx, owner); err != nil {
		return DisposalReceipt{}, err
	}
	if err := uow.ParcelRepository().Update(ctx, disposed); err != nil {
		return DisposalReceipt{}, err
	}

	parcelID := disposed.ID()
	entry, err := ledger.NewEntry(
		kernel.NewUUID(),
		owner.ID(),
		&parcelID,
		-cost,
		ledger.KindDisposal,
		"disposal fee",
		time.Now().UTC(),
	)
	if err != nil {
		return DisposalReceipt{}, err
	}
	if err := uow.LedgerRepository().Add(ctx, entry); err != nil {
		return DisposalReceipt{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return DisposalReceipt{}, err
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: owner.ID(),
			ParcelID:  &parcelID,
			Subject:   "disposal requested",
			Body:      fmt.Sprintf("A disposal fee of %d yen was collected. The fee is refunded if the request is declined.", cost),
		})
	}

	return DisposalReceipt{
		DisposalCostYen: cost,
		NewBalanceYen:   owner.BalanceYen(),
	}, nil
}
