package commands

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/ledger"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// PayStorageCommandHandler settles accumulated storage fees from the
// owner's balance.
type PayStorageCommandHandler struct {
	uowFactory BillingUoWFactory
	calculator services.StorageCalculator
	notifier   ports.Notifier
}

// NewPayStorageCommandHandler creates a handler for storage fee payment
// operations.
func NewPayStorageCommandHandler(uowFactory BillingUoWFactory, notifier ports.Notifier) PayStorageCommandHandler {
	return PayStorageCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewStorageCalculator(),
		notifier:   notifier,
	}
}

// Handle charges the storage fee owed as of now and restarts the parcel's
// paid-through clock, returning the amount paid. Fails when nothing is owed,
// and when the parcel has already passed the disposal deadline payment is no
// longer possible.
func (h *PayStorageCommandHandler) Handle(ctx context.Context, cmd PayStorageCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	storedParcel, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return 0, err
	}
	if storedParcel.OwnerID() != cmd.OwnerID() {
		return 0, errs.NewAuthorizationError("parcelID", cmd.ParcelID())
	}

	now := time.Now().UTC()
	info := h.calculator.Calculate(storedParcel.ArrivedAt(), storedParcel.LastStoragePayment(), now)
	if info.IsExpired {
		return 0, errs.NewExpiredStateError("parcel")
	}
	if info.CurrentFeeYen == 0 {
		return 0, errs.NewPreconditionError("no storage fee is due")
	}

	owner, err := uow.AccountRepository().Get(ctx, storedParcel.OwnerID())
	if err != nil {
		return 0, err
	}

	if err := owner.Debit(info.CurrentFeeYen); err != nil {
		return 0, err
	}

	if err := storedParcel.PayStorage(now); err != nil {
		return 0, err
	}

	if err := uow.AccountRepository().Update(ctx, owner); err != nil {
		return 0, err
	}
	if err := uow.ParcelRepository().Update(ctx, storedParcel); err != nil {
		return 0, err
	}

	parcelID := storedParcel.ID()
	entry, err := ledger.NewEntry(
		kernel.NewUUID(),
		owner.ID(),
		&parcelID,
		-info.CurrentFeeYen,
		ledger.KindStorageFee,
		"storage fee",
		now,
	)
	if err != nil {
		return 0, err
	}
	if err := uow.LedgerRepository().Add(ctx, entry); err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: owner.ID(),
			ParcelID:  &parcelID,
			Subject:   "storage fee paid",
			Body:      fmt.Sprintf("A storage fee of %d yen was paid. Your free storage period restarted.", info.CurrentFeeYen),
		})
	}

	return info.CurrentFeeYen, nil
}
