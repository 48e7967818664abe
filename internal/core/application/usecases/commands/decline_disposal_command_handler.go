package commands

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/ledger"
	"warehouse/internal/core/ports"
)

// DeclineDisposalCommandHandler rejects disposal requests and refunds the
// collected fee.
type DeclineDisposalCommandHandler struct {
	uowFactory BillingUoWFactory
	notifier   ports.Notifier
}

// NewDeclineDisposalCommandHandler creates a handler for disposal decline
// operations.
func NewDeclineDisposalCommandHandler(
	uowFactory BillingUoWFactory,
	notifier ports.Notifier,
) DeclineDisposalCommandHandler {
	return DeclineDisposalCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle clears the disposal request, credits the fee back to the owner, and
// notifies them with the decline reason after the refund committed.
func (h *DeclineDisposalCommandHandler) Handle(ctx context.Context, cmd DeclineDisposalCommand) error {
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

	declined, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	refund, err := declined.DeclineDisposal()
	if err != nil {
		return err
	}

	owner, err := uow.AccountRepository().Get(ctx, declined.OwnerID())
	if err != nil {
		return err
	}
	if err := owner.Credit(refund); err != nil {
		return err
	}

	if err := uow.AccountRepository().Update(ctx, owner); err != nil {
		return err
	}
	if err := uow.ParcelRepository().Update(ctx, declined); err != nil {
		return err
	}

	parcelID := declined.ID()
	entry, err := ledger.NewEntry(
		kernel.NewUUID(),
		owner.ID(),
		&parcelID,
		refund,
		ledger.KindDisposalRefund,
		"disposal request declined, fee refunded",
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if err := uow.LedgerRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: owner.ID(),
			ParcelID:  &parcelID,
			Subject:   "disposal request declined",
			Body:      fmt.Sprintf("Your disposal request was declined: %s. The fee was refunded.", cmd.Reason()),
		})
	}

	return nil
}
