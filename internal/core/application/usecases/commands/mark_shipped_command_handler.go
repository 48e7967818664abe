package commands

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// MarkShippedCommandHandler finalizes an outbound shipment. Shipping a
// consolidated successor also flips its superseded predecessors to shipped
// so the owner's history shows every original parcel leaving together.
type MarkShippedCommandHandler struct {
	uowFactory ShipmentUoWFactory
	calculator services.StorageCalculator
	notifier   ports.Notifier
}

// NewMarkShippedCommandHandler creates a handler for shipment completion
// operations.
func NewMarkShippedCommandHandler(uowFactory ShipmentUoWFactory, notifier ports.Notifier) MarkShippedCommandHandler {
	return MarkShippedCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewStorageCalculator(),
		notifier:   notifier,
	}
}

// Handle marks the parcel shipped and notifies the owner. The same
// preconditions as the shipping request apply, storage state included, so a
// parcel cannot slip out with unsettled fees or unfinished services.
func (h *MarkShippedCommandHandler) Handle(ctx context.Context, cmd MarkShippedCommand) error {
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

	shipped, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if groupID := shipped.SharedShippingGroupID(); groupID != nil {
		group, err := uow.ShipGroupRepository().Get(ctx, *groupID)
		if err != nil {
			return err
		}
		if !group.IsPaid() {
			return errs.NewPreconditionError("shared domestic shipping is not paid")
		}
	}

	now := time.Now().UTC()
	info := h.calculator.Calculate(shipped.ArrivedAt(), shipped.LastStoragePayment(), now)
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

	if err := shipped.MarkShipped(cmd.TrackingNumber(), now); err != nil {
		return err
	}
	if err := uow.ParcelRepository().Update(ctx, shipped); err != nil {
		return err
	}

	if shipped.IsConsolidated() {
		predecessors, err := uow.ParcelRepository().GetMany(ctx, shipped.SourceParcelIDs())
		if err != nil {
			return err
		}
		for _, predecessor := range predecessors {
			if err := predecessor.MarkShippedViaSuccessor(now); err != nil {
				return err
			}
			if err := uow.ParcelRepository().Update(ctx, predecessor); err != nil {
				return err
			}
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		parcelID := shipped.ID()
		body := "Your parcel left the warehouse."
		if cmd.TrackingNumber() != "" {
			body = fmt.Sprintf("Your parcel left the warehouse. Tracking number: %s.", cmd.TrackingNumber())
		}
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: shipped.OwnerID(),
			ParcelID:  &parcelID,
			Subject:   "parcel shipped",
			Body:      body,
		})
	}

	return nil
}
