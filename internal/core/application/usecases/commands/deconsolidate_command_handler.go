package commands

import (
	"context"
	"fmt"

	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// DeconsolidateCommandHandler splits an auto-consolidated parcel back into
// its original items. This is the only path that hard-deletes records: the
// aggregate parcel and its synthetic item vanish, replaced by the fresh
// per-item parcels.
type DeconsolidateCommandHandler struct {
	uowFactory   MergeUoWFactory
	consolidator services.Consolidator
	notifier     ports.Notifier
}

// NewDeconsolidateCommandHandler creates a handler for deconsolidation
// operations.
func NewDeconsolidateCommandHandler(uowFactory MergeUoWFactory, notifier ports.Notifier) DeconsolidateCommandHandler {
	return DeconsolidateCommandHandler{
		uowFactory:   uowFactory,
		consolidator: services.NewConsolidator(),
		notifier:     notifier,
	}
}

// Handle replaces the aggregate parcel with one parcel per original item and
// notifies the owner.
func (h *DeconsolidateCommandHandler) Handle(ctx context.Context, cmd DeconsolidateCommand) error {
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

	aggregate, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	originalItems, err := uow.ItemRepository().GetMany(ctx, aggregate.OriginalItemIDs())
	if err != nil {
		return err
	}

	replacements, err := h.consolidator.Split(aggregate, originalItems)
	if err != nil {
		return err
	}

	for _, replacement := range replacements {
		if err := uow.ParcelRepository().Add(ctx, replacement); err != nil {
			return err
		}
	}
	if err := uow.ParcelRepository().Delete(ctx, aggregate.ID()); err != nil {
		return err
	}
	if err := uow.ItemRepository().Delete(ctx, aggregate.ItemID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: aggregate.OwnerID(),
			Subject:   "parcel unpacked",
			Body: fmt.Sprintf(
				"Your combined parcel was unpacked into %d separate parcels.",
				len(replacements),
			),
		})
	}

	return nil
}
