package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// CompleteConsolidationCommandHandler performs requested merges
// all-or-nothing: the successor, its aggregate item, and every retired
// source land in one transaction.
type CompleteConsolidationCommandHandler struct {
	uowFactory   MergeUoWFactory
	consolidator services.Consolidator
	notifier     ports.Notifier
}

// NewCompleteConsolidationCommandHandler creates a handler for merge
// completion operations.
func NewCompleteConsolidationCommandHandler(
	uowFactory MergeUoWFactory,
	notifier ports.Notifier,
) CompleteConsolidationCommandHandler {
	return CompleteConsolidationCommandHandler{
		uowFactory:   uowFactory,
		consolidator: services.NewConsolidator(),
		notifier:     notifier,
	}
}

// Handle merges the requesting parcel with its named siblings into the
// successor reserved at request time and notifies the owner.
func (h *CompleteConsolidationCommandHandler) Handle(ctx context.Context, cmd CompleteConsolidationCommand) error {
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

	main, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}
	if !main.IsConsolidationRequested() || main.ReservedSuccessorID() == nil {
		return errs.NewPreconditionError("consolidation is not requested")
	}
	successorID := *main.ReservedSuccessorID()

	siblings, err := uow.ParcelRepository().GetMany(ctx, main.ConsolidateWith())
	if err != nil {
		return err
	}
	sources := append([]*parcel.Parcel{main}, siblings...)

	itemIDs := make([]kernel.UUID, 0, len(sources))
	for _, source := range sources {
		itemIDs = append(itemIDs, source.ItemID())
	}
	sourceItems, err := uow.ItemRepository().GetMany(ctx, itemIDs)
	if err != nil {
		return err
	}

	result, err := h.consolidator.Merge(
		successorID,
		kernel.NewUUID(),
		sources,
		sourceItems,
		services.MergeOverrides{
			WeightKg:     cmd.WeightKgOverride(),
			ShippingCost: cmd.CostYenOverride(),
		},
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err := uow.ItemRepository().Add(ctx, result.AggregateItem); err != nil {
		return err
	}
	if err := uow.ParcelRepository().Add(ctx, result.Successor); err != nil {
		return err
	}
	for _, source := range result.Sources {
		if err := uow.ParcelRepository().Update(ctx, source); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(ctx, ports.Notification{
			AccountID: result.Successor.OwnerID(),
			ParcelID:  &successorID,
			Subject:   "parcels consolidated",
			Body:      "Your parcels were repacked into one box and are ready for shipping.",
		})
	}

	return nil
}
