package commands

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/item"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/domain/model/shipgroup"
	"warehouse/internal/pkg/errs"
)

// CreateParcelCommandHandler registers arrived parcels at the warehouse.
type CreateParcelCommandHandler struct {
	uowFactory IntakeUoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel registration.
// Requires an IntakeUoWFactory for transactional persistence.
func NewCreateParcelCommandHandler(uowFactory IntakeUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers the parcel. Multi-item arrivals are merged into a single
// auto-consolidated parcel with a synthetic aggregate item. Single-item
// arrivals may join a shared shipping group, created on first use.
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
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

	items, err := uow.ItemRepository().GetMany(ctx, cmd.ItemIDs())
	if err != nil {
		return err
	}

	newParcel, err := h.buildParcel(ctx, uow, cmd, items)
	if err != nil {
		return err
	}

	if err := newParcel.SetShippingMethod(cmd.ShippingMethod()); err != nil {
		return err
	}
	if cmd.ShippingCostYen() > 0 {
		if err := newParcel.SetShippingCost(cmd.ShippingCostYen()); err != nil {
			return err
		}
	}

	if cmd.WeightKg() > 0 && !newParcel.IsAutoConsolidated() {
		if err := newParcel.MakeReady(); err != nil {
			return err
		}
	}

	if err := uow.ParcelRepository().Add(ctx, newParcel); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateParcelCommandHandler) buildParcel(
	ctx context.Context,
	uow IntakeUoW,
	cmd CreateParcelCommand,
	items []*item.Item,
) (*parcel.Parcel, error) {
	now := time.Now().UTC()

	if len(items) > 1 {
		return h.buildAutoConsolidated(ctx, uow, cmd, items, now)
	}

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(),
		cmd.OwnerID(),
		items[0].ID(),
		now,
		cmd.WeightKg(),
		cmd.DomesticShippingCostYen(),
	)
	if err != nil {
		return nil, err
	}

	if cmd.ShipGroupID() != nil {
		if err := h.joinShipGroup(ctx, uow, cmd, newParcel); err != nil {
			return nil, err
		}
	}

	return newParcel, nil
}

// buildAutoConsolidated merges a multi-item arrival into one parcel backed by
// a synthetic "N variants" aggregate item. Grouping does not apply: the
// courier charge already covers the whole box.
func (h CreateParcelCommandHandler) buildAutoConsolidated(
	ctx context.Context,
	uow IntakeUoW,
	cmd CreateParcelCommand,
	items []*item.Item,
	now time.Time,
) (*parcel.Parcel, error) {
	aggregate, err := item.NewVariantAggregateItem(kernel.NewUUID(), items)
	if err != nil {
		return nil, err
	}

	if err := uow.ItemRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(),
		cmd.OwnerID(),
		aggregate.ID(),
		now,
		cmd.WeightKg(),
		cmd.DomesticShippingCostYen(),
	)
	if err != nil {
		return nil, err
	}

	originalIDs := make([]kernel.UUID, 0, len(items))
	for _, arrived := range items {
		originalIDs = append(originalIDs, arrived.ID())
	}
	if err := newParcel.MarkAutoConsolidated(originalIDs); err != nil {
		return nil, err
	}

	if cmd.WeightKg() > 0 {
		if err := newParcel.MakeReady(); err != nil {
			return nil, err
		}
	}

	return newParcel, nil
}

func (h CreateParcelCommandHandler) joinShipGroup(
	ctx context.Context,
	uow IntakeUoW,
	cmd CreateParcelCommand,
	newParcel *parcel.Parcel,
) error {
	groupID := *cmd.ShipGroupID()

	group, err := uow.ShipGroupRepository().Get(ctx, groupID)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		group, err = shipgroup.NewGroup(groupID, cmd.OwnerID(), cmd.DomesticShippingCostYen())
		if err != nil {
			return err
		}
		if err := uow.ShipGroupRepository().Add(ctx, group); err != nil {
			return err
		}
	}

	return newParcel.AssignSharedShippingGroup(group.ID())
}
