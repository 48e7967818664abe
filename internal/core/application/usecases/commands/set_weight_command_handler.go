package commands

import (
	"context"
)

// SetWeightCommandHandler records parcel weights measured at the warehouse.
type SetWeightCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewSetWeightCommandHandler creates a handler for weighing operations.
func NewSetWeightCommandHandler(uowFactory ParcelUoWFactory) SetWeightCommandHandler {
	return SetWeightCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the measured weight and promotes the parcel to ready.
func (h *SetWeightCommandHandler) Handle(ctx context.Context, cmd SetWeightCommand) error {
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

	weighed, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err := weighed.SetWeight(cmd.WeightKg()); err != nil {
		return err
	}
	if err := weighed.MakeReady(); err != nil {
		return err
	}

	if err := uow.ParcelRepository().Update(ctx, weighed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
