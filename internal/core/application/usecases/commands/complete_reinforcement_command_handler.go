package commands

import (
	"context"
)

// CompleteReinforcementCommandHandler completes pending reinforcement
// services.
type CompleteReinforcementCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCompleteReinforcementCommandHandler creates a handler for reinforcement
// completion operations.
func NewCompleteReinforcementCommandHandler(uowFactory ParcelUoWFactory) CompleteReinforcementCommandHandler {
	return CompleteReinforcementCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the reinforcement service completed.
func (h *CompleteReinforcementCommandHandler) Handle(ctx context.Context, cmd CompleteReinforcementCommand) error {
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

	reinforced, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err := reinforced.CompleteReinforcement(); err != nil {
		return err
	}

	if err := uow.ParcelRepository().Update(ctx, reinforced); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
