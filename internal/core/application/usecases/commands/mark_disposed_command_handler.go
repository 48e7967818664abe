package commands

import (
	"context"

	"warehouse/internal/pkg/errs"
)

// MarkDisposedCommandHandler confirms staff-performed disposals.
type MarkDisposedCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewMarkDisposedCommandHandler creates a handler for disposal confirmation
// operations.
func NewMarkDisposedCommandHandler(uowFactory ParcelUoWFactory) MarkDisposedCommandHandler {
	return MarkDisposedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle retires the parcel record as disposed. Confirmation requires a
// pending owner request; forced disposal of expired parcels goes through the
// storage sweep instead.
func (h *MarkDisposedCommandHandler) Handle(ctx context.Context, cmd MarkDisposedCommand) error {
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

	disposed, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if !disposed.IsDisposalRequested() {
		return errs.NewPreconditionError("disposal is not requested")
	}
	if err := disposed.Dispose(); err != nil {
		return err
	}

	if err := uow.ParcelRepository().Update(ctx, disposed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
