package commands

import (
	"context"
)

// UploadPhotosCommandHandler completes pending photo services.
type UploadPhotosCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewUploadPhotosCommandHandler creates a handler for photo upload
// operations.
func NewUploadPhotosCommandHandler(uowFactory ParcelUoWFactory) UploadPhotosCommandHandler {
	return UploadPhotosCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle attaches the photos and marks the photo service completed.
func (h *UploadPhotosCommandHandler) Handle(ctx context.Context, cmd UploadPhotosCommand) error {
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

	photographed, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err := photographed.CompletePhotoService(cmd.PhotoURLs()); err != nil {
		return err
	}

	if err := uow.ParcelRepository().Update(ctx, photographed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
