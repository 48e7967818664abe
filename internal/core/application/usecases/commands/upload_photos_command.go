package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrUploadPhotosCommandIsNotConstructed = errors.New(
		"UploadPhotosCommand must be created via NewUploadPhotosCommand constructor",
	)
	ErrPhotoURLsAreRequired = errors.New("at least one photo url is required")
	ErrTooManyPhotoURLs     = errors.New("too many photo urls")
)

// UploadPhotosCommand attaches the photos taken by warehouse staff,
// completing a pending photo service.
type UploadPhotosCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	photoURLs []string

	guard guard.ConstructorGuard
}

// NewUploadPhotosCommand creates a command attaching between one and three
// photo URLs to the given parcel.
func NewUploadPhotosCommand(parcelID kernel.UUID, photoURLs []string) (UploadPhotosCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return UploadPhotosCommand{}, err
	}
	if len(photoURLs) == 0 {
		return UploadPhotosCommand{}, ErrPhotoURLsAreRequired
	}
	if len(photoURLs) > parcel.MaxPhotoCount {
		return UploadPhotosCommand{}, ErrTooManyPhotoURLs
	}

	return UploadPhotosCommand{
		parcelID:  parcelID,
		photoURLs: append([]string(nil), photoURLs...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UploadPhotosCommand) Validate() error {
	return c.guard.Validate(ErrUploadPhotosCommandIsNotConstructed)
}

// ParcelID returns the photographed parcel.
func (c UploadPhotosCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// PhotoURLs returns the uploaded photo locations.
func (c UploadPhotosCommand) PhotoURLs() []string {
	return c.photoURLs
}
