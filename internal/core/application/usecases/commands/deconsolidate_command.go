package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrDeconsolidateCommandIsNotConstructed = errors.New(
	"DeconsolidateCommand must be created via NewDeconsolidateCommand constructor",
)

// DeconsolidateCommand unpacks an arrival-time auto-consolidated parcel back
// into one parcel per original item.
type DeconsolidateCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeconsolidateCommand creates a command splitting the given
// auto-consolidated parcel.
func NewDeconsolidateCommand(parcelID kernel.UUID) (DeconsolidateCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return DeconsolidateCommand{}, err
	}

	return DeconsolidateCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeconsolidateCommand) Validate() error {
	return c.guard.Validate(ErrDeconsolidateCommandIsNotConstructed)
}

// ParcelID returns the auto-consolidated parcel to split.
func (c DeconsolidateCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
