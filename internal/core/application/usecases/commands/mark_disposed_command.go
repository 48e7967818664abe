package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrMarkDisposedCommandIsNotConstructed = errors.New(
	"MarkDisposedCommand must be created via NewMarkDisposedCommand constructor",
)

// MarkDisposedCommand confirms that warehouse staff destroyed a parcel the
// owner asked to dispose of. The collected fee is kept.
type MarkDisposedCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDisposedCommand creates a command confirming disposal of the given
// parcel.
func NewMarkDisposedCommand(parcelID kernel.UUID) (MarkDisposedCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return MarkDisposedCommand{}, err
	}

	return MarkDisposedCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDisposedCommand) Validate() error {
	return c.guard.Validate(ErrMarkDisposedCommandIsNotConstructed)
}

// ParcelID returns the parcel that was destroyed.
func (c MarkDisposedCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
