package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrPayStorageCommandIsNotConstructed = errors.New(
	"PayStorageCommand must be created via NewPayStorageCommand constructor",
)

// PayStorageCommand settles the accumulated storage fee for a parcel,
// restarting its paid-through clock.
type PayStorageCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	ownerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewPayStorageCommand creates a command to pay storage fees for the given
// parcel on behalf of its owner.
func NewPayStorageCommand(parcelID kernel.UUID, ownerID kernel.UUID) (PayStorageCommand, error) {
	if err := errors.Join(parcelID.Validate(), ownerID.Validate()); err != nil {
		return PayStorageCommand{}, err
	}

	return PayStorageCommand{
		parcelID: parcelID,
		ownerID:  ownerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PayStorageCommand) Validate() error {
	return c.guard.Validate(ErrPayStorageCommandIsNotConstructed)
}

// ParcelID returns the parcel whose storage fee is being paid.
func (c PayStorageCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// OwnerID returns the account performing the payment.
func (c PayStorageCommand) OwnerID() kernel.UUID {
	return c.ownerID
}
