package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrRequestDisposalCommandIsNotConstructed = errors.New(
	"RequestDisposalCommand must be created via NewRequestDisposalCommand constructor",
)

// RequestDisposalCommand files an owner request to destroy a parcel instead
// of shipping it. The disposal fee depends on the parcel weight and is
// collected up front.
type RequestDisposalCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	ownerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestDisposalCommand creates a command requesting disposal of the
// given parcel.
func NewRequestDisposalCommand(parcelID kernel.UUID, ownerID kernel.UUID) (RequestDisposalCommand, error) {
	if err := errors.Join(parcelID.Validate(), ownerID.Validate()); err != nil {
		return RequestDisposalCommand{}, err
	}

	return RequestDisposalCommand{
		parcelID: parcelID,
		ownerID:  ownerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestDisposalCommand) Validate() error {
	return c.guard.Validate(ErrRequestDisposalCommandIsNotConstructed)
}

// ParcelID returns the parcel to dispose of.
func (c RequestDisposalCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// OwnerID returns the account filing the request.
func (c RequestDisposalCommand) OwnerID() kernel.UUID {
	return c.ownerID
}
