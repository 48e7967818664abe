package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrPayDomesticShippingCommandIsNotConstructed = errors.New(
	"PayDomesticShippingCommand must be created via NewPayDomesticShippingCommand constructor",
)

// PayDomesticShippingCommand settles the inbound courier charge for a
// parcel. For a parcel in a shared shipping group the single group charge is
// settled for every member at once.
type PayDomesticShippingCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	ownerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewPayDomesticShippingCommand creates a command to pay the domestic
// shipping charge of the given parcel on behalf of its owner.
func NewPayDomesticShippingCommand(parcelID kernel.UUID, ownerID kernel.UUID) (PayDomesticShippingCommand, error) {
	if err := errors.Join(parcelID.Validate(), ownerID.Validate()); err != nil {
		return PayDomesticShippingCommand{}, err
	}

	return PayDomesticShippingCommand{
		parcelID: parcelID,
		ownerID:  ownerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PayDomesticShippingCommand) Validate() error {
	return c.guard.Validate(ErrPayDomesticShippingCommandIsNotConstructed)
}

// ParcelID returns the parcel whose charge is being paid.
func (c PayDomesticShippingCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// OwnerID returns the account performing the payment.
func (c PayDomesticShippingCommand) OwnerID() kernel.UUID {
	return c.ownerID
}
