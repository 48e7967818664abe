package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrRequestShippingCommandIsNotConstructed = errors.New(
	"RequestShippingCommand must be created via NewRequestShippingCommand constructor",
)

// RequestShippingCommand files an outbound shipping request. Without a
// selected service it is a quote request: the handler returns the ranked
// carrier options and changes nothing. With a selection the quote is locked
// onto the parcel and the cost is charged.
type RequestShippingCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	ownerID         kernel.UUID
	addressID       *kernel.UUID
	selectedService string

	guard guard.ConstructorGuard
}

// NewRequestShippingCommand creates a command quoting or locking outbound
// shipping for the given parcel. An empty selectedService asks for quotes.
// A nil addressID falls back to the owner's first saved address.
func NewRequestShippingCommand(
	parcelID kernel.UUID,
	ownerID kernel.UUID,
	addressID *kernel.UUID,
	selectedService string,
) (RequestShippingCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return RequestShippingCommand{}, err
	}
	if err := ownerID.Validate(); err != nil {
		return RequestShippingCommand{}, err
	}

	command := RequestShippingCommand{
		parcelID:        parcelID,
		ownerID:         ownerID,
		selectedService: selectedService,
		guard:           guard.NewConstructorGuard(),
	}
	if addressID != nil {
		if err := addressID.Validate(); err != nil {
			return RequestShippingCommand{}, err
		}
		destinationID := *addressID
		command.addressID = &destinationID
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestShippingCommand) Validate() error {
	return c.guard.Validate(ErrRequestShippingCommandIsNotConstructed)
}

// ParcelID returns the parcel to ship.
func (c RequestShippingCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// OwnerID returns the account the request is made on behalf of.
func (c RequestShippingCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// AddressID returns the explicitly chosen destination address, nil to fall
// back to the owner's first saved address.
func (c RequestShippingCommand) AddressID() *kernel.UUID {
	return c.addressID
}

// SelectedService returns the chosen carrier service identifier, empty when
// the owner is still comparing quotes.
func (c RequestShippingCommand) SelectedService() string {
	return c.selectedService
}
