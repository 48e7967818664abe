package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrMarkShippedCommandIsNotConstructed = errors.New(
	"MarkShippedCommand must be created via NewMarkShippedCommand constructor",
)

// MarkShippedCommand records that warehouse staff handed a parcel to the
// carrier. The tracking number is optional; some carriers assign it later.
type MarkShippedCommand struct { //nolint:recvcheck //using for validation
	parcelID       kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewMarkShippedCommand creates a command marking the given parcel shipped.
func NewMarkShippedCommand(parcelID kernel.UUID, trackingNumber string) (MarkShippedCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return MarkShippedCommand{}, err
	}

	return MarkShippedCommand{
		parcelID:       parcelID,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkShippedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShippedCommandIsNotConstructed)
}

// ParcelID returns the parcel that left the warehouse.
func (c MarkShippedCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// TrackingNumber returns the carrier tracking number, empty if not yet
// assigned.
func (c MarkShippedCommand) TrackingNumber() string {
	return c.trackingNumber
}
