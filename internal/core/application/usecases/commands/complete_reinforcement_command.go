package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCompleteReinforcementCommandIsNotConstructed = errors.New(
	"CompleteReinforcementCommand must be created via NewCompleteReinforcementCommand constructor",
)

// CompleteReinforcementCommand records that warehouse staff reinforced the
// parcel packaging.
type CompleteReinforcementCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteReinforcementCommand creates a command completing the
// reinforcement service on the given parcel.
func NewCompleteReinforcementCommand(parcelID kernel.UUID) (CompleteReinforcementCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return CompleteReinforcementCommand{}, err
	}

	return CompleteReinforcementCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteReinforcementCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReinforcementCommandIsNotConstructed)
}

// ParcelID returns the reinforced parcel.
func (c CompleteReinforcementCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
