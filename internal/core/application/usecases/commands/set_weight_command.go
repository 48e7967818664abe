package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrSetWeightCommandIsNotConstructed = errors.New(
		"SetWeightCommand must be created via NewSetWeightCommand constructor",
	)
	ErrWeightIsNotPositive = errors.New("weight must be positive")
)

// SetWeightCommand records the measured weight of a parcel. Weighing makes
// an unweighed parcel ready for shipping.
type SetWeightCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	weightKg float64

	guard guard.ConstructorGuard
}

// NewSetWeightCommand creates a command recording the parcel weight.
func NewSetWeightCommand(parcelID kernel.UUID, weightKg float64) (SetWeightCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return SetWeightCommand{}, err
	}
	if weightKg <= 0 {
		return SetWeightCommand{}, ErrWeightIsNotPositive
	}

	return SetWeightCommand{
		parcelID: parcelID,
		weightKg: weightKg,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetWeightCommand) Validate() error {
	return c.guard.Validate(ErrSetWeightCommandIsNotConstructed)
}

// ParcelID returns the weighed parcel.
func (c SetWeightCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// WeightKg returns the measured weight in kilograms.
func (c SetWeightCommand) WeightKg() float64 {
	return c.weightKg
}
