package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCompleteConsolidationCommandIsNotConstructed = errors.New(
	"CompleteConsolidationCommand must be created via NewCompleteConsolidationCommand constructor",
)

// CompleteConsolidationCommand performs a requested merge: warehouse staff
// repacked the named parcels into one box and record the result. Optional
// overrides replace the computed weight and shipping cost with the measured
// ones.
type CompleteConsolidationCommand struct { //nolint:recvcheck //using for validation
	parcelID         kernel.UUID
	weightKgOverride *float64
	costYenOverride  *int64

	guard guard.ConstructorGuard
}

// NewCompleteConsolidationCommand creates a command completing the merge
// requested on the given parcel.
func NewCompleteConsolidationCommand(
	parcelID kernel.UUID,
	weightKgOverride *float64,
	costYenOverride *int64,
) (CompleteConsolidationCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return CompleteConsolidationCommand{}, err
	}
	if weightKgOverride != nil && *weightKgOverride <= 0 {
		return CompleteConsolidationCommand{}, ErrWeightIsNotPositive
	}
	if costYenOverride != nil && *costYenOverride < 0 {
		return CompleteConsolidationCommand{}, ErrCostIsNegative
	}

	command := CompleteConsolidationCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}
	if weightKgOverride != nil {
		weight := *weightKgOverride
		command.weightKgOverride = &weight
	}
	if costYenOverride != nil {
		cost := *costYenOverride
		command.costYenOverride = &cost
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrCompleteConsolidationCommandIsNotConstructed)
}

// ParcelID returns the parcel whose merge request is completed.
func (c CompleteConsolidationCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// WeightKgOverride returns the measured weight replacing the computed sum,
// nil to keep the sum.
func (c CompleteConsolidationCommand) WeightKgOverride() *float64 {
	return c.weightKgOverride
}

// CostYenOverride returns the shipping cost replacing the computed sum, nil
// to keep the sum.
func (c CompleteConsolidationCommand) CostYenOverride() *int64 {
	return c.costYenOverride
}
