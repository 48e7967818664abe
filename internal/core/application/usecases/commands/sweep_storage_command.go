package commands

import (
	"errors"

	"warehouse/internal/pkg/guard"
)

var ErrSweepStorageCommandIsNotConstructed = errors.New(
	"SweepStorageCommand must be created via NewSweepStorageCommand constructor",
)

// SweepStorageCommand triggers one pass of the storage sweep over every
// active parcel in the warehouse: forced disposal of expired parcels and
// storage fee warnings for the rest.
type SweepStorageCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepStorageCommand creates a new command to trigger a storage sweep.
func NewSweepStorageCommand() SweepStorageCommand {
	return SweepStorageCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SweepStorageCommand) Validate() error {
	return c.guard.Validate(ErrSweepStorageCommandIsNotConstructed)
}
