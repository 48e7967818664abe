package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrDeclineDisposalCommandIsNotConstructed = errors.New(
		"DeclineDisposalCommand must be created via NewDeclineDisposalCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// DeclineDisposalCommand rejects a pending disposal request. Staff decline
// requests for parcels that cannot legally or safely be destroyed; the
// collected fee is refunded in full.
type DeclineDisposalCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewDeclineDisposalCommand creates a command declining the disposal request
// on the given parcel. The reason is passed on to the owner.
func NewDeclineDisposalCommand(parcelID kernel.UUID, reason string) (DeclineDisposalCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return DeclineDisposalCommand{}, err
	}
	if reason == "" {
		return DeclineDisposalCommand{}, ErrReasonIsRequired
	}

	return DeclineDisposalCommand{
		parcelID: parcelID,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineDisposalCommand) Validate() error {
	return c.guard.Validate(ErrDeclineDisposalCommandIsNotConstructed)
}

// ParcelID returns the parcel whose disposal request is declined.
func (c DeclineDisposalCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Reason returns the explanation shown to the owner.
func (c DeclineDisposalCommand) Reason() string {
	return c.reason
}
