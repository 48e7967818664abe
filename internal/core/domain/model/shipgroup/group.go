package shipgroup

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrGroupIsNotConstructed is returned when a Group instance was not
	// created through a factory method.
	ErrGroupIsNotConstructed = errors.New("Group must be created via NewGroup constructor")
)

// Group represents a shared domestic shipping cost covering several parcels
// that arrived together from one seller. The cost is billed exactly once:
// the group carries one cost field and one paid flag, and paying it is a
// single row change regardless of how many parcels share it.
type Group struct {
	// id is the unique identifier for the group
	id kernel.UUID

	// ownerID identifies the account that owes the cost
	ownerID kernel.UUID

	// costYen is the shared domestic courier charge in yen
	costYen int64

	// paid marks the cost as settled for every member
	paid bool

	// isConstructed ensures the group was created via a constructor
	isConstructed bool
}

// NewGroup creates a new unpaid shipping group.
func NewGroup(id kernel.UUID, ownerID kernel.UUID, costYen int64) (*Group, error) {
	group := &Group{
		isConstructed: true,
	}

	if err := errors.Join(
		group.setID(id),
		group.setOwnerID(ownerID),
		group.setCost(costYen),
	); err != nil {
		return nil, err
	}

	return group, nil
}

// RestoreGroup reconstructs a Group from persistent storage.
func RestoreGroup(id kernel.UUID, ownerID kernel.UUID, costYen int64, paid bool) (*Group, error) {
	group, err := NewGroup(id, ownerID, costYen)
	if err != nil {
		return nil, err
	}

	group.paid = paid
	return group, nil
}

// Validate ensures the Group instance was properly constructed.
func (g *Group) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGroupIsNotConstructed
	}

	return nil
}

// ID returns the group's unique identifier.
func (g *Group) ID() kernel.UUID {
	return g.id
}

// OwnerID returns the account that owes the cost.
func (g *Group) OwnerID() kernel.UUID {
	return g.ownerID
}

// CostYen returns the shared domestic courier charge in yen.
func (g *Group) CostYen() int64 {
	return g.costYen
}

// IsPaid reports whether the shared cost is settled.
func (g *Group) IsPaid() bool {
	return g.paid
}

// Pay settles the shared cost for every member. Paying twice is rejected
// so at most one charge lands however many members race.
func (g *Group) Pay() error {
	if g.paid {
		return errs.NewPreconditionError("shipping group is already paid")
	}

	g.paid = true
	return nil
}

func (g *Group) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.id = id
	return nil
}

func (g *Group) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	g.ownerID = ownerID
	return nil
}

func (g *Group) setCost(costYen int64) error {
	if costYen <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"costYen is invalid",
			fmt.Errorf("%d is not greater than 0", costYen),
		)
	}
	g.costYen = costYen
	return nil
}
