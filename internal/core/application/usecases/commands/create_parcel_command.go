package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrItemIDsAreRequired = errors.New("at least one item id is required")
	ErrWeightIsNegative   = errors.New("weight must not be negative")
	ErrCostIsNegative     = errors.New("cost must not be negative")
)

// CreateParcelCommand registers a parcel at the warehouse for the items that
// arrived. A multi-item arrival is auto-consolidated into one parcel; a
// single-item arrival may instead join a shared domestic shipping group.
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID                kernel.UUID
	ownerID                 kernel.UUID
	itemIDs                 []kernel.UUID
	weightKg                float64
	domesticShippingCostYen int64
	shippingCostYen         int64
	shippingMethod          parcel.ShippingMethod
	shipGroupID             *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register an arrived parcel.
// shippingCostYen is the flat outbound cost quoted at intake, 0 when unknown;
// an empty shippingMethod defaults to the flat method. shipGroupID is
// optional: when set, the parcel joins (or starts) the shared domestic
// shipping group billing the courier charge once for all members.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	ownerID kernel.UUID,
	itemIDs []kernel.UUID,
	weightKg float64,
	domesticShippingCostYen int64,
	shippingCostYen int64,
	shippingMethod string,
	shipGroupID *kernel.UUID,
) (CreateParcelCommand, error) {
	command := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setOwnerID(ownerID),
		command.setItemIDs(itemIDs),
		command.setWeight(weightKg),
		command.setCost(domesticShippingCostYen),
		command.setShippingCost(shippingCostYen),
		command.setShippingMethod(shippingMethod),
		command.setShipGroupID(shipGroupID),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier for the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// OwnerID returns the account the parcel belongs to.
func (c CreateParcelCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// ItemIDs returns the arrived items going into the parcel.
func (c CreateParcelCommand) ItemIDs() []kernel.UUID {
	return c.itemIDs
}

// WeightKg returns the measured weight, 0 if not yet weighed.
func (c CreateParcelCommand) WeightKg() float64 {
	return c.weightKg
}

// DomesticShippingCostYen returns the inbound courier charge in yen.
func (c CreateParcelCommand) DomesticShippingCostYen() int64 {
	return c.domesticShippingCostYen
}

// ShippingCostYen returns the flat outbound cost quoted at intake.
func (c CreateParcelCommand) ShippingCostYen() int64 {
	return c.shippingCostYen
}

// ShippingMethod returns the outbound pricing method, flat by default.
func (c CreateParcelCommand) ShippingMethod() parcel.ShippingMethod {
	return c.shippingMethod
}

// ShipGroupID returns the shared shipping group to join, nil if none.
func (c CreateParcelCommand) ShipGroupID() *kernel.UUID {
	return c.shipGroupID
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *CreateParcelCommand) setItemIDs(itemIDs []kernel.UUID) error {
	if len(itemIDs) == 0 {
		return ErrItemIDsAreRequired
	}
	for _, itemID := range itemIDs {
		if err := itemID.Validate(); err != nil {
			return err
		}
	}

	c.itemIDs = append([]kernel.UUID(nil), itemIDs...)
	return nil
}

func (c *CreateParcelCommand) setWeight(weightKg float64) error {
	if weightKg < 0 {
		return ErrWeightIsNegative
	}

	c.weightKg = weightKg
	return nil
}

func (c *CreateParcelCommand) setCost(costYen int64) error {
	if costYen < 0 {
		return ErrCostIsNegative
	}

	c.domesticShippingCostYen = costYen
	return nil
}

func (c *CreateParcelCommand) setShippingCost(costYen int64) error {
	if costYen < 0 {
		return ErrCostIsNegative
	}

	c.shippingCostYen = costYen
	return nil
}

func (c *CreateParcelCommand) setShippingMethod(shippingMethod string) error {
	if shippingMethod == "" {
		c.shippingMethod = parcel.MethodFlat
		return nil
	}

	method := parcel.ShippingMethod(shippingMethod)
	if err := method.Validate(); err != nil {
		return err
	}

	c.shippingMethod = method
	return nil
}

func (c *CreateParcelCommand) setShipGroupID(shipGroupID *kernel.UUID) error {
	if shipGroupID == nil {
		return nil
	}
	if err := shipGroupID.Validate(); err != nil {
		return err
	}

	c.shipGroupID = shipGroupID
	return nil
}
