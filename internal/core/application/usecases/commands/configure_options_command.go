package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrConfigureOptionsCommandIsNotConstructed = errors.New(
		"ConfigureOptionsCommand must be created via NewConfigureOptionsCommand constructor",
	)
	ErrInsuranceCoverIsNegative = errors.New("insurance cover must not be negative")
)

// ConfigureOptionsCommand applies the owner's optional service choices to a
// parcel: the outbound shipping method, content photos, packaging
// reinforcement, additional insurance, a consolidation request naming sibling
// parcels, or a purchase cancellation inquiry. Unset options leave the parcel
// unchanged.
type ConfigureOptionsCommand struct { //nolint:recvcheck //using for validation
	parcelID            kernel.UUID
	ownerID             kernel.UUID
	shippingMethod      parcel.ShippingMethod
	photoService        bool
	reinforcement       bool
	insuranceCoverYen   *int64
	consolidateWith     []kernel.UUID
	cancelConsolidation bool
	cancelPurchase      bool

	guard guard.ConstructorGuard
}

// NewConfigureOptionsCommand creates a command applying service options to
// the given parcel. An empty shippingMethod leaves the method untouched.
// insuranceCoverYen is the full declared cover, not a delta; nil leaves the
// cover untouched. A non-empty consolidateWith files a merge request with
// those siblings.
func NewConfigureOptionsCommand(
	parcelID kernel.UUID,
	ownerID kernel.UUID,
	shippingMethod string,
	photoService bool,
	reinforcement bool,
	insuranceCoverYen *int64,
	consolidateWith []kernel.UUID,
	cancelConsolidation bool,
	cancelPurchase bool,
) (ConfigureOptionsCommand, error) {
	command := ConfigureOptionsCommand{
		photoService:        photoService,
		reinforcement:       reinforcement,
		cancelConsolidation: cancelConsolidation,
		cancelPurchase:      cancelPurchase,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setOwnerID(ownerID),
		command.setShippingMethod(shippingMethod),
		command.setInsuranceCover(insuranceCoverYen),
		command.setConsolidateWith(consolidateWith),
	); err != nil {
		return ConfigureOptionsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfigureOptionsCommand) Validate() error {
	return c.guard.Validate(ErrConfigureOptionsCommandIsNotConstructed)
}

// ParcelID returns the parcel being configured.
func (c ConfigureOptionsCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// OwnerID returns the account applying the options.
func (c ConfigureOptionsCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// ShippingMethod returns the requested outbound method, empty to leave it.
func (c ConfigureOptionsCommand) ShippingMethod() parcel.ShippingMethod {
	return c.shippingMethod
}

// PhotoService reports whether content photos were ordered.
func (c ConfigureOptionsCommand) PhotoService() bool {
	return c.photoService
}

// Reinforcement reports whether packaging reinforcement was ordered.
func (c ConfigureOptionsCommand) Reinforcement() bool {
	return c.reinforcement
}

// InsuranceCoverYen returns the declared insurance cover, nil to leave it.
func (c ConfigureOptionsCommand) InsuranceCoverYen() *int64 {
	return c.insuranceCoverYen
}

// ConsolidateWith returns the siblings named in a merge request, empty when
// no request is filed.
func (c ConfigureOptionsCommand) ConsolidateWith() []kernel.UUID {
	return c.consolidateWith
}

// CancelConsolidation reports whether a pending merge request is withdrawn.
func (c ConfigureOptionsCommand) CancelConsolidation() bool {
	return c.cancelConsolidation
}

// CancelPurchase reports whether the owner asked to cancel the purchase.
func (c ConfigureOptionsCommand) CancelPurchase() bool {
	return c.cancelPurchase
}

func (c *ConfigureOptionsCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ConfigureOptionsCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *ConfigureOptionsCommand) setShippingMethod(shippingMethod string) error {
	if shippingMethod == "" {
		return nil
	}

	method := parcel.ShippingMethod(shippingMethod)
	if err := method.Validate(); err != nil {
		return err
	}

	c.shippingMethod = method
	return nil
}

func (c *ConfigureOptionsCommand) setInsuranceCover(coverYen *int64) error {
	if coverYen == nil {
		return nil
	}
	if *coverYen < 0 {
		return ErrInsuranceCoverIsNegative
	}

	cover := *coverYen
	c.insuranceCoverYen = &cover
	return nil
}

func (c *ConfigureOptionsCommand) setConsolidateWith(consolidateWith []kernel.UUID) error {
	for _, siblingID := range consolidateWith {
		if err := siblingID.Validate(); err != nil {
			return err
		}
	}

	c.consolidateWith = append([]kernel.UUID(nil), consolidateWith...)
	return nil
}
