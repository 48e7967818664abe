package address

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrAddressIsNotConstructed is returned when an Address instance was not
	// created through a factory method.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")
)

// Address represents a delivery destination saved by an account holder.
// It carries everything carriers need to quote and ship internationally.
type Address struct {
	// id is the unique identifier for the address
	id kernel.UUID

	// accountID identifies the owning account
	accountID kernel.UUID

	// recipientName is the person receiving the shipment
	recipientName string

	// phone is the recipient's contact number
	phone string

	// countryCode is the ISO 3166-1 alpha-2 destination country
	countryCode string

	// postalCode is the destination postal or ZIP code
	postalCode string

	// stateOrProvince is the destination state or province code (optional)
	stateOrProvince string

	// city is the destination city
	city string

	// streetLines holds the street address lines
	streetLines []string

	// isConstructed ensures the address was created via a constructor
	isConstructed bool
}

// NewAddress creates a new Address with validation. Recipient name, country,
// postal code, city, and at least one street line are required; carriers
// reject quotes without them.
func NewAddress(
	id kernel.UUID,
	accountID kernel.UUID,
	recipientName string,
	phone string,
	countryCode string,
	postalCode string,
	stateOrProvince string,
	city string,
	streetLines []string,
) (*Address, error) {
	address := &Address{
		phone:           phone,
		stateOrProvince: stateOrProvince,
		isConstructed:   true,
	}

	if err := errors.Join(
		address.setID(id),
		address.setAccountID(accountID),
		requireValue("recipientName", recipientName),
		requireValue("countryCode", countryCode),
		requireValue("postalCode", postalCode),
		requireValue("city", city),
	); err != nil {
		return nil, err
	}
	if len(streetLines) == 0 {
		return nil, errs.NewValueIsRequiredError("streetLines")
	}

	address.recipientName = recipientName
	address.countryCode = countryCode
	address.postalCode = postalCode
	address.city = city
	address.streetLines = append([]string(nil), streetLines...)
	return address, nil
}

// Validate ensures the Address instance was properly constructed.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}

	return nil
}

// ID returns the address's unique identifier.
func (a *Address) ID() kernel.UUID {
	return a.id
}

// AccountID returns the owning account's identifier.
func (a *Address) AccountID() kernel.UUID {
	return a.accountID
}

// RecipientName returns the person receiving the shipment.
func (a *Address) RecipientName() string {
	return a.recipientName
}

// Phone returns the recipient's contact number.
func (a *Address) Phone() string {
	return a.phone
}

// CountryCode returns the ISO 3166-1 alpha-2 destination country.
func (a *Address) CountryCode() string {
	return a.countryCode
}

// PostalCode returns the destination postal or ZIP code.
func (a *Address) PostalCode() string {
	return a.postalCode
}

// StateOrProvince returns the destination state or province code.
func (a *Address) StateOrProvince() string {
	return a.stateOrProvince
}

// City returns the destination city.
func (a *Address) City() string {
	return a.city
}

// StreetLines returns the street address lines.
func (a *Address) StreetLines() []string {
	return a.streetLines
}

func (a *Address) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Address) setAccountID(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}
	a.accountID = accountID
	return nil
}

func requireValue(paramName string, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
