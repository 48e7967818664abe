package parcel

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// ShippingMethod selects how the outbound international leg is priced.
type ShippingMethod string

const (
	// MethodFlat ships at the flat carrier cost stored on the parcel.
	MethodFlat ShippingMethod = "ems"

	// MethodCarrier ships via live carrier rate shopping at request time.
	MethodCarrier ShippingMethod = "fedex"
)

// Validate checks that the method is one of the known values.
func (m ShippingMethod) Validate() error {
	switch m {
	case MethodFlat, MethodCarrier:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"shippingMethod is invalid",
		fmt.Errorf("%q is not a known shipping method", string(m)),
	)
}

// IsCarrier reports whether the outbound cost comes from a live carrier quote.
func (m ShippingMethod) IsCarrier() bool {
	return m == MethodCarrier
}

// String returns the wire representation of the method.
func (m ShippingMethod) String() string {
	return string(m)
}
