package parcel

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Status represents the shipping progress of a parcel.
// It implements a state machine with defined transitions:
//
//	PendingShipping ──> Ready ──> Shipped
//
// Lifecycle modes (active, superseded, disposed) are orthogonal to Status and
// live in Lifecycle; Status only tracks movement towards outbound shipment.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingShipping is the initial status when a parcel is registered at
	// the warehouse and is still being processed by staff.
	PendingShipping

	// Ready indicates the parcel is stored and available for owner actions:
	// option configuration, consolidation, disposal, and shipping requests.
	Ready

	// Shipped indicates the parcel has left the warehouse.
	// This is a final state with no further transitions allowed.
	Shipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		PendingShipping: "PendingShipping",
		Ready:           "Ready",
		Shipped:         "Shipped",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingShipping: "PendingShipping",
		Ready:           "Ready",
		Shipped:         "Shipped",
	}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MakeReady transitions the status to Ready.
//
// Valid transitions:
//   - PendingShipping -> Ready (warehouse intake finished)
//   - Ready -> Ready (idempotent)
func (s Status) MakeReady() (Status, error) {
	if s != PendingShipping && s != Ready {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to make ready", s.String()),
		)
	}

	return Ready, nil
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - PendingShipping -> Shipped
//   - Ready -> Shipped
//
// Shipped is final; shipping an already shipped parcel is rejected.
func (s Status) Ship() (Status, error) {
	if s != PendingShipping && s != Ready {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to ship", s.String()),
		)
	}

	return Shipped, nil
}

// ServiceStatus tracks the progress of an optional paid service
// (photo service, reinforcement) on a parcel.
type ServiceStatus int

const (
	// ServiceNone means the service was never requested.
	ServiceNone ServiceStatus = iota

	// ServicePending means the service is paid and awaiting warehouse staff.
	ServicePending

	// ServiceCompleted means the service has been performed.
	ServiceCompleted
)

func getServiceStatusStrings() map[ServiceStatus]string {
	return map[ServiceStatus]string{
		ServiceNone:      "None",
		ServicePending:   "Pending",
		ServiceCompleted: "Completed",
	}
}

// Validate checks if the ServiceStatus value is one of the defined states.
func (s ServiceStatus) Validate() error {
	if _, ok := getServiceStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"service status is invalid",
			fmt.Errorf("%d is not a valid service status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the service status.
func (s ServiceStatus) String() string {
	if str, ok := getServiceStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
