package parcel

import (
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// Mode enumerates the lifecycle modes of a parcel record.
type Mode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown Mode = iota

	// ModeActive means the record is live and accepts operations.
	ModeActive

	// ModeSuperseded means the record was merged into a consolidated
	// successor and is kept for history only.
	ModeSuperseded

	// ModeDisposed means the record was destroyed at the warehouse.
	ModeDisposed
)

func getModeStrings() map[Mode]string {
	return map[Mode]string{
		ModeUnknown:    "Unknown",
		ModeActive:     "Active",
		ModeSuperseded: "Superseded",
		ModeDisposed:   "Disposed",
	}
}

// String returns the human-readable name of the mode.
func (m Mode) String() string {
	if str, ok := getModeStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// Lifecycle is a value object describing whether a parcel record is live,
// merged into a successor, or destroyed. A superseded lifecycle always
// carries the successor's identifier; the other modes never do.
type Lifecycle struct {
	mode        Mode
	successorID *kernel.UUID
}

// ActiveLifecycle returns the lifecycle of a live parcel.
func ActiveLifecycle() Lifecycle {
	return Lifecycle{mode: ModeActive}
}

// SupersededLifecycle returns the lifecycle of a parcel merged into successorID.
func SupersededLifecycle(successorID kernel.UUID) (Lifecycle, error) {
	if err := successorID.Validate(); err != nil {
		return Lifecycle{}, errs.NewValueIsRequiredError("successorID")
	}
	return Lifecycle{mode: ModeSuperseded, successorID: &successorID}, nil
}

// DisposedLifecycle returns the lifecycle of a destroyed parcel.
func DisposedLifecycle() Lifecycle {
	return Lifecycle{mode: ModeDisposed}
}

// RestoreLifecycle reconstructs a Lifecycle from persisted state.
func RestoreLifecycle(mode Mode, successorID *kernel.UUID) (Lifecycle, error) {
	switch mode {
	case ModeActive, ModeDisposed:
		if successorID != nil {
			return Lifecycle{}, errs.NewValueIsInvalidErrorWithCause(
				"lifecycle is invalid",
				fmt.Errorf("%s lifecycle must not carry a successor", mode.String()),
			)
		}
		return Lifecycle{mode: mode}, nil
	case ModeSuperseded:
		if successorID == nil {
			return Lifecycle{}, errs.NewValueIsRequiredError("successorID")
		}
		return SupersededLifecycle(*successorID)
	default:
		return Lifecycle{}, errs.NewValueIsInvalidErrorWithCause(
			"lifecycle is invalid",
			fmt.Errorf("%d is not a valid mode", mode),
		)
	}
}

// Mode returns the lifecycle mode.
func (l Lifecycle) Mode() Mode {
	return l.mode
}

// SuccessorID returns the consolidated successor's identifier.
// It is nil unless the lifecycle is superseded.
func (l Lifecycle) SuccessorID() *kernel.UUID {
	return l.successorID
}

// IsActive reports whether the parcel is live.
func (l Lifecycle) IsActive() bool {
	return l.mode == ModeActive
}

// IsSuperseded reports whether the parcel was merged into a successor.
func (l Lifecycle) IsSuperseded() bool {
	return l.mode == ModeSuperseded
}

// IsDisposed reports whether the parcel was destroyed.
func (l Lifecycle) IsDisposed() bool {
	return l.mode == ModeDisposed
}

// Validate checks that the lifecycle holds a defined mode and a consistent
// successor reference.
func (l Lifecycle) Validate() error {
	_, err := RestoreLifecycle(l.mode, l.successorID)
	return err
}

// String returns a human-readable description of the lifecycle.
func (l Lifecycle) String() string {
	if l.mode == ModeSuperseded && l.successorID != nil {
		return fmt.Sprintf("Superseded(%s)", l.successorID.String())
	}
	return l.mode.String()
}
