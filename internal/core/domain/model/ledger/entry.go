package ledger

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry instance was not
	// created through a factory method.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")
)

// Kind classifies a ledger entry.
type Kind string

const (
	KindDomesticShipping Kind = "domestic_shipping"
	KindStorageFee       Kind = "storage_fee"
	KindPhotoService     Kind = "photo_service"
	KindReinforcement    Kind = "reinforcement"
	KindInsurance        Kind = "insurance"
	KindDisposal         Kind = "disposal"
	KindDisposalRefund   Kind = "disposal_refund"
	KindShipping         Kind = "shipping"
)

func getValidKinds() map[Kind]struct{} {
	return map[Kind]struct{}{
		KindDomesticShipping: {},
		KindStorageFee:       {},
		KindPhotoService:     {},
		KindReinforcement:    {},
		KindInsurance:        {},
		KindDisposal:         {},
		KindDisposalRefund:   {},
		KindShipping:         {},
	}
}

// Validate checks if the Kind is one of the defined classifications.
func (k Kind) Validate() error {
	if _, ok := getValidKinds()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a valid kind", string(k)))
	}
	return nil
}

// Entry is an immutable record of a balance movement. Debits carry negative
// amounts, credits positive ones; the ledger is append-only.
type Entry struct {
	// id is the unique identifier for the entry
	id kernel.UUID

	// accountID identifies the account whose balance moved
	accountID kernel.UUID

	// parcelID references the parcel the movement concerns (nil for top-ups)
	parcelID *kernel.UUID

	// amountYen is the signed movement in yen, negative for debits
	amountYen int64

	// kind classifies the movement
	kind Kind

	// description is the human-readable note shown to the owner
	description string

	// recordedAt is when the movement happened
	recordedAt time.Time

	// isConstructed ensures the entry was created via a constructor
	isConstructed bool
}

// NewEntry creates a new ledger Entry with validation. The amount must be
// non-zero; its sign encodes debit or credit.
func NewEntry(
	id kernel.UUID,
	accountID kernel.UUID,
	parcelID *kernel.UUID,
	amountYen int64,
	kind Kind,
	description string,
	recordedAt time.Time,
) (*Entry, error) {
	entry := &Entry{
		parcelID:      parcelID,
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setAccountID(accountID),
		entry.setAmount(amountYen),
		kind.Validate(),
	); err != nil {
		return nil, err
	}
	if recordedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("recordedAt")
	}

	entry.kind = kind
	entry.recordedAt = recordedAt
	return entry, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}

	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// AccountID returns the account whose balance moved.
func (e *Entry) AccountID() kernel.UUID {
	return e.accountID
}

// ParcelID returns the parcel the movement concerns, nil for top-ups.
func (e *Entry) ParcelID() *kernel.UUID {
	return e.parcelID
}

// AmountYen returns the signed movement in yen, negative for debits.
func (e *Entry) AmountYen() int64 {
	return e.amountYen
}

// Kind returns the movement classification.
func (e *Entry) Kind() Kind {
	return e.kind
}

// Description returns the human-readable note.
func (e *Entry) Description() string {
	return e.description
}

// RecordedAt returns when the movement happened.
func (e *Entry) RecordedAt() time.Time {
	return e.recordedAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setAccountID(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}
	e.accountID = accountID
	return nil
}

func (e *Entry) setAmount(amountYen int64) error {
	if amountYen == 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amountYen is invalid",
			fmt.Errorf("%d must not be zero", amountYen),
		)
	}
	e.amountYen = amountYen
	return nil
}
