package parcel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through the NewParcel factory method. This ensures all parcels are properly validated.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
)

const (
	// DisposalRatePerKg is the disposal fee in yen charged per kilogram.
	DisposalRatePerKg = 300

	// InsuranceCoverStep is the declared-value bracket in yen used for premium calculation.
	InsuranceCoverStep = 20000

	// InsurancePremiumPerStep is the premium in yen charged per cover bracket.
	InsurancePremiumPerStep = 50

	// MaxPhotoCount limits how many photos the warehouse attaches per photo service.
	MaxPhotoCount = 3

	// PhotoServiceFeeYen is the flat fee in yen for the content photo service.
	PhotoServiceFeeYen = 500

	// ReinforcementFeeYen is the flat fee in yen for packaging reinforcement.
	ReinforcementFeeYen = 1000
)

// DisposalCost returns the disposal fee in yen for a parcel of the given
// weight, rounded up to a whole yen.
func DisposalCost(weightKg float64) int64 {
	return int64(math.Ceil(weightKg * DisposalRatePerKg))
}

// InsurancePremium returns the premium in yen for the given declared cover.
// The cover is divided into brackets of InsuranceCoverStep yen, rounded up,
// and each bracket costs InsurancePremiumPerStep yen. Zero cover costs nothing.
func InsurancePremium(cover int64) int64 {
	if cover <= 0 {
		return 0
	}
	brackets := (cover + InsuranceCoverStep - 1) / InsuranceCoverStep
	return brackets * InsurancePremiumPerStep
}

// Parcel represents a package held at the forwarding warehouse on behalf of
// its owner. It is the aggregate root that manages the package lifecycle from
// arrival through storage, optional services, consolidation, and finally
// outbound shipment or disposal.
//
// Parcel follows these invariants:
//   - Must have valid identifiers for itself, its owner, and its item
//   - Weight, fees, and costs are never negative
//   - Status transitions follow defined business rules
//   - Superseded and disposed parcels reject all mutating operations
//   - Can only be created through NewParcel or RestoreParcel
type Parcel struct {
	// id is the unique identifier for the parcel
	id kernel.UUID

	// ownerID identifies the account that owns the parcel
	ownerID kernel.UUID

	// itemID references the purchased item the parcel contains
	itemID kernel.UUID

	// weightKg is the measured weight in kilograms (0 until weighed)
	weightKg float64

	// arrivedAt is when the parcel was registered at the warehouse
	arrivedAt time.Time

	// lastStoragePayment is when storage fees were last settled (nil if never)
	lastStoragePayment *time.Time

	// lastFeeCheck throttles repeated storage fee notifications
	lastFeeCheck *time.Time

	// status tracks shipping progress
	status Status

	// lifecycle tracks whether the record is active, superseded, or disposed
	lifecycle Lifecycle

	// domesticShippingCost is the inbound domestic leg cost in yen (0 if free)
	domesticShippingCost int64

	// domesticShippingPaid marks the domestic leg as settled
	domesticShippingPaid bool

	// sharedShippingGroupID links parcels from one purchase order that share
	// a single domestic shipping cost. The cost itself lives on the group
	// entity; grouped parcels carry no cost of their own.
	sharedShippingGroupID *kernel.UUID

	// consolidationRequested marks a pending merge request
	consolidationRequested bool

	// consolidateWith lists the sibling parcels named in the merge request
	consolidateWith []kernel.UUID

	// reservedSuccessorID is allocated at request time so the identifier
	// shown to the owner matches the successor record
	reservedSuccessorID *kernel.UUID

	// consolidated marks a parcel produced by a merge
	consolidated bool

	// sourceParcelIDs lists the predecessors merged into this parcel
	sourceParcelIDs []kernel.UUID

	// autoConsolidated marks a parcel synthesized at arrival from a
	// multi-item order
	autoConsolidated bool

	// originalItemIDs lists the items behind an auto-consolidated parcel,
	// kept so the merge can be reversed
	originalItemIDs []kernel.UUID

	// photoStatus tracks the paid photo service
	photoStatus ServiceStatus

	// photoURLs holds the photos taken by warehouse staff
	photoURLs []string

	// reinforcementStatus tracks the paid packaging reinforcement service
	reinforcementStatus ServiceStatus

	// insuranceCover is the declared value in yen for additional insurance
	insuranceCover int64

	// insurancePremiumPaid is the total premium already collected in yen
	insurancePremiumPaid int64

	// disposalRequested marks a pending disposal
	disposalRequested bool

	// disposalCost is the fee in yen collected for the pending disposal
	disposalCost int64

	// shippingMethod selects how the outbound leg is priced
	shippingMethod ShippingMethod

	// shippingRequested marks a pending outbound shipping request
	shippingRequested bool

	// shippingAddressID is the destination chosen for outbound shipping
	shippingAddressID *kernel.UUID

	// carrierService is the carrier service tier chosen for outbound shipping
	carrierService string

	// shippingCost is the quoted outbound cost in yen locked at request time
	shippingCost int64

	// trackingNumber is the carrier tracking number assigned at shipment
	trackingNumber string

	// shippedAt is when the parcel left the warehouse
	shippedAt *time.Time

	// isConstructed ensures the parcel was created via a constructor
	isConstructed bool
}

// NewParcel creates a new Parcel instance with validation. This is the only
// way (besides RestoreParcel) to create a valid Parcel.
//
// Parameters:
//   - id: Unique identifier for the parcel
//   - ownerID: Account that owns the parcel
//   - itemID: Purchased item the parcel contains
//   - arrivedAt: Warehouse registration time
//   - weightKg: Measured weight in kilograms (0 if not yet weighed)
//   - domesticShippingCost: Inbound domestic leg cost in yen (0 if free)
//
// The parcel starts in PendingShipping status with an active lifecycle and
// no services, requests, or payments recorded.
func NewParcel(
	id kernel.UUID,
	ownerID kernel.UUID,
	itemID kernel.UUID,
	arrivedAt time.Time,
	weightKg float64,
	domesticShippingCost int64,
) (*Parcel, error) {
	parcel := &Parcel{
		status:         PendingShipping,
		lifecycle:      ActiveLifecycle(),
		shippingMethod: MethodFlat,
		isConstructed:  true,
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setOwnerID(ownerID),
		parcel.setItemID(itemID),
		parcel.setArrivedAt(arrivedAt),
		parcel.setWeight(weightKg),
		parcel.setDomesticShippingCost(domesticShippingCost),
	); err != nil {
		return nil, err
	}

	return parcel, nil
}

// MergeOutcome carries the combined state computed by a consolidation merge.
//
// The merge rules are:
//   - weight and shipping cost sum the sources unless overridden
//   - domestic shipping cost sums the sources; it counts as paid only if
//     every source already had zero-or-paid domestic shipping
//   - insurance cover and premium take the maximum across sources
//   - photos union the sets of sources whose photo service completed
type MergeOutcome struct {
	SourceParcelIDs      []kernel.UUID
	WeightKg             float64
	ShippingMethod       ShippingMethod
	ShippingCost         int64
	DomesticShippingCost int64
	DomesticShippingPaid bool
	InsuranceCover       int64
	InsurancePremiumPaid int64
	PhotoURLs            []string
}

// NewConsolidatedParcel creates the successor parcel produced by merging the
// source parcels described in the outcome. The successor starts in Ready
// status and is flagged consolidated.
func NewConsolidatedParcel(
	id kernel.UUID,
	ownerID kernel.UUID,
	itemID kernel.UUID,
	arrivedAt time.Time,
	outcome MergeOutcome,
) (*Parcel, error) {
	if len(outcome.SourceParcelIDs) < 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"sourceParcelIDs is invalid",
			fmt.Errorf("a consolidated parcel needs at least 2 sources, got %d", len(outcome.SourceParcelIDs)),
		)
	}
	for _, sourceID := range outcome.SourceParcelIDs {
		if err := sourceID.Validate(); err != nil {
			return nil, err
		}
	}

	parcel, err := NewParcel(id, ownerID, itemID, arrivedAt, outcome.WeightKg, outcome.DomesticShippingCost)
	if err != nil {
		return nil, err
	}

	parcel.status = Ready
	parcel.consolidated = true
	parcel.sourceParcelIDs = append([]kernel.UUID(nil), outcome.SourceParcelIDs...)
	parcel.domesticShippingPaid = outcome.DomesticShippingPaid
	parcel.shippingCost = outcome.ShippingCost
	if outcome.ShippingMethod != "" {
		if err := outcome.ShippingMethod.Validate(); err != nil {
			return nil, err
		}
		parcel.shippingMethod = outcome.ShippingMethod
	}
	parcel.insuranceCover = outcome.InsuranceCover
	parcel.insurancePremiumPaid = outcome.InsurancePremiumPaid
	if len(outcome.PhotoURLs) > 0 {
		parcel.photoStatus = ServiceCompleted
		parcel.photoURLs = append([]string(nil), outcome.PhotoURLs...)
	}

	return parcel, nil
}

// MarkAutoConsolidated flags a parcel synthesized at arrival from a
// multi-item order, recording the original item ids so the merge can later
// be reversed.
func (p *Parcel) MarkAutoConsolidated(originalItemIDs []kernel.UUID) error {
	if len(originalItemIDs) < 2 {
		return errs.NewValueIsInvalidErrorWithCause(
			"originalItemIDs is invalid",
			fmt.Errorf("auto consolidation needs at least 2 items, got %d", len(originalItemIDs)),
		)
	}
	for _, itemID := range originalItemIDs {
		if err := itemID.Validate(); err != nil {
			return err
		}
	}

	p.autoConsolidated = true
	p.originalItemIDs = append([]kernel.UUID(nil), originalItemIDs...)
	return nil
}

// RestoreParcelParams carries the persisted state needed to reconstruct a
// Parcel aggregate.
type RestoreParcelParams struct {
	ID                     kernel.UUID
	OwnerID                kernel.UUID
	ItemID                 kernel.UUID
	WeightKg               float64
	ArrivedAt              time.Time
	LastStoragePayment     *time.Time
	LastFeeCheck           *time.Time
	Status                 Status
	Lifecycle              Lifecycle
	DomesticShippingCost   int64
	DomesticShippingPaid   bool
	SharedShippingGroupID  *kernel.UUID
	ConsolidationRequested bool
	ConsolidateWith        []kernel.UUID
	ReservedSuccessorID    *kernel.UUID
	Consolidated           bool
	SourceParcelIDs        []kernel.UUID
	AutoConsolidated       bool
	OriginalItemIDs        []kernel.UUID
	PhotoStatus            ServiceStatus
	PhotoURLs              []string
	ReinforcementStatus    ServiceStatus
	InsuranceCover         int64
	InsurancePremiumPaid   int64
	DisposalRequested      bool
	DisposalCost           int64
	ShippingMethod         ShippingMethod
	ShippingRequested      bool
	ShippingAddressID      *kernel.UUID
	CarrierService         string
	ShippingCost           int64
	TrackingNumber         string
	ShippedAt              *time.Time
}

// RestoreParcel reconstructs a Parcel aggregate from persistent storage.
// Unlike NewParcel, it accepts any valid status and lifecycle so repositories
// can rebuild parcels at any point of their lifecycle.
func RestoreParcel(params RestoreParcelParams) (*Parcel, error) {
	parcel := &Parcel{
		isConstructed: true,
	}

	if err := errors.Join(
		parcel.setID(params.ID),
		parcel.setOwnerID(params.OwnerID),
		parcel.setItemID(params.ItemID),
		parcel.setArrivedAt(params.ArrivedAt),
		parcel.setWeight(params.WeightKg),
		parcel.setDomesticShippingCost(params.DomesticShippingCost),
		params.Status.Validate(),
		params.Lifecycle.Validate(),
	); err != nil {
		return nil, err
	}

	parcel.status = params.Status
	parcel.lifecycle = params.Lifecycle
	parcel.lastStoragePayment = params.LastStoragePayment
	parcel.lastFeeCheck = params.LastFeeCheck
	parcel.domesticShippingPaid = params.DomesticShippingPaid
	parcel.sharedShippingGroupID = params.SharedShippingGroupID
	parcel.consolidationRequested = params.ConsolidationRequested
	parcel.consolidateWith = params.ConsolidateWith
	parcel.reservedSuccessorID = params.ReservedSuccessorID
	parcel.consolidated = params.Consolidated
	parcel.sourceParcelIDs = params.SourceParcelIDs
	parcel.autoConsolidated = params.AutoConsolidated
	parcel.originalItemIDs = params.OriginalItemIDs
	parcel.photoStatus = params.PhotoStatus
	parcel.photoURLs = params.PhotoURLs
	parcel.reinforcementStatus = params.ReinforcementStatus
	parcel.insuranceCover = params.InsuranceCover
	parcel.insurancePremiumPaid = params.InsurancePremiumPaid
	parcel.disposalRequested = params.DisposalRequested
	parcel.disposalCost = params.DisposalCost
	parcel.shippingMethod = params.ShippingMethod
	if parcel.shippingMethod == "" {
		parcel.shippingMethod = MethodFlat
	}
	parcel.shippingRequested = params.ShippingRequested
	parcel.shippingAddressID = params.ShippingAddressID
	parcel.carrierService = params.CarrierService
	parcel.shippingCost = params.ShippingCost
	parcel.trackingNumber = params.TrackingNumber
	parcel.shippedAt = params.ShippedAt

	return parcel, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}

	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// OwnerID returns the owning account's identifier.
func (p *Parcel) OwnerID() kernel.UUID {
	return p.ownerID
}

// ItemID returns the contained item's identifier.
func (p *Parcel) ItemID() kernel.UUID {
	return p.itemID
}

// WeightKg returns the measured weight in kilograms, 0 if not yet weighed.
func (p *Parcel) WeightKg() float64 {
	return p.weightKg
}

// ArrivedAt returns the warehouse registration time.
func (p *Parcel) ArrivedAt() time.Time {
	return p.arrivedAt
}

// LastStoragePayment returns when storage fees were last settled.
// Returns nil if storage was never paid.
func (p *Parcel) LastStoragePayment() *time.Time {
	return p.lastStoragePayment
}

// LastFeeCheck returns when the parcel was last inspected for overdue storage.
// Returns nil if it was never inspected.
func (p *Parcel) LastFeeCheck() *time.Time {
	return p.lastFeeCheck
}

// Status returns the shipping progress of the parcel.
func (p *Parcel) Status() Status {
	return p.status
}

// Lifecycle returns the lifecycle mode of the parcel record.
func (p *Parcel) Lifecycle() Lifecycle {
	return p.lifecycle
}

// DomesticShippingCost returns the inbound domestic leg cost in yen.
func (p *Parcel) DomesticShippingCost() int64 {
	return p.domesticShippingCost
}

// IsDomesticShippingPaid reports whether the parcel's own domestic cost is
// settled. A parcel with no cost of its own counts as settled; for grouped
// parcels the group entity carries the shared cost and its paid flag.
func (p *Parcel) IsDomesticShippingPaid() bool {
	return p.domesticShippingCost == 0 || p.domesticShippingPaid
}

// SharedShippingGroupID returns the shared domestic shipping group, nil if none.
func (p *Parcel) SharedShippingGroupID() *kernel.UUID {
	return p.sharedShippingGroupID
}

// IsConsolidationRequested reports whether a merge request is pending.
func (p *Parcel) IsConsolidationRequested() bool {
	return p.consolidationRequested
}

// ConsolidateWith returns the sibling parcels named in the merge request.
func (p *Parcel) ConsolidateWith() []kernel.UUID {
	return p.consolidateWith
}

// ReservedSuccessorID returns the identifier reserved for the merge successor.
func (p *Parcel) ReservedSuccessorID() *kernel.UUID {
	return p.reservedSuccessorID
}

// IsConsolidated reports whether this parcel was produced by a merge.
func (p *Parcel) IsConsolidated() bool {
	return p.consolidated
}

// SourceParcelIDs returns the predecessors merged into this parcel.
func (p *Parcel) SourceParcelIDs() []kernel.UUID {
	return p.sourceParcelIDs
}

// IsAutoConsolidated reports whether this parcel was synthesized at arrival
// from a multi-item order.
func (p *Parcel) IsAutoConsolidated() bool {
	return p.autoConsolidated
}

// OriginalItemIDs returns the items behind an auto-consolidated parcel.
func (p *Parcel) OriginalItemIDs() []kernel.UUID {
	return p.originalItemIDs
}

// PhotoStatus returns the state of the photo service.
func (p *Parcel) PhotoStatus() ServiceStatus {
	return p.photoStatus
}

// PhotoURLs returns the photos taken by warehouse staff.
func (p *Parcel) PhotoURLs() []string {
	return p.photoURLs
}

// ReinforcementStatus returns the state of the reinforcement service.
func (p *Parcel) ReinforcementStatus() ServiceStatus {
	return p.reinforcementStatus
}

// InsuranceCover returns the declared additional insurance value in yen.
func (p *Parcel) InsuranceCover() int64 {
	return p.insuranceCover
}

// InsurancePremiumPaid returns the total insurance premium collected in yen.
func (p *Parcel) InsurancePremiumPaid() int64 {
	return p.insurancePremiumPaid
}

// IsDisposalRequested reports whether a disposal request is pending.
func (p *Parcel) IsDisposalRequested() bool {
	return p.disposalRequested
}

// DisposalCost returns the fee collected for the pending disposal in yen.
func (p *Parcel) DisposalCost() int64 {
	return p.disposalCost
}

// IsShippingRequested reports whether an outbound shipping request is pending.
func (p *Parcel) IsShippingRequested() bool {
	return p.shippingRequested
}

// ShippingMethod returns how the outbound international leg is priced.
func (p *Parcel) ShippingMethod() ShippingMethod {
	return p.shippingMethod
}

// ShippingAddressID returns the destination chosen for outbound shipping.
func (p *Parcel) ShippingAddressID() *kernel.UUID {
	return p.shippingAddressID
}

// CarrierService returns the carrier service tier chosen for outbound shipping.
func (p *Parcel) CarrierService() string {
	return p.carrierService
}

// ShippingCost returns the outbound cost in yen locked at request time.
func (p *Parcel) ShippingCost() int64 {
	return p.shippingCost
}

// TrackingNumber returns the carrier tracking number, empty until shipped.
func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

// ShippedAt returns when the parcel left the warehouse, nil until shipped.
func (p *Parcel) ShippedAt() *time.Time {
	return p.shippedAt
}

// HasPendingService reports whether a paid service is still awaiting
// warehouse staff. Parcels with pending services cannot ship.
func (p *Parcel) HasPendingService() bool {
	return p.photoStatus == ServicePending || p.reinforcementStatus == ServicePending
}

// MakeReady marks warehouse intake as finished, making the parcel available
// for owner actions.
func (p *Parcel) MakeReady() error {
	if err := p.ensureActive(); err != nil {
		return err
	}

	newStatus, err := p.status.MakeReady()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// SetWeight records the measured weight of the parcel.
func (p *Parcel) SetWeight(weightKg float64) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightKg is invalid",
			fmt.Errorf("%f is not greater than 0", weightKg),
		)
	}

	p.weightKg = weightKg
	return nil
}

// AssignSharedShippingGroup links the parcel to a shared domestic shipping
// group. The group entity owns the cost and the paid flag; the parcel's own
// domestic cost is cleared since the group bills it once for all members.
func (p *Parcel) AssignSharedShippingGroup(groupID kernel.UUID) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if err := groupID.Validate(); err != nil {
		return err
	}

	p.sharedShippingGroupID = &groupID
	p.domesticShippingCost = 0
	p.domesticShippingPaid = false
	return nil
}

// PayDomesticShipping settles the inbound domestic leg.
//
// Business rules:
//   - The parcel must be active
//   - There must be a cost to settle
//   - Paying twice is rejected
func (p *Parcel) PayDomesticShipping() error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if p.domesticShippingCost == 0 {
		return errs.NewPreconditionError("parcel has no domestic shipping cost")
	}
	if p.domesticShippingPaid {
		return errs.NewPreconditionError("domestic shipping is already paid")
	}

	p.domesticShippingPaid = true
	return nil
}

// PayStorage settles accumulated storage fees, restarting the free period
// from now.
func (p *Parcel) PayStorage(now time.Time) error {
	if err := p.ensureActive(); err != nil {
		return err
	}

	paidAt := now
	p.lastStoragePayment = &paidAt
	p.lastFeeCheck = &paidAt
	return nil
}

// RecordFeeCheck notes that the parcel was inspected for overdue storage,
// throttling repeated notifications.
func (p *Parcel) RecordFeeCheck(now time.Time) {
	checkedAt := now
	p.lastFeeCheck = &checkedAt
}

// RequestConsolidation files a merge request naming the sibling parcels to
// combine with and the identifier reserved for the successor record.
//
// Business rules:
//   - The parcel must be active with no pending merge or shipping request
//   - At least one sibling is required and the parcel cannot name itself
func (p *Parcel) RequestConsolidation(with []kernel.UUID, reservedSuccessorID kernel.UUID) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if p.consolidationRequested {
		return errs.NewPreconditionError("consolidation is already requested")
	}
	if p.shippingRequested {
		return errs.NewPreconditionError("parcel has a pending shipping request")
	}
	if len(with) == 0 {
		return errs.NewValueIsRequiredError("with")
	}
	if err := reservedSuccessorID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("reservedSuccessorID")
	}
	for _, siblingID := range with {
		if err := siblingID.Validate(); err != nil {
			return err
		}
		if siblingID.IsEqual(p.id) {
			return errs.NewValueIsInvalidErrorWithCause(
				"with is invalid",
				fmt.Errorf("parcel %s cannot be consolidated with itself", p.id.String()),
			)
		}
	}

	p.consolidationRequested = true
	p.consolidateWith = append([]kernel.UUID(nil), with...)
	p.reservedSuccessorID = &reservedSuccessorID
	return nil
}

// CancelConsolidationRequest withdraws a pending merge request.
func (p *Parcel) CancelConsolidationRequest() error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if !p.consolidationRequested {
		return errs.NewPreconditionError("consolidation is not requested")
	}

	p.consolidationRequested = false
	p.consolidateWith = nil
	p.reservedSuccessorID = nil
	return nil
}

// SupersedeInto retires the parcel record after a merge, pointing it at the
// consolidated successor. The record becomes read-only.
func (p *Parcel) SupersedeInto(successorID kernel.UUID) error {
	if err := p.ensureActive(); err != nil {
		return err
	}

	lifecycle, err := SupersededLifecycle(successorID)
	if err != nil {
		return err
	}

	p.lifecycle = lifecycle
	p.consolidationRequested = false
	p.consolidateWith = nil
	p.reservedSuccessorID = nil
	return nil
}

// RequestPhotoService orders photos of the parcel contents. The service fee
// is collected by the caller before this is recorded.
func (p *Parcel) RequestPhotoService() error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if p.photoStatus == ServicePending {
		return errs.NewPreconditionError("photo service is already requested")
	}
	if p.photoStatus == ServiceCompleted {
		return errs.NewPreconditionError("photo service is already completed")
	}

	p.photoStatus = ServicePending
	return nil
}

// CompletePhotoService records the photos taken by warehouse staff.
func (p *Parcel) CompletePhotoService(photoURLs []string) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if p.photoStatus != ServicePending {
		return errs.NewPreconditionError("photo service is not pending")
	}
	if len(photoURLs) == 0 {
		return errs.NewValueIsRequiredError("photoURLs")
	}
	if len(photoURLs) > MaxPhotoCount {
		return errs.NewValueIsOutOfRangeError("photoURLs", len(photoURLs), 1, MaxPhotoCount)
	}

	p.photoStatus = ServiceCompleted
	p.photoURLs = append([]string(nil), photoURLs...)
	return nil
}

// RequestReinforcement orders packaging reinforcement. The service fee is
// collected by the caller before this is recorded.
func (p *Parcel) RequestReinforcement() error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if p.reinforcementStatus == ServicePending {
		return errs.NewPreconditionError("reinforcement is already requested")
	}
	if p.reinforcementStatus == ServiceCompleted {
		return errs.NewPreconditionError("reinforcement is already completed")
	}

	p.reinforcementStatus = ServicePending
	return nil
}

// CompleteReinforcement records that warehouse staff reinforced the packaging.
func (p *Parcel) CompleteReinforcement() error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if p.reinforcementStatus != ServicePending {
		return errs.NewPreconditionError("reinforcement is not pending")
	}

	p.reinforcementStatus = ServiceCompleted
	return nil
}

// SetInsuranceCover declares additional insurance for the parcel and returns
// the premium still owed in yen.
//
// Raising the cover charges only the difference between the new premium and
// what was already collected. Lowering the cover never refunds premium, so
// the returned amount is never negative.
func (p *Parcel) SetInsuranceCover(cover int64) (int64, error) {
	if err := p.ensureActive(); err != nil {
		return 0, err
	}
	if cover < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"cover is invalid",
			fmt.Errorf("%d is negative", cover),
		)
	}

	premium := InsurancePremium(cover)
	owed := premium - p.insurancePremiumPaid
	if owed < 0 {
		owed = 0
	}

	p.insuranceCover = cover
	p.insurancePremiumPaid += owed
	return owed, nil
}

// RequestDisposal files a disposal request with the fee already collected.
//
// Business rules:
//   - The parcel must be active, weighed, and not shipped
//   - A second request while one is pending is rejected
func (p *Parcel) RequestDisposal(cost int64) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if p.status == Shipped {
		return errs.NewPreconditionError("parcel is already shipped")
	}
	if p.disposalRequested {
		return errs.NewPreconditionError("disposal is already requested")
	}
	if p.weightKg <= 0 {
		return errs.NewPreconditionError("parcel weight is not measured")
	}
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"cost is invalid",
			fmt.Errorf("%d is negative", cost),
		)
	}

	p.disposalRequested = true
	p.disposalCost = cost
	return nil
}

// DeclineDisposal withdraws a pending disposal request and returns the fee
// to refund in yen.
func (p *Parcel) DeclineDisposal() (int64, error) {
	if err := p.ensureActive(); err != nil {
		return 0, err
	}
	if !p.disposalRequested {
		return 0, errs.NewPreconditionError("disposal is not requested")
	}

	refund := p.disposalCost
	p.disposalRequested = false
	p.disposalCost = 0
	return refund, nil
}

// Dispose destroys the parcel record. It serves both owner-requested and
// fee-driven forced disposal, so a pending request is not required.
// Disposal is irreversible.
func (p *Parcel) Dispose() error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if p.status == Shipped {
		return errs.NewPreconditionError("parcel is already shipped")
	}

	p.lifecycle = DisposedLifecycle()
	p.disposalRequested = false
	p.shippingRequested = false
	return nil
}

// SetShippingMethod switches how the outbound leg is priced. Once a shipping
// request is filed the cost is locked and the method can no longer change.
func (p *Parcel) SetShippingMethod(method ShippingMethod) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if err := method.Validate(); err != nil {
		return err
	}
	if p.shippingRequested {
		return errs.NewPreconditionError("parcel has a pending shipping request")
	}

	p.shippingMethod = method
	return nil
}

// SetShippingCost records the flat outbound cost in yen quoted at intake.
// Carrier-method parcels get their cost from a live quote at request time
// instead.
func (p *Parcel) SetShippingCost(cost int64) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"cost is invalid",
			fmt.Errorf("%d is negative", cost),
		)
	}
	if p.shippingRequested {
		return errs.NewPreconditionError("parcel has a pending shipping request")
	}

	p.shippingCost = cost
	return nil
}

// RequestShipping files an outbound shipping request with the outbound cost
// locked in. Storage fees must be settled by the caller first.
//
// Business rules:
//   - The parcel must be active and not yet shipped
//   - The domestic leg must be settled (or free)
//   - No service, merge, or disposal request may be pending
//   - Carrier-method parcels must name the selected carrier service
func (p *Parcel) RequestShipping(addressID kernel.UUID, carrierService string, cost int64) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if err := addressID.Validate(); err != nil {
		return err
	}
	if p.shippingMethod.IsCarrier() && carrierService == "" {
		return errs.NewValueIsRequiredError("carrierService")
	}
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"cost is invalid",
			fmt.Errorf("%d is negative", cost),
		)
	}
	if err := p.ensureShippable(); err != nil {
		return err
	}

	p.shippingRequested = true
	p.shippingAddressID = &addressID
	p.carrierService = carrierService
	p.shippingCost = cost
	return nil
}

// MarkShipped records that the parcel left the warehouse. The same shipping
// preconditions as RequestShipping apply, so a parcel cannot slip out with
// unsettled fees or unfinished services.
func (p *Parcel) MarkShipped(trackingNumber string, now time.Time) error {
	if err := p.ensureActive(); err != nil {
		return err
	}
	if err := p.ensureShippable(); err != nil {
		return err
	}

	newStatus, err := p.status.Ship()
	if err != nil {
		return err
	}

	shippedAt := now
	p.status = newStatus
	p.shippedAt = &shippedAt
	p.trackingNumber = trackingNumber
	p.shippingRequested = false
	return nil
}

// MarkShippedViaSuccessor records shipment on a superseded predecessor when
// its consolidated successor leaves the warehouse. The predecessor's own
// shippability guards do not apply; the successor already passed them.
func (p *Parcel) MarkShippedViaSuccessor(now time.Time) error {
	if !p.lifecycle.IsSuperseded() {
		return errs.NewPreconditionError("parcel is not superseded")
	}
	if p.status == Shipped {
		return nil
	}

	shippedAt := now
	p.status = Shipped
	p.shippedAt = &shippedAt
	return nil
}

// ensureActive rejects operations on superseded and disposed records.
func (p *Parcel) ensureActive() error {
	if !p.lifecycle.IsActive() {
		return errs.NewPreconditionError(
			fmt.Sprintf("parcel is not active: %s", p.lifecycle.String()),
		)
	}
	return nil
}

// ensureShippable checks the preconditions shared by RequestShipping and
// MarkShipped.
func (p *Parcel) ensureShippable() error {
	if p.status == Shipped {
		return errs.NewPreconditionError("parcel is already shipped")
	}
	if !p.IsDomesticShippingPaid() {
		return errs.NewPreconditionError("domestic shipping is not paid")
	}
	if p.HasPendingService() {
		return errs.NewPreconditionError("parcel has a pending service")
	}
	if p.consolidationRequested {
		return errs.NewPreconditionError("parcel has a pending consolidation request")
	}
	if p.disposalRequested {
		return errs.NewPreconditionError("parcel has a pending disposal request")
	}
	return nil
}

// setID validates and sets the parcel's unique identifier.
func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setOwnerID validates and sets the owning account's identifier.
func (p *Parcel) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	p.ownerID = ownerID
	return nil
}

// setItemID validates and sets the contained item's identifier.
func (p *Parcel) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	p.itemID = itemID
	return nil
}

// setArrivedAt validates and sets the warehouse registration time.
func (p *Parcel) setArrivedAt(arrivedAt time.Time) error {
	if arrivedAt.IsZero() {
		return errs.NewValueIsRequiredError("arrivedAt")
	}
	p.arrivedAt = arrivedAt
	return nil
}

// setWeight sets the weight, allowing 0 for parcels not yet weighed.
func (p *Parcel) setWeight(weightKg float64) error {
	if weightKg < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightKg is invalid",
			fmt.Errorf("%f is negative", weightKg),
		)
	}
	p.weightKg = weightKg
	return nil
}

// setDomesticShippingCost sets the inbound domestic leg cost.
func (p *Parcel) setDomesticShippingCost(cost int64) error {
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"domesticShippingCost is invalid",
			fmt.Errorf("%d is negative", cost),
		)
	}
	p.domesticShippingCost = cost
	return nil
}
