package services

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/item"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/pkg/errs"
)

// ErrMergeNeedsTwoSources is returned when a merge names fewer than two
// source parcels.
var ErrMergeNeedsTwoSources = errors.New("consolidation requires at least two source parcels")

// MergeOverrides carries optional administrator overrides applied during a
// merge. Nil fields fall back to the computed sums.
type MergeOverrides struct {
	// WeightKg replaces the summed source weight
	WeightKg *float64

	// ShippingCost replaces the summed source shipping cost
	ShippingCost *int64
}

// MergeResult is the outcome of a consolidation merge: the successor parcel,
// the aggregate item anchoring it, and the retired sources.
type MergeResult struct {
	Successor     *parcel.Parcel
	AggregateItem *item.Item
	Sources       []*parcel.Parcel
}

// Consolidator is a domain service merging several parcels into one
// successor.
//
// Merge rules:
//   - Weight and shipping cost sum the sources unless overridden
//   - The shipping method follows the first-named source
//   - Domestic shipping cost sums the sources and counts as paid only if
//     every source already had zero-or-paid domestic shipping
//   - Additional insurance takes the maximum across sources
//   - Photos union the sets of sources whose photo service completed
//   - The aggregate item combines source item names, prices, and quantities
//   - Every source is retired pointing at the successor, never deleted
type Consolidator struct{}

// NewConsolidator creates a new Consolidator instance.
func NewConsolidator() Consolidator {
	return Consolidator{}
}

// Merge combines the source parcels into a successor created under
// successorID. The sources are mutated in place: each one is superseded and
// becomes read-only.
//
// Parameters:
//   - successorID: Identifier reserved for the successor at request time
//   - aggregateItemID: Identifier for the synthetic aggregate item
//   - sources: The parcels to merge (at least two, all active, one owner)
//   - sourceItems: The items contained in the sources, same order not required
//   - overrides: Optional administrator overrides for weight and cost
//   - now: Arrival time recorded on the successor, restarting its storage clock
func (c Consolidator) Merge(
	successorID kernel.UUID,
	aggregateItemID kernel.UUID,
	sources []*parcel.Parcel,
	sourceItems []*item.Item,
	overrides MergeOverrides,
	now time.Time,
) (*MergeResult, error) {
	if len(sources) < 2 {
		return nil, ErrMergeNeedsTwoSources
	}
	if len(sourceItems) != len(sources) {
		return nil, errs.NewValueIsInvalidError("sourceItems must match sources")
	}

	ownerID := sources[0].OwnerID()
	for _, source := range sources {
		if err := source.Validate(); err != nil {
			return nil, err
		}
		if !source.Lifecycle().IsActive() {
			return nil, errs.NewPreconditionError("source parcel is not active")
		}
		if !source.OwnerID().IsEqual(ownerID) {
			return nil, errs.NewPreconditionError("source parcels belong to different owners")
		}
	}

	outcome := c.combine(sources, overrides)

	aggregateItem, err := item.NewAggregateItem(aggregateItemID, sourceItems)
	if err != nil {
		return nil, err
	}

	successor, err := parcel.NewConsolidatedParcel(successorID, ownerID, aggregateItem.ID(), now, outcome)
	if err != nil {
		return nil, err
	}

	for _, source := range sources {
		if err := source.SupersedeInto(successorID); err != nil {
			return nil, err
		}
	}

	return &MergeResult{
		Successor:     successor,
		AggregateItem: aggregateItem,
		Sources:       sources,
	}, nil
}

// Split reverses an arrival-time auto-consolidation: the aggregate parcel is
// replaced by one fresh parcel per original item, dividing the measured
// weight and domestic shipping cost evenly across them. Only parcels still
// sitting idle qualify; any pending merge, shipping, or disposal request
// blocks the split.
//
// The caller deletes the aggregate parcel and its synthetic item afterwards;
// Split only builds the replacements.
func (c Consolidator) Split(aggregate *parcel.Parcel, originalItems []*item.Item) ([]*parcel.Parcel, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	if !aggregate.Lifecycle().IsActive() {
		return nil, errs.NewPreconditionError("parcel is not active")
	}
	if !aggregate.IsAutoConsolidated() {
		return nil, errs.NewPreconditionError("parcel is not auto-consolidated")
	}
	if aggregate.IsConsolidationRequested() || aggregate.IsShippingRequested() || aggregate.IsDisposalRequested() {
		return nil, errs.NewPreconditionError("parcel has a pending request")
	}
	if len(originalItems) != len(aggregate.OriginalItemIDs()) {
		return nil, errs.NewValueIsInvalidError("originalItems must match the recorded original item ids")
	}

	count := int64(len(originalItems))
	weightEach := aggregate.WeightKg() / float64(count)
	costEach := aggregate.DomesticShippingCost() / count
	costRemainder := aggregate.DomesticShippingCost() % count

	replacements := make([]*parcel.Parcel, 0, len(originalItems))
	for i, original := range originalItems {
		cost := costEach
		if i == 0 {
			cost += costRemainder
		}

		replacement, err := parcel.NewParcel(
			kernel.NewUUID(),
			aggregate.OwnerID(),
			original.ID(),
			aggregate.ArrivedAt(),
			weightEach,
			cost,
		)
		if err != nil {
			return nil, err
		}
		if err := replacement.SetShippingMethod(aggregate.ShippingMethod()); err != nil {
			return nil, err
		}
		if cost > 0 && aggregate.IsDomesticShippingPaid() {
			if err := replacement.PayDomesticShipping(); err != nil {
				return nil, err
			}
		}
		if weightEach > 0 {
			if err := replacement.MakeReady(); err != nil {
				return nil, err
			}
		}

		replacements = append(replacements, replacement)
	}

	return replacements, nil
}

// combine folds the sources into a merge outcome applying the merge rules.
func (c Consolidator) combine(sources []*parcel.Parcel, overrides MergeOverrides) parcel.MergeOutcome {
	outcome := parcel.MergeOutcome{
		ShippingMethod:       sources[0].ShippingMethod(),
		DomesticShippingPaid: true,
	}

	for _, source := range sources {
		outcome.SourceParcelIDs = append(outcome.SourceParcelIDs, source.ID())
		outcome.WeightKg += source.WeightKg()
		outcome.ShippingCost += source.ShippingCost()
		outcome.DomesticShippingCost += source.DomesticShippingCost()
		if !source.IsDomesticShippingPaid() {
			outcome.DomesticShippingPaid = false
		}
		if source.InsuranceCover() > outcome.InsuranceCover {
			outcome.InsuranceCover = source.InsuranceCover()
			outcome.InsurancePremiumPaid = source.InsurancePremiumPaid()
		}
		if source.PhotoStatus() == parcel.ServiceCompleted {
			outcome.PhotoURLs = append(outcome.PhotoURLs, source.PhotoURLs()...)
		}
	}

	if overrides.WeightKg != nil {
		outcome.WeightKg = *overrides.WeightKg
	}
	if overrides.ShippingCost != nil {
		outcome.ShippingCost = *overrides.ShippingCost
	}

	return outcome
}
