// Package queries contains read operations in the CQRS architecture. Query
// handlers read the database directly with raw SQL, bypassing aggregates,
// and return flat read models for the HTTP layer.
package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/domain/services"
)

var ErrGetUserParcelsQueryIsNotConstructed = errors.New(
	"GetUserParcelsQuery must be created via NewGetUserParcelsQuery constructor",
)

// GetUserParcelsQuery retrieves every parcel belonging to one account,
// newest arrival first, with the storage billing snapshot derived for each.
type GetUserParcelsQuery struct {
	ownerID kernel.UUID
}

// NewGetUserParcelsQuery creates a query for one owner's parcels.
func NewGetUserParcelsQuery(ownerID kernel.UUID) (GetUserParcelsQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetUserParcelsQuery{}, err
	}

	return GetUserParcelsQuery{ownerID: ownerID}, nil
}

// OwnerID returns the account whose parcels are requested.
func (q GetUserParcelsQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Validate ensures the query was created through the constructor.
func (q GetUserParcelsQuery) Validate() error {
	if q.ownerID.Validate() != nil {
		return ErrGetUserParcelsQueryIsNotConstructed
	}
	return nil
}

// GetUserParcelsQueryResponse is the owner-facing read model of a parcel.
// Storage is computed from the persisted timestamps at query time; it is
// never stored.
type GetUserParcelsQueryResponse struct {
	ID                     kernel.UUID
	ItemID                 kernel.UUID
	Status                 parcel.Status
	WeightKg               float64
	ArrivedAt              time.Time
	DomesticShippingCost   int64
	DomesticShippingPaid   bool
	SharedShippingGroupID  *kernel.UUID
	ConsolidationRequested bool
	DisposalRequested      bool
	ShippingMethod         parcel.ShippingMethod
	ShippingRequested      bool
	CarrierService         string
	ShippingCost           int64
	TrackingNumber         string
	Storage                services.StorageInfo
}
