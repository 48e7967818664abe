package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/guard"
)

var ErrGetWarehouseParcelsQueryIsNotConstructed = errors.New(
	"GetWarehouseParcelsQuery must be created via NewGetWarehouseParcelsQuery constructor",
)

// GetWarehouseParcelsQuery retrieves every active parcel in the warehouse
// for staff monitoring. This is a parameterless query.
type GetWarehouseParcelsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetWarehouseParcelsQuery creates a query for the active warehouse stock.
func NewGetWarehouseParcelsQuery() GetWarehouseParcelsQuery {
	return GetWarehouseParcelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetWarehouseParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehouseParcelsQueryIsNotConstructed)
}

// GetWarehouseParcelsQueryResponse is the staff-facing read model of a
// parcel, including the pending request flags staff act on.
type GetWarehouseParcelsQueryResponse struct {
	ID                     kernel.UUID
	OwnerID                kernel.UUID
	ItemID                 kernel.UUID
	Status                 parcel.Status
	WeightKg               float64
	ArrivedAt              time.Time
	PhotoStatus            parcel.ServiceStatus
	ReinforcementStatus    parcel.ServiceStatus
	ConsolidationRequested bool
	DisposalRequested      bool
	ShippingRequested      bool
	Storage                services.StorageInfo
}
