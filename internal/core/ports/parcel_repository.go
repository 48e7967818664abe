// Package ports defines the contracts between the application core and
// infrastructure adapters: repositories, the unit of work, carrier rate
// quoting, exchange rates, and notifications. The interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetMany retrieves the parcels with the given identifiers. It fails
	// with an object-not-found error when any identifier is missing.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)

	// GetBySharedGroup retrieves every parcel sharing the given domestic
	// shipping group, locking the rows for the rest of the transaction so
	// two concurrent payments cannot both see the group unpaid.
	GetBySharedGroup(ctx context.Context, groupID kernel.UUID) ([]*parcel.Parcel, error)

	// GetAllActive retrieves every active parcel. Used by the storage
	// sweep to evaluate fees across the whole warehouse.
	GetAllActive(ctx context.Context) ([]*parcel.Parcel, error)

	// Delete removes a parcel record. Only deconsolidation uses this;
	// every other path retires records by superseding or disposing them.
	Delete(ctx context.Context, id kernel.UUID) error
}
