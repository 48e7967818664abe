package ports

import (
	"context"

	"warehouse/internal/core/domain/model/address"
	"warehouse/internal/core/domain/model/kernel"
)

// AddressRepository defines the read contract for saved delivery addresses.
// Addresses are managed by another part of the system; the warehouse only
// resolves them for quotes and shipping requests.
type AddressRepository interface {
	// Get retrieves an address by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)

	// GetFirstByOwner retrieves the owner's first saved address. It returns
	// an ObjectNotFoundError when the owner has no saved address at all.
	GetFirstByOwner(ctx context.Context, ownerID kernel.UUID) (*address.Address, error)
}
