package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipgroup"
)

// ShipGroupRepository defines the persistence contract for shared domestic
// shipping groups.
type ShipGroupRepository interface {
	// Add persists a new shipping group.
	Add(ctx context.Context, group *shipgroup.Group) error

	// Update persists changes to an existing shipping group.
	Update(ctx context.Context, group *shipgroup.Group) error

	// Get retrieves a shipping group by its unique identifier, locking the
	// row for the rest of the transaction so concurrent payments of the
	// same group serialize and at most one charge lands.
	Get(ctx context.Context, id kernel.UUID) (*shipgroup.Group, error)
}
