package ports

import (
	"context"

	"warehouse/internal/core/domain/model/item"
	"warehouse/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for items.
type ItemRepository interface {
	// Add persists a new item to storage.
	Add(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// GetMany retrieves the items with the given identifiers. It fails
	// with an object-not-found error when any identifier is missing.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error)

	// Delete removes an item record. Only deconsolidation uses this to
	// drop the synthetic aggregate item.
	Delete(ctx context.Context, id kernel.UUID) error
}
