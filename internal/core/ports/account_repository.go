package ports

import (
	"context"

	"warehouse/internal/core/domain/model/account"
	"warehouse/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for account aggregates.
type AccountRepository interface {
	// Add persists a new account aggregate to storage.
	Add(ctx context.Context, aggregate *account.Account) error

	// Update persists changes to an existing account aggregate.
	Update(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account by its unique identifier, locking the row
	// for the rest of the transaction so concurrent debits serialize.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)
}
