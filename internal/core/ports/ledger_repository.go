package ports

import (
	"context"

	"warehouse/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the append-only
// balance ledger. Entries are written in the same transaction as the
// balance change they record.
type LedgerRepository interface {
	// Add persists a new ledger entry.
	Add(ctx context.Context, entry *ledger.Entry) error
}
