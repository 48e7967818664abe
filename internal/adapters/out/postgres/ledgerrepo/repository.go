package ledgerrepo

import (
	"context"

	"warehouse/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM. The ledger
// is append-only, so only Add exists; reads go through queries.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{
		db: db,
	}
}

// Add persists a new ledger entry.
func (r *GormLedgerRepository) Add(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
