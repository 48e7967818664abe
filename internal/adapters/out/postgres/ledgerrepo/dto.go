// Package ledgerrepo provides the GORM implementation of the append-only
// balance ledger.
package ledgerrepo

import (
	"time"

	"warehouse/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO is the database representation of a ledger Entry.
type EntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID  `gorm:"type:uuid;index"`
	ParcelID    *uuid.UUID `gorm:"type:uuid;index"`
	AmountYen   int64
	Kind        string `gorm:"index"`
	Description string
	RecordedAt  time.Time
}

// TableName specifies the database table name for GORM.
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

// fromDomain converts a domain Entry to its database representation.
func fromDomain(entry *ledger.Entry) EntryDTO {
	dto := EntryDTO{
		ID:          entry.ID().Bytes(),
		AccountID:   entry.AccountID().Bytes(),
		AmountYen:   entry.AmountYen(),
		Kind:        string(entry.Kind()),
		Description: entry.Description(),
		RecordedAt:  entry.RecordedAt(),
	}

	if parcelID := entry.ParcelID(); parcelID != nil {
		raw := parcelID.Bytes()
		dto.ParcelID = &raw
	}

	return dto
}
