// Package accountrepo provides the GORM implementation of the account
// repository.
package accountrepo

import (
	"warehouse/internal/core/domain/model/account"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO is the database representation of the Account aggregate.
type AccountDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email      string    `gorm:"index"`
	Name       string
	BalanceYen int64
}

// TableName specifies the database table name for GORM.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts a domain Account to its database representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	return AccountDTO{
		ID:         aggregate.ID().Bytes(),
		Email:      aggregate.Email(),
		Name:       aggregate.Name(),
		BalanceYen: aggregate.BalanceYen(),
	}
}

// toDomain converts a database representation to a domain Account.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(id, dto.Email, dto.Name, dto.BalanceYen)
}
