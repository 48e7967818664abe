// Package addressrepo provides the GORM implementation of the read-only
// address repository. Addresses are managed elsewhere; the warehouse only
// resolves them for quotes and shipping requests.
package addressrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"warehouse/internal/core/domain/model/address"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// stringSlice stores a list of strings in a single jsonb column.
type stringSlice []string

func (s stringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

func (s *stringSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for stringSlice: %T", value)
	}

	return json.Unmarshal(data, s)
}

func (stringSlice) GormDataType() string {
	return "jsonb"
}

// AddressDTO is the database representation of a delivery Address.
type AddressDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID       uuid.UUID `gorm:"type:uuid;index"`
	RecipientName   string
	Phone           string
	CountryCode     string
	PostalCode      string
	StateOrProvince string
	City            string
	StreetLines     stringSlice `gorm:"type:jsonb"`
}

// TableName specifies the database table name for GORM.
func (AddressDTO) TableName() string {
	return "addresses"
}

// toDomain converts a database representation to a domain Address.
func toDomain(dto AddressDTO) (*address.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	return address.NewAddress(
		id,
		accountID,
		dto.RecipientName,
		dto.Phone,
		dto.CountryCode,
		dto.PostalCode,
		dto.StateOrProvince,
		dto.City,
		dto.StreetLines,
	)
}
