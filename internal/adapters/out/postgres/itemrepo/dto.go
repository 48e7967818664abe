// Package itemrepo provides the GORM implementation of the item repository.
package itemrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"warehouse/internal/core/domain/model/item"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// uuidSlice stores a list of identifiers in a single jsonb column.
type uuidSlice []uuid.UUID

func (s uuidSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(s)
}

func (s *uuidSlice) Scan(value any) error {
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
		return fmt.Errorf("unsupported type for uuidSlice: %T", value)
	}

	return json.Unmarshal(data, s)
}

func (uuidSlice) GormDataType() string {
	return "jsonb"
}

// ItemDTO is the database representation of the Item aggregate.
type ItemDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID  *uuid.UUID `gorm:"type:uuid;index"`
	Name             string
	PriceYen         int64
	Quantity         int
	ProductURL       string
	ComponentItemIDs uuidSlice `gorm:"type:jsonb"`
}

// TableName specifies the database table name for GORM.
func (ItemDTO) TableName() string {
	return "items"
}

// fromDomain converts a domain Item to its database representation.
func fromDomain(aggregate *item.Item) ItemDTO {
	dto := ItemDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		PriceYen:   aggregate.PriceYen(),
		Quantity:   aggregate.Quantity(),
		ProductURL: aggregate.ProductURL(),
	}

	if orderID := aggregate.PurchaseOrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.PurchaseOrderID = &raw
	}
	for _, componentID := range aggregate.ComponentItemIDs() {
		dto.ComponentItemIDs = append(dto.ComponentItemIDs, componentID.Bytes())
	}

	return dto
}

// toDomain converts a database representation to a domain Item.
func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var purchaseOrderID *kernel.UUID
	if dto.PurchaseOrderID != nil {
		restored, restoreErr := kernel.UUIDFromBytes(dto.PurchaseOrderID[:])
		if restoreErr != nil {
			return nil, restoreErr
		}
		purchaseOrderID = &restored
	}

	var componentItemIDs []kernel.UUID
	for _, raw := range dto.ComponentItemIDs {
		componentID, restoreErr := kernel.UUIDFromBytes(raw[:])
		if restoreErr != nil {
			return nil, restoreErr
		}
		componentItemIDs = append(componentItemIDs, componentID)
	}

	return item.RestoreItem(
		id,
		purchaseOrderID,
		dto.Name,
		dto.PriceYen,
		dto.Quantity,
		dto.ProductURL,
		componentItemIDs,
	)
}
