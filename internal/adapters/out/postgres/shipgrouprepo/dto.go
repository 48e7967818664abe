// Package shipgrouprepo provides the GORM implementation of the shared
// domestic shipping group repository.
package shipgrouprepo

import (
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipgroup"

	"github.com/google/uuid"
)

// GroupDTO is the database representation of the shipping Group aggregate.
type GroupDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`
	CostYen int64
	Paid    bool
}

// TableName specifies the database table name for GORM.
func (GroupDTO) TableName() string {
	return "shipping_groups"
}

// fromDomain converts a domain Group to its database representation.
func fromDomain(group *shipgroup.Group) GroupDTO {
	return GroupDTO{
		ID:      group.ID().Bytes(),
		OwnerID: group.OwnerID().Bytes(),
		CostYen: group.CostYen(),
		Paid:    group.IsPaid(),
	}
}

// toDomain converts a database representation to a domain Group.
func toDomain(dto GroupDTO) (*shipgroup.Group, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return shipgroup.RestoreGroup(id, ownerID, dto.CostYen, dto.Paid)
}
