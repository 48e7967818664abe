package addressrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/address"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{
		db: db,
	}
}

// Get retrieves an address by ID.
func (r *GormAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstByOwner retrieves the owner's first saved address.
func (r *GormAddressRepository) GetFirstByOwner(ctx context.Context, ownerID kernel.UUID) (*address.Address, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	err := r.db.WithContext(ctx).
		Order("id").
		First(&dto, "account_id = ?", ownerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
