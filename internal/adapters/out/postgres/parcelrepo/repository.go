package parcelrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel to the database. Every column is written
// so cleared flags and nil timestamps persist too.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the parcels with the given identifiers and fails when
// any of them is missing.
func (r *GormParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}
	if len(dtos) != len(ids) {
		return nil, errs.NewObjectNotFoundError("parcels", ids)
	}

	byID := make(map[uuid.UUID]*parcel.Parcel, len(dtos))
	for _, dto := range dtos {
		restored, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		byID[dto.ID] = restored
	}

	parcels := make([]*parcel.Parcel, 0, len(ids))
	for _, id := range ids {
		parcels = append(parcels, byID[id.Bytes()])
	}
	return parcels, nil
}

// GetBySharedGroup retrieves every parcel sharing the given domestic
// shipping group. The rows are locked for the rest of the transaction so
// two concurrent payments cannot both see the group unpaid.
func (r *GormParcelRepository) GetBySharedGroup(ctx context.Context, groupID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := groupID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&dtos, "shared_shipping_group_id = ?", groupID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainSlice(dtos)
}

// GetAllActive retrieves every active parcel for the storage sweep.
func (r *GormParcelRepository) GetAllActive(ctx context.Context) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Order("arrived_at").
		Find(&dtos, "lifecycle_mode = ?", parcel.ModeActive).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainSlice(dtos)
}

// Delete removes a parcel record. Only deconsolidation uses this.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", id.String())
	}
	return nil
}

func (r *GormParcelRepository) toDomainSlice(dtos []ParcelDTO) ([]*parcel.Parcel, error) {
	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		restored, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, restored)
	}
	return parcels, nil
}
