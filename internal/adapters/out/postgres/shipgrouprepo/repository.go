package shipgrouprepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipgroup"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipGroupRepository implements ShipGroupRepository using GORM.
type GormShipGroupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipGroupRepository creates a new GORM shipping group repository.
func NewGormShipGroupRepository(db *gorm.DB, tracker aggregateTracker) *GormShipGroupRepository {
	return &GormShipGroupRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipping group to the database.
func (r *GormShipGroupRepository) Add(ctx context.Context, group *shipgroup.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}

	dto := fromDomain(group)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(group.ID(), group)
	return nil
}

// Update saves an existing shipping group to the database.
func (r *GormShipGroupRepository) Update(ctx context.Context, group *shipgroup.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}

	dto := fromDomain(group)
	result := r.db.WithContext(ctx).
		Model(&GroupDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(group.ID(), group)
	return nil
}

// Get retrieves a shipping group by ID. The row is locked for the rest of
// the transaction so concurrent payments of the same group serialize.
func (r *GormShipGroupRepository) Get(ctx context.Context, id kernel.UUID) (*shipgroup.Group, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GroupDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipping group", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
