package itemrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/item"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormItemRepository creates a new GORM item repository.
func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new item to the database.
func (r *GormItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
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

// Get retrieves an item by ID.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the items with the given identifiers and fails when
// any of them is missing.
func (r *GormItemRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error) {
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

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}
	if len(dtos) != len(ids) {
		return nil, errs.NewObjectNotFoundError("items", ids)
	}

	byID := make(map[uuid.UUID]*item.Item, len(dtos))
	for _, dto := range dtos {
		restored, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		byID[dto.ID] = restored
	}

	items := make([]*item.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, byID[id.Bytes()])
	}
	return items, nil
}

// Delete removes an item record. Only deconsolidation uses this to drop
// the synthetic aggregate item.
func (r *GormItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", id.String())
	}
	return nil
}
