package queries

import (
	"context"
	"database/sql"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWarehouseParcelsQueryHandler retrieves every active parcel for staff
// monitoring, oldest arrival first so overdue stock surfaces at the top.
type GetWarehouseParcelsQueryHandler struct {
	db         *gorm.DB
	calculator services.StorageCalculator
}

// NewGetWarehouseParcelsQueryHandler creates a handler for warehouse stock
// queries. Requires a GORM database connection for query execution.
func NewGetWarehouseParcelsQueryHandler(db *gorm.DB) GetWarehouseParcelsQueryHandler {
	return GetWarehouseParcelsQueryHandler{
		db:         db,
		calculator: services.NewStorageCalculator(),
	}
}

// Handle executes the query to retrieve all active parcels.
func (h GetWarehouseParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetWarehouseParcelsQuery,
) ([]GetWarehouseParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]GetWarehouseParcelsQueryResponse, 0)
	now := time.Now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			item_id,
			status,
			weight_kg,
			arrived_at,
			last_storage_payment,
			photo_status,
			reinforcement_status,
			consolidation_requested,
			disposal_requested,
			shipping_requested
		FROM parcels
		WHERE lifecycle_mode = ?
		ORDER BY arrived_at
	`, parcel.ModeActive).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetWarehouseParcelsQueryResponse
		var id, ownerID, itemID uuid.UUID
		var status, photoStatus, reinforcementStatus int
		var lastStoragePayment sql.NullTime

		err = rows.Scan(
			&id,
			&ownerID,
			&itemID,
			&status,
			&resp.WeightKg,
			&resp.ArrivedAt,
			&lastStoragePayment,
			&photoStatus,
			&reinforcementStatus,
			&resp.ConsolidationRequested,
			&resp.DisposalRequested,
			&resp.ShippingRequested,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.OwnerID, err = kernel.UUIDFromBytes(ownerID[:])
		if err != nil {
			return nil, err
		}
		resp.ItemID, err = kernel.UUIDFromBytes(itemID[:])
		if err != nil {
			return nil, err
		}
		resp.Status = parcel.Status(status)
		resp.PhotoStatus = parcel.ServiceStatus(photoStatus)
		resp.ReinforcementStatus = parcel.ServiceStatus(reinforcementStatus)

		var lastPayment *time.Time
		if lastStoragePayment.Valid {
			lastPayment = &lastStoragePayment.Time
		}
		resp.Storage = h.calculator.Calculate(resp.ArrivedAt, lastPayment, now)

		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
