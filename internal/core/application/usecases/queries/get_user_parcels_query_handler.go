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

// GetUserParcelsQueryHandler retrieves one owner's active parcels from the
// database and derives the storage billing snapshot for each row.
type GetUserParcelsQueryHandler struct {
	db         *gorm.DB
	calculator services.StorageCalculator
}

// NewGetUserParcelsQueryHandler creates a handler for owner parcel queries.
// Requires a GORM database connection for query execution.
func NewGetUserParcelsQueryHandler(db *gorm.DB) GetUserParcelsQueryHandler {
	return GetUserParcelsQueryHandler{
		db:         db,
		calculator: services.NewStorageCalculator(),
	}
}

// Handle executes the query to retrieve the owner's active parcels,
// newest arrival first.
func (h GetUserParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetUserParcelsQuery,
) ([]GetUserParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]GetUserParcelsQueryResponse, 0)
	now := time.Now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			item_id,
			status,
			weight_kg,
			arrived_at,
			last_storage_payment,
			domestic_shipping_cost,
			domestic_shipping_paid,
			shared_shipping_group_id,
			consolidation_requested,
			disposal_requested,
			shipping_method,
			shipping_requested,
			carrier_service,
			shipping_cost,
			tracking_number
		FROM parcels
		WHERE owner_id = ? AND lifecycle_mode = ?
		ORDER BY arrived_at DESC
	`, query.OwnerID().Bytes(), parcel.ModeActive).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUserParcelsQueryResponse
		var id, itemID uuid.UUID
		var status int
		var lastStoragePayment sql.NullTime
		var groupID uuid.NullUUID
		var shippingMethod string

		err = rows.Scan(
			&id,
			&itemID,
			&status,
			&resp.WeightKg,
			&resp.ArrivedAt,
			&lastStoragePayment,
			&resp.DomesticShippingCost,
			&resp.DomesticShippingPaid,
			&groupID,
			&resp.ConsolidationRequested,
			&resp.DisposalRequested,
			&shippingMethod,
			&resp.ShippingRequested,
			&resp.CarrierService,
			&resp.ShippingCost,
			&resp.TrackingNumber,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.ItemID, err = kernel.UUIDFromBytes(itemID[:])
		if err != nil {
			return nil, err
		}
		if groupID.Valid {
			restored, idErr := kernel.UUIDFromBytes(groupID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.SharedShippingGroupID = &restored
		}
		resp.Status = parcel.Status(status)
		resp.ShippingMethod = parcel.ShippingMethod(shippingMethod)
		if resp.ShippingMethod == "" {
			resp.ShippingMethod = parcel.MethodFlat
		}

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
