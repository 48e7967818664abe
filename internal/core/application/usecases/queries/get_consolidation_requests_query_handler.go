package queries

import (
	"context"
	"encoding/json"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetConsolidationRequestsQueryHandler retrieves pending merge requests
// from the database, oldest arrival first.
type GetConsolidationRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetConsolidationRequestsQueryHandler creates a handler for merge
// request queries. Requires a GORM database connection for query execution.
func NewGetConsolidationRequestsQueryHandler(db *gorm.DB) GetConsolidationRequestsQueryHandler {
	return GetConsolidationRequestsQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending merge requests.
func (h GetConsolidationRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetConsolidationRequestsQuery,
) ([]GetConsolidationRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetConsolidationRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			consolidate_with,
			reserved_successor_id
		FROM parcels
		WHERE lifecycle_mode = ? AND consolidation_requested
		ORDER BY arrived_at
	`, parcel.ModeActive).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetConsolidationRequestsQueryResponse
		var id, ownerID uuid.UUID
		var reservedID uuid.NullUUID
		var consolidateWith []byte

		err = rows.Scan(&id, &ownerID, &consolidateWith, &reservedID)
		if err != nil {
			return nil, err
		}

		resp.ParcelID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.OwnerID, err = kernel.UUIDFromBytes(ownerID[:])
		if err != nil {
			return nil, err
		}
		if reservedID.Valid {
			resp.ReservedSuccessorID, err = kernel.UUIDFromBytes(reservedID.UUID[:])
			if err != nil {
				return nil, err
			}
		}

		var siblingIDs []uuid.UUID
		if err = json.Unmarshal(consolidateWith, &siblingIDs); err != nil {
			return nil, err
		}
		for _, siblingID := range siblingIDs {
			restored, idErr := kernel.UUIDFromBytes(siblingID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.ConsolidateWith = append(resp.ConsolidateWith, restored)
		}

		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
