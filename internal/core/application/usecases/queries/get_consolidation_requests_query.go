package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrGetConsolidationRequestsQueryIsNotConstructed = errors.New(
	"GetConsolidationRequestsQuery must be created via NewGetConsolidationRequestsQuery constructor",
)

// GetConsolidationRequestsQuery retrieves every pending merge request so
// staff can work through the consolidation backlog. This is a parameterless
// query.
type GetConsolidationRequestsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetConsolidationRequestsQuery creates a query for pending merge requests.
func NewGetConsolidationRequestsQuery() GetConsolidationRequestsQuery {
	return GetConsolidationRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetConsolidationRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetConsolidationRequestsQueryIsNotConstructed)
}

// GetConsolidationRequestsQueryResponse describes one pending merge request:
// the requesting parcel, the siblings to combine with, and the identifier
// reserved for the successor record.
type GetConsolidationRequestsQueryResponse struct {
	ParcelID            kernel.UUID
	OwnerID             kernel.UUID
	ConsolidateWith     []kernel.UUID
	ReservedSuccessorID kernel.UUID
}
