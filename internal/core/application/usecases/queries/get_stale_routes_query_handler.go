package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleRoutesQueryHandler lists routes that never left the planning
// stage. Feeds the cleanup job.
type GetStaleRoutesQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleRoutesQueryHandler creates a handler for stale route queries.
// Requires a GORM database connection for query execution.
func NewGetStaleRoutesQueryHandler(db *gorm.DB) GetStaleRoutesQueryHandler {
	return GetStaleRoutesQueryHandler{db: db}
}

// Handle returns routes still Created or Assigned whose creation time is
// older than the query's age, oldest first.
func (h GetStaleRoutesQueryHandler) Handle(
	ctx context.Context,
	query GetStaleRoutesQuery,
) ([]StaleRouteResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.OlderThan())

	routes := make([]StaleRouteResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			created_at
		FROM routes
		WHERE status IN (?, ?)
		  AND created_at < ?
		ORDER BY created_at
	`, int(route.Created), int(route.Assigned), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var routeResp StaleRouteResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &routeResp.Number, &routeResp.CreatedAt); err != nil {
			return nil, err
		}

		routeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		routeResp.ID = routeID

		routes = append(routes, routeResp)
	}

	return routes, rows.Err()
}
