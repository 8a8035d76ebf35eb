package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRouteQueryHandler reads a route projection straight from the
// database, bypassing the aggregate since nothing is mutated.
type GetRouteQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteQueryHandler creates a handler for route lookups.
// Requires a GORM database connection for query execution.
func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db}
}

// Handle fetches the route and its stops ordered by sequence.
func (h GetRouteQueryHandler) Handle(
	ctx context.Context,
	query GetRouteQuery,
) (GetRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteQueryResponse{}, err
	}

	response := GetRouteQueryResponse{}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			deliverer_id,
			created_at,
			started_at,
			completed_at,
			total_stops
		FROM routes
		WHERE id = ?
	`, query.RouteID().Bytes()).Row()

	var id uuid.UUID
	var delivererID *uuid.UUID
	var status int

	err := row.Scan(
		&id,
		&response.Number,
		&status,
		&delivererID,
		&response.CreatedAt,
		&response.StartedAt,
		&response.CompletedAt,
		&response.TotalStops,
	)
	if err != nil {
		return GetRouteQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"routeId", query.RouteID().String(), err)
	}

	routeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetRouteQueryResponse{}, err
	}
	response.ID = routeID
	response.Status = route.Status(status).String()

	if delivererID != nil {
		dID, idErr := kernel.UUIDFromBytes((*delivererID)[:])
		if idErr != nil {
			return GetRouteQueryResponse{}, idErr
		}
		response.DelivererID = &dID
	}

	stops, err := h.fetchStops(ctx, query.RouteID())
	if err != nil {
		return GetRouteQueryResponse{}, err
	}
	response.Stops = stops

	return response, nil
}

func (h GetRouteQueryHandler) fetchStops(
	ctx context.Context,
	routeID kernel.UUID,
) ([]GetRouteStopResponse, error) {
	stops := make([]GetRouteStopResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sequence,
			status,
			order_number,
			customer_name,
			address,
			delivered_at,
			failed_at,
			failure_reason
		FROM stops
		WHERE route_id = ?
		ORDER BY sequence
	`, routeID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stopResp GetRouteStopResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&stopResp.Sequence,
			&status,
			&stopResp.OrderNumber,
			&stopResp.CustomerName,
			&stopResp.Address,
			&stopResp.DeliveredAt,
			&stopResp.FailedAt,
			&stopResp.FailureReason,
		)
		if err != nil {
			return nil, err
		}

		stopID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		stopResp.ID = stopID
		stopResp.Status = route.StopStatus(status).String()

		stops = append(stops, stopResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stops, nil
}
