package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetRouteQueryIsNotConstructed = errors.New(
	"GetRouteQuery must be created via NewGetRouteQuery constructor",
)

// GetRouteQuery retrieves one route with its stops for tracking.
//
// Example:
//
//	query, err := NewGetRouteQuery(routeID)
//	handler := NewGetRouteQueryHandler(db)
//	route, err := handler.Handle(ctx, query)
type GetRouteQuery struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRouteQuery creates a query for the given route.
func NewGetRouteQuery(routeID kernel.UUID) (GetRouteQuery, error) {
	routeQuery := GetRouteQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := routeQuery.setRouteID(routeID); err != nil {
		return GetRouteQuery{}, err
	}

	return routeQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

// RouteID returns the route to fetch.
func (q GetRouteQuery) RouteID() kernel.UUID {
	return q.routeID
}

func (q *GetRouteQuery) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}

	q.routeID = routeID
	return nil
}

// GetRouteStopResponse is one stop of a fetched route.
type GetRouteStopResponse struct {
	ID            kernel.UUID
	Sequence      int
	Status        string
	OrderNumber   string
	CustomerName  string
	Address       string
	DeliveredAt   *time.Time
	FailedAt      *time.Time
	FailureReason string
}

// GetRouteQueryResponse is a route projection with its stops in
// sequence order.
type GetRouteQueryResponse struct {
	ID          kernel.UUID
	Number      string
	Status      string
	DelivererID *kernel.UUID
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	TotalStops  int
	Stops       []GetRouteStopResponse
}
