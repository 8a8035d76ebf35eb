// Package queries contains read-only operations for route planning data.
// Implements the Query side of the CQRS architecture: handlers either
// assemble advisory results from domain services or read projections
// straight from the database, never mutating state.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPreviewRouteQueryIsNotConstructed = errors.New(
	"PreviewRouteQuery must be created via NewPreviewRouteQuery constructor",
)

// PreviewRouteQuery requests an advisory route plan for a set of orders.
// Nothing is persisted; the dispatcher inspects the result before
// committing to route creation.
//
// Example:
//
//	query, err := NewPreviewRouteQuery(orderIDs)
//	if err != nil {
//	    return fmt.Errorf("invalid preview request: %w", err)
//	}
//	preview, err := handler.Handle(ctx, query)
type PreviewRouteQuery struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewPreviewRouteQuery creates a preview query for the given orders.
// The order list must be non-empty and every ID must be valid.
func NewPreviewRouteQuery(orderIDs []kernel.UUID) (PreviewRouteQuery, error) {
	previewQuery := PreviewRouteQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := previewQuery.setOrderIDs(orderIDs); err != nil {
		return PreviewRouteQuery{}, err
	}

	return previewQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewRouteQuery) Validate() error {
	return q.guard.Validate(ErrPreviewRouteQueryIsNotConstructed)
}

// OrderIDs returns the orders to preview.
func (q PreviewRouteQuery) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(q.orderIDs))
	copy(ids, q.orderIDs)
	return ids
}

func (q *PreviewRouteQuery) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
	}

	q.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(q.orderIDs, orderIDs)
	return nil
}

// PreviewStop is one ordered stop inside a side preview.
type PreviewStop struct {
	Sequence            int
	OrderID             kernel.UUID
	OrderNumber         string
	CustomerName        string
	Address             string
	DistanceFromDepotKm float64
}

// SidePreview summarizes the planned visiting order for one side.
// EstimatedDistanceKm is the straight-line sum depot to first stop plus
// consecutive stop-to-stop legs; it approximates but does not equal the
// road distance a matrix provider would report.
type SidePreview struct {
	Side                string
	Label               string
	Stops               []PreviewStop
	TotalStops          int
	EstimatedDistanceKm float64
	Sequenced           bool
}

// UnknownOrderPreview lists an order that cannot be planned because it
// has no coordinates. Numbered for display; part of neither side.
type UnknownOrderPreview struct {
	Position    int
	OrderID     kernel.UUID
	OrderNumber string
	Address     string
}

// PreviewRouteResponse is the full advisory planning result.
type PreviewRouteResponse struct {
	SideA         *SidePreview
	SideB         *SidePreview
	UnknownOrders []UnknownOrderPreview
	Warnings      []string
	TotalPlanned  int
}
