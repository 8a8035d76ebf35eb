package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetReadyOrdersQueryIsNotConstructed = errors.New(
	"GetReadyOrdersQuery must be created via NewGetReadyOrdersQuery constructor",
)

// GetReadyOrdersQuery retrieves all orders awaiting route planning.
//
// Example:
//
//	query := NewGetReadyOrdersQuery()
//	handler := NewGetReadyOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list ready orders: %w", err)
//	}
//	fmt.Printf("%d orders ready for planning\n", len(orders))
type GetReadyOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetReadyOrdersQuery creates a query to retrieve plannable orders.
// This is a parameterless query that fetches all ready-for-delivery orders.
func NewGetReadyOrdersQuery() GetReadyOrdersQuery {
	return GetReadyOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyOrdersQueryIsNotConstructed)
}

// GetReadyOrdersQueryResponse represents one plannable order.
// Coordinates are nil when geocoding has not resolved the address yet.
type GetReadyOrdersQueryResponse struct {
	ID           kernel.UUID
	Number       string
	CustomerName string
	Address      string
	Latitude     *float64
	Longitude    *float64
}
