package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates.
// A route and its stops form a single consistency boundary and are always
// stored and loaded together.
type RouteRepository interface {
	// Add persists a new route aggregate with all of its stops.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route aggregate and its stops.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route aggregate by its unique identifier,
	// with stops ordered by sequence number.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)
}
