package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// RouteOptimizer produces a near-shortest visiting order for a set of
// points starting from an origin, typically by calling an external
// distance/duration matrix provider.
type RouteOptimizer interface {
	// Optimize returns the indices of points in suggested visiting order.
	// The result must be a permutation of 0..len(points)-1. Any failure
	// (timeout, provider error, malformed response) is returned as an
	// error; callers treat it as recoverable and fall back to a local
	// ordering.
	Optimize(ctx context.Context, origin kernel.Coordinate, points []kernel.Coordinate) ([]int, error)
}
