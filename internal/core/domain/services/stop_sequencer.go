package services

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// StopSequencer orders delivery points for visiting, starting from an
// origin. It prefers an external matrix-based optimizer and degrades
// to a local greedy nearest-neighbor ordering when the optimizer fails
// or returns an unusable result. Sequencing itself never fails; the
// usedFallback flag tells the caller to surface a non-fatal warning.
type StopSequencer struct {
	optimizer ports.RouteOptimizer
}

// NewStopSequencer creates a sequencer. The optimizer may be nil, in
// which case the local fallback ordering is always used.
func NewStopSequencer(optimizer ports.RouteOptimizer) StopSequencer {
	return StopSequencer{optimizer: optimizer}
}

// Sequence returns the indices of points in visiting order starting
// from origin. The result is always a permutation of 0..len(points)-1.
// For one point or fewer the input order is returned unchanged and the
// optimizer is not consulted.
func (s StopSequencer) Sequence(
	ctx context.Context,
	origin kernel.Coordinate,
	points []kernel.Coordinate,
) (order []int, usedFallback bool) {
	identity := make([]int, len(points))
	for i := range identity {
		identity[i] = i
	}

	if len(points) <= 1 {
		return identity, false
	}

	if s.optimizer != nil {
		optimized, err := s.optimizer.Optimize(ctx, origin, points)
		if err == nil && isPermutation(optimized, len(points)) {
			return optimized, false
		}
	}

	return nearestNeighborOrder(origin, points), true
}

// nearestNeighborOrder greedily picks the closest unvisited point by
// straight-line distance at each step. Ascending index scan with a
// strict comparison breaks ties toward the lower index, so the result
// is deterministic.
func nearestNeighborOrder(origin kernel.Coordinate, points []kernel.Coordinate) []int {
	remaining := make(map[int]struct{}, len(points))
	for i := range points {
		remaining[i] = struct{}{}
	}

	current := origin
	result := make([]int, 0, len(points))

	for len(remaining) > 0 {
		best := -1
		bestDistance := 0.0
		for i := range points {
			if _, ok := remaining[i]; !ok {
				continue
			}
			distance, err := current.DistanceKm(points[i])
			if err != nil {
				continue
			}
			if best == -1 || distance < bestDistance {
				best = i
				bestDistance = distance
			}
		}
		if best == -1 {
			// Unreachable with constructed coordinates; drain in input order.
			for i := range points {
				if _, ok := remaining[i]; ok {
					best = i
					break
				}
			}
		}
		result = append(result, best)
		delete(remaining, best)
		current = points[best]
	}

	return result
}

func isPermutation(indices []int, n int) bool {
	if len(indices) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range indices {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
