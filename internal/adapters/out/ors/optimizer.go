// Package ors adapts the OpenRouteService matrix endpoint to the
// RouteOptimizer port. Stop order is derived from a full travel-time
// matrix: starting at the origin, the closest unvisited point by driving
// duration is picked until every point is placed.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const providerName = "openrouteservice"

// DefaultTimeout bounds a single matrix call including retries.
const DefaultTimeout = 10 * time.Second

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
}

// MatrixOptimizer orders stops using OpenRouteService travel times.
type MatrixOptimizer struct {
	session *http.Client
	baseURL string
	apiKey  string
	profile string
}

// NewMatrixOptimizer creates a MatrixOptimizer with validation. The profile
// selects the routing model, e.g. "driving-car".
func NewMatrixOptimizer(baseURL, apiKey, profile string, timeout time.Duration) (*MatrixOptimizer, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if strings.TrimSpace(profile) == "" {
		return nil, errs.NewValueIsRequiredError("profile")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &MatrixOptimizer{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		profile: profile,
	}, nil
}

// Optimize returns the visiting order of points as a permutation of their
// input indexes. The origin is the start of the run and is not part of the
// returned order.
func (o *MatrixOptimizer) Optimize(
	ctx context.Context,
	origin kernel.Coordinate,
	points []kernel.Coordinate,
) ([]int, error) {
	if len(points) == 0 {
		return []int{}, nil
	}
	if len(points) == 1 {
		return []int{0}, nil
	}

	durations, err := o.fetchDurationMatrix(ctx, origin, points)
	if err != nil {
		return nil, errs.NewUpstreamUnavailableError(providerName, err)
	}

	return orderByTravelTime(durations), nil
}

// fetchDurationMatrix requests the full travel-time matrix for the origin
// plus every point. Row and column 0 belong to the origin.
func (o *MatrixOptimizer) fetchDurationMatrix(
	ctx context.Context,
	origin kernel.Coordinate,
	points []kernel.Coordinate,
) ([][]float64, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	// ORS expects [longitude, latitude] pairs.
	locations := make([][]float64, 0, 1+len(points))
	locations = append(locations, []float64{origin.Longitude(), origin.Latitude()})
	for _, p := range points {
		locations = append(locations, []float64{p.Longitude(), p.Latitude()})
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"duration"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	size := len(locations)
	if len(mr.Durations) != size {
		return nil, fmt.Errorf("expected %d matrix rows; got %d", size, len(mr.Durations))
	}

	durations := make([][]float64, size)
	for i, row := range mr.Durations {
		if len(row) != size {
			return nil, fmt.Errorf("expected %d columns in row %d; got %d", size, i, len(row))
		}
		durations[i] = make([]float64, size)
		for j, cell := range row {
			if cell == nil {
				return nil, fmt.Errorf("matrix has no route between locations %d and %d", i, j)
			}
			durations[i][j] = *cell
		}
	}

	return durations, nil
}

// orderByTravelTime walks the matrix greedily from the origin row. Ties
// resolve toward the lower index so the result is deterministic.
func orderByTravelTime(durations [][]float64) []int {
	n := len(durations) - 1
	order := make([]int, 0, n)
	visited := make([]bool, n)
	current := 0

	for len(order) < n {
		best := -1
		var bestDuration float64
		for candidate := 0; candidate < n; candidate++ {
			if visited[candidate] {
				continue
			}
			d := durations[current][candidate+1]
			if best == -1 || d < bestDuration {
				best = candidate
				bestDuration = d
			}
		}
		visited[best] = true
		order = append(order, best)
		current = best + 1
	}

	return order
}
