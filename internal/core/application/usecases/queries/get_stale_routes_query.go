package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetStaleRoutesQueryIsNotConstructed = errors.New(
	"GetStaleRoutesQuery must be created via NewGetStaleRoutesQuery constructor",
)

// GetStaleRoutesQuery finds routes that were planned but never started
// within the given age.
type GetStaleRoutesQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetStaleRoutesQuery creates a query with validation. The age must be
// positive.
func NewGetStaleRoutesQuery(olderThan time.Duration) (GetStaleRoutesQuery, error) {
	if olderThan <= 0 {
		return GetStaleRoutesQuery{}, errs.NewValueIsInvalidError("olderThan")
	}

	return GetStaleRoutesQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleRoutesQueryIsNotConstructed)
}

// OlderThan returns the minimum age for a route to count as stale.
func (q GetStaleRoutesQuery) OlderThan() time.Duration {
	return q.olderThan
}

// StaleRouteResponse identifies one route stuck before execution.
type StaleRouteResponse struct {
	ID        kernel.UUID
	Number    string
	CreatedAt time.Time
}
