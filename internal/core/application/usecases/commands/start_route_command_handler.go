package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/routelock"
)

// StartRouteResult carries the outcome of starting a route.
type StartRouteResult struct {
	RouteID      kernel.UUID
	Status       string
	StartedAt    time.Time
	NextStopID   kernel.UUID
	NextSequence int
}

// StartRouteCommandHandler moves a route into execution. The first stop
// by sequence number becomes the active one.
type StartRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	locks      *routelock.Registry
}

// NewStartRouteCommandHandler creates a handler for starting routes.
// The lock registry must be shared with the other transition handlers
// so all mutations of one route serialize; a nil registry gets replaced
// with a private one.
func NewStartRouteCommandHandler(
	uowFactory RouteUoWFactory,
	locks *routelock.Registry,
) StartRouteCommandHandler {
	if locks == nil {
		locks = routelock.NewRegistry()
	}
	return StartRouteCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the start command under the route's lock.
// Fails with a state conflict unless the route is Created or Assigned.
func (h StartRouteCommandHandler) Handle(
	ctx context.Context,
	cmd StartRouteCommand,
) (StartRouteResult, error) {
	if err := cmd.Validate(); err != nil {
		return StartRouteResult{}, err
	}

	unlock := h.locks.Lock(cmd.RouteID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StartRouteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()

	aggregate, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return StartRouteResult{}, err
	}

	if err = aggregate.Start(time.Now().UTC()); err != nil {
		return StartRouteResult{}, err
	}

	if err = routeRepo.Update(ctx, aggregate); err != nil {
		return StartRouteResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StartRouteResult{}, err
	}

	result := StartRouteResult{
		RouteID:   aggregate.ID(),
		Status:    aggregate.Status().String(),
		StartedAt: *aggregate.StartedAt(),
	}
	if next := aggregate.NextStop(); next != nil {
		result.NextStopID = next.ID()
		result.NextSequence = next.Sequence()
	}

	return result, nil
}
