package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/routelock"
)

// CompleteStopResult carries the outcome of a stop resolution.
type CompleteStopResult struct {
	StopID         kernel.UUID
	StopStatus     string
	ResolvedAt     time.Time
	RouteStatus    string
	RouteCompleted bool
}

// CompleteStopCommandHandler resolves the active stop of a route as
// delivered, failed, or skipped, promoting the next pending stop and
// completing the route when the last stop resolves.
type CompleteStopCommandHandler struct {
	uowFactory RouteUoWFactory
	locks      *routelock.Registry
}

// NewCompleteStopCommandHandler creates a handler for stop resolution.
// The lock registry must be shared with the other transition handlers
// so all mutations of one route serialize; a nil registry gets replaced
// with a private one.
func NewCompleteStopCommandHandler(
	uowFactory RouteUoWFactory,
	locks *routelock.Registry,
) CompleteStopCommandHandler {
	if locks == nil {
		locks = routelock.NewRegistry()
	}
	return CompleteStopCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the stop resolution under the route's lock.
// Only the stop currently marked Next can be resolved; anything else
// surfaces a state conflict without touching the aggregate.
func (h CompleteStopCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteStopCommand,
) (CompleteStopResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteStopResult{}, err
	}

	unlock := h.locks.Lock(cmd.RouteID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteStopResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()

	aggregate, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return CompleteStopResult{}, err
	}

	now := time.Now().UTC()

	var transition route.TransitionResult
	switch cmd.Outcome() {
	case OutcomeDelivered:
		transition, err = aggregate.MarkDelivered(cmd.StopID(), now)
	case OutcomeFailed:
		transition, err = aggregate.MarkFailed(cmd.StopID(), cmd.Reason(), now)
	case OutcomeSkipped:
		transition, err = aggregate.MarkSkipped(cmd.StopID(), cmd.Reason(), now)
	}
	if err != nil {
		return CompleteStopResult{}, err
	}

	if err = routeRepo.Update(ctx, aggregate); err != nil {
		return CompleteStopResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteStopResult{}, err
	}

	return CompleteStopResult{
		StopID:         transition.Stop.ID(),
		StopStatus:     transition.Stop.Status().String(),
		ResolvedAt:     now,
		RouteStatus:    aggregate.Status().String(),
		RouteCompleted: transition.RouteCompleted,
	}, nil
}
