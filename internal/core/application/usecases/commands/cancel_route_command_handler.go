package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/routelock"
)

// CancelRouteResult carries the outcome of a route cancellation.
type CancelRouteResult struct {
	RouteID        kernel.UUID
	Status         string
	RevertedOrders int
}

// CancelRouteCommandHandler aborts a route and returns the orders of its
// unresolved stops to the ready pool so they can be planned again.
type CancelRouteCommandHandler struct {
	uowFactory OrderRouteUoWFactory
	locks      *routelock.Registry
}

// NewCancelRouteCommandHandler creates a handler for route cancellation.
// The lock registry must be shared with the other transition handlers
// so all mutations of one route serialize; a nil registry gets replaced
// with a private one.
func NewCancelRouteCommandHandler(
	uowFactory OrderRouteUoWFactory,
	locks *routelock.Registry,
) CancelRouteCommandHandler {
	if locks == nil {
		locks = routelock.NewRegistry()
	}
	return CancelRouteCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the cancellation under the route's lock.
// Stops already in a terminal status keep their outcome; every other
// stop gets a cancellation annotation and its originating order moves
// back to ReadyForDelivery in the same transaction.
func (h CancelRouteCommandHandler) Handle(
	ctx context.Context,
	cmd CancelRouteCommand,
) (CancelRouteResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelRouteResult{}, err
	}

	unlock := h.locks.Lock(cmd.RouteID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CancelRouteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	orderRepo := uow.OrderRepository()

	aggregate, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return CancelRouteResult{}, err
	}

	if err = aggregate.Cancel(cmd.Reason(), time.Now().UTC()); err != nil {
		return CancelRouteResult{}, err
	}

	reverted := 0
	for _, stop := range aggregate.UnresolvedStops() {
		o, getErr := orderRepo.Get(ctx, stop.OrderID())
		if getErr != nil {
			return CancelRouteResult{}, getErr
		}
		if revertErr := o.ReturnToReady(); revertErr != nil {
			return CancelRouteResult{}, revertErr
		}
		if updateErr := orderRepo.Update(ctx, o); updateErr != nil {
			return CancelRouteResult{}, updateErr
		}
		reverted++
	}

	if err = routeRepo.Update(ctx, aggregate); err != nil {
		return CancelRouteResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CancelRouteResult{}, err
	}

	return CancelRouteResult{
		RouteID:        aggregate.ID(),
		Status:         aggregate.Status().String(),
		RevertedOrders: reverted,
	}, nil
}
