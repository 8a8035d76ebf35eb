package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateRouteStop describes one stop of a freshly created route.
type CreateRouteStop struct {
	StopID       kernel.UUID
	Sequence     int
	OrderNumber  string
	CustomerName string
	Status       string
}

// CreateRouteResult carries the outcome of route creation back to the caller.
type CreateRouteResult struct {
	RouteID  kernel.UUID
	Number   string
	Status   string
	Stops    []CreateRouteStop
	Warnings []string
}

// CreateRouteCommandHandler builds a route from ready orders and assigns
// it to a deliverer. Orders are snapshotted into stops in the caller's
// order and moved to OutForDelivery in the same transaction.
type CreateRouteCommandHandler struct {
	uowFactory UoWFactory
	sideFilter services.RouteSideFilter
}

// NewCreateRouteCommandHandler creates a handler for route creation.
// Requires a UoWFactory for coordinating transactional updates across
// order, route, and deliverer repositories.
func NewCreateRouteCommandHandler(
	uowFactory UoWFactory,
	sideFilter services.RouteSideFilter,
) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
		sideFilter: sideFilter,
	}
}

// Handle processes the route creation command.
//
// The deliverer must exist and be active, and every requested order must
// exist and be plannable (ready for delivery with coordinates). When a
// side restriction is present, orders on the other side are dropped with
// a warning. Each routed order moves to OutForDelivery and the route with
// its stops is persisted atomically.
func (h CreateRouteCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRouteCommand,
) (CreateRouteResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateRouteResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateRouteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignee, err := uow.DelivererRepository().Get(ctx, cmd.DelivererID())
	if err != nil {
		return CreateRouteResult{}, err
	}
	if !assignee.IsActive() {
		return CreateRouteResult{}, errs.NewStateConflictError(
			fmt.Sprintf("assign route to inactive deliverer %s", assignee.Name()))
	}

	orderRepo := uow.OrderRepository()

	orders, err := h.fetchInRequestedOrder(ctx, orderRepo, cmd.OrderIDs())
	if err != nil {
		return CreateRouteResult{}, err
	}

	for _, o := range orders {
		if !o.IsPlannable() {
			return CreateRouteResult{}, errs.NewStateConflictError(
				fmt.Sprintf("route order %s in status %s without coordinates resolved", o.Number(), o.Status()))
		}
	}

	routed, warnings := h.sideFilter.FilterBySide(orders, cmd.Side())
	if len(routed) == 0 {
		return CreateRouteResult{}, errs.NewValueIsInvalidErrorWithCause("side",
			fmt.Errorf("no orders remain on side %s", cmd.Side()))
	}

	routeID := kernel.NewUUID()
	delivererID := cmd.DelivererID()
	newRoute, err := route.NewRoute(routeID, routeNumberFor(routeID), &delivererID, routed, time.Now().UTC())
	if err != nil {
		return CreateRouteResult{}, err
	}

	for _, o := range routed {
		if err = o.StartDelivery(); err != nil {
			return CreateRouteResult{}, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return CreateRouteResult{}, err
		}
	}

	if err = uow.RouteRepository().Add(ctx, newRoute); err != nil {
		return CreateRouteResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateRouteResult{}, err
	}

	return buildCreateRouteResult(newRoute, warnings), nil
}

// fetchInRequestedOrder loads the orders and restores the caller-supplied
// ordering, which typically encodes an upstream sequencing decision.
func (h CreateRouteCommandHandler) fetchInRequestedOrder(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	ids []kernel.UUID,
) ([]*order.Order, error) {
	fetched, err := orderRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*order.Order, len(fetched))
	for _, o := range fetched {
		byID[o.ID().String()] = o
	}

	ordered := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, ok := byID[id.String()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("orderIds", id)
		}
		ordered = append(ordered, o)
	}

	return ordered, nil
}

func routeNumberFor(routeID kernel.UUID) string {
	compact := strings.ReplaceAll(routeID.String(), "-", "")
	return "RT-" + strings.ToUpper(compact[:8])
}

func buildCreateRouteResult(created *route.Route, warnings []string) CreateRouteResult {
	stops := make([]CreateRouteStop, 0, created.TotalStops())
	for _, s := range created.Stops() {
		stops = append(stops, CreateRouteStop{
			StopID:       s.ID(),
			Sequence:     s.Sequence(),
			OrderNumber:  s.Snapshot().OrderNumber(),
			CustomerName: s.Snapshot().CustomerName(),
			Status:       s.Status().String(),
		})
	}

	return CreateRouteResult{
		RouteID:  created.ID(),
		Number:   created.Number(),
		Status:   created.Status().String(),
		Stops:    stops,
		Warnings: warnings,
	}
}
