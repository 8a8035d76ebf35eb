package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelRouteCommandHandler_Handle_RevertsUnresolvedOrders(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	first := readyOrderAt(t, "ORD-1", -22.90, -43.30)
	second := readyOrderAt(t, "ORD-2", -22.89, -43.31)
	third := readyOrderAt(t, "ORD-3", -22.88, -43.32)
	testRoute := routeFromOrders(t, first, second, third)

	require.NoError(t, first.StartDelivery())
	require.NoError(t, second.StartDelivery())
	require.NoError(t, third.StartDelivery())
	require.NoError(t, testRoute.Start(now))
	_, err := testRoute.MarkDelivered(testRoute.NextStop().ID(), now)
	require.NoError(t, err)
	// Stops now: [Delivered, Next, Pending].

	cmd, err := commands.NewCancelRouteCommand(testRoute.ID(), "storm warning")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RouteRepository").Return(routeRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	routeRepo.On("Get", ctx, testRoute.ID()).Return(testRoute, nil).Once()
	orderRepo.On("Get", ctx, second.ID()).Return(second, nil).Once()
	orderRepo.On("Get", ctx, third.ID()).Return(third, nil).Once()
	orderRepo.On("Update", ctx, second).Return(nil).Once()
	orderRepo.On("Update", ctx, third).Return(nil).Once()
	routeRepo.On("Update", ctx, testRoute).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderRouteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelRouteCommandHandler(factory, nil)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, route.Cancelled.String(), result.Status)
	assert.Equal(t, 2, result.RevertedOrders)

	// The delivered order stays out for delivery; the rest return to ready.
	assert.Equal(t, order.OutForDelivery, first.Status())
	assert.Equal(t, order.ReadyForDelivery, second.Status())
	assert.Equal(t, order.ReadyForDelivery, third.Status())

	orderRepo.AssertExpectations(t)
	routeRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelRouteCommandHandler_Handle_CompletedRouteConflicts(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	testRoute := assignedRoute(t, 1)
	require.NoError(t, testRoute.Start(now))
	_, err := testRoute.MarkDelivered(testRoute.NextStop().ID(), now)
	require.NoError(t, err)

	cmd, err := commands.NewCancelRouteCommand(testRoute.ID(), "too late")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		routeRepo.On("Get", ctx, testRoute.ID()).Return(testRoute, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderRouteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelRouteCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}
