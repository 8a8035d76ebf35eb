package commands_test

import (
	"strings"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRouteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	delivererID := kernel.NewUUID()
	first := readyOrderAt(t, "ORD-1", -22.90, -43.30)
	second := readyOrderAt(t, "ORD-2", -22.88, -43.32)
	orderIDs := []kernel.UUID{first.ID(), second.ID()}

	cmd, err := commands.NewCreateRouteCommand(delivererID, orderIDs, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	routeRepo := new(MockRouteRepository)
	delivererRepo := new(MockDelivererRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DelivererRepository").Return(delivererRepo).Once(),
		delivererRepo.On("Get", ctx, delivererID).Return(activeDeliverer(t, delivererID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIDs", ctx, orderIDs).Return([]*order.Order{second, first}, nil).Once(),
		orderRepo.On("Update", ctx, first).Return(nil).Once(),
		orderRepo.On("Update", ctx, second).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Add", ctx, mock.AnythingOfType("*route.Route")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, testSideFilter(t))
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, route.Assigned.String(), result.Status)
	assert.True(t, strings.HasPrefix(result.Number, "RT-"))
	require.Len(t, result.Stops, 2)
	// Caller order wins even when the repository returns a different order.
	assert.Equal(t, "ORD-1", result.Stops[0].OrderNumber)
	assert.Equal(t, 1, result.Stops[0].Sequence)
	assert.Equal(t, "ORD-2", result.Stops[1].OrderNumber)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, order.OutForDelivery, first.Status())
	assert.Equal(t, order.OutForDelivery, second.Status())

	orderRepo.AssertExpectations(t)
	routeRepo.AssertExpectations(t)
	delivererRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateRouteCommandHandler_Handle_SideFilterDropsMismatches(t *testing.T) {
	ctx := t.Context()

	delivererID := kernel.NewUUID()
	east := readyOrderAt(t, "ORD-E", -22.90, -43.30)
	west := readyOrderAt(t, "ORD-W", -22.90, -43.50)
	orderIDs := []kernel.UUID{east.ID(), west.ID()}

	cmd, err := commands.NewCreateRouteCommand(delivererID, orderIDs, "A")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	routeRepo := new(MockRouteRepository)
	delivererRepo := new(MockDelivererRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DelivererRepository").Return(delivererRepo).Once()
	delivererRepo.On("Get", ctx, delivererID).Return(activeDeliverer(t, delivererID), nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetByIDs", ctx, orderIDs).Return([]*order.Order{east, west}, nil).Once()
	orderRepo.On("Update", ctx, east).Return(nil).Once()
	uow.On("RouteRepository").Return(routeRepo).Once()
	routeRepo.On("Add", ctx, mock.AnythingOfType("*route.Route")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, testSideFilter(t))
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.Stops, 1)
	assert.Equal(t, "ORD-E", result.Stops[0].OrderNumber)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "ORD-W")

	// The dropped order stays ready.
	assert.Equal(t, order.ReadyForDelivery, west.Status())
	orderRepo.AssertNotCalled(t, "Update", ctx, west)
}

func TestCreateRouteCommandHandler_Handle_InactiveDeliverer(t *testing.T) {
	ctx := t.Context()

	delivererID := kernel.NewUUID()
	inactive, err := newInactiveDeliverer(delivererID)
	require.NoError(t, err)

	first := readyOrderAt(t, "ORD-1", -22.90, -43.30)
	cmd, err := commands.NewCreateRouteCommand(delivererID, []kernel.UUID{first.ID()}, "")
	require.NoError(t, err)

	delivererRepo := new(MockDelivererRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DelivererRepository").Return(delivererRepo).Once(),
		delivererRepo.On("Get", ctx, delivererID).Return(inactive, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, testSideFilter(t))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateRouteCommandHandler_Handle_MissingOrder(t *testing.T) {
	ctx := t.Context()

	delivererID := kernel.NewUUID()
	first := readyOrderAt(t, "ORD-1", -22.90, -43.30)
	missingID := kernel.NewUUID()
	orderIDs := []kernel.UUID{first.ID(), missingID}

	cmd, err := commands.NewCreateRouteCommand(delivererID, orderIDs, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	delivererRepo := new(MockDelivererRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DelivererRepository").Return(delivererRepo).Once(),
		delivererRepo.On("Get", ctx, delivererID).Return(activeDeliverer(t, delivererID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIDs", ctx, orderIDs).Return([]*order.Order{first}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, testSideFilter(t))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateRouteCommandHandler_Handle_OrderNotPlannable(t *testing.T) {
	ctx := t.Context()

	delivererID := kernel.NewUUID()
	delivering := readyOrderAt(t, "ORD-1", -22.90, -43.30)
	require.NoError(t, delivering.StartDelivery())
	orderIDs := []kernel.UUID{delivering.ID()}

	cmd, err := commands.NewCreateRouteCommand(delivererID, orderIDs, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	delivererRepo := new(MockDelivererRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DelivererRepository").Return(delivererRepo).Once(),
		delivererRepo.On("Get", ctx, delivererID).Return(activeDeliverer(t, delivererID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIDs", ctx, orderIDs).Return([]*order.Order{delivering}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, testSideFilter(t))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
}

func TestCreateRouteCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockUoWFactory)
	handler := commands.NewCreateRouteCommandHandler(factory, testSideFilter(t))

	_, err := handler.Handle(ctx, commands.CreateRouteCommand{})

	require.ErrorIs(t, err, commands.ErrCreateRouteCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
