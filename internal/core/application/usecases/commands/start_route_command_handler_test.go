package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assignedRoute(t *testing.T, stops int) *route.Route {
	t.Helper()
	orders := make([]*order.Order, 0, stops)
	for i := 0; i < stops; i++ {
		orders = append(orders, readyOrderAt(t, "ORD-"+string(rune('A'+i)), -22.90, -43.30-float64(i)*0.01))
	}
	delivererID := kernel.NewUUID()
	r, err := route.NewRoute(kernel.NewUUID(), "RT-TEST", &delivererID, orders, time.Now().UTC())
	require.NoError(t, err)
	return r
}

func TestNewStartRouteCommandFromHandlerFile(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		routeID := kernel.NewUUID()

		cmd, err := commands.NewStartRouteCommand(routeID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.RouteID().IsEqual(routeID))
	})

	t.Run("should fail with empty route id", func(t *testing.T) {
		_, err := commands.NewStartRouteCommand(kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestStartRouteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testRoute := assignedRoute(t, 3)
	cmd, err := commands.NewStartRouteCommand(testRoute.ID())
	require.NoError(t, err)

	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Get", ctx, testRoute.ID()).Return(testRoute, nil).Once(),
		routeRepo.On("Update", ctx, testRoute).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRouteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartRouteCommandHandler(factory, nil)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, route.InProgress.String(), result.Status)
	assert.Equal(t, 1, result.NextSequence)
	assert.True(t, result.NextStopID.IsEqual(testRoute.Stops()[0].ID()))
	assert.False(t, result.StartedAt.IsZero())

	routeRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestStartRouteCommandHandler_Handle_StateConflict(t *testing.T) {
	ctx := t.Context()

	testRoute := assignedRoute(t, 1)
	require.NoError(t, testRoute.Start(time.Now().UTC()))

	cmd, err := commands.NewStartRouteCommand(testRoute.ID())
	require.NoError(t, err)

	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Get", ctx, testRoute.ID()).Return(testRoute, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRouteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartRouteCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	routeRepo.AssertNotCalled(t, "Update", ctx, testRoute)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestStartRouteCommandHandler_Handle_RouteNotFound(t *testing.T) {
	ctx := t.Context()

	routeID := kernel.NewUUID()
	cmd, err := commands.NewStartRouteCommand(routeID)
	require.NoError(t, err)

	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Get", ctx, routeID).Return(nil, errs.NewObjectNotFoundError("routeId", routeID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRouteUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartRouteCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestStartRouteCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewStartRouteCommand(kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockRouteUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewStartRouteCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
