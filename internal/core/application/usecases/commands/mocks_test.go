package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/deliverer"
	"dispatch/internal/core/domain/model/depot"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllReadyForDelivery(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

type MockDelivererRepository struct{ mock.Mock }

func (m *MockDelivererRepository) Get(ctx context.Context, id kernel.UUID) (*deliverer.Deliverer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deliverer.Deliverer), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

func (m *MockUoW) DelivererRepository() ports.DelivererRepository {
	args := m.Called()
	return args.Get(0).(ports.DelivererRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRouteUoWFactory struct{ mock.Mock }

func (m *MockRouteUoWFactory) Create() commands.RouteUoW {
	args := m.Called()
	return args.Get(0).(commands.RouteUoW)
}

type MockOrderRouteUoWFactory struct{ mock.Mock }

func (m *MockOrderRouteUoWFactory) Create() commands.OrderRouteUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderRouteUoW)
}

func testSideFilter(t *testing.T) services.RouteSideFilter {
	t.Helper()
	d, err := depot.NewDepot(-22.90, -43.40, "Av. das Americas 1000", 11.0)
	require.NoError(t, err)
	classifier, err := services.NewDirectionClassifier(d)
	require.NoError(t, err)
	return services.NewRouteSideFilter(classifier)
}

func readyOrderAt(t *testing.T, number string, lat, lon float64) *order.Order {
	t.Helper()
	c, err := kernel.NewCoordinate(lat, lon)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, "Customer", "+55 21 90000-0000",
		"Rua Teste 1", "22745-001", &c, order.ReadyForDelivery)
	require.NoError(t, err)
	return o
}

func activeDeliverer(t *testing.T, id kernel.UUID) *deliverer.Deliverer {
	t.Helper()
	d, err := deliverer.NewDeliverer(id, "Maria Silva", "+55 21 91111-1111", "motorcycle", true)
	require.NoError(t, err)
	return d
}

func newInactiveDeliverer(id kernel.UUID) (*deliverer.Deliverer, error) {
	return deliverer.NewDeliverer(id, "Joao Souza", "+55 21 92222-2222", "bicycle", false)
}

func routeFromOrders(t *testing.T, orders ...*order.Order) *route.Route {
	t.Helper()
	delivererID := kernel.NewUUID()
	r, err := route.NewRoute(kernel.NewUUID(), "RT-TEST", &delivererID, orders, time.Now().UTC())
	require.NoError(t, err)
	return r
}
