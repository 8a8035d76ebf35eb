package routerepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/routerepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// RouteRepositoryIntegrationTestSuite provides integration tests for RouteRepository
// using PostgreSQL containers to verify that a route and its stops persist
// and reload as one aggregate.
type RouteRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *routerepo.GormRouteRepository
	tracker    *MockAggregateTracker
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&routerepo.RouteDTO{}, &routerepo.StopDTO{}))
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stops, routes").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = routerepo.NewGormRouteRepository(suite.db, suite.tracker)
}

func (suite *RouteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) newRoute(stops int) *route.Route {
	orders := make([]*order.Order, 0, stops)
	for i := 0; i < stops; i++ {
		point, err := kernel.NewCoordinate(-22.90, -43.33-float64(i)*0.01)
		suite.Require().NoError(err)
		o, err := order.NewOrder(kernel.NewUUID(), "ORD-"+string(rune('A'+i)), "Maria Silva",
			"+55 21 90000-0000", "Rua Teste 1", "22745-001", &point, order.ReadyForDelivery)
		suite.Require().NoError(err)
		orders = append(orders, o)
	}

	delivererID := kernel.NewUUID()
	aggregate, err := route.NewRoute(kernel.NewUUID(), "RT-0001", &delivererID, orders,
		time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return aggregate
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAggregate() {
	ctx := context.Background()
	aggregate := suite.newRoute(3)

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(aggregate.ID()))
	suite.Equal("RT-0001", loaded.Number())
	suite.Equal(route.Assigned, loaded.Status())
	suite.Equal(3, loaded.TotalStops())

	suite.Require().Len(loaded.Stops(), 3)
	for i, stop := range loaded.Stops() {
		suite.Equal(i+1, stop.Sequence())
		suite.Equal(route.StopPending, stop.Status())
		suite.NotEmpty(stop.Snapshot().OrderNumber())
		suite.NotNil(stop.Snapshot().Coordinate())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitions() {
	ctx := context.Background()
	aggregate := suite.newRoute(2)

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(aggregate.Start(now))
	_, err := aggregate.MarkFailed(aggregate.NextStop().ID(), "customer absent", now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(route.InProgress, loaded.Status())
	suite.Require().NotNil(loaded.StartedAt())

	stops := loaded.Stops()
	suite.Equal(route.StopFailed, stops[0].Status())
	suite.Equal("customer absent", stops[0].FailureReason())
	suite.Require().NotNil(stops[0].FailedAt())
	suite.Equal(route.StopNext, stops[1].Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_PersistsCompletion() {
	ctx := context.Background()
	aggregate := suite.newRoute(1)

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(aggregate.Start(now))
	result, err := aggregate.MarkDelivered(aggregate.NextStop().ID(), now)
	suite.Require().NoError(err)
	suite.True(result.RouteCompleted)

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(route.Completed, loaded.Status())
	suite.Require().NotNil(loaded.CompletedAt())
	suite.Equal(route.StopDelivered, loaded.Stops()[0].Status())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGet_MissingRoute_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestRouteRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RouteRepositoryIntegrationTestSuite))
}
