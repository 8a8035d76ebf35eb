package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
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

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) seedOrder(number string, status order.Status) *order.Order {
	point, err := kernel.NewCoordinate(-22.90, -43.33)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), number, "Maria Silva",
		"+55 21 90000-0000", "Rua Teste 1", "22745-001", &point, status)
	suite.Require().NoError(err)

	lat := point.Latitude()
	lon := point.Longitude()
	dto := orderrepo.OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		CustomerName: aggregate.CustomerName(),
		Phone:        aggregate.Phone(),
		Address:      aggregate.Address(),
		PostalCode:   aggregate.PostalCode(),
		Latitude:     &lat,
		Longitude:    &lon,
		Status:       int(status),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()
	seeded := suite.seedOrder("ORD-1", order.ReadyForDelivery)

	loaded, err := suite.repository.Get(ctx, seeded.ID())

	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(seeded.ID()))
	suite.Equal("ORD-1", loaded.Number())
	suite.Equal("Maria Silva", loaded.CustomerName())
	suite.Equal(order.ReadyForDelivery, loaded.Status())
	suite.Require().NotNil(loaded.Coordinate())
	suite.InDelta(seeded.Coordinate().Latitude(), loaded.Coordinate().Latitude(), 1e-9)
	suite.InDelta(seeded.Coordinate().Longitude(), loaded.Coordinate().Longitude(), 1e-9)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingOrder_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByIDs_OmitsMissing() {
	ctx := context.Background()
	first := suite.seedOrder("ORD-1", order.ReadyForDelivery)
	second := suite.seedOrder("ORD-2", order.ReadyForDelivery)

	loaded, err := suite.repository.GetByIDs(ctx,
		[]kernel.UUID{first.ID(), kernel.NewUUID(), second.ID()})

	suite.Require().NoError(err)
	suite.Len(loaded, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllReadyForDelivery_FiltersByStatus() {
	ctx := context.Background()
	suite.seedOrder("ORD-1", order.ReadyForDelivery)
	suite.seedOrder("ORD-2", order.OutForDelivery)
	suite.seedOrder("ORD-3", order.ReadyForDelivery)

	loaded, err := suite.repository.GetAllReadyForDelivery(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(loaded, 2)
	suite.Equal("ORD-1", loaded[0].Number())
	suite.Equal("ORD-3", loaded[1].Number())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusChange() {
	ctx := context.Background()
	seeded := suite.seedOrder("ORD-1", order.ReadyForDelivery)
	suite.Require().NoError(seeded.StartDelivery())

	suite.tracker.On("TrackAggregate", seeded.ID(), seeded).Once()

	suite.Require().NoError(suite.repository.Update(ctx, seeded))

	loaded, err := suite.repository.Get(ctx, seeded.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OutForDelivery, loaded.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_Fails() {
	ctx := context.Background()
	point, err := kernel.NewCoordinate(-22.90, -43.33)
	suite.Require().NoError(err)

	unsaved, err := order.NewOrder(kernel.NewUUID(), "ORD-X", "Maria Silva",
		"+55 21 90000-0000", "Rua Teste 1", "22745-001", &point, order.ReadyForDelivery)
	suite.Require().NoError(err)

	suite.Require().Error(suite.repository.Update(ctx, unsaved))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
