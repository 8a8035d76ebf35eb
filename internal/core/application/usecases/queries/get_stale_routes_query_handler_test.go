package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/routerepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/route"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetStaleRoutesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetStaleRoutesQueryHandler
}

func (suite *GetStaleRoutesQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetStaleRoutesQueryHandler(db)
}

func (suite *GetStaleRoutesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetStaleRoutesQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stops, routes").Error)
}

func (suite *GetStaleRoutesQueryHandlerTestSuite) seedRoute(number string, status route.Status, age time.Duration) {
	dto := routerepo.RouteDTO{
		ID:        uuid.New(),
		Number:    number,
		Status:    int(status),
		CreatedAt: time.Now().UTC().Add(-age),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *GetStaleRoutesQueryHandlerTestSuite) TestHandle_ReturnsOnlyStaleUnstartedRoutes() {
	suite.seedRoute("RT-OLD-ASSIGNED", route.Assigned, 5*time.Hour)
	suite.seedRoute("RT-OLDER-CREATED", route.Created, 8*time.Hour)
	suite.seedRoute("RT-FRESH", route.Assigned, 10*time.Minute)
	suite.seedRoute("RT-RUNNING", route.InProgress, 9*time.Hour)
	suite.seedRoute("RT-DONE", route.Completed, 9*time.Hour)

	query, err := queries.NewGetStaleRoutesQuery(4 * time.Hour)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("RT-OLDER-CREATED", result[0].Number)
	suite.Equal("RT-OLD-ASSIGNED", result[1].Number)
}

func (suite *GetStaleRoutesQueryHandlerTestSuite) TestHandle_EmptyWhenNothingStale() {
	suite.seedRoute("RT-FRESH", route.Assigned, time.Minute)

	query, err := queries.NewGetStaleRoutesQuery(time.Hour)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func TestGetStaleRoutesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetStaleRoutesQueryHandlerTestSuite))
}
