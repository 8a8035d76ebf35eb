package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/delivererrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/routerepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cleanupJob := jobs.NewStaleRouteCleanupJob(
		app.CreateGetStaleRoutesQueryHandler(),
		app.CreateCancelRouteCommandHandler(),
		app.StaleRouteMaxAge(),
		logger,
	)
	jobManager := jobs.NewJobManager(cleanupJob)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		DepotLatitude:    goDotEnvVariable("DEPOT_LATITUDE"),
		DepotLongitude:   goDotEnvVariable("DEPOT_LONGITUDE"),
		DepotAddress:     goDotEnvVariable("DEPOT_ADDRESS"),
		DepotRadiusKm:    goDotEnvVariable("DEPOT_RADIUS_KM"),
		ExclusionZones:   goDotEnvVariable("EXCLUSION_ZONES"),
		OrsBaseURL:       goDotEnvVariable("ORS_BASE_URL"),
		OrsAPIKey:        goDotEnvVariable("ORS_API_KEY"),
		OrsProfile:       goDotEnvVariable("ORS_PROFILE"),
		OrsTimeout:       goDotEnvVariable("ORS_TIMEOUT"),
		StaleRouteMaxAge: goDotEnvVariable("STALE_ROUTE_MAX_AGE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&routerepo.RouteDTO{},
		&routerepo.StopDTO{},
		&delivererrepo.DelivererDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreateRouteCommandHandler(),
		app.CreateStartRouteCommandHandler(),
		app.CreateCompleteStopCommandHandler(),
		app.CreateCancelRouteCommandHandler(),
		app.CreatePreviewRouteQueryHandler(),
		app.CreateGetRouteQueryHandler(),
		app.CreateGetReadyOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
