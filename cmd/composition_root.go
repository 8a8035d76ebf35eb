package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/adapters/out/ors"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/depot"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/routelock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	depot      *depot.Depot
	zones      *zone.Zones
	classifier services.DirectionClassifier
	sideFilter services.RouteSideFilter
	sequencer  services.StopSequencer
	routeLocks *routelock.Registry

	staleRouteMaxAge time.Duration
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	depotRef, err := buildDepot(configs)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("configure depot: %w", err)
	}

	zones, err := buildZones(configs.ExclusionZones)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("configure exclusion zones: %w", err)
	}

	classifier, err := services.NewDirectionClassifier(depotRef)
	if err != nil {
		return CompositionRoot{}, err
	}

	optimizer, err := buildOptimizer(configs)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("configure route optimizer: %w", err)
	}

	staleRouteMaxAge, err := parseDurationOr(configs.StaleRouteMaxAge, 0)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("configure stale route age: %w", err)
	}

	return CompositionRoot{
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		depot:            depotRef,
		zones:            zones,
		classifier:       classifier,
		sideFilter:       services.NewRouteSideFilter(classifier),
		sequencer:        services.NewStopSequencer(optimizer),
		routeLocks:       routelock.NewRegistry(),
		staleRouteMaxAge: staleRouteMaxAge,
	}, nil
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRouteCommandHandler(f, c.sideFilter)
}

func (c *CompositionRoot) CreateStartRouteCommandHandler() commands.StartRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartRouteCommandHandler(f, c.routeLocks)
}

func (c *CompositionRoot) CreateCompleteStopCommandHandler() commands.CompleteStopCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteStopCommandHandler(f, c.routeLocks)
}

func (c *CompositionRoot) CreateCancelRouteCommandHandler() commands.CancelRouteCommandHandler {
	var f commands.OrderRouteUoWFactory = FuncOrderRouteUoWFactory(func() commands.OrderRouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelRouteCommandHandler(f, c.routeLocks)
}

func (c *CompositionRoot) CreatePreviewRouteQueryHandler() queries.PreviewRouteQueryHandler {
	return queries.NewPreviewRouteQueryHandler(
		c.uowFactory.Create().OrderRepository(),
		c.depot,
		c.zones,
		c.classifier,
		c.sequencer,
		queries.DefaultSequencingDelay,
	)
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReadyOrdersQueryHandler() queries.GetReadyOrdersQueryHandler {
	return queries.NewGetReadyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleRoutesQueryHandler() queries.GetStaleRoutesQueryHandler {
	return queries.NewGetStaleRoutesQueryHandler(c.gormDB)
}

// StaleRouteMaxAge is the configured age threshold for the cleanup job.
// Zero means use the job's default.
func (c *CompositionRoot) StaleRouteMaxAge() time.Duration {
	return c.staleRouteMaxAge
}

func buildDepot(configs Config) (*depot.Depot, error) {
	latitude, err := strconv.ParseFloat(configs.DepotLatitude, 64)
	if err != nil {
		return nil, errs.NewConfigurationErrorWithCause("DEPOT_LATITUDE", err)
	}
	longitude, err := strconv.ParseFloat(configs.DepotLongitude, 64)
	if err != nil {
		return nil, errs.NewConfigurationErrorWithCause("DEPOT_LONGITUDE", err)
	}

	radiusKm := depot.DefaultRadiusKm
	if configs.DepotRadiusKm != "" {
		radiusKm, err = strconv.ParseFloat(configs.DepotRadiusKm, 64)
		if err != nil {
			return nil, errs.NewConfigurationErrorWithCause("DEPOT_RADIUS_KM", err)
		}
	}

	return depot.NewDepot(latitude, longitude, configs.DepotAddress, radiusKm)
}

type zoneConfig struct {
	Name    string       `json:"name"`
	Polygon [][2]float64 `json:"polygon"`
}

func buildZones(raw string) (*zone.Zones, error) {
	if raw == "" {
		return zone.NewZones(), nil
	}

	var configs []zoneConfig
	if err := json.Unmarshal([]byte(raw), &configs); err != nil {
		return nil, errs.NewConfigurationErrorWithCause("EXCLUSION_ZONES", err)
	}

	zones := make([]zone.Zone, 0, len(configs))
	for _, zc := range configs {
		polygon := make([]kernel.Coordinate, 0, len(zc.Polygon))
		for _, vertex := range zc.Polygon {
			point, err := kernel.NewCoordinate(vertex[0], vertex[1])
			if err != nil {
				return nil, errs.NewConfigurationErrorWithCause("EXCLUSION_ZONES", err)
			}
			polygon = append(polygon, point)
		}

		z, err := zone.NewZone(zc.Name, polygon)
		if err != nil {
			return nil, errs.NewConfigurationErrorWithCause("EXCLUSION_ZONES", err)
		}
		zones = append(zones, z)
	}

	return zone.NewZones(zones...), nil
}

// buildOptimizer returns nil when no API key is configured; the stop
// sequencer then always uses its straight-line fallback.
func buildOptimizer(configs Config) (ports.RouteOptimizer, error) {
	if configs.OrsAPIKey == "" {
		return nil, nil
	}

	baseURL := configs.OrsBaseURL
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	profile := configs.OrsProfile
	if profile == "" {
		profile = "driving-car"
	}

	timeout, err := parseDurationOr(configs.OrsTimeout, ors.DefaultTimeout)
	if err != nil {
		return nil, errs.NewConfigurationErrorWithCause("ORS_TIMEOUT", err)
	}

	return ors.NewMatrixOptimizer(baseURL, configs.OrsAPIKey, profile, timeout)
}

func parseDurationOr(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncOrderRouteUoWFactory func() commands.OrderRouteUoW

func (f FuncOrderRouteUoWFactory) Create() commands.OrderRouteUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
