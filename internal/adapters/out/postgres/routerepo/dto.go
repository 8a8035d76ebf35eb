// Package routerepo provides data transfer objects and mapping functions for route persistence.
// A route and its stops are one consistency boundary: they are written and
// loaded together, with stops ordered by sequence number.
package routerepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting route aggregates.
type RouteDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      string    `gorm:"uniqueIndex"`
	Status      int       `gorm:"index"`
	DelivererID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	TotalStops  int
	Stops       []StopDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for route entities.
func (RouteDTO) TableName() string {
	return "routes"
}

// StopDTO represents one stop row. Order fields are denormalized
// snapshots taken at route creation, so later order edits do not
// rewrite routed history.
type StopDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RouteID       uuid.UUID `gorm:"type:uuid;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	Sequence      int
	Status        int
	OrderNumber   string
	CustomerName  string
	Phone         string
	Address       string
	Latitude      *float64
	Longitude     *float64
	DeliveredAt   *time.Time
	FailedAt      *time.Time
	FailureReason string
}

// TableName specifies the database table name for stop entities.
func (StopDTO) TableName() string {
	return "stops"
}

func fromDomain(aggregate *route.Route) RouteDTO {
	var delivererID *uuid.UUID
	if id := aggregate.DelivererID(); id != nil {
		raw := id.Bytes()
		delivererID = &raw
	}

	stops := make([]StopDTO, 0, aggregate.TotalStops())
	for _, stop := range aggregate.Stops() {
		stops = append(stops, stopFromDomain(aggregate.ID(), stop))
	}

	return RouteDTO{
		ID:          aggregate.ID().Bytes(),
		Number:      aggregate.Number(),
		Status:      int(aggregate.Status()),
		DelivererID: delivererID,
		CreatedAt:   aggregate.CreatedAt(),
		StartedAt:   aggregate.StartedAt(),
		CompletedAt: aggregate.CompletedAt(),
		TotalStops:  aggregate.TotalStops(),
		Stops:       stops,
	}
}

func stopFromDomain(routeID kernel.UUID, stop *route.Stop) StopDTO {
	dto := StopDTO{
		ID:            stop.ID().Bytes(),
		RouteID:       routeID.Bytes(),
		OrderID:       stop.OrderID().Bytes(),
		Sequence:      stop.Sequence(),
		Status:        int(stop.Status()),
		OrderNumber:   stop.Snapshot().OrderNumber(),
		CustomerName:  stop.Snapshot().CustomerName(),
		Phone:         stop.Snapshot().Phone(),
		Address:       stop.Snapshot().Address(),
		DeliveredAt:   stop.DeliveredAt(),
		FailedAt:      stop.FailedAt(),
		FailureReason: stop.FailureReason(),
	}

	if point := stop.Snapshot().Coordinate(); point != nil {
		lat := point.Latitude()
		lon := point.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var delivererID *kernel.UUID
	if dto.DelivererID != nil {
		dID, idErr := kernel.UUIDFromBytes((*dto.DelivererID)[:])
		if idErr != nil {
			return nil, idErr
		}
		delivererID = &dID
	}

	stops := make([]*route.Stop, 0, len(dto.Stops))
	for _, stopDTO := range dto.Stops {
		stop, stopErr := stopToDomain(stopDTO)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	return route.RestoreRoute(
		id,
		dto.Number,
		route.Status(dto.Status),
		delivererID,
		stops,
		dto.CreatedAt,
		dto.StartedAt,
		dto.CompletedAt,
	)
}

func stopToDomain(dto StopDTO) (*route.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var coordinate *kernel.Coordinate
	if dto.Latitude != nil && dto.Longitude != nil {
		point, coordErr := kernel.NewCoordinate(*dto.Latitude, *dto.Longitude)
		if coordErr != nil {
			return nil, coordErr
		}
		coordinate = &point
	}

	snapshot := route.RestoreSnapshot(
		dto.OrderNumber,
		dto.CustomerName,
		dto.Phone,
		dto.Address,
		coordinate,
	)

	return route.RestoreStop(
		id,
		orderID,
		dto.Sequence,
		route.StopStatus(dto.Status),
		snapshot,
		dto.DeliveredAt,
		dto.FailedAt,
		dto.FailureReason,
	)
}
