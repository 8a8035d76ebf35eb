// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Coordinates are nullable since geocoding resolves addresses asynchronously
// and an order may arrive before its coordinates do.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"uniqueIndex"`
	CustomerName string
	Phone        string
	Address      string
	PostalCode   string
	Latitude     *float64
	Longitude    *float64
	Status       int `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		CustomerName: aggregate.CustomerName(),
		Phone:        aggregate.Phone(),
		Address:      aggregate.Address(),
		PostalCode:   aggregate.PostalCode(),
		Status:       int(aggregate.Status()),
	}

	if point := aggregate.Coordinate(); point != nil {
		lat := point.Latitude()
		lon := point.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and coordinates using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	return order.RestoreOrder(
		id,
		dto.Number,
		dto.CustomerName,
		dto.Phone,
		dto.Address,
		dto.PostalCode,
		coordinate,
		order.Status(dto.Status),
	)
}
