// Package delivererrepo provides read access to deliverer records.
// Deliverers are owned by the staffing system; this repository only
// verifies existence and activity before routes are bound to them.
package delivererrepo

import (
	"dispatch/internal/core/domain/model/deliverer"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DelivererDTO represents the database structure for deliverer records.
type DelivererDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string
	Phone   string
	Vehicle string
	Active  bool `gorm:"index"`
}

// TableName specifies the database table name for deliverer entities.
func (DelivererDTO) TableName() string {
	return "deliverers"
}

func toDomain(dto DelivererDTO) (*deliverer.Deliverer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return deliverer.NewDeliverer(id, dto.Name, dto.Phone, dto.Vehicle, dto.Active)
}
