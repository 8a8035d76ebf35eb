package delivererrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/deliverer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDelivererRepository implements DelivererRepository using GORM.
type GormDelivererRepository struct {
	db *gorm.DB
}

// NewGormDelivererRepository creates a new GORM deliverer repository.
func NewGormDelivererRepository(db *gorm.DB) *GormDelivererRepository {
	return &GormDelivererRepository{db: db}
}

// Get retrieves a deliverer by ID.
func (r *GormDelivererRepository) Get(ctx context.Context, id kernel.UUID) (*deliverer.Deliverer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DelivererDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliverer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
