package ports

import (
	"context"

	"dispatch/internal/core/domain/model/deliverer"
	"dispatch/internal/core/domain/model/kernel"
)

// DelivererRepository defines the read contract for deliverer records.
// Deliverers are managed by a separate staffing system; this subsystem
// only verifies that a deliverer exists and is active before binding
// a route to them.
type DelivererRepository interface {
	// Get retrieves a deliverer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*deliverer.Deliverer, error)
}
