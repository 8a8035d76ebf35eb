// Package ports defines repository and external-service interfaces for the
// dispatch domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are created upstream by the intake system; this subsystem reads
// them for planning and updates their status as routes progress.
type OrderRepository interface {
	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIDs retrieves the orders matching the given identifiers.
	// Identifiers with no matching order are silently omitted from the
	// result; callers compare lengths to detect missing orders.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// GetAllReadyForDelivery retrieves all orders in ReadyForDelivery status.
	// Used by preview and planning workflows to list plannable orders.
	GetAllReadyForDelivery(ctx context.Context) ([]*order.Order, error)

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error
}
