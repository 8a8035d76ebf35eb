// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RouteRepoFactory provides access to route repository within a transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// DelivererRepoFactory provides access to deliverer repository within a transaction.
	DelivererRepoFactory interface {
		DelivererRepository() ports.DelivererRepository
	}

	// RouteUoW manages transactions for route-only operations.
	// Used by transition commands that only touch the route aggregate.
	RouteUoW interface {
		TxManager
		RouteRepoFactory
	}

	// RouteUoWFactory creates new route unit of work instances.
	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// OrderRouteUoW manages transactions spanning route and order aggregates.
	// Used by commands that mutate a route and revert or advance orders
	// in the same transaction.
	OrderRouteUoW interface {
		TxManager
		OrderRepoFactory
		RouteRepoFactory
	}

	// OrderRouteUoWFactory creates new order+route unit of work instances.
	OrderRouteUoWFactory interface {
		Create() OrderRouteUoW
	}

	// UoW manages transactions across order, route, and deliverer access.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   routeRepo := uow.RouteRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		RouteRepoFactory
		DelivererRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
