package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand represents a request to build a delivery route for a
// deliverer from a set of ready orders, optionally restricted to one side
// of the delivery area.
//
// Example:
//
//	cmd, err := NewCreateRouteCommand(delivererID, orderIDs, "A")
//	if err != nil {
//	    return fmt.Errorf("invalid route request: %w", err)
//	}
//
//	handler := NewCreateRouteCommandHandler(uowFactory, sideFilter)
//	result, err := handler.Handle(ctx, cmd)
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	delivererID kernel.UUID
	orderIDs    []kernel.UUID
	side        services.Side

	guard guard.ConstructorGuard
}

// NewCreateRouteCommand creates a command to build a delivery route.
// Validates that the deliverer ID is valid, the order list is non-empty
// with valid IDs, and the side token (if present) parses to A or B.
func NewCreateRouteCommand(
	delivererID kernel.UUID,
	orderIDs []kernel.UUID,
	sideToken string,
) (CreateRouteCommand, error) {
	routeCommand := CreateRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		routeCommand.setDelivererID(delivererID),
		routeCommand.setOrderIDs(orderIDs),
		routeCommand.setSide(sideToken),
	); err != nil {
		return CreateRouteCommand{}, err
	}

	return routeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

// DelivererID returns the deliverer the route will be assigned to.
func (c CreateRouteCommand) DelivererID() kernel.UUID {
	return c.delivererID
}

// OrderIDs returns the orders to route, in the caller-supplied visiting order.
func (c CreateRouteCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Side returns the requested side restriction, empty when unrestricted.
func (c CreateRouteCommand) Side() services.Side {
	return c.side
}

func (c *CreateRouteCommand) setDelivererID(delivererID kernel.UUID) error {
	if err := delivererID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivererId", err)
	}

	c.delivererID = delivererID
	return nil
}

func (c *CreateRouteCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}

func (c *CreateRouteCommand) setSide(sideToken string) error {
	side, err := services.ParseSide(sideToken)
	if err != nil {
		return err
	}

	c.side = side
	return nil
}
