package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrStartRouteCommandIsNotConstructed = errors.New(
	"StartRouteCommand must be created via NewStartRouteCommand constructor",
)

// StartRouteCommand represents a request to begin executing a route.
type StartRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartRouteCommand creates a command to start the given route.
func NewStartRouteCommand(routeID kernel.UUID) (StartRouteCommand, error) {
	startCommand := StartRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := startCommand.setRouteID(routeID); err != nil {
		return StartRouteCommand{}, err
	}

	return startCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c StartRouteCommand) Validate() error {
	return c.guard.Validate(ErrStartRouteCommandIsNotConstructed)
}

// RouteID returns the route to start.
func (c StartRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c *StartRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}

	c.routeID = routeID
	return nil
}
