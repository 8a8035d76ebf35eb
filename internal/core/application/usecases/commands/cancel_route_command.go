package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCancelRouteCommandIsNotConstructed = errors.New(
	"CancelRouteCommand must be created via NewCancelRouteCommand constructor",
)

// CancelRouteCommand represents a request to abort a route before all of
// its stops are resolved.
type CancelRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelRouteCommand creates a command to cancel the given route.
// A non-empty reason is mandatory.
func NewCancelRouteCommand(routeID kernel.UUID, reason string) (CancelRouteCommand, error) {
	cancelCommand := CancelRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setRouteID(routeID),
		cancelCommand.setReason(reason),
	); err != nil {
		return CancelRouteCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRouteCommand) Validate() error {
	return c.guard.Validate(ErrCancelRouteCommandIsNotConstructed)
}

// RouteID returns the route to cancel.
func (c CancelRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Reason returns the cancellation reason.
func (c CancelRouteCommand) Reason() string {
	return c.reason
}

func (c *CancelRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}

	c.routeID = routeID
	return nil
}

func (c *CancelRouteCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
