package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteStopCommandIsNotConstructed = errors.New(
	"CompleteStopCommand must be created via NewCompleteStopCommand constructor",
)

// StopOutcome names the terminal result recorded for a stop.
type StopOutcome string

const (
	// OutcomeDelivered records a successful handover.
	OutcomeDelivered StopOutcome = "delivered"
	// OutcomeFailed records a failed delivery attempt; requires a reason.
	OutcomeFailed StopOutcome = "failed"
	// OutcomeSkipped records a deliberately bypassed stop; reason optional.
	OutcomeSkipped StopOutcome = "skipped"
)

// ParseStopOutcome parses a caller-supplied outcome token case-insensitively.
func ParseStopOutcome(token string) (StopOutcome, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case string(OutcomeDelivered):
		return OutcomeDelivered, nil
	case string(OutcomeFailed):
		return OutcomeFailed, nil
	case string(OutcomeSkipped):
		return OutcomeSkipped, nil
	default:
		return "", errs.NewValueIsInvalidError("outcome")
	}
}

// CompleteStopCommand represents a request to resolve the active stop of
// a route with one of the terminal outcomes.
//
// Example:
//
//	cmd, err := NewCompleteStopCommand(routeID, stopID, OutcomeFailed, "customer absent")
//	if err != nil {
//	    return fmt.Errorf("invalid stop resolution: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CompleteStopCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	stopID  kernel.UUID
	outcome StopOutcome
	reason  string

	guard guard.ConstructorGuard
}

// NewCompleteStopCommand creates a command to resolve a stop.
// A reason is mandatory for OutcomeFailed and optional for OutcomeSkipped;
// OutcomeDelivered ignores it.
func NewCompleteStopCommand(
	routeID kernel.UUID,
	stopID kernel.UUID,
	outcome StopOutcome,
	reason string,
) (CompleteStopCommand, error) {
	stopCommand := CompleteStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		stopCommand.setRouteID(routeID),
		stopCommand.setStopID(stopID),
		stopCommand.setOutcome(outcome, reason),
	); err != nil {
		return CompleteStopCommand{}, err
	}

	return stopCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStopCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStopCommandIsNotConstructed)
}

// RouteID returns the route the stop belongs to.
func (c CompleteStopCommand) RouteID() kernel.UUID {
	return c.routeID
}

// StopID returns the stop to resolve.
func (c CompleteStopCommand) StopID() kernel.UUID {
	return c.stopID
}

// Outcome returns the requested terminal outcome.
func (c CompleteStopCommand) Outcome() StopOutcome {
	return c.outcome
}

// Reason returns the failure or skip reason, empty when not supplied.
func (c CompleteStopCommand) Reason() string {
	return c.reason
}

func (c *CompleteStopCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}

	c.routeID = routeID
	return nil
}

func (c *CompleteStopCommand) setStopID(stopID kernel.UUID) error {
	if err := stopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("stopId", err)
	}

	c.stopID = stopID
	return nil
}

func (c *CompleteStopCommand) setOutcome(outcome StopOutcome, reason string) error {
	switch outcome {
	case OutcomeDelivered, OutcomeSkipped:
	case OutcomeFailed:
		if strings.TrimSpace(reason) == "" {
			return errs.NewValueIsRequiredError("reason")
		}
	default:
		return errs.NewValueIsInvalidError("outcome")
	}

	c.outcome = outcome
	c.reason = strings.TrimSpace(reason)
	return nil
}
