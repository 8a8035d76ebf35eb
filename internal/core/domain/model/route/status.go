package route

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a route.
//
// State transitions:
//
//	Created ──> Assigned ──> InProgress ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Status only advances forward, except for Cancel, which is reachable from
// any non-terminal state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the initial status of a route without a deliverer bound.
	Created

	// Assigned indicates a deliverer is bound but the run has not started.
	Assigned

	// InProgress indicates the deliverer is driving the route.
	InProgress

	// Completed indicates every stop reached a terminal status. Terminal.
	Completed

	// Cancelled indicates the route was abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		Assigned:   "Assigned",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "Created",
		Assigned:   "Assigned",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Created -> InProgress
//   - Assigned -> InProgress
func (s Status) Start() (Status, error) {
	if s != Created && s != Assigned {
		return 0, errs.NewStateConflictErrorWithCause(
			"start route",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}

	return InProgress, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - InProgress -> Completed
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, errs.NewStateConflictErrorWithCause(
			"complete route",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions: any non-terminal status -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewStateConflictErrorWithCause(
			"cancel route",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
