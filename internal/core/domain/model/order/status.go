package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the delivery-readiness state of an order.
//
// State transitions (the ones this core performs are marked *):
//
//	Received ──> Preparing ──> ReadyForDelivery ──*──> OutForDelivery ──> Delivered
//	                                  ^                     │
//	                                  └──────────*──────────┘
//	                            (route cancelled before stop resolved)
//
// Cancelled is reachable from any non-terminal state, but only by the
// external order workflow.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Received is the initial status after checkout.
	Received

	// Preparing indicates the order is being picked and packed.
	Preparing

	// ReadyForDelivery indicates the order can be planned onto a route.
	// Only orders in this status with a coordinate are eligible for planning.
	ReadyForDelivery

	// OutForDelivery indicates the order is a stop on a materialized route.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled upstream. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Received:         "Received",
		Preparing:        "Preparing",
		ReadyForDelivery: "ReadyForDelivery",
		OutForDelivery:   "OutForDelivery",
		Delivered:        "Delivered",
		Cancelled:        "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:         "Received",
		Preparing:        "Preparing",
		ReadyForDelivery: "ReadyForDelivery",
		OutForDelivery:   "OutForDelivery",
		Delivered:        "Delivered",
		Cancelled:        "Cancelled",
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

// StartDelivery transitions the status to OutForDelivery.
//
// Valid transitions:
//   - ReadyForDelivery -> OutForDelivery
//
// Any other source status returns a StateConflict error: an order that is not
// ready cannot be placed on a route.
func (s Status) StartDelivery() (Status, error) {
	if s != ReadyForDelivery {
		return 0, errs.NewStateConflictErrorWithCause(
			"start delivery",
			fmt.Errorf("%s is not a valid status to go out for delivery", s.String()),
		)
	}

	return OutForDelivery, nil
}

// ReturnToReady transitions the status back to ReadyForDelivery.
//
// Valid transitions:
//   - OutForDelivery -> ReadyForDelivery (route cancelled before the stop resolved)
//
// Any other source status returns a StateConflict error.
func (s Status) ReturnToReady() (Status, error) {
	if s != OutForDelivery {
		return 0, errs.NewStateConflictErrorWithCause(
			"return to ready",
			fmt.Errorf("%s is not a valid status to return to ready-for-delivery", s.String()),
		)
	}

	return ReadyForDelivery, nil
}
