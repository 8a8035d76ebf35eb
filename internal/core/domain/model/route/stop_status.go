package route

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// StopStatus represents the lifecycle state of a single stop.
//
// State transitions:
//
//	Pending ──> Next ──> Delivered
//	                 ├─> Failed
//	                 └─> Skipped
//
// Delivered, Failed and Skipped are terminal and reached exactly once.
type StopStatus int

const (
	// StopUnknown represents an invalid or undefined status.
	StopUnknown StopStatus = iota

	// StopPending is the initial status: the stop awaits its turn.
	StopPending

	// StopNext marks the single stop currently eligible for completion.
	StopNext

	// StopDelivered indicates the delivery succeeded. Terminal.
	StopDelivered

	// StopFailed indicates the delivery was attempted and failed. Terminal.
	StopFailed

	// StopSkipped indicates the stop was deliberately skipped. Terminal.
	StopSkipped
)

func getStopStatusStrings() map[StopStatus]string {
	return map[StopStatus]string{
		StopUnknown:   "Unknown",
		StopPending:   "Pending",
		StopNext:      "Next",
		StopDelivered: "Delivered",
		StopFailed:    "Failed",
		StopSkipped:   "Skipped",
	}
}

func getValidStopStatusStrings() map[StopStatus]string {
	//nolint:exhaustive // StopUnknown is intentionally excluded as it's invalid
	return map[StopStatus]string{
		StopPending:   "Pending",
		StopNext:      "Next",
		StopDelivered: "Delivered",
		StopFailed:    "Failed",
		StopSkipped:   "Skipped",
	}
}

// Validate checks if the StopStatus value is valid.
func (s StopStatus) Validate() error {
	if _, ok := getValidStopStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stop status is invalid",
			fmt.Errorf("%d is not a valid stop status", s))
	}
	return nil
}

// String returns the human-readable name of the stop status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s StopStatus) String() string {
	if str, ok := getStopStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the stop status is terminal
// (Delivered, Failed or Skipped).
func (s StopStatus) IsFinal() bool {
	return s == StopDelivered || s == StopFailed || s == StopSkipped
}

// IsFinalStopStatus reports whether status is terminal. Convenience helper
// for callers holding a raw status value.
func IsFinalStopStatus(status StopStatus) bool {
	return status.IsFinal()
}
