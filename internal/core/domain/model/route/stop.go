package route

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrStopIsNotConstructed is returned when a Stop instance was not created
// through the NewStop or RestoreStop factory methods.
var ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop constructor")

// Snapshot holds the order fields copied onto a stop at route-creation time.
// The copies are immutable: they keep printed and displayed route data stable
// even when the source order is edited later.
type Snapshot struct {
	orderNumber  string
	customerName string
	phone        string
	address      string
	coordinate   *kernel.Coordinate
}

// SnapshotFromOrder captures a Snapshot of the given order's display fields.
func SnapshotFromOrder(o *order.Order) (Snapshot, error) {
	if err := o.Validate(); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		orderNumber:  o.Number(),
		customerName: o.CustomerName(),
		phone:        o.Phone(),
		address:      o.Address(),
		coordinate:   o.Coordinate(),
	}, nil
}

// RestoreSnapshot reconstructs a Snapshot from persistence.
func RestoreSnapshot(orderNumber, customerName, phone, address string, coordinate *kernel.Coordinate) Snapshot {
	var coordCopy *kernel.Coordinate
	if coordinate != nil {
		c := *coordinate
		coordCopy = &c
	}
	return Snapshot{
		orderNumber:  orderNumber,
		customerName: customerName,
		phone:        phone,
		address:      address,
		coordinate:   coordCopy,
	}
}

// OrderNumber returns the snapshotted public-facing order number.
func (s Snapshot) OrderNumber() string { return s.orderNumber }

// CustomerName returns the snapshotted customer name.
func (s Snapshot) CustomerName() string { return s.customerName }

// Phone returns the snapshotted customer phone.
func (s Snapshot) Phone() string { return s.phone }

// Address returns the snapshotted delivery address.
func (s Snapshot) Address() string { return s.address }

// Coordinate returns a copy of the snapshotted delivery coordinate, or nil.
func (s Snapshot) Coordinate() *kernel.Coordinate {
	if s.coordinate == nil {
		return nil
	}
	c := *s.coordinate
	return &c
}

// Stop is one delivery within a route, bound to exactly one order. Stops are
// owned by their Route; all status transitions go through the aggregate.
type Stop struct {
	id            kernel.UUID
	orderID       kernel.UUID
	sequence      int
	status        StopStatus
	snapshot      Snapshot
	deliveredAt   *time.Time
	failedAt      *time.Time
	failureReason string

	isConstructed bool
}

// NewStop creates a Pending stop. The sequence is 1-based and defines
// visiting order within the route.
func NewStop(id kernel.UUID, orderID kernel.UUID, sequence int, snapshot Snapshot) (*Stop, error) {
	s := &Stop{
		snapshot:      snapshot,
		status:        StopPending,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setSequence(sequence),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStop reconstructs a Stop from persistence.
func RestoreStop(
	id kernel.UUID,
	orderID kernel.UUID,
	sequence int,
	status StopStatus,
	snapshot Snapshot,
	deliveredAt *time.Time,
	failedAt *time.Time,
	failureReason string,
) (*Stop, error) {
	s, err := NewStop(id, orderID, sequence, snapshot)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	s.status = status
	s.deliveredAt = deliveredAt
	s.failedAt = failedAt
	s.failureReason = failureReason
	return s, nil
}

// Validate ensures the Stop instance was properly constructed.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

// ID returns the stop's unique identifier.
func (s *Stop) ID() kernel.UUID { return s.id }

// OrderID returns the identifier of the order this stop delivers.
func (s *Stop) OrderID() kernel.UUID { return s.orderID }

// Sequence returns the 1-based visiting position within the route.
func (s *Stop) Sequence() int { return s.sequence }

// Status returns the stop's current lifecycle status.
func (s *Stop) Status() StopStatus { return s.status }

// Snapshot returns the order fields captured at route-creation time.
func (s *Stop) Snapshot() Snapshot { return s.snapshot }

// DeliveredAt returns when the stop was delivered, or nil.
func (s *Stop) DeliveredAt() *time.Time { return s.deliveredAt }

// FailedAt returns when the stop failed or was skipped, or nil.
func (s *Stop) FailedAt() *time.Time { return s.failedAt }

// FailureReason returns the failure, skip or cancellation annotation.
func (s *Stop) FailureReason() string { return s.failureReason }

// markNext promotes a pending stop to Next. The aggregate guarantees at most
// one stop per route holds this status.
func (s *Stop) markNext() error {
	if s.status != StopPending {
		return errs.NewStateConflictErrorWithCause("promote stop",
			errors.New(s.status.String()+" is not a valid stop status to promote to Next"))
	}

	s.status = StopNext
	return nil
}

// markDelivered resolves the Next stop as delivered.
func (s *Stop) markDelivered(now time.Time) error {
	if err := s.ensureNext("deliver stop"); err != nil {
		return err
	}

	s.status = StopDelivered
	s.deliveredAt = &now
	return nil
}

// markFailed resolves the Next stop as failed with a mandatory reason.
func (s *Stop) markFailed(reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("failure reason")
	}

	if err := s.ensureNext("fail stop"); err != nil {
		return err
	}

	s.status = StopFailed
	s.failedAt = &now
	s.failureReason = reason
	return nil
}

// markSkipped resolves the Next stop as skipped. The reason is optional.
func (s *Stop) markSkipped(reason string, now time.Time) error {
	if err := s.ensureNext("skip stop"); err != nil {
		return err
	}

	s.status = StopSkipped
	s.failedAt = &now
	s.failureReason = reason
	return nil
}

// annotateCancellation records a cancellation note on a stop that never
// resolved. The status enum is deliberately left untouched.
func (s *Stop) annotateCancellation(note string) {
	s.failureReason = note
}

func (s *Stop) ensureNext(operation string) error {
	if s.status != StopNext {
		return errs.NewStateConflictErrorWithCause(operation,
			errors.New("stop is "+s.status.String()+", only the Next stop can be resolved"))
	}
	return nil
}

func (s *Stop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stop) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Stop) setSequence(sequence int) error {
	if sequence < 1 {
		return errs.NewValueIsInvalidErrorWithCause("sequence",
			errors.New("sequence numbers are 1-based"))
	}
	s.sequence = sequence
	return nil
}
