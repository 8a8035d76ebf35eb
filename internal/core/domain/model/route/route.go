package route

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrRouteIsNotConstructed is returned when a Route instance was not created
// through the NewRoute or RestoreRoute factory methods.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// CancellationNotePrefix prefixes the annotation written onto unresolved
// stops when their route is cancelled.
const CancellationNotePrefix = "ROUTE CANCELLED: "

// Route is the aggregate root for a delivery run. It exclusively owns its
// stops; every stop transition goes through the aggregate so the "at most one
// Next stop" invariant is enforced in exactly one place.
//
// Invariants:
//   - TotalStops() == len(Stops()) at creation
//   - Stop sequences are 1..N, unique, in visiting order
//   - At most one stop has status Next at any time
//   - Status only advances forward, except Cancel from any non-terminal state
type Route struct {
	id          kernel.UUID
	number      string
	status      Status
	delivererID *kernel.UUID
	stops       []*Stop
	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time
	totalStops  int

	isConstructed bool
}

// TransitionResult reports the outcome of resolving one stop.
type TransitionResult struct {
	// Stop is the stop that was resolved.
	Stop *Stop
	// RouteCompleted is true exactly when this resolution completed the
	// whole route, not before.
	RouteCompleted bool
}

// NewRoute materializes a route from a confirmed set of orders. One stop is
// created per order, in the order the caller supplies (typically already
// side-filtered and sequenced upstream), with snapshots taken at this
// instant. The route starts as Created, or Assigned when a deliverer is
// bound.
func NewRoute(
	id kernel.UUID,
	number string,
	delivererID *kernel.UUID,
	orders []*order.Order,
	now time.Time,
) (*Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if number == "" {
		return nil, errs.NewValueIsRequiredError("route number")
	}

	if len(orders) == 0 {
		return nil, errs.NewValueIsRequiredError("order list")
	}

	status := Created
	var boundDeliverer *kernel.UUID
	if delivererID != nil {
		if err := delivererID.Validate(); err != nil {
			return nil, err
		}
		idCopy := *delivererID
		boundDeliverer = &idCopy
		status = Assigned
	}

	stops := make([]*Stop, 0, len(orders))
	for i, o := range orders {
		snapshot, err := SnapshotFromOrder(o)
		if err != nil {
			return nil, fmt.Errorf("snapshot order %d: %w", i+1, err)
		}

		stop, err := NewStop(kernel.NewUUID(), o.ID(), i+1, snapshot)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	return &Route{
		id:            id,
		number:        number,
		status:        status,
		delivererID:   boundDeliverer,
		stops:         stops,
		createdAt:     now,
		totalStops:    len(stops),
		isConstructed: true,
	}, nil
}

// RestoreRoute reconstructs a Route and its stops from persistence.
func RestoreRoute(
	id kernel.UUID,
	number string,
	status Status,
	delivererID *kernel.UUID,
	stops []*Stop,
	createdAt time.Time,
	startedAt *time.Time,
	completedAt *time.Time,
) (*Route, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	if number == "" {
		return nil, errs.NewValueIsRequiredError("route number")
	}

	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	return &Route{
		id:            id,
		number:        number,
		status:        status,
		delivererID:   delivererID,
		stops:         stops,
		createdAt:     createdAt,
		startedAt:     startedAt,
		completedAt:   completedAt,
		totalStops:    len(stops),
		isConstructed: true,
	}, nil
}

// Validate ensures the Route instance was properly constructed.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID { return r.id }

// Number returns the human-readable route number.
func (r *Route) Number() string { return r.number }

// Status returns the route's current lifecycle status.
func (r *Route) Status() Status { return r.status }

// DelivererID returns the assigned deliverer's ID, or nil if unassigned.
func (r *Route) DelivererID() *kernel.UUID { return r.delivererID }

// Stops returns the route's stops in sequence order. The slice is a copy;
// the stops themselves are the aggregate's and must not be mutated directly.
func (r *Route) Stops() []*Stop {
	stops := make([]*Stop, len(r.stops))
	copy(stops, r.stops)
	return stops
}

// CreatedAt returns when the route was materialized.
func (r *Route) CreatedAt() time.Time { return r.createdAt }

// StartedAt returns when the route went in progress, or nil.
func (r *Route) StartedAt() *time.Time { return r.startedAt }

// CompletedAt returns when the route completed or was cancelled, or nil.
func (r *Route) CompletedAt() *time.Time { return r.completedAt }

// TotalStops returns the number of stops the route was created with.
func (r *Route) TotalStops() int { return r.totalStops }

// NextStop returns the single stop currently in status Next, or nil.
func (r *Route) NextStop() *Stop {
	for _, s := range r.stops {
		if s.Status() == StopNext {
			return s
		}
	}
	return nil
}

// FindStop returns the stop with the given ID, or nil when the route has no
// such stop.
func (r *Route) FindStop(stopID kernel.UUID) *Stop {
	for _, s := range r.stops {
		if s.ID().IsEqual(stopID) {
			return s
		}
	}
	return nil
}

// Start moves the route to InProgress and promotes the lowest-sequence
// Pending stop to Next. Fails with a StateConflict unless the route is
// Created or Assigned.
func (r *Route) Start(now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Start()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.startedAt = &now
	r.promoteNextPending()
	return nil
}

// MarkDelivered resolves the given stop as delivered. The route must be in
// progress and the stop must exist in this route and be the current Next
// stop; otherwise a StateConflict (or ObjectNotFound) is returned and
// nothing changes. On success the next
// Pending stop is promoted, and the route is completed exactly when no
// Pending or Next stop remains.
func (r *Route) MarkDelivered(stopID kernel.UUID, now time.Time) (TransitionResult, error) {
	return r.resolveStop(stopID, func(s *Stop) error {
		return s.markDelivered(now)
	}, now)
}

// MarkFailed resolves the given stop as failed. A non-empty reason is
// required. Same gating, promotion and completion logic as MarkDelivered.
func (r *Route) MarkFailed(stopID kernel.UUID, reason string, now time.Time) (TransitionResult, error) {
	return r.resolveStop(stopID, func(s *Stop) error {
		return s.markFailed(reason, now)
	}, now)
}

// MarkSkipped resolves the given stop as skipped. The reason is optional.
// Same gating, promotion and completion logic as MarkDelivered.
func (r *Route) MarkSkipped(stopID kernel.UUID, reason string, now time.Time) (TransitionResult, error) {
	return r.resolveStop(stopID, func(s *Stop) error {
		return s.markSkipped(reason, now)
	}, now)
}

// Cancel abandons the route from any non-terminal state. Stops that already
// resolved are untouched; every other stop keeps its status enum but gets a
// cancellation annotation. Reverting the originating orders back to
// ready-for-delivery is the caller's responsibility.
func (r *Route) Cancel(reason string, now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.completedAt = &now

	note := CancellationNotePrefix + reason
	for _, s := range r.stops {
		if !s.Status().IsFinal() {
			s.annotateCancellation(note)
		}
	}

	return nil
}

// UnresolvedStops returns the stops that have not reached a terminal status.
// After Cancel, these are the stops whose originating orders should return to
// ready-for-delivery.
func (r *Route) UnresolvedStops() []*Stop {
	unresolved := make([]*Stop, 0)
	for _, s := range r.stops {
		if !s.Status().IsFinal() {
			unresolved = append(unresolved, s)
		}
	}
	return unresolved
}

func (r *Route) resolveStop(stopID kernel.UUID, resolve func(*Stop) error, now time.Time) (TransitionResult, error) {
	if err := r.Validate(); err != nil {
		return TransitionResult{}, err
	}

	if r.status != InProgress {
		return TransitionResult{}, errs.NewStateConflictErrorWithCause(
			"resolve stop",
			fmt.Errorf("%s is not a valid status to resolve a stop", r.status.String()),
		)
	}

	stop := r.FindStop(stopID)
	if stop == nil {
		return TransitionResult{}, errs.NewObjectNotFoundError("stopId", stopID.String())
	}

	if err := resolve(stop); err != nil {
		return TransitionResult{}, err
	}

	r.promoteNextPending()

	completed := false
	if r.allStopsResolved() {
		newStatus, err := r.status.Complete()
		if err != nil {
			return TransitionResult{}, err
		}
		r.status = newStatus
		r.completedAt = &now
		completed = true
	}

	return TransitionResult{Stop: stop, RouteCompleted: completed}, nil
}

// promoteNextPending promotes the lowest-sequence Pending stop to Next, if no
// stop currently holds Next.
func (r *Route) promoteNextPending() {
	if r.NextStop() != nil {
		return
	}

	var candidate *Stop
	for _, s := range r.stops {
		if s.Status() != StopPending {
			continue
		}
		if candidate == nil || s.Sequence() < candidate.Sequence() {
			candidate = s
		}
	}

	if candidate != nil {
		_ = candidate.markNext()
	}
}

func (r *Route) allStopsResolved() bool {
	for _, s := range r.stops {
		if !s.Status().IsFinal() {
			return false
		}
	}
	return true
}
