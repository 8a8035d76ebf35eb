// Package route implements the Route aggregate: a materialized delivery run
// with an ordered collection of stops, driven through a finite-state machine.
//
// Route statuses move forward only (Created -> Assigned -> InProgress ->
// Completed), with Cancelled reachable from any non-terminal state. Stop
// statuses move Pending -> Next -> {Delivered | Failed | Skipped}; a terminal
// stop status is reached exactly once, and at most one stop per route is Next
// at any time. All transition logic is centralized in this package so those
// invariants are enforced in exactly one place.
//
// Stops carry snapshots of order fields (number, customer, address,
// coordinate) copied at route-creation time. The snapshots are immutable:
// printed or displayed route data must not silently change when the source
// order is edited later.
package route
