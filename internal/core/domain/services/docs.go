// Package services contains stateless domain services for route planning.
//
// The services coordinate behavior that spans multiple aggregates or
// requires external collaborators:
//   - DirectionClassifier splits delivery points into two compass-based
//     sides relative to the depot.
//   - RouteSideFilter restricts an order batch to a single side.
//   - StopSequencer orders delivery points for visiting, preferring an
//     external matrix provider and falling back to a local greedy
//     ordering when the provider is unavailable.
package services
