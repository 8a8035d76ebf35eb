package services

import (
	"dispatch/internal/core/domain/model/depot"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// DirectionClassifier is a domain service that assigns every delivery
// point to exactly one side of the delivery area based on the initial
// compass bearing from the depot.
//
// The split is a hard binary: bearings in [0, 180) are side A, bearings
// in [180, 360) are side B. There is no dead zone; any point with
// coordinates resolves to exactly one side. Points without coordinates
// classify as SideUnknown. Exclusion-zone filtering is a separate
// concern and must happen before classification.
type DirectionClassifier struct {
	depot *depot.Depot
}

// NewDirectionClassifier creates a classifier anchored at the given depot.
func NewDirectionClassifier(depot *depot.Depot) (DirectionClassifier, error) {
	if depot == nil {
		return DirectionClassifier{}, errs.NewValueIsRequiredError("depot")
	}
	return DirectionClassifier{depot: depot}, nil
}

// Classify returns the side for the given point. A nil point classifies
// as SideUnknown; classification itself never fails.
func (c DirectionClassifier) Classify(point *kernel.Coordinate) Side {
	if point == nil {
		return SideUnknown
	}

	bearing, err := c.depot.Coordinate().BearingDegreesTo(*point)
	if err != nil {
		return SideUnknown
	}

	if bearing < 180 {
		return SideA
	}
	return SideB
}
