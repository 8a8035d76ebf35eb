package services

import (
	"fmt"

	"dispatch/internal/core/domain/model/order"
)

// RouteSideFilter restricts an order batch to a single delivery side.
// Orders that do not classify to the requested side are dropped with a
// warning rather than failing the batch.
type RouteSideFilter struct {
	classifier DirectionClassifier
}

// NewRouteSideFilter creates a filter backed by the given classifier.
func NewRouteSideFilter(classifier DirectionClassifier) RouteSideFilter {
	return RouteSideFilter{classifier: classifier}
}

// FilterBySide keeps only the orders classifying to the given side.
// An empty side means no restriction: all orders pass with no warnings.
// Each dropped order produces one warning describing the mismatch.
func (f RouteSideFilter) FilterBySide(orders []*order.Order, side Side) ([]*order.Order, []string) {
	if side == "" {
		return orders, nil
	}

	filtered := make([]*order.Order, 0, len(orders))
	var warnings []string
	for _, o := range orders {
		actual := f.classifier.Classify(o.Coordinate())
		if actual == side {
			filtered = append(filtered, o)
			continue
		}
		warnings = append(warnings, fmt.Sprintf(
			"order %s is on side %s, not side %s; excluded from route", o.Number(), actual, side))
	}
	return filtered, warnings
}

// AllMatchSide reports whether every order classifies to the given side.
// An empty side matches any batch.
func (f RouteSideFilter) AllMatchSide(orders []*order.Order, side Side) bool {
	if side == "" {
		return true
	}
	for _, o := range orders {
		if f.classifier.Classify(o.Coordinate()) != side {
			return false
		}
	}
	return true
}
