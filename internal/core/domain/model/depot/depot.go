// Package depot models the fixed depot every route departs from. The depot is
// static configuration, not a mutable entity: a coordinate, a display address
// and a delivery radius in kilometres. All depot-relative geometry (distance,
// radius membership) goes through this package.
package depot

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultRadiusKm is the delivery radius applied when configuration does not
// provide a positive value.
const DefaultRadiusKm float64 = 11.0

// ErrDepotIsNotConstructed is returned when attempting to use an improperly
// initialized Depot. Depots must be created via NewDepot.
var ErrDepotIsNotConstructed = errs.NewValueIsRequiredError(
	"depot must be created via NewDepot constructor")

// Depot is the fixed origin point from which all routes start and from which
// direction and radius are measured. Immutable after construction.
type Depot struct {
	coordinate kernel.Coordinate
	address    string
	radiusKm   float64

	guard guard.ConstructorGuard
}

// NewDepot creates a Depot from configuration values.
//
// A latitude and longitude that are both exactly zero are treated as "unset"
// and rejected with a ConfigurationError: a depot in the Gulf of Guinea is a
// missing configuration, not a warehouse. A radius that is not positive falls
// back to DefaultRadiusKm.
func NewDepot(latitude float64, longitude float64, address string, radiusKm float64) (*Depot, error) {
	if latitude == 0 && longitude == 0 {
		return nil, errs.NewConfigurationErrorWithCause("depot coordinates",
			fmt.Errorf("latitude and longitude are both zero, depot location is unset"))
	}

	coordinate, err := kernel.NewCoordinate(latitude, longitude)
	if err != nil {
		return nil, errs.NewConfigurationErrorWithCause("depot coordinates", err)
	}

	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	return &Depot{
		coordinate: coordinate,
		address:    address,
		radiusKm:   radiusKm,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Depot was created via NewDepot.
func (d *Depot) Validate() error {
	if d == nil {
		return ErrDepotIsNotConstructed
	}
	return d.guard.Validate(ErrDepotIsNotConstructed)
}

// Coordinate returns the depot's position.
func (d *Depot) Coordinate() kernel.Coordinate {
	return d.coordinate
}

// Address returns the human-readable depot address.
func (d *Depot) Address() string {
	return d.address
}

// RadiusKm returns the configured delivery radius in kilometres.
func (d *Depot) RadiusKm() float64 {
	return d.radiusKm
}

// DistanceFromKm returns the great-circle distance from the depot to point in
// kilometres.
func (d *Depot) DistanceFromKm(point kernel.Coordinate) (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return d.coordinate.DistanceKm(point)
}

// IsWithinRadius reports whether point falls inside the delivery radius. An
// optional override replaces the configured radius for this check only. A nil
// point is never within radius: an order without coordinates cannot be
// delivered, but that is a planning warning, not an error.
func (d *Depot) IsWithinRadius(point *kernel.Coordinate, radiusKmOverride ...float64) (bool, error) {
	if err := d.Validate(); err != nil {
		return false, err
	}

	if point == nil {
		return false, nil
	}

	radius := d.radiusKm
	if len(radiusKmOverride) > 0 && radiusKmOverride[0] > 0 {
		radius = radiusKmOverride[0]
	}

	distance, err := d.DistanceFromKm(*point)
	if err != nil {
		return false, err
	}

	return distance <= radius, nil
}
