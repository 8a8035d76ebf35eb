package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude is the minimum valid latitude in decimal degrees.
	MinLatitude float64 = -90
	// MaxLatitude is the maximum valid latitude in decimal degrees.
	MaxLatitude float64 = 90
	// MinLongitude is the minimum valid longitude in decimal degrees.
	MinLongitude float64 = -180
	// MaxLongitude is the maximum valid longitude in decimal degrees.
	MaxLongitude float64 = 180

	// EarthRadiusKm is the mean radius of Earth in kilometres, used by the
	// Haversine distance calculation.
	EarthRadiusKm float64 = 6371.0
)

// ErrCoordinateIsNotConstructed is returned when attempting to use an improperly
// initialized Coordinate. Coordinates must be created via NewCoordinate.
var ErrCoordinateIsNotConstructed = errs.NewValueIsRequiredError(
	"coordinate must be created via NewCoordinate constructor")

// Coordinate is an immutable (latitude, longitude) pair in decimal degrees on
// the WGS-84 ellipsoid. The zero value is invalid and fails validation - use
// NewCoordinate to create instances.
//
// Example:
//
//	depot, err := kernel.NewCoordinate(-22.90, -43.40)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(depot) // Output: Coordinate(-22.900000,-43.400000)
type Coordinate struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinate creates a Coordinate with the given latitude and longitude.
// Latitude must be within [MinLatitude..MaxLatitude] and longitude within
// [MinLongitude..MaxLongitude]; an out-of-range value produces a validation
// error.
func NewCoordinate(latitude float64, longitude float64) (Coordinate, error) {
	coord := Coordinate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(coord.setLatitude(latitude), coord.setLongitude(longitude)); err != nil {
		return Coordinate{}, err
	}

	return coord, nil
}

// Validate checks if the Coordinate was properly constructed via NewCoordinate.
// The zero value fails this validation.
func (c Coordinate) Validate() error {
	return c.guard.Validate(ErrCoordinateIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (c Coordinate) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in decimal degrees.
func (c Coordinate) Longitude() float64 {
	return c.longitude
}

// String returns a human-readable representation in the format
// "Coordinate(lat,lon)". Implements fmt.Stringer.
func (c Coordinate) String() string {
	return fmt.Sprintf("Coordinate(%f,%f)", c.latitude, c.longitude)
}

// IsEqual compares two coordinates for equality of latitude and longitude.
// Both coordinates must be properly constructed.
func (c Coordinate) IsEqual(other Coordinate) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c.latitude == other.latitude && c.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle distance to other in kilometres, using
// the Haversine formula. The result is symmetric and zero (within floating
// tolerance) for equal coordinates.
func (c Coordinate) DistanceKm(other Coordinate) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := degToRad(other.latitude - c.latitude)
	dLon := degToRad(other.longitude - c.longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(c.latitude))*math.Cos(degToRad(other.latitude))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h)), nil
}

// BearingDegreesTo returns the initial compass bearing travelling from c to
// other, in degrees within [0, 360). 0 is north, 90 is east. The result is
// degenerate (but defined) when both coordinates are equal.
func (c Coordinate) BearingDegreesTo(other Coordinate) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degToRad(c.latitude)
	lat2 := degToRad(other.latitude)
	dLon := degToRad(other.longitude - c.longitude)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	bearing := radToDeg(math.Atan2(y, x))
	return math.Mod(bearing+360, 360), nil
}

// setLatitude sets the latitude with range validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, to enable self-encapsulated validation during construction.
func (c *Coordinate) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	c.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (c *Coordinate) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	c.longitude = longitude
	return nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
