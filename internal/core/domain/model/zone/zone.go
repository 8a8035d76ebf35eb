// Package zone models exclusion zones: named polygon areas where deliveries
// are never planned. Zones are static configuration seeded at process start;
// this core exposes no mutation API for them.
package zone

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Zone is a named, ordered polygon of at least 3 coordinates.
type Zone struct {
	name    string
	polygon []kernel.Coordinate
}

// NewZone creates a named exclusion zone. A zone needs a non-empty name and a
// polygon with at least 3 vertices; anything less is a ConfigurationError.
func NewZone(name string, polygon []kernel.Coordinate) (Zone, error) {
	if name == "" {
		return Zone{}, errs.NewConfigurationError("exclusion zone name")
	}

	if len(polygon) < 3 {
		return Zone{}, errs.NewConfigurationErrorWithCause("exclusion zone polygon",
			fmt.Errorf("zone %q has %d vertices, need at least 3", name, len(polygon)))
	}

	for _, vertex := range polygon {
		if err := vertex.Validate(); err != nil {
			return Zone{}, errs.NewConfigurationErrorWithCause("exclusion zone polygon", err)
		}
	}

	// Copy so later mutation of the caller's slice cannot reshape the zone.
	vertices := make([]kernel.Coordinate, len(polygon))
	copy(vertices, polygon)

	return Zone{name: name, polygon: vertices}, nil
}

// Name returns the zone's display name.
func (z Zone) Name() string {
	return z.name
}

// Contains reports whether point falls inside the zone polygon.
func (z Zone) Contains(point kernel.Coordinate) bool {
	return kernel.PointInPolygon(point, z.polygon)
}

// Zones is an ordered collection of exclusion zones, in registration order.
type Zones struct {
	zones []Zone
}

// NewZones creates the exclusion-zone set. An empty set is valid: it excludes
// nothing.
func NewZones(zones ...Zone) *Zones {
	all := make([]Zone, len(zones))
	copy(all, zones)
	return &Zones{zones: all}
}

// ContainingZones returns the names of every zone containing point, in
// registration order.
func (zs *Zones) ContainingZones(point kernel.Coordinate) []string {
	names := make([]string, 0)
	for _, z := range zs.zones {
		if z.Contains(point) {
			names = append(names, z.Name())
		}
	}
	return names
}

// IsExcluded reports whether point falls inside any configured zone.
func (zs *Zones) IsExcluded(point kernel.Coordinate) bool {
	for _, z := range zs.zones {
		if z.Contains(point) {
			return true
		}
	}
	return false
}
