package kernel

// PointInPolygon reports whether point lies inside the polygon defined by the
// ordered vertices, using the ray-casting algorithm. A polygon with fewer than
// 3 vertices contains nothing. Points exactly on an edge may resolve to either
// side; the behavior is consistent within this implementation but otherwise
// unspecified.
func PointInPolygon(point Coordinate, polygon []Coordinate) bool {
	if len(polygon) < 3 {
		return false
	}

	lat := point.Latitude()
	lon := point.Longitude()

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		latI, lonI := polygon[i].Latitude(), polygon[i].Longitude()
		latJ, lonJ := polygon[j].Latitude(), polygon[j].Longitude()

		if (lonI > lon) != (lonJ > lon) &&
			lat < (latJ-latI)*(lon-lonI)/(lonJ-lonI)+latI {
			inside = !inside
		}
		j = i
	}

	return inside
}
