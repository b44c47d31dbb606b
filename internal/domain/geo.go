package domain

import "github.com/golang/geo/s2"

// EarthRadiusMeters is the mean spherical Earth radius used for all
// great-circle math.
const EarthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two
// points given in decimal degrees. s2's angle distance is the haversine
// form, so identical and antipodal points stay NaN-free. Symmetric, and
// zero for identical points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}
