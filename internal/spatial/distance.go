package spatial

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points
// in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to
// point 2 in degrees (0-360), where 0 is North and 90 is East
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// CapAreaM2 returns the surface area in square meters of a spherical cap
// with the given radius in meters, i.e. the analysis region a point buffer
// covers on the Earth's surface.
func CapAreaM2(radiusMeters float64) float64 {
	if radiusMeters <= 0 {
		return 0
	}
	angle := s1.Angle(radiusMeters / EarthRadiusMeters)
	region := s2.CapFromCenterAngle(s2.PointFromLatLng(s2.LatLngFromDegrees(0, 0)), angle)
	return region.Area() * EarthRadiusMeters * EarthRadiusMeters
}
