package geo

import (
	"math"

	"github.com/mpetrov/geovault/internal/model"
)

// earthRadiusMeters is the mean Earth radius of the spherical model.
const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two coordinates in
// meters using the haversine formula. Pure and symmetric;
// Distance(a, a) == 0.
func Distance(a, b model.Coordinate) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Contains reports whether the point lies within the zone. The boundary is
// inclusive: a point at exactly the radius distance counts as contained.
func Contains(zone model.SafeZone, point model.Coordinate) bool {
	return Distance(zone.Center, point) <= zone.RadiusMeters
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
