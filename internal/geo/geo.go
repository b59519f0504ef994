package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"

	"github.com/parkspot/parkspot/internal/models"
)

const earthRadiusKm = 6371.0

// walkingSpeedKmh is a rough pedestrian pace used for the list display.
const walkingSpeedKmh = 4.5

// DistanceKm returns the haversine great-circle distance between two points.
func DistanceKm(a, b models.Coordinates) float64 {
	lat1 := a.Lat() * math.Pi / 180
	lat2 := b.Lat() * math.Pi / 180
	dLat := (b.Lat() - a.Lat()) * math.Pi / 180
	dLng := (b.Lng() - a.Lng()) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// WalkingMinutes estimates the walk time between two points, floored at one
// minute for anything non-zero.
func WalkingMinutes(a, b models.Coordinates) int {
	km := DistanceKm(a, b)
	if km == 0 {
		return 0
	}
	minutes := int(math.Round(km / walkingSpeedKmh * 60))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// LocationCode returns a short geohash for display next to an address.
// Six characters resolve to roughly a city block.
func LocationCode(c models.Coordinates) string {
	return geohash.EncodeWithPrecision(c.Lat(), c.Lng(), 6)
}
