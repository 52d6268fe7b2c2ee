package gaps

import (
	"math"
	"strings"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
)

const (
	earthRadiusKm = 6371.0

	// samePlaceRadiusKm is the distance under which two coordinates count as
	// the same place (an airport and its city centre, two stations in a metro).
	samePlaceRadiusKm = 50.0
)

// SamePlace reports whether a and b represent the same place.
// The first applicable rule wins:
//  1. both have a city: case-insensitive city equality
//  2. both have coordinates: great-circle distance under 50 km
//  3. either address contains the other point's city
//
// With none of those available the points are different.
func SamePlace(a, b domain.GeoPoint) bool {
	if a.City != "" && b.City != "" {
		return strings.EqualFold(a.City, b.City)
	}

	if km, ok := DistanceKm(a, b); ok {
		return km < samePlaceRadiusKm
	}

	return addressHasCity(a.Address, b.City) || addressHasCity(b.Address, a.City)
}

// DistanceKm returns the haversine distance between a and b in kilometres,
// and false when either point lacks coordinates.
func DistanceKm(a, b domain.GeoPoint) (float64, bool) {
	lat1, lng1, ok := a.Coordinates()
	if !ok {
		return 0, false
	}
	lat2, lng2, ok := b.Coordinates()
	if !ok {
		return 0, false
	}
	return haversine(lat1, lng1, lat2, lng2), true
}

func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func addressHasCity(address, city string) bool {
	if city == "" {
		return false
	}
	return strings.Contains(strings.ToLower(address), strings.ToLower(city))
}
