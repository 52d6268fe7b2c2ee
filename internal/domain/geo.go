package domain

import "strings"

// GeoPoint is an already-geocoded place.
// Address is always present; coordinates and city may be missing when the
// upstream geocoder could not resolve them.
type GeoPoint struct {
	Address          string   `json:"address"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	City             string   `json:"city,omitempty"`
	Country          string   `json:"country,omitempty"`
	PlaceID          string   `json:"place_id,omitempty"`
}

// Coordinates returns the point's latitude and longitude, and false when
// either is missing.
func (p GeoPoint) Coordinates() (lat, lng float64, ok bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return 0, 0, false
	}
	return *p.Latitude, *p.Longitude, true
}

// Label names the place for humans: the city when known, otherwise the address.
func (p GeoPoint) Label() string {
	if p.City != "" {
		return p.City
	}
	return p.Address
}

// problem describes what makes p unusable, or returns "" when it is fine.
func (p GeoPoint) problem() string {
	if strings.TrimSpace(p.Address) == "" {
		return "address is required"
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return "latitude and longitude must be set together"
	}
	if lat, lng, ok := p.Coordinates(); ok {
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return "coordinates are out of range"
		}
	}
	return ""
}
