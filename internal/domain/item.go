package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemKind is the closed set of itinerary segment types.
type ItemKind string

const (
	ItemKindFlight    ItemKind = "flight"
	ItemKindTransport ItemKind = "transport"
	ItemKindLodging   ItemKind = "lodging"
)

// Valid reports whether k is one of the known kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case ItemKindFlight, ItemKindTransport, ItemKindLodging:
		return true
	}
	return false
}

// IsTransit reports whether the kind moves the traveller between places.
func (k ItemKind) IsTransit() bool {
	return k == ItemKindFlight || k == ItemKindTransport
}

// TransportMode describes how a ground or sea transport segment travels.
type TransportMode string

const (
	TransportModeTrain TransportMode = "train"
	TransportModeBus   TransportMode = "bus"
	TransportModeCar   TransportMode = "car"
	TransportModeFerry TransportMode = "ferry"
	TransportModeOther TransportMode = "other"
)

// Valid reports whether m is one of the known modes.
func (m TransportMode) Valid() bool {
	switch m {
	case TransportModeTrain, TransportModeBus, TransportModeCar, TransportModeFerry, TransportModeOther:
		return true
	}
	return false
}

// Item is one scheduled segment of a trip.
//
// Exactly one of Flight, Transport or Lodging may be set, and only the one
// matching Kind. A nil payload is allowed: the segment is known but its
// details have not been recorded yet.
//
// SequenceIndex is the display order chosen by the traveller. Analysis never
// uses it; chronological order always comes from StartTime.
type Item struct {
	ID            uuid.UUID
	TripID        uuid.UUID
	Kind          ItemKind
	Title         string
	StartTime     time.Time
	EndTime       time.Time
	Notes         string
	SequenceIndex int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Flight    *FlightDetail
	Transport *TransportDetail
	Lodging   *LodgingDetail
}

// FlightDetail carries the flight-specific fields of a flight item.
type FlightDetail struct {
	ItemID             uuid.UUID
	Airline            string
	FlightNumber       string
	ConfirmationNumber string
	Departure          GeoPoint
	Arrival            GeoPoint
}

// TransportDetail carries the fields of a ground or sea transport item.
type TransportDetail struct {
	ItemID             uuid.UUID
	Mode               TransportMode
	Carrier            string
	ConfirmationNumber string
	Departure          GeoPoint
	Arrival            GeoPoint
}

// LodgingDetail carries the fields of a lodging stay. Location covers the
// whole stay.
type LodgingDetail struct {
	ItemID             uuid.UUID
	Name               string
	ConfirmationNumber string
	Location           GeoPoint
}

// Validate enforces the rules the gap analyzer relies on:
//   - Title must be non-empty.
//   - Kind must be known, and any detail payload must match it.
//   - EndTime must be after StartTime.
//   - Every location needs an address; coordinates come in pairs and in range.
//
// Failures wrap ErrValidation.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !it.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, it.Kind)
	}
	if it.StartTime.IsZero() || it.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrValidation)
	}
	if !it.EndTime.After(it.StartTime) {
		return fmt.Errorf("%w: end_time must be after start_time", ErrValidation)
	}

	switch {
	case it.Flight != nil && it.Kind != ItemKindFlight,
		it.Transport != nil && it.Kind != ItemKindTransport,
		it.Lodging != nil && it.Kind != ItemKindLodging:
		return fmt.Errorf("%w: details do not match kind %q", ErrValidation, it.Kind)
	}

	type namedPoint struct {
		name  string
		point GeoPoint
	}
	var points []namedPoint
	switch {
	case it.Flight != nil:
		points = []namedPoint{{"departure", it.Flight.Departure}, {"arrival", it.Flight.Arrival}}
	case it.Transport != nil:
		if m := it.Transport.Mode; m != "" && !m.Valid() {
			return fmt.Errorf("%w: unknown transport mode %q", ErrValidation, m)
		}
		points = []namedPoint{{"departure", it.Transport.Departure}, {"arrival", it.Transport.Arrival}}
	case it.Lodging != nil:
		points = []namedPoint{{"location", it.Lodging.Location}}
	}
	for _, np := range points {
		if problem := np.point.problem(); problem != "" {
			return fmt.Errorf("%w: %s %s", ErrValidation, np.name, problem)
		}
	}
	return nil
}
