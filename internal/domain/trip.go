// Package domain contains the core data types for the itinerary API.
// This package depends only on google/uuid and is imported by every other
// internal package (repo, service, gaps, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single journey from start to finish.
// A trip is the top-level aggregate; itinerary items belong to a trip.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"` // nil when the trip is open-ended
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
