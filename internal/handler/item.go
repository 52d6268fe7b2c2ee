package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
)

// GeoPoint is the JSON form of domain.GeoPoint.
type GeoPoint struct {
	Address          string   `json:"address" validate:"required"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	City             string   `json:"city,omitempty"`
	Country          string   `json:"country,omitempty"`
	PlaceID          string   `json:"place_id,omitempty"`
}

// FlightDetail is the JSON form of domain.FlightDetail.
type FlightDetail struct {
	Airline            string   `json:"airline,omitempty"`
	FlightNumber       string   `json:"flight_number,omitempty"`
	ConfirmationNumber string   `json:"confirmation_number,omitempty"`
	Departure          GeoPoint `json:"departure"`
	Arrival            GeoPoint `json:"arrival"`
}

// TransportDetail is the JSON form of domain.TransportDetail.
type TransportDetail struct {
	Mode               string   `json:"mode,omitempty" validate:"omitempty,oneof=train bus car ferry other"`
	Carrier            string   `json:"carrier,omitempty"`
	ConfirmationNumber string   `json:"confirmation_number,omitempty"`
	Departure          GeoPoint `json:"departure"`
	Arrival            GeoPoint `json:"arrival"`
}

// LodgingDetail is the JSON form of domain.LodgingDetail.
type LodgingDetail struct {
	Name               string   `json:"name,omitempty"`
	ConfirmationNumber string   `json:"confirmation_number,omitempty"`
	Location           GeoPoint `json:"location"`
}

// ItemRequest is the body of POST /trips/{id}/items.
// At most one of Flight, Transport, Lodging may be set, matching Kind.
type ItemRequest struct {
	Kind          string           `json:"kind" validate:"required,oneof=flight transport lodging"`
	Title         string           `json:"title" validate:"required,max=200"`
	StartTime     time.Time        `json:"start_time" validate:"required"`
	EndTime       time.Time        `json:"end_time" validate:"required"`
	Notes         string           `json:"notes,omitempty"`
	SequenceIndex int              `json:"sequence_index" validate:"gte=0"`
	Flight        *FlightDetail    `json:"flight,omitempty"`
	Transport     *TransportDetail `json:"transport,omitempty"`
	Lodging       *LodgingDetail   `json:"lodging,omitempty"`
}

// Item is the JSON representation of an itinerary item.
type Item struct {
	ID            uuid.UUID        `json:"id"`
	TripID        uuid.UUID        `json:"trip_id"`
	Kind          string           `json:"kind"`
	Title         string           `json:"title"`
	StartTime     time.Time        `json:"start_time"`
	EndTime       time.Time        `json:"end_time"`
	Notes         string           `json:"notes,omitempty"`
	SequenceIndex int              `json:"sequence_index"`
	Flight        *FlightDetail    `json:"flight,omitempty"`
	Transport     *TransportDetail `json:"transport,omitempty"`
	Lodging       *LodgingDetail   `json:"lodging,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CreateItem handles POST /trips/{id}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id", "trip")
	if !ok {
		return
	}
	var body ItemRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	created, err := s.items.Create(r.Context(), requestToItem(tripID, body))
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, itemToResponse(created))
}

// ListItems handles GET /trips/{id}/items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id", "trip")
	if !ok {
		return
	}

	items, err := s.items.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = itemToResponse(it)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetItem handles GET /trips/{id}/items/{itemId}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id", "item")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId", "item")
	if !ok {
		return
	}

	item, err := s.items.GetByID(r.Context(), tripID, itemID)
	if err != nil {
		s.writeError(w, r, err, "item")
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /trips/{id}/items/{itemId}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id", "item")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId", "item")
	if !ok {
		return
	}

	if err := s.items.Delete(r.Context(), tripID, itemID); err != nil {
		s.writeError(w, r, err, "item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToItem(tripID uuid.UUID, body ItemRequest) domain.Item {
	it := domain.Item{
		TripID:        tripID,
		Kind:          domain.ItemKind(body.Kind),
		Title:         body.Title,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Notes:         body.Notes,
		SequenceIndex: body.SequenceIndex,
	}
	if f := body.Flight; f != nil {
		it.Flight = &domain.FlightDetail{
			Airline:            f.Airline,
			FlightNumber:       f.FlightNumber,
			ConfirmationNumber: f.ConfirmationNumber,
			Departure:          geoFromJSON(f.Departure),
			Arrival:            geoFromJSON(f.Arrival),
		}
	}
	if t := body.Transport; t != nil {
		mode := domain.TransportMode(t.Mode)
		if mode == "" {
			mode = domain.TransportModeOther
		}
		it.Transport = &domain.TransportDetail{
			Mode:               mode,
			Carrier:            t.Carrier,
			ConfirmationNumber: t.ConfirmationNumber,
			Departure:          geoFromJSON(t.Departure),
			Arrival:            geoFromJSON(t.Arrival),
		}
	}
	if l := body.Lodging; l != nil {
		it.Lodging = &domain.LodgingDetail{
			Name:               l.Name,
			ConfirmationNumber: l.ConfirmationNumber,
			Location:           geoFromJSON(l.Location),
		}
	}
	return it
}

func itemToResponse(it domain.Item) Item {
	resp := Item{
		ID:            it.ID,
		TripID:        it.TripID,
		Kind:          string(it.Kind),
		Title:         it.Title,
		StartTime:     it.StartTime,
		EndTime:       it.EndTime,
		Notes:         it.Notes,
		SequenceIndex: it.SequenceIndex,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
	if f := it.Flight; f != nil {
		resp.Flight = &FlightDetail{
			Airline:            f.Airline,
			FlightNumber:       f.FlightNumber,
			ConfirmationNumber: f.ConfirmationNumber,
			Departure:          geoToJSON(f.Departure),
			Arrival:            geoToJSON(f.Arrival),
		}
	}
	if t := it.Transport; t != nil {
		resp.Transport = &TransportDetail{
			Mode:               string(t.Mode),
			Carrier:            t.Carrier,
			ConfirmationNumber: t.ConfirmationNumber,
			Departure:          geoToJSON(t.Departure),
			Arrival:            geoToJSON(t.Arrival),
		}
	}
	if l := it.Lodging; l != nil {
		resp.Lodging = &LodgingDetail{
			Name:               l.Name,
			ConfirmationNumber: l.ConfirmationNumber,
			Location:           geoToJSON(l.Location),
		}
	}
	return resp
}

func geoFromJSON(g GeoPoint) domain.GeoPoint {
	return domain.GeoPoint(g)
}

func geoToJSON(p domain.GeoPoint) GeoPoint {
	return GeoPoint(p)
}
