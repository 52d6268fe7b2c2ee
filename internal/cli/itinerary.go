package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
	"github.com/pkordes/itinerary-analyzer/internal/validation"
)

// itineraryFile is the document gapcheck reads. Items use the same field
// names as the HTTP API.
type itineraryFile struct {
	Items []fileItem `json:"items" validate:"dive"`
}

type fileItem struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind" validate:"required,oneof=flight transport lodging"`
	Title     string    `json:"title" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Flight    *struct {
		Airline      string          `json:"airline"`
		FlightNumber string          `json:"flight_number"`
		Departure    domain.GeoPoint `json:"departure"`
		Arrival      domain.GeoPoint `json:"arrival"`
	} `json:"flight,omitempty"`
	Transport *struct {
		Mode      domain.TransportMode `json:"mode"`
		Carrier   string               `json:"carrier"`
		Departure domain.GeoPoint      `json:"departure"`
		Arrival   domain.GeoPoint      `json:"arrival"`
	} `json:"transport,omitempty"`
	Lodging *struct {
		Name     string          `json:"name"`
		Location domain.GeoPoint `json:"location"`
	} `json:"lodging,omitempty"`
}

// fileNamespace seeds IDs for items that do not carry one, so repeated runs
// over the same file report the same gap IDs.
var fileNamespace = uuid.MustParse("2b7e51c4-8f0d-5a63-a1c9-4e6f0b3d2c18")

var validate = validation.New()

// readItinerary decodes and validates an itinerary document. Items go through
// the same domain rules the API applies on create, so a payload that does not
// match its kind is rejected rather than dropped.
func readItinerary(r io.Reader) ([]domain.Item, error) {
	var doc itineraryFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid itinerary: %s", validation.Describe(err))
	}

	items := make([]domain.Item, len(doc.Items))
	for i, fi := range doc.Items {
		id := fi.ID
		if id == uuid.Nil {
			id = uuid.NewSHA1(fileNamespace, []byte(fmt.Sprintf("item:%d", i)))
		}
		it := domain.Item{
			ID:            id,
			Kind:          domain.ItemKind(fi.Kind),
			Title:         fi.Title,
			StartTime:     fi.StartTime,
			EndTime:       fi.EndTime,
			SequenceIndex: i,
		}
		if fi.Flight != nil {
			it.Flight = &domain.FlightDetail{
				ItemID:       id,
				Airline:      fi.Flight.Airline,
				FlightNumber: fi.Flight.FlightNumber,
				Departure:    fi.Flight.Departure,
				Arrival:      fi.Flight.Arrival,
			}
		}
		if fi.Transport != nil {
			it.Transport = &domain.TransportDetail{
				ItemID:    id,
				Mode:      fi.Transport.Mode,
				Carrier:   fi.Transport.Carrier,
				Departure: fi.Transport.Departure,
				Arrival:   fi.Transport.Arrival,
			}
		}
		if fi.Lodging != nil {
			it.Lodging = &domain.LodgingDetail{
				ItemID:   id,
				Name:     fi.Lodging.Name,
				Location: fi.Lodging.Location,
			}
		}
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("invalid itinerary: items[%d] %q: %w", i, it.Title, err)
		}
		items[i] = it
	}
	return items, nil
}
