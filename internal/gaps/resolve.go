package gaps

import (
	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
)

// Locations holds the places of one item that matter to gap analysis.
// Transit items set Departure and Arrival; lodging items set Location.
// Any of them is nil when the item has no detail recorded.
type Locations struct {
	Departure *domain.GeoPoint
	Arrival   *domain.GeoPoint
	Location  *domain.GeoPoint
}

// ResolveLocations builds the per-item location lookup. Every item gets an
// entry, empty when it carries no detail for its kind.
func ResolveLocations(items []domain.Item) map[uuid.UUID]Locations {
	out := make(map[uuid.UUID]Locations, len(items))
	for _, it := range items {
		var loc Locations
		switch it.Kind {
		case domain.ItemKindFlight:
			if it.Flight != nil {
				loc.Departure = &it.Flight.Departure
				loc.Arrival = &it.Flight.Arrival
			}
		case domain.ItemKindTransport:
			if it.Transport != nil {
				loc.Departure = &it.Transport.Departure
				loc.Arrival = &it.Transport.Arrival
			}
		case domain.ItemKindLodging:
			if it.Lodging != nil {
				loc.Location = &it.Lodging.Location
			}
		}
		out[it.ID] = loc
	}
	return out
}

// AttachDetails returns copies of items with their detail records joined on
// by item ID. Details whose item has a different kind are ignored, and items
// already carrying a payload keep it unless a matching detail is supplied.
// The input slice is not modified.
func AttachDetails(items []domain.Item, flights []domain.FlightDetail, transports []domain.TransportDetail, lodgings []domain.LodgingDetail) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)

	for i := range out {
		switch out[i].Kind {
		case domain.ItemKindFlight:
			for j := range flights {
				if flights[j].ItemID == out[i].ID {
					d := flights[j]
					out[i].Flight = &d
					break
				}
			}
		case domain.ItemKindTransport:
			for j := range transports {
				if transports[j].ItemID == out[i].ID {
					d := transports[j]
					out[i].Transport = &d
					break
				}
			}
		case domain.ItemKindLodging:
			for j := range lodgings {
				if lodgings[j].ItemID == out[i].ID {
					d := lodgings[j]
					out[i].Lodging = &d
					break
				}
			}
		}
	}
	return out
}
