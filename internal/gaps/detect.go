// Package gaps finds inconsistencies in a trip itinerary: unexplained time
// between segments, transit legs that do not connect, and nights with no
// lodging.
//
// Everything here is a pure function of its arguments. Inputs are never
// modified and nothing performs I/O, so concurrent calls need no coordination.
package gaps

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
)

// gapNamespace seeds the name-based UUIDs used as gap IDs.
var gapNamespace = uuid.MustParse("6f1c2b9e-3d0a-5e47-9b8c-1a2d3e4f5a6b")

var (
	locationSuggestions = []string{
		"Add connecting transportation between these locations",
		"Verify the departure and arrival locations are correct",
		"Update the arrival or departure location so they match",
	}
	lodgingSuggestions = []string{
		"Add lodging for this period",
		"Verify the travel dates are correct",
		"Consider staying with friends or family",
	}
)

// DetectGaps attaches the detail collections to records by item ID and runs
// Detect. It is the entry point for callers that load details separately.
func DetectGaps(records []domain.Item, flights []domain.FlightDetail, transports []domain.TransportDetail, lodgings []domain.LodgingDetail) []domain.Gap {
	return Detect(AttachDetails(records, flights, transports, lodgings))
}

// Detect returns every gap in items, which may be in any order.
// Time and location gaps come first in chronological pair order, followed by
// missing-lodging gaps. Fewer than two items yield an empty, non-nil slice.
func Detect(items []domain.Item) []domain.Gap {
	if len(items) < 2 {
		return []domain.Gap{}
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b domain.Item) int {
		return a.StartTime.Compare(b.StartTime)
	})

	locations := ResolveLocations(sorted)

	transitions := detectTransitions(sorted, locations)
	lodging := detectMissingLodging(sorted)

	out := make([]domain.Gap, 0, len(transitions)+len(lodging))
	out = append(out, transitions...)
	return append(out, lodging...)
}

// detectTransitions walks adjacent pairs looking for long idle time and for
// transit legs whose arrival and next departure are different places.
func detectTransitions(sorted []domain.Item, locations map[uuid.UUID]Locations) []domain.Gap {
	var out []domain.Gap
	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]

		minutes := MinutesBetween(current.EndTime, next.StartTime)
		if minutes > timeGapMinutes {
			out = append(out, domain.Gap{
				ID:              gapID(current, next, domain.GapKindTime),
				Kind:            domain.GapKindTime,
				From:            current,
				To:              next,
				DurationMinutes: minutes,
				Severity:        TimeGapSeverity(minutes),
				Message:         fmt.Sprintf("%s gap between %q and %q", FormatDuration(minutes), current.Title, next.Title),
				Suggestions:     timeSuggestions(minutes),
			})
		}

		if !current.Kind.IsTransit() || !next.Kind.IsTransit() {
			continue
		}
		arrival := locations[current.ID].Arrival
		departure := locations[next.ID].Departure
		if arrival == nil || departure == nil || SamePlace(*arrival, *departure) {
			continue
		}
		out = append(out, domain.Gap{
			ID:              gapID(current, next, domain.GapKindLocation),
			Kind:            domain.GapKindLocation,
			From:            current,
			To:              next,
			DurationMinutes: minutes,
			Severity:        domain.SeverityWarning,
			Message:         fmt.Sprintf("Location mismatch: %q arrives in %s but %q departs from %s", current.Title, arrival.Label(), next.Title, departure.Label()),
			Suggestions:     slices.Clone(locationSuggestions),
		})
	}
	return out
}

// detectMissingLodging reports overnight-length gaps between two non-lodging
// items that no lodging stay covers from end to start.
func detectMissingLodging(sorted []domain.Item) []domain.Gap {
	var stays []domain.Item
	for _, it := range sorted {
		if it.Kind == domain.ItemKindLodging {
			stays = append(stays, it)
		}
	}

	var out []domain.Gap
	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]
		if current.Kind == domain.ItemKindLodging || next.Kind == domain.ItemKindLodging {
			continue
		}

		minutes := MinutesBetween(current.EndTime, next.StartTime)
		if minutes <= lodgingCheckMinutes {
			continue
		}
		if covered(stays, current, next) {
			continue
		}

		out = append(out, domain.Gap{
			ID:              gapID(current, next, domain.GapKindMissingLodging),
			Kind:            domain.GapKindMissingLodging,
			From:            current,
			To:              next,
			DurationMinutes: minutes,
			Severity:        MissingLodgingSeverity(minutes),
			Message:         fmt.Sprintf("Missing lodging for %s between %q and %q", pluralNights(NightsSpanned(minutes)), current.Title, next.Title),
			Suggestions:     slices.Clone(lodgingSuggestions),
		})
	}
	return out
}

// covered reports whether any stay spans the whole interval from the end of
// current to the start of next.
func covered(stays []domain.Item, current, next domain.Item) bool {
	for _, s := range stays {
		if !s.StartTime.After(current.EndTime) && !s.EndTime.Before(next.StartTime) {
			return true
		}
	}
	return false
}

func timeSuggestions(minutes int) []string {
	switch {
	case minutes > dayMinutes:
		return []string{
			"Consider adding lodging for this period",
			"Add sightseeing or activities to fill the time",
		}
	case minutes > timeWarningMinutes:
		return []string{
			"Add transportation details between these items",
			"Confirm this downtime is intentional",
		}
	default:
		return []string{"This may be normal transition time"}
	}
}

func pluralNights(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}

func gapID(from, to domain.Item, kind domain.GapKind) uuid.UUID {
	return uuid.NewSHA1(gapNamespace, []byte(from.ID.String()+":"+to.ID.String()+":"+string(kind)))
}
