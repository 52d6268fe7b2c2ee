package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
)

// Gap is the JSON representation of one detected gap.
type Gap struct {
	ID              uuid.UUID       `json:"id"`
	Type            domain.GapKind  `json:"type"`
	FromItem        Item            `json:"from_item"`
	ToItem          Item            `json:"to_item"`
	DurationMinutes int             `json:"duration_minutes"`
	Severity        domain.Severity `json:"severity"`
	Message         string          `json:"message"`
	Suggestions     []string        `json:"suggestions"`
}

// GapSummary counts gaps per severity.
type GapSummary struct {
	Info    int `json:"info"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
}

// GapReport is the body of GET /trips/{id}/gaps.
type GapReport struct {
	TripID    uuid.UUID  `json:"trip_id"`
	ItemCount int        `json:"item_count"`
	Summary   GapSummary `json:"summary"`
	Gaps      []Gap      `json:"gaps"`
}

// GetGaps handles GET /trips/{id}/gaps.
// A trip with no items returns 200 and an empty gaps array, never 404.
func (s *Server) GetGaps(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id", "trip")
	if !ok {
		return
	}

	report, err := s.gaps.Analyze(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, reportToResponse(report))
}

func reportToResponse(rep domain.GapReport) GapReport {
	counts := rep.CountBySeverity()
	out := GapReport{
		TripID:    rep.TripID,
		ItemCount: rep.ItemCount,
		Summary: GapSummary{
			Info:    counts[domain.SeverityInfo],
			Warning: counts[domain.SeverityWarning],
			Error:   counts[domain.SeverityError],
		},
		Gaps: make([]Gap, len(rep.Gaps)),
	}
	for i, g := range rep.Gaps {
		out.Gaps[i] = Gap{
			ID:              g.ID,
			Type:            g.Kind,
			FromItem:        itemToResponse(g.From),
			ToItem:          itemToResponse(g.To),
			DurationMinutes: g.DurationMinutes,
			Severity:        g.Severity,
			Message:         g.Message,
			Suggestions:     g.Suggestions,
		}
	}
	return out
}
