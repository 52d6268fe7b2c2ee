package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
)

type reporter struct {
	format string
	w      io.Writer
}

func newReporter(format string, w io.Writer) (*reporter, error) {
	switch format {
	case "table", "json":
		return &reporter{format: format, w: w}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table or json)", format)
}

// jsonGap mirrors the gap objects of the HTTP API, with items reduced to
// their ID and title.
type jsonGap struct {
	ID              uuid.UUID       `json:"id"`
	Type            domain.GapKind  `json:"type"`
	FromItem        jsonItemRef     `json:"from_item"`
	ToItem          jsonItemRef     `json:"to_item"`
	DurationMinutes int             `json:"duration_minutes"`
	Severity        domain.Severity `json:"severity"`
	Message         string          `json:"message"`
	Suggestions     []string        `json:"suggestions"`
}

type jsonItemRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type jsonReport struct {
	ItemCount int       `json:"item_count"`
	Gaps      []jsonGap `json:"gaps"`
}

func (r *reporter) report(itemCount int, gs []domain.Gap) error {
	if r.format == "json" {
		return r.writeJSON(itemCount, gs)
	}
	return r.writeTable(itemCount, gs)
}

func (r *reporter) writeJSON(itemCount int, gs []domain.Gap) error {
	out := jsonReport{ItemCount: itemCount, Gaps: make([]jsonGap, len(gs))}
	for i, g := range gs {
		out.Gaps[i] = jsonGap{
			ID:              g.ID,
			Type:            g.Kind,
			FromItem:        jsonItemRef{ID: g.From.ID, Title: g.From.Title},
			ToItem:          jsonItemRef{ID: g.To.ID, Title: g.To.Title},
			DurationMinutes: g.DurationMinutes,
			Severity:        g.Severity,
			Message:         g.Message,
			Suggestions:     g.Suggestions,
		}
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (r *reporter) writeTable(itemCount int, gs []domain.Gap) error {
	if len(gs) == 0 {
		_, err := fmt.Fprintf(r.w, "No gaps found in %d items.\n", itemCount)
		return err
	}
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tTYPE\tFROM\tTO\tMESSAGE")
	for _, g := range gs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", g.Severity, g.Kind, g.From.Title, g.To.Title, g.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.w, "\n%d gaps in %d items.\n", len(gs), itemCount)
	return err
}
