package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// GapKind classifies a detected inconsistency between two adjacent items.
type GapKind string

const (
	GapKindTime           GapKind = "time"
	GapKindLocation       GapKind = "location"
	GapKindMissingLodging GapKind = "missing_lodging"
)

// Severity is ordered: SeverityInfo < SeverityWarning < SeverityError.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"info", "warning", "error"}

func (s Severity) String() string {
	if s < SeverityInfo || s > SeverityError {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name so JSON output reads "warning"
// rather than 1.
func (s Severity) MarshalText() ([]byte, error) {
	if s < SeverityInfo || s > SeverityError {
		return nil, fmt.Errorf("domain: unknown severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	parsed, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity returns the Severity named by s.
func ParseSeverity(s string) (Severity, error) {
	for i, name := range severityNames {
		if name == s {
			return Severity(i), nil
		}
	}
	return SeverityInfo, fmt.Errorf("%w: unknown severity %q", ErrValidation, s)
}

// Gap is one inconsistency between From and To, two items adjacent in
// chronological order.
// ID is derived from the two item IDs and the kind, so re-running detection on
// the same itinerary yields the same IDs.
type Gap struct {
	ID              uuid.UUID
	Kind            GapKind
	From            Item
	To              Item
	DurationMinutes int
	Severity        Severity
	Message         string
	Suggestions     []string
}

// GapReport is the analysis result for one trip.
type GapReport struct {
	TripID    uuid.UUID
	ItemCount int
	Gaps      []Gap
}

// CountBySeverity returns how many gaps the report holds at each severity.
func (r GapReport) CountBySeverity() map[Severity]int {
	counts := map[Severity]int{SeverityInfo: 0, SeverityWarning: 0, SeverityError: 0}
	for _, g := range r.Gaps {
		counts[g.Severity]++
	}
	return counts
}
