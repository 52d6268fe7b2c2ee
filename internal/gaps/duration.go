package gaps

import (
	"fmt"
	"math"
	"time"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
)

// Thresholds in minutes. Every comparison is strict: a gap exactly on a
// threshold stays in the lower bucket.
const (
	timeGapMinutes        = 120  // 2h: shorter gaps are not reported
	lodgingCheckMinutes   = 360  // 6h: shorter gaps never need lodging
	timeWarningMinutes    = 480  // 8h
	lodgingWarningMinutes = 720  // 12h
	dayMinutes            = 1440 // 24h: error for both rules
)

// MinutesBetween returns the whole minutes from earlier to later, rounded
// towards negative infinity. The result is negative when later precedes
// earlier.
func MinutesBetween(earlier, later time.Time) int {
	ms := later.Sub(earlier).Milliseconds()
	return int(math.Floor(float64(ms) / 60000))
}

// TimeGapSeverity grades an unexplained gap between two segments.
func TimeGapSeverity(minutes int) domain.Severity {
	switch {
	case minutes > dayMinutes:
		return domain.SeverityError
	case minutes > timeWarningMinutes:
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}

// MissingLodgingSeverity grades a gap that no lodging stay covers.
func MissingLodgingSeverity(minutes int) domain.Severity {
	switch {
	case minutes > dayMinutes:
		return domain.SeverityError
	case minutes > lodgingWarningMinutes:
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}

// FormatDuration renders minutes as "4h 0m", or "45 minutes" under an hour.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	if hours == 0 {
		return fmt.Sprintf("%d minutes", minutes%60)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes%60)
}

// NightsSpanned returns the number of nights a gap of the given length needs
// lodging for: whole hours divided by 24, rounded up.
func NightsSpanned(minutes int) int {
	hours := minutes / 60
	return int(math.Ceil(float64(hours) / 24))
}
