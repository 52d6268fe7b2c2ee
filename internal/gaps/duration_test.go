package gaps_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
	"github.com/pkordes/itinerary-analyzer/internal/gaps"
)

func TestMinutesBetween(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 240, gaps.MinutesBetween(base, base.Add(4*time.Hour)))
	assert.Equal(t, 0, gaps.MinutesBetween(base, base))
	assert.Equal(t, 1, gaps.MinutesBetween(base, base.Add(119*time.Second)), "rounds down")
	assert.Equal(t, -1, gaps.MinutesBetween(base, base.Add(-30*time.Second)), "rounds towards negative infinity")
}

func TestMinutesBetween_AcrossZones(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	a := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 1, 14, 0, 0, 0, paris) // 12:00 UTC

	assert.Equal(t, 120, gaps.MinutesBetween(a, b))
}

func TestTimeGapSeverity(t *testing.T) {
	assert.Equal(t, domain.SeverityInfo, gaps.TimeGapSeverity(121))
	assert.Equal(t, domain.SeverityInfo, gaps.TimeGapSeverity(480))
	assert.Equal(t, domain.SeverityWarning, gaps.TimeGapSeverity(481))
	assert.Equal(t, domain.SeverityWarning, gaps.TimeGapSeverity(1440))
	assert.Equal(t, domain.SeverityError, gaps.TimeGapSeverity(1441))
}

func TestMissingLodgingSeverity(t *testing.T) {
	assert.Equal(t, domain.SeverityInfo, gaps.MissingLodgingSeverity(361))
	assert.Equal(t, domain.SeverityInfo, gaps.MissingLodgingSeverity(720))
	assert.Equal(t, domain.SeverityWarning, gaps.MissingLodgingSeverity(721))
	assert.Equal(t, domain.SeverityWarning, gaps.MissingLodgingSeverity(1440))
	assert.Equal(t, domain.SeverityError, gaps.MissingLodgingSeverity(1441))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "4h 0m", gaps.FormatDuration(240))
	assert.Equal(t, "45 minutes", gaps.FormatDuration(45))
	assert.Equal(t, "2h 1m", gaps.FormatDuration(121))
	assert.Equal(t, "30h 0m", gaps.FormatDuration(1800))
}

func TestNightsSpanned(t *testing.T) {
	assert.Equal(t, 1, gaps.NightsSpanned(361))
	assert.Equal(t, 1, gaps.NightsSpanned(1440))
	assert.Equal(t, 1, gaps.NightsSpanned(1499), "partial hours are dropped before rounding")
	assert.Equal(t, 2, gaps.NightsSpanned(1500))
	assert.Equal(t, 2, gaps.NightsSpanned(30*60))
}
