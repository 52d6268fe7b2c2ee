package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
	"github.com/pkordes/itinerary-analyzer/internal/service"
)

func itemsRepo(items []domain.Item, err error) *mockItemRepo {
	return &mockItemRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Item, error) { return items, err },
	}
}

func TestGapService_Analyze_NoItems(t *testing.T) {
	tripID := uuid.New()
	svc := service.NewGapService(existingTrip(), itemsRepo(nil, nil))

	report, err := svc.Analyze(context.Background(), tripID)

	require.NoError(t, err, "an empty itinerary is not an error")
	assert.Equal(t, tripID, report.TripID)
	assert.Zero(t, report.ItemCount)
	assert.NotNil(t, report.Gaps)
	assert.Empty(t, report.Gaps)
}

func TestGapService_Analyze_FindsGaps(t *testing.T) {
	tripID := uuid.New()
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	items := []domain.Item{
		{ID: uuid.New(), TripID: tripID, Kind: domain.ItemKindTransport, Title: "Train", StartTime: start, EndTime: start.Add(2 * time.Hour)},
		{ID: uuid.New(), TripID: tripID, Kind: domain.ItemKindTransport, Title: "Bus", StartTime: start.Add(6 * time.Hour), EndTime: start.Add(7 * time.Hour)},
	}
	svc := service.NewGapService(existingTrip(), itemsRepo(items, nil))

	report, err := svc.Analyze(context.Background(), tripID)

	require.NoError(t, err)
	assert.Equal(t, 2, report.ItemCount)
	require.Len(t, report.Gaps, 1)
	assert.Equal(t, domain.GapKindTime, report.Gaps[0].Kind)
	assert.Equal(t, 240, report.Gaps[0].DurationMinutes)
	assert.Equal(t, 1, report.CountBySeverity()[domain.SeverityInfo])
}

func TestGapService_Analyze_TripNotFound(t *testing.T) {
	svc := service.NewGapService(missingTrip(), &mockItemRepo{})

	_, err := svc.Analyze(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGapService_Analyze_RepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	svc := service.NewGapService(existingTrip(), itemsRepo(nil, repoErr))

	_, err := svc.Analyze(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repoErr)
}
