package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
	"github.com/pkordes/itinerary-analyzer/internal/gaps"
	"github.com/pkordes/itinerary-analyzer/internal/repo"
)

// GapService loads a trip's itinerary and runs the gap analyzer over it.
type GapService struct {
	trips repo.TripRepo
	items repo.ItemRepo
}

// NewGapService constructs a GapService backed by the provided repos.
func NewGapService(trips repo.TripRepo, items repo.ItemRepo) *GapService {
	return &GapService{trips: trips, items: items}
}

// Analyze returns the gap report for a trip.
// A trip without items is not an error: the report simply has no gaps.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *GapService) Analyze(ctx context.Context, tripID uuid.UUID) (domain.GapReport, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.GapReport{}, fmt.Errorf("service.GapService.Analyze: %w", err)
	}
	items, err := s.items.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.GapReport{}, fmt.Errorf("service.GapService.Analyze: %w", err)
	}
	return domain.GapReport{
		TripID:    tripID,
		ItemCount: len(items),
		Gaps:      gaps.Detect(items),
	}, nil
}
