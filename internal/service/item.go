package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
	"github.com/pkordes/itinerary-analyzer/internal/repo"
)

// ItemService implements business logic for itinerary items.
// It holds the trips repo because creating an item requires verifying the
// parent trip exists.
type ItemService struct {
	trips repo.TripRepo
	items repo.ItemRepo
}

// NewItemService constructs an ItemService backed by the provided repos.
func NewItemService(trips repo.TripRepo, items repo.ItemRepo) *ItemService {
	return &ItemService{trips: trips, items: items}
}

// Create validates the item, verifies the parent trip exists, then persists.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *ItemService) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	if _, err := s.trips.GetByID(ctx, item.TripID); err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	if err := item.Validate(); err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	result, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single item scoped to the given trip.
func (s *ItemService) GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.Item, error) {
	result, err := s.items.GetByID(ctx, tripID, itemID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all items of a trip in display order.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItemService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Item, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByTripID: %w", err)
	}
	items, err := s.items.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByTripID: %w", err)
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	return items, nil
}

// Delete removes an item, scoped to the given trip.
func (s *ItemService) Delete(ctx context.Context, tripID, itemID uuid.UUID) error {
	if err := s.items.Delete(ctx, tripID, itemID); err != nil {
		return fmt.Errorf("service.ItemService.Delete: %w", err)
	}
	return nil
}
