package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/auth"
	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/pickup"
	"github.com/mealshare/backend/internal/repository"
)

// PickupService handles reservations and their status lifecycle
type PickupService struct {
	restaurants repository.RestaurantRepository
	pickups     repository.PickupRepository
	logger      *slog.Logger
}

// NewPickupService creates a new pickup service
func NewPickupService(restaurants repository.RestaurantRepository, pickups repository.PickupRepository, logger *slog.Logger) *PickupService {
	return &PickupService{
		restaurants: restaurants,
		pickups:     pickups,
		logger:      logger,
	}
}

// Reserve books an available food item for the caller. The item becomes
// unavailable in the same atomic step; a second reservation of the same item
// fails with repository.ErrFoodItemUnavailable.
func (s *PickupService) Reserve(ctx context.Context, id auth.Identity, req models.ReserveRequest) (*models.Pickup, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	foodItemID, err := uuid.Parse(req.FoodItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: food_item_id is invalid", ErrValidation)
	}

	p := &models.Pickup{
		UserID:     id.UserID,
		FoodItemID: foodItemID,
		Status:     pickup.InitialStatus,
		PickupTime: req.PickupTime.UTC(),
		Notes:      req.Notes,
	}
	if err := s.pickups.ReservePickup(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("pickup reserved",
		"pickup_id", p.ID,
		"food_item_id", p.FoodItemID,
		"restaurant_id", p.RestaurantID,
		"user_id", p.UserID,
	)
	return p, nil
}

// UpdateStatus moves a pickup along its lifecycle. The caller must be the user
// who reserved it or the owner of its restaurant. The write only succeeds if
// the status has not changed since it was read.
func (s *PickupService) UpdateStatus(ctx context.Context, id auth.Identity, pickupID uuid.UUID, status models.PickupStatus) (*models.Pickup, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	current, err := s.pickups.GetPickup(ctx, pickupID)
	if err != nil {
		return nil, err
	}

	if current.UserID != id.UserID {
		if _, err := ownedRestaurant(ctx, s.restaurants, id, current.RestaurantID); err != nil {
			return nil, err
		}
	}

	if err := pickup.ValidateTransition(current.Status, status); err != nil {
		return nil, err
	}

	updated, err := s.pickups.UpdatePickupStatus(ctx, pickupID, current.Status, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("pickup status changed",
		"pickup_id", pickupID,
		"from", current.Status,
		"to", status,
		"user_id", id.UserID,
	)
	return updated, nil
}

// ListMine returns the caller's pickups newest first
func (s *PickupService) ListMine(ctx context.Context, id auth.Identity) ([]models.Pickup, error) {
	return s.pickups.ListPickupsByUser(ctx, id.UserID)
}

// ListForRestaurant returns the pickups of a restaurant owned by the caller
func (s *PickupService) ListForRestaurant(ctx context.Context, id auth.Identity, restaurantID uuid.UUID) ([]models.Pickup, error) {
	if _, err := ownedRestaurant(ctx, s.restaurants, id, restaurantID); err != nil {
		return nil, err
	}
	return s.pickups.ListPickupsByRestaurant(ctx, restaurantID)
}
