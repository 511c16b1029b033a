package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/auth"
	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/repository"
)

// FoodItemService manages the food items a restaurant posts
type FoodItemService struct {
	restaurants repository.RestaurantRepository
	foodItems   repository.FoodItemRepository
	logger      *slog.Logger
}

// NewFoodItemService creates a new food item service
func NewFoodItemService(restaurants repository.RestaurantRepository, foodItems repository.FoodItemRepository, logger *slog.Logger) *FoodItemService {
	return &FoodItemService{
		restaurants: restaurants,
		foodItems:   foodItems,
		logger:      logger,
	}
}

// Create posts a new available food item for a restaurant owned by the caller
func (s *FoodItemService) Create(ctx context.Context, id auth.Identity, restaurantID uuid.UUID, req models.FoodItemRequest) (*models.FoodItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := ownedRestaurant(ctx, s.restaurants, id, restaurantID); err != nil {
		return nil, err
	}

	item := &models.FoodItem{
		RestaurantID:      restaurantID,
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Quantity:          req.Quantity,
		FoodType:          strings.TrimSpace(req.FoodType),
		PickupWindowStart: req.PickupWindowStart.UTC(),
		PickupWindowEnd:   req.PickupWindowEnd.UTC(),
		IsAvailable:       true,
	}
	if err := s.foodItems.CreateFoodItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("food item posted",
		"food_item_id", item.ID,
		"restaurant_id", restaurantID,
		"quantity", item.Quantity,
	)
	return item, nil
}

// Update applies a partial edit to a food item of a restaurant owned by the
// caller. Only the fields set in req are written, so a reservation landing
// between the read and the write keeps the item unavailable.
func (s *FoodItemService) Update(ctx context.Context, id auth.Identity, foodItemID uuid.UUID, req models.FoodItemUpdate) (*models.FoodItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item, err := s.ownedFoodItem(ctx, id, foodItemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.FoodType != nil {
		foodType := strings.TrimSpace(*req.FoodType)
		req.FoodType = &foodType
	}
	if req.PickupWindowStart != nil {
		start := req.PickupWindowStart.UTC()
		req.PickupWindowStart = &start
	}
	if req.PickupWindowEnd != nil {
		end := req.PickupWindowEnd.UTC()
		req.PickupWindowEnd = &end
	}

	merged := *item
	req.Apply(&merged)
	if !merged.PickupWindowEnd.After(merged.PickupWindowStart) {
		return nil, fmt.Errorf("%w: pickup_window_end must be after pickup_window_start", ErrValidation)
	}

	return s.foodItems.UpdateFoodItem(ctx, foodItemID, req)
}

// Delete removes a food item of a restaurant owned by the caller
func (s *FoodItemService) Delete(ctx context.Context, id auth.Identity, foodItemID uuid.UUID) error {
	if _, err := s.ownedFoodItem(ctx, id, foodItemID); err != nil {
		return err
	}
	if err := s.foodItems.DeleteFoodItem(ctx, foodItemID); err != nil {
		return err
	}

	s.logger.Info("food item deleted", "food_item_id", foodItemID)
	return nil
}

// ListForRestaurant returns a restaurant's food items newest first
func (s *FoodItemService) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID, availableOnly bool) ([]models.FoodItem, error) {
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.foodItems.ListFoodItemsByRestaurant(ctx, restaurantID, availableOnly)
}

func (s *FoodItemService) ownedFoodItem(ctx context.Context, id auth.Identity, foodItemID uuid.UUID) (*models.FoodItem, error) {
	item, err := s.foodItems.GetFoodItem(ctx, foodItemID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedRestaurant(ctx, s.restaurants, id, item.RestaurantID); err != nil {
		return nil, err
	}
	return item, nil
}
