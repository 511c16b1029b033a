package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/models"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrFoodItemUnavailable = errors.New("food item is no longer available")
	ErrStatusConflict      = errors.New("pickup status changed concurrently")
	ErrDuplicate           = errors.New("record already exists")
)

// RestaurantRepository defines data access for restaurants
type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, r *models.Restaurant) error
	UpdateRestaurant(ctx context.Context, r *models.Restaurant) error
	GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context, activeOnly bool) ([]models.Restaurant, error)
	CountRestaurants(ctx context.Context) (int64, error)
	// ListRestaurantsWithCompletedPickups returns only restaurants having at
	// least one completed pickup, each pickup carrying its food item.
	ListRestaurantsWithCompletedPickups(ctx context.Context) ([]models.Restaurant, error)
}

// FoodItemRepository defines data access for food items
type FoodItemRepository interface {
	CreateFoodItem(ctx context.Context, item *models.FoodItem) error
	// UpdateFoodItem writes only the fields set in u and returns the stored item
	UpdateFoodItem(ctx context.Context, id uuid.UUID, u models.FoodItemUpdate) (*models.FoodItem, error)
	DeleteFoodItem(ctx context.Context, id uuid.UUID) error
	GetFoodItem(ctx context.Context, id uuid.UUID) (*models.FoodItem, error)
	// ListFoodItemsByRestaurant returns newest first
	ListFoodItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID, availableOnly bool) ([]models.FoodItem, error)
	ListAvailableFoodItems(ctx context.Context) ([]models.FoodItem, error)
	// ListAllFoodItems returns every item ordered by food type
	ListAllFoodItems(ctx context.Context) ([]models.FoodItem, error)
}

// PickupRepository defines data access for pickups
type PickupRepository interface {
	// ReservePickup atomically flips the food item's availability and inserts
	// the pickup. RestaurantID is taken from the food item.
	ReservePickup(ctx context.Context, p *models.Pickup) error
	GetPickup(ctx context.Context, id uuid.UUID) (*models.Pickup, error)
	// UpdatePickupStatus sets the status only if it still equals from,
	// returning ErrStatusConflict otherwise.
	UpdatePickupStatus(ctx context.Context, id uuid.UUID, from, to models.PickupStatus) (*models.Pickup, error)
	ListPickupsByUser(ctx context.Context, userID uuid.UUID) ([]models.Pickup, error)
	ListPickupsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Pickup, error)
	// ListCompletedPickups returns completed pickups oldest first with food items
	ListCompletedPickups(ctx context.Context) ([]models.Pickup, error)
}

// ProfileRepository defines data access for user profiles
type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p *models.Profile) error
	CountProfiles(ctx context.Context) (int64, error)
}

// Store bundles every repository plus a liveness check
type Store interface {
	RestaurantRepository
	FoodItemRepository
	PickupRepository
	ProfileRepository
	Ping(ctx context.Context) error
	Close() error
}
