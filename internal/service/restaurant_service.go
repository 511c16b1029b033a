package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/auth"
	"github.com/mealshare/backend/internal/geo"
	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/repository"
)

// Pickup time filters accepted by Search
const (
	PickupTimeAll      = "all"
	PickupTimeToday    = "today"
	PickupTimeTomorrow = "tomorrow"
)

// SortByDistance orders search results nearest first
const SortByDistance = "distance"

// SearchParams narrows the public restaurant listing. Empty fields do not filter.
type SearchParams struct {
	Location   string
	FoodType   string
	PickupTime string
	Latitude   *float64
	Longitude  *float64
	SortBy     string
}

// RestaurantService handles restaurant registration, search and statistics
type RestaurantService struct {
	restaurants repository.RestaurantRepository
	foodItems   repository.FoodItemRepository
	pickups     repository.PickupRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(
	restaurants repository.RestaurantRepository,
	foodItems repository.FoodItemRepository,
	pickups repository.PickupRepository,
	logger *slog.Logger,
) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		foodItems:   foodItems,
		pickups:     pickups,
		logger:      logger,
		now:         time.Now,
	}
}

// Register creates the caller's restaurant. Each user may own one restaurant.
func (s *RestaurantService) Register(ctx context.Context, id auth.Identity, req models.RestaurantRequest) (*models.Restaurant, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	r := &models.Restaurant{OwnerID: id.UserID, IsActive: true}
	applyRestaurantRequest(r, req)

	if err := s.restaurants.CreateRestaurant(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("restaurant registered", "restaurant_id", r.ID, "owner_id", r.OwnerID)
	return r, nil
}

// Update replaces the editable fields of a restaurant owned by the caller
func (s *RestaurantService) Update(ctx context.Context, id auth.Identity, restaurantID uuid.UUID, req models.RestaurantRequest) (*models.Restaurant, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	r, err := ownedRestaurant(ctx, s.restaurants, id, restaurantID)
	if err != nil {
		return nil, err
	}

	applyRestaurantRequest(r, req)
	if err := s.restaurants.UpdateRestaurant(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func applyRestaurantRequest(r *models.Restaurant, req models.RestaurantRequest) {
	r.Name = strings.TrimSpace(req.Name)
	r.Description = req.Description
	r.Address = req.Address
	r.City = req.City
	r.State = req.State
	r.Zip = req.Zip
	r.Latitude = req.Latitude
	r.Longitude = req.Longitude
	r.Phone = req.Phone
	r.Email = req.Email
	r.Website = req.Website
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
}

// Get returns a restaurant by ID
func (s *RestaurantService) Get(ctx context.Context, restaurantID uuid.UUID) (*models.Restaurant, error) {
	return s.restaurants.GetRestaurant(ctx, restaurantID)
}

// GetMine returns the restaurant owned by the caller
func (s *RestaurantService) GetMine(ctx context.Context, id auth.Identity) (*models.Restaurant, error) {
	return s.restaurants.GetRestaurantByOwner(ctx, id.UserID)
}

// Stats counts the food items and pickups of a restaurant owned by the caller
func (s *RestaurantService) Stats(ctx context.Context, id auth.Identity, restaurantID uuid.UUID) (*models.RestaurantStats, error) {
	if _, err := ownedRestaurant(ctx, s.restaurants, id, restaurantID); err != nil {
		return nil, err
	}

	items, err := s.foodItems.ListFoodItemsByRestaurant(ctx, restaurantID, false)
	if err != nil {
		return nil, err
	}
	pickups, err := s.pickups.ListPickupsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	stats := &models.RestaurantStats{
		TotalFoodItems: len(items),
		TotalPickups:   len(pickups),
	}
	for _, item := range items {
		if item.IsAvailable {
			stats.AvailableFoodItems++
		}
	}
	for _, p := range pickups {
		switch p.Status {
		case models.PickupStatusScheduled:
			stats.ScheduledPickups++
		case models.PickupStatusInProgress:
			stats.InProgressPickups++
		case models.PickupStatusCompleted:
			stats.CompletedPickups++
		case models.PickupStatusCancelled:
			stats.CancelledPickups++
		}
	}
	return stats, nil
}

// Search lists active restaurants matching the filters. Food type and pickup
// time filters look only at available food items. When both coordinates are
// given, each listing carries its distance from that point.
func (s *RestaurantService) Search(ctx context.Context, params SearchParams) ([]models.RestaurantListing, error) {
	restaurants, err := s.restaurants.ListRestaurants(ctx, true)
	if err != nil {
		return nil, err
	}

	available, err := s.foodItems.ListAvailableFoodItems(ctx)
	if err != nil {
		return nil, err
	}
	itemsByRestaurant := make(map[uuid.UUID][]models.FoodItem)
	for _, item := range available {
		itemsByRestaurant[item.RestaurantID] = append(itemsByRestaurant[item.RestaurantID], item)
	}

	now := s.now()
	hasOrigin := params.Latitude != nil && params.Longitude != nil

	listings := make([]models.RestaurantListing, 0, len(restaurants))
	for _, r := range restaurants {
		items := itemsByRestaurant[r.ID]

		if !matchesLocation(r, params.Location) ||
			!matchesFoodType(items, params.FoodType) ||
			!matchesPickupTime(items, params.PickupTime, now) {
			continue
		}

		listing := newListing(r, items)
		if hasOrigin && r.HasCoordinates() {
			d := geo.CalculateDistance(*params.Latitude, *params.Longitude, *r.Latitude, *r.Longitude)
			listing.Distance = &d
			listing.DistanceText = geo.FormatDistance(d)
		}
		listings = append(listings, listing)
	}

	if params.SortBy == SortByDistance {
		sortByDistance(listings)
	}
	return listings, nil
}

func newListing(r models.Restaurant, items []models.FoodItem) models.RestaurantListing {
	listing := models.RestaurantListing{
		Restaurant: r,
		FoodTypes:  make([]string, 0),
	}

	seen := make(map[string]bool)
	for i := range items {
		item := items[i]
		if !seen[item.FoodType] {
			seen[item.FoodType] = true
			listing.FoodTypes = append(listing.FoodTypes, item.FoodType)
		}
		if listing.EarliestPickup == nil || item.PickupWindowStart.Before(*listing.EarliestPickup) {
			listing.EarliestPickup = &item.PickupWindowStart
		}
		if listing.LatestPickup == nil || item.PickupWindowEnd.After(*listing.LatestPickup) {
			listing.LatestPickup = &item.PickupWindowEnd
		}
	}
	return listing
}

func matchesLocation(r models.Restaurant, location string) bool {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return true
	}
	for _, field := range []string{r.Address, r.City, r.Zip, r.State} {
		if strings.Contains(strings.ToLower(field), location) {
			return true
		}
	}
	return false
}

func matchesFoodType(items []models.FoodItem, foodType string) bool {
	if foodType == "" || strings.EqualFold(foodType, "all") {
		return true
	}
	for _, item := range items {
		if strings.EqualFold(item.FoodType, foodType) {
			return true
		}
	}
	return false
}

// matchesPickupTime applies the day filters in the server's local time zone
func matchesPickupTime(items []models.FoodItem, pickupTime string, now time.Time) bool {
	switch strings.ToLower(pickupTime) {
	case PickupTimeToday:
		endOfDay := startOfDay(now).AddDate(0, 0, 1)
		for _, item := range items {
			if item.PickupWindowEnd.Before(endOfDay) {
				return true
			}
		}
		return false
	case PickupTimeTomorrow:
		startOfTomorrow := startOfDay(now).AddDate(0, 0, 1)
		endOfTomorrow := startOfTomorrow.AddDate(0, 0, 1)
		for _, item := range items {
			if !item.PickupWindowStart.Before(startOfTomorrow) && item.PickupWindowEnd.Before(endOfTomorrow) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sortByDistance orders listings nearest first with unknown distances last
func sortByDistance(listings []models.RestaurantListing) {
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i].Distance, listings[j].Distance
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
