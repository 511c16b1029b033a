package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/models"
)

// MemoryStore implements Store with in-memory maps guarded by a single lock.
// The lock makes reservation check-and-flip atomic across items and pickups.
type MemoryStore struct {
	mu          sync.RWMutex
	restaurants map[uuid.UUID]models.Restaurant
	foodItems   map[uuid.UUID]models.FoodItem
	pickups     map[uuid.UUID]models.Pickup
	profiles    map[uuid.UUID]models.Profile
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		restaurants: make(map[uuid.UUID]models.Restaurant),
		foodItems:   make(map[uuid.UUID]models.FoodItem),
		pickups:     make(map[uuid.UUID]models.Pickup),
		profiles:    make(map[uuid.UUID]models.Profile),
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() error { return nil }

// stamp fills in identity and timestamps for a new record, keeping preset values
func stamp(id *uuid.UUID, createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

// Restaurants

func (s *MemoryStore) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.restaurants {
		if existing.OwnerID == r.OwnerID {
			return ErrDuplicate
		}
	}

	stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	stored := *r
	stored.Pickups = nil
	s.restaurants[r.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateRestaurant(ctx context.Context, r *models.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.restaurants[r.ID]
	if !ok {
		return ErrNotFound
	}

	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = time.Now().UTC()
	stored := *r
	stored.Pickups = nil
	s.restaurants[r.ID] = stored
	return nil
}

func (s *MemoryStore) GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.restaurants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.restaurants {
		if r.OwnerID == ownerID {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListRestaurants(ctx context.Context, activeOnly bool) ([]models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	restaurants := make([]models.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		if activeOnly && !r.IsActive {
			continue
		}
		restaurants = append(restaurants, r)
	}
	sortRestaurants(restaurants)
	return restaurants, nil
}

func (s *MemoryStore) CountRestaurants(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.restaurants)), nil
}

func (s *MemoryStore) ListRestaurantsWithCompletedPickups(ctx context.Context) ([]models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byRestaurant := make(map[uuid.UUID][]models.Pickup)
	for _, p := range s.pickups {
		if p.Status != models.PickupStatusCompleted {
			continue
		}
		byRestaurant[p.RestaurantID] = append(byRestaurant[p.RestaurantID], s.withFoodItem(p))
	}

	restaurants := make([]models.Restaurant, 0, len(byRestaurant))
	for id, pickups := range byRestaurant {
		r, ok := s.restaurants[id]
		if !ok {
			continue
		}
		sortPickups(pickups, true)
		r.Pickups = pickups
		restaurants = append(restaurants, r)
	}
	sortRestaurants(restaurants)
	return restaurants, nil
}

// Food items

func (s *MemoryStore) CreateFoodItem(ctx context.Context, item *models.FoodItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	s.foodItems[item.ID] = *item
	return nil
}

func (s *MemoryStore) UpdateFoodItem(ctx context.Context, id uuid.UUID, u models.FoodItemUpdate) (*models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.foodItems[id]
	if !ok {
		return nil, ErrNotFound
	}

	u.Apply(&item)
	item.UpdatedAt = time.Now().UTC()
	s.foodItems[id] = item
	return &item, nil
}

func (s *MemoryStore) DeleteFoodItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.foodItems[id]; !ok {
		return ErrNotFound
	}
	delete(s.foodItems, id)
	return nil
}

func (s *MemoryStore) GetFoodItem(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.foodItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) ListFoodItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID, availableOnly bool) ([]models.FoodItem, error) {
	return s.filterFoodItems(func(item models.FoodItem) bool {
		return item.RestaurantID == restaurantID && (!availableOnly || item.IsAvailable)
	}), nil
}

func (s *MemoryStore) ListAvailableFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	return s.filterFoodItems(func(item models.FoodItem) bool {
		return item.IsAvailable
	}), nil
}

func (s *MemoryStore) ListAllFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	items := s.filterFoodItems(func(models.FoodItem) bool { return true })
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].FoodType < items[j].FoodType
	})
	return items, nil
}

// filterFoodItems returns matching items newest first
func (s *MemoryStore) filterFoodItems(keep func(models.FoodItem) bool) []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.FoodItem, 0)
	for _, item := range s.foodItems {
		if keep(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
	return items
}

// Pickups

func (s *MemoryStore) ReservePickup(ctx context.Context, p *models.Pickup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.foodItems[p.FoodItemID]
	if !ok {
		return ErrNotFound
	}
	if !item.IsAvailable {
		return ErrFoodItemUnavailable
	}

	item.IsAvailable = false
	item.UpdatedAt = time.Now().UTC()
	s.foodItems[item.ID] = item

	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	p.RestaurantID = item.RestaurantID
	p.FoodItem, p.Restaurant, p.Profile = nil, nil, nil
	s.pickups[p.ID] = *p
	return nil
}

func (s *MemoryStore) GetPickup(ctx context.Context, id uuid.UUID) (*models.Pickup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pickups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) UpdatePickupStatus(ctx context.Context, id uuid.UUID, from, to models.PickupStatus) (*models.Pickup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pickups[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Status != from {
		return nil, ErrStatusConflict
	}

	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	s.pickups[id] = p
	return &p, nil
}

func (s *MemoryStore) ListPickupsByUser(ctx context.Context, userID uuid.UUID) ([]models.Pickup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pickups := make([]models.Pickup, 0)
	for _, p := range s.pickups {
		if p.UserID != userID {
			continue
		}
		p = s.withFoodItem(p)
		if r, ok := s.restaurants[p.RestaurantID]; ok {
			p.Restaurant = &r
		}
		pickups = append(pickups, p)
	}
	sortPickups(pickups, false)
	return pickups, nil
}

func (s *MemoryStore) ListPickupsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Pickup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pickups := make([]models.Pickup, 0)
	for _, p := range s.pickups {
		if p.RestaurantID != restaurantID {
			continue
		}
		p = s.withFoodItem(p)
		if profile, ok := s.profiles[p.UserID]; ok {
			p.Profile = &profile
		}
		pickups = append(pickups, p)
	}
	sortPickups(pickups, false)
	return pickups, nil
}

func (s *MemoryStore) ListCompletedPickups(ctx context.Context) ([]models.Pickup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pickups := make([]models.Pickup, 0)
	for _, p := range s.pickups {
		if p.Status == models.PickupStatusCompleted {
			pickups = append(pickups, s.withFoodItem(p))
		}
	}
	sortPickups(pickups, true)
	return pickups, nil
}

// withFoodItem attaches a copy of the pickup's food item; callers hold the lock
func (s *MemoryStore) withFoodItem(p models.Pickup) models.Pickup {
	if item, ok := s.foodItems[p.FoodItemID]; ok {
		p.FoodItem = &item
	}
	return p
}

// Profiles

func (s *MemoryStore) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) UpsertProfile(ctx context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	s.profiles[p.ID] = *p
	return nil
}

func (s *MemoryStore) CountProfiles(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.profiles)), nil
}

func sortRestaurants(restaurants []models.Restaurant) {
	sort.Slice(restaurants, func(i, j int) bool {
		a, b := strings.ToLower(restaurants[i].Name), strings.ToLower(restaurants[j].Name)
		if a != b {
			return a < b
		}
		return restaurants[i].ID.String() < restaurants[j].ID.String()
	})
}

func sortPickups(pickups []models.Pickup, ascending bool) {
	sort.Slice(pickups, func(i, j int) bool {
		a, b := pickups[i].CreatedAt, pickups[j].CreatedAt
		if !a.Equal(b) {
			if ascending {
				return a.Before(b)
			}
			return a.After(b)
		}
		return pickups[i].ID.String() < pickups[j].ID.String()
	})
}
