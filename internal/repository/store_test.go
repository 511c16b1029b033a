package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/config"
	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/pkg/logger"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()

	db, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, logger.New("error"), "error")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	store := NewGormStore(db)
	if err := store.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// forEachStore runs fn against every Store implementation
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, newSQLiteStore(t))
	})
}

func seedRestaurant(t *testing.T, s Store, name, city string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{
		OwnerID:  uuid.New(),
		Name:     name,
		City:     city,
		IsActive: true,
	}
	if err := s.CreateRestaurant(context.Background(), r); err != nil {
		t.Fatalf("CreateRestaurant(%s) error = %v", name, err)
	}
	return r
}

func seedFoodItem(t *testing.T, s Store, restaurantID uuid.UUID, foodType string, quantity int) *models.FoodItem {
	t.Helper()
	start := time.Now().UTC().Add(time.Hour)
	item := &models.FoodItem{
		RestaurantID:      restaurantID,
		Name:              foodType + " box",
		Quantity:          quantity,
		FoodType:          foodType,
		PickupWindowStart: start,
		PickupWindowEnd:   start.Add(2 * time.Hour),
		IsAvailable:       true,
	}
	if err := s.CreateFoodItem(context.Background(), item); err != nil {
		t.Fatalf("CreateFoodItem error = %v", err)
	}
	return item
}

func reserve(t *testing.T, s Store, userID, foodItemID uuid.UUID) *models.Pickup {
	t.Helper()
	p := &models.Pickup{
		UserID:     userID,
		FoodItemID: foodItemID,
		Status:     models.PickupStatusScheduled,
		PickupTime: time.Now().UTC().Add(90 * time.Minute),
	}
	if err := s.ReservePickup(context.Background(), p); err != nil {
		t.Fatalf("ReservePickup error = %v", err)
	}
	return p
}

func TestStore_Restaurants(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		beta := seedRestaurant(t, s, "beta Bistro", "Portland")
		alpha := seedRestaurant(t, s, "Alpha Cafe", "Salem")

		inactive := &models.Restaurant{OwnerID: uuid.New(), Name: "Closed Diner", IsActive: false}
		if err := s.CreateRestaurant(ctx, inactive); err != nil {
			t.Fatalf("CreateRestaurant error = %v", err)
		}

		if alpha.ID == uuid.Nil || alpha.CreatedAt.IsZero() {
			t.Errorf("expected id and created_at to be assigned, got %+v", alpha)
		}

		got, err := s.GetRestaurant(ctx, beta.ID)
		if err != nil {
			t.Fatalf("GetRestaurant error = %v", err)
		}
		if got.Name != "beta Bistro" || got.City != "Portland" {
			t.Errorf("GetRestaurant = %+v", got)
		}

		owned, err := s.GetRestaurantByOwner(ctx, alpha.OwnerID)
		if err != nil || owned.ID != alpha.ID {
			t.Errorf("GetRestaurantByOwner = %v, %v; want %s", owned, err, alpha.ID)
		}

		active, err := s.ListRestaurants(ctx, true)
		if err != nil {
			t.Fatalf("ListRestaurants error = %v", err)
		}
		if len(active) != 2 || active[0].ID != alpha.ID || active[1].ID != beta.ID {
			t.Errorf("active restaurants = %+v, want [Alpha Cafe, beta Bistro]", active)
		}

		all, _ := s.ListRestaurants(ctx, false)
		if len(all) != 3 {
			t.Errorf("all restaurants = %d, want 3", len(all))
		}

		count, err := s.CountRestaurants(ctx)
		if err != nil || count != 3 {
			t.Errorf("CountRestaurants = %d, %v; want 3", count, err)
		}
	})
}

func TestStore_RestaurantErrors(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		r := seedRestaurant(t, s, "Alpha Cafe", "Salem")

		dup := &models.Restaurant{OwnerID: r.OwnerID, Name: "Second"}
		if err := s.CreateRestaurant(ctx, dup); !errors.Is(err, ErrDuplicate) {
			t.Errorf("second restaurant for owner: error = %v, want ErrDuplicate", err)
		}

		if _, err := s.GetRestaurant(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetRestaurant(missing) error = %v, want ErrNotFound", err)
		}
		if _, err := s.GetRestaurantByOwner(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetRestaurantByOwner(missing) error = %v, want ErrNotFound", err)
		}
		if err := s.UpdateRestaurant(ctx, &models.Restaurant{ID: uuid.New()}); !errors.Is(err, ErrNotFound) {
			t.Errorf("UpdateRestaurant(missing) error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_UpdateRestaurantKeepsCreatedAt(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		r := seedRestaurant(t, s, "Alpha Cafe", "Salem")
		created := r.CreatedAt

		lat, lon := 44.94, -123.03
		update := *r
		update.Name = "Alpha Kitchen"
		update.Latitude, update.Longitude = &lat, &lon
		update.IsActive = false
		update.CreatedAt = time.Time{}
		if err := s.UpdateRestaurant(ctx, &update); err != nil {
			t.Fatalf("UpdateRestaurant error = %v", err)
		}

		got, err := s.GetRestaurant(ctx, r.ID)
		if err != nil {
			t.Fatalf("GetRestaurant error = %v", err)
		}
		if got.Name != "Alpha Kitchen" || got.IsActive || !got.HasCoordinates() || *got.Latitude != lat {
			t.Errorf("updated restaurant = %+v", got)
		}
		if !got.CreatedAt.Equal(created) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
		}
	})
}

func TestStore_FoodItems(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		r := seedRestaurant(t, s, "Alpha Cafe", "Salem")
		other := seedRestaurant(t, s, "Beta Bistro", "Portland")

		bread := seedFoodItem(t, s, r.ID, "Bakery", 5)
		time.Sleep(2 * time.Millisecond)
		milk := seedFoodItem(t, s, r.ID, "Dairy", 2)
		time.Sleep(2 * time.Millisecond)
		apples := seedFoodItem(t, s, other.ID, "Bakery", 7)

		unavailable := false
		updated, err := s.UpdateFoodItem(ctx, milk.ID, models.FoodItemUpdate{IsAvailable: &unavailable})
		if err != nil {
			t.Fatalf("UpdateFoodItem error = %v", err)
		}
		if updated.IsAvailable || updated.Name != milk.Name || updated.Quantity != milk.Quantity {
			t.Errorf("updated item = %+v, want only availability changed", updated)
		}
		if !updated.CreatedAt.Equal(milk.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", updated.CreatedAt, milk.CreatedAt)
		}

		items, err := s.ListFoodItemsByRestaurant(ctx, r.ID, false)
		if err != nil {
			t.Fatalf("ListFoodItemsByRestaurant error = %v", err)
		}
		if len(items) != 2 || items[0].ID != milk.ID || items[1].ID != bread.ID {
			t.Errorf("restaurant items = %+v, want newest first", items)
		}

		available, _ := s.ListFoodItemsByRestaurant(ctx, r.ID, true)
		if len(available) != 1 || available[0].ID != bread.ID {
			t.Errorf("available items = %+v, want only bread", available)
		}

		allAvailable, _ := s.ListAvailableFoodItems(ctx)
		if len(allAvailable) != 2 {
			t.Errorf("ListAvailableFoodItems = %d items, want 2", len(allAvailable))
		}

		all, _ := s.ListAllFoodItems(ctx)
		if len(all) != 3 {
			t.Fatalf("ListAllFoodItems = %d items, want 3", len(all))
		}
		if all[0].FoodType != "Bakery" || all[1].FoodType != "Bakery" || all[2].FoodType != "Dairy" {
			t.Errorf("ListAllFoodItems not ordered by food type: %+v", all)
		}
		if all[0].ID != apples.ID {
			t.Errorf("within a food type items should be newest first, got %s", all[0].Name)
		}

		if err := s.DeleteFoodItem(ctx, bread.ID); err != nil {
			t.Fatalf("DeleteFoodItem error = %v", err)
		}
		if _, err := s.GetFoodItem(ctx, bread.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetFoodItem(deleted) error = %v, want ErrNotFound", err)
		}
		if err := s.DeleteFoodItem(ctx, bread.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("DeleteFoodItem(deleted) error = %v, want ErrNotFound", err)
		}
		if _, err := s.UpdateFoodItem(ctx, uuid.New(), models.FoodItemUpdate{IsAvailable: &unavailable}); !errors.Is(err, ErrNotFound) {
			t.Errorf("UpdateFoodItem(missing) error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_ReservePickup(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		r := seedRestaurant(t, s, "Alpha Cafe", "Salem")
		item := seedFoodItem(t, s, r.ID, "Bakery", 5)
		user := uuid.New()

		// a client supplied restaurant id is replaced by the item's
		p := &models.Pickup{
			UserID:       user,
			FoodItemID:   item.ID,
			RestaurantID: uuid.New(),
			Status:       models.PickupStatusScheduled,
			PickupTime:   time.Now().UTC().Add(time.Hour),
		}
		if err := s.ReservePickup(ctx, p); err != nil {
			t.Fatalf("ReservePickup error = %v", err)
		}
		if p.ID == uuid.Nil {
			t.Error("expected pickup id to be assigned")
		}
		if p.RestaurantID != r.ID {
			t.Errorf("RestaurantID = %s, want %s", p.RestaurantID, r.ID)
		}

		got, err := s.GetFoodItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetFoodItem error = %v", err)
		}
		if got.IsAvailable {
			t.Error("food item should be unavailable after reservation")
		}

		again := &models.Pickup{UserID: uuid.New(), FoodItemID: item.ID, Status: models.PickupStatusScheduled}
		if err := s.ReservePickup(ctx, again); !errors.Is(err, ErrFoodItemUnavailable) {
			t.Errorf("second reservation error = %v, want ErrFoodItemUnavailable", err)
		}

		missing := &models.Pickup{UserID: user, FoodItemID: uuid.New(), Status: models.PickupStatusScheduled}
		if err := s.ReservePickup(ctx, missing); !errors.Is(err, ErrNotFound) {
			t.Errorf("reservation of missing item error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_UpdateFoodItemKeepsReservation(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		r := seedRestaurant(t, s, "Alpha Cafe", "Salem")
		item := seedFoodItem(t, s, r.ID, "Bakery", 5)

		reserve(t, s, uuid.New(), item.ID)

		name := "Day-old bread"
		updated, err := s.UpdateFoodItem(ctx, item.ID, models.FoodItemUpdate{Name: &name})
		if err != nil {
			t.Fatalf("UpdateFoodItem error = %v", err)
		}
		if updated.Name != name {
			t.Errorf("Name = %q, want %q", updated.Name, name)
		}
		if updated.IsAvailable {
			t.Error("name-only edit made a reserved item available")
		}

		again := &models.Pickup{UserID: uuid.New(), FoodItemID: item.ID, Status: models.PickupStatusScheduled}
		if err := s.ReservePickup(ctx, again); !errors.Is(err, ErrFoodItemUnavailable) {
			t.Errorf("second reservation error = %v, want ErrFoodItemUnavailable", err)
		}
	})
}

func TestStore_ReservePickupConcurrent(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		r := seedRestaurant(t, s, "Alpha Cafe", "Salem")
		item := seedFoodItem(t, s, r.ID, "Bakery", 5)

		const workers = 8
		var (
			wg          sync.WaitGroup
			mu          sync.Mutex
			succeeded   int
			unavailable int
			other       []error
		)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p := &models.Pickup{
					UserID:     uuid.New(),
					FoodItemID: item.ID,
					Status:     models.PickupStatusScheduled,
					PickupTime: time.Now().UTC(),
				}
				err := s.ReservePickup(ctx, p)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, ErrFoodItemUnavailable):
					unavailable++
				default:
					other = append(other, err)
				}
			}()
		}
		wg.Wait()

		if len(other) > 0 {
			t.Fatalf("unexpected errors: %v", other)
		}
		if succeeded != 1 || unavailable != workers-1 {
			t.Errorf("succeeded = %d, unavailable = %d; want 1 and %d", succeeded, unavailable, workers-1)
		}
	})
}

func TestStore_UpdatePickupStatus(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		r := seedRestaurant(t, s, "Alpha Cafe", "Salem")
		item := seedFoodItem(t, s, r.ID, "Bakery", 5)
		p := reserve(t, s, uuid.New(), item.ID)

		got, err := s.UpdatePickupStatus(ctx, p.ID, models.PickupStatusScheduled, models.PickupStatusInProgress)
		if err != nil {
			t.Fatalf("UpdatePickupStatus error = %v", err)
		}
		if got.Status != models.PickupStatusInProgress {
			t.Errorf("status = %s, want in-progress", got.Status)
		}

		if _, err := s.UpdatePickupStatus(ctx, p.ID, models.PickupStatusScheduled, models.PickupStatusCancelled); !errors.Is(err, ErrStatusConflict) {
			t.Errorf("stale update error = %v, want ErrStatusConflict", err)
		}
		if _, err := s.UpdatePickupStatus(ctx, uuid.New(), models.PickupStatusScheduled, models.PickupStatusCancelled); !errors.Is(err, ErrNotFound) {
			t.Errorf("missing pickup error = %v, want ErrNotFound", err)
		}

		stored, _ := s.GetPickup(ctx, p.ID)
		if stored.Status != models.PickupStatusInProgress {
			t.Errorf("stored status = %s, want in-progress", stored.Status)
		}
	})
}

func TestStore_ListPickups(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		r := seedRestaurant(t, s, "Alpha Cafe", "Salem")
		user := uuid.New()

		profile := &models.Profile{ID: user, FullName: "Dana", AccountType: models.AccountTypeIndividual}
		if err := s.UpsertProfile(ctx, profile); err != nil {
			t.Fatalf("UpsertProfile error = %v", err)
		}

		first := reserve(t, s, user, seedFoodItem(t, s, r.ID, "Bakery", 5).ID)
		time.Sleep(2 * time.Millisecond)
		second := reserve(t, s, user, seedFoodItem(t, s, r.ID, "Dairy", 2).ID)
		reserve(t, s, uuid.New(), seedFoodItem(t, s, r.ID, "Produce", 1).ID)

		mine, err := s.ListPickupsByUser(ctx, user)
		if err != nil {
			t.Fatalf("ListPickupsByUser error = %v", err)
		}
		if len(mine) != 2 || mine[0].ID != second.ID || mine[1].ID != first.ID {
			t.Fatalf("user pickups = %+v, want newest first", mine)
		}
		if mine[0].Restaurant == nil || mine[0].Restaurant.Name != "Alpha Cafe" {
			t.Errorf("pickup restaurant = %+v, want Alpha Cafe attached", mine[0].Restaurant)
		}
		if mine[0].FoodItem == nil || mine[0].FoodItem.FoodType != "Dairy" {
			t.Errorf("pickup food item = %+v, want Dairy attached", mine[0].FoodItem)
		}

		atRestaurant, err := s.ListPickupsByRestaurant(ctx, r.ID)
		if err != nil {
			t.Fatalf("ListPickupsByRestaurant error = %v", err)
		}
		if len(atRestaurant) != 3 {
			t.Fatalf("restaurant pickups = %d, want 3", len(atRestaurant))
		}
		withProfile := 0
		for _, p := range atRestaurant {
			if p.Profile != nil {
				withProfile++
				if p.Profile.FullName != "Dana" {
					t.Errorf("profile = %+v, want Dana", p.Profile)
				}
			}
		}
		if withProfile != 2 {
			t.Errorf("pickups with profile = %d, want 2", withProfile)
		}
	})
}

func TestStore_CompletedPickups(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		salem := seedRestaurant(t, s, "Alpha Cafe", "Salem")
		portland := seedRestaurant(t, s, "Beta Bistro", "Portland")
		seedRestaurant(t, s, "Gamma Grill", "Eugene")

		complete := func(p *models.Pickup) {
			t.Helper()
			if _, err := s.UpdatePickupStatus(ctx, p.ID, models.PickupStatusScheduled, models.PickupStatusInProgress); err != nil {
				t.Fatalf("start pickup: %v", err)
			}
			if _, err := s.UpdatePickupStatus(ctx, p.ID, models.PickupStatusInProgress, models.PickupStatusCompleted); err != nil {
				t.Fatalf("complete pickup: %v", err)
			}
		}

		older := reserve(t, s, uuid.New(), seedFoodItem(t, s, salem.ID, "Bakery", 4).ID)
		time.Sleep(2 * time.Millisecond)
		newer := reserve(t, s, uuid.New(), seedFoodItem(t, s, portland.ID, "Dairy", 6).ID)
		reserve(t, s, uuid.New(), seedFoodItem(t, s, portland.ID, "Produce", 3).ID)
		complete(newer)
		complete(older)

		pickups, err := s.ListCompletedPickups(ctx)
		if err != nil {
			t.Fatalf("ListCompletedPickups error = %v", err)
		}
		if len(pickups) != 2 || pickups[0].ID != older.ID || pickups[1].ID != newer.ID {
			t.Fatalf("completed pickups = %+v, want oldest first", pickups)
		}
		if pickups[0].FoodItem == nil || pickups[0].FoodItem.Quantity != 4 {
			t.Errorf("completed pickup food item = %+v, want quantity 4", pickups[0].FoodItem)
		}

		restaurants, err := s.ListRestaurantsWithCompletedPickups(ctx)
		if err != nil {
			t.Fatalf("ListRestaurantsWithCompletedPickups error = %v", err)
		}
		if len(restaurants) != 2 {
			t.Fatalf("restaurants = %d, want 2 (only those with completed pickups)", len(restaurants))
		}
		for _, r := range restaurants {
			if len(r.Pickups) != 1 {
				t.Errorf("%s has %d pickups, want 1 completed", r.Name, len(r.Pickups))
				continue
			}
			if r.Pickups[0].Status != models.PickupStatusCompleted || r.Pickups[0].FoodItem == nil {
				t.Errorf("%s pickup = %+v, want completed with food item", r.Name, r.Pickups[0])
			}
		}
	})
}

func TestStore_Profiles(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		id := uuid.New()

		if _, err := s.GetProfile(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetProfile(missing) error = %v, want ErrNotFound", err)
		}

		p := &models.Profile{ID: id, FullName: "Dana", AccountType: models.AccountTypeIndividual}
		if err := s.UpsertProfile(ctx, p); err != nil {
			t.Fatalf("UpsertProfile(create) error = %v", err)
		}
		created := p.CreatedAt

		edit := &models.Profile{
			ID:               id,
			FullName:         "Dana's Pantry",
			AccountType:      models.AccountTypeOrganization,
			OrganizationName: "Dana's Pantry",
		}
		if err := s.UpsertProfile(ctx, edit); err != nil {
			t.Fatalf("UpsertProfile(update) error = %v", err)
		}

		got, err := s.GetProfile(ctx, id)
		if err != nil {
			t.Fatalf("GetProfile error = %v", err)
		}
		if got.AccountType != models.AccountTypeOrganization || got.OrganizationName != "Dana's Pantry" {
			t.Errorf("profile = %+v", got)
		}
		if !got.CreatedAt.Equal(created) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
		}

		count, err := s.CountProfiles(ctx)
		if err != nil || count != 1 {
			t.Errorf("CountProfiles = %d, %v; want 1", count, err)
		}
	})
}

func TestStore_Ping(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		if err := s.Ping(context.Background()); err != nil {
			t.Errorf("Ping error = %v", err)
		}
	})
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "mysql", URL: "x"}, logger.New("error"), "info"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
