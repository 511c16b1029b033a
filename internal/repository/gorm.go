package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/config"
	"github.com/mealshare/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// GormStore implements Store on a relational database through gorm
type GormStore struct {
	db *gorm.DB
}

// Open connects to the database named by cfg, logging queries through log.
// SQLite connections are limited to one so concurrent writers queue instead
// of failing with SQLITE_BUSY.
func Open(cfg config.DatabaseConfig, log *slog.Logger, logLevel string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.URL)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	level := gormlogger.Warn
	if logLevel == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log, level),
		TranslateError: true,
		// pickups reference users that may not have created a profile yet
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// NewGormStore wraps an open gorm connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates or updates the tables backing the store
func (s *GormStore) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Profile{},
		&models.Restaurant{},
		&models.FoodItem{},
		&models.Pickup{},
	)
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// Restaurants

func (s *GormStore) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	db := s.db.WithContext(ctx)

	var owned int64
	if err := db.Model(&models.Restaurant{}).Where("owner_id = ?", r.OwnerID).Count(&owned).Error; err != nil {
		return err
	}
	if owned > 0 {
		return ErrDuplicate
	}

	stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	return translate(db.Omit(clause.Associations).Create(r).Error)
}

func (s *GormStore) UpdateRestaurant(ctx context.Context, r *models.Restaurant) error {
	db := s.db.WithContext(ctx)

	var existing models.Restaurant
	if err := db.First(&existing, "id = ?", r.ID).Error; err != nil {
		return translate(err)
	}

	r.CreatedAt = existing.CreatedAt
	err := db.Model(&models.Restaurant{ID: r.ID}).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(r).Error
	return translate(err)
}

func (s *GormStore) GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *GormStore) GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.WithContext(ctx).First(&r, "owner_id = ?", ownerID).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *GormStore) ListRestaurants(ctx context.Context, activeOnly bool) ([]models.Restaurant, error) {
	query := s.db.WithContext(ctx).Order("LOWER(name), id")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	restaurants := make([]models.Restaurant, 0)
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *GormStore) CountRestaurants(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Count(&n).Error
	return n, err
}

func (s *GormStore) ListRestaurantsWithCompletedPickups(ctx context.Context) ([]models.Restaurant, error) {
	db := s.db.WithContext(ctx)

	completed := db.Model(&models.Pickup{}).
		Select("restaurant_id").
		Where("status = ?", models.PickupStatusCompleted)

	restaurants := make([]models.Restaurant, 0)
	err := db.
		Where("id IN (?)", completed).
		Preload("Pickups", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", models.PickupStatusCompleted).Order("created_at ASC, id")
		}).
		Preload("Pickups.FoodItem").
		Order("LOWER(name), id").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Food items

func (s *GormStore) CreateFoodItem(ctx context.Context, item *models.FoodItem) error {
	stamp(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

func (s *GormStore) UpdateFoodItem(ctx context.Context, id uuid.UUID, u models.FoodItemUpdate) (*models.FoodItem, error) {
	cols := u.Columns()
	cols["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetFoodItem(ctx, id)
}

func (s *GormStore) DeleteFoodItem(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.FoodItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetFoodItem(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *GormStore) ListFoodItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID, availableOnly bool) ([]models.FoodItem, error) {
	query := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC, id")
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}

	items := make([]models.FoodItem, 0)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) ListAvailableFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	items := make([]models.FoodItem, 0)
	err := s.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("created_at DESC, id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) ListAllFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	items := make([]models.FoodItem, 0)
	if err := s.db.WithContext(ctx).Order("food_type ASC, created_at DESC, id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Pickups

// ReservePickup flips availability with a conditional update so that only one
// of several concurrent reservations for the same item can succeed.
func (s *GormStore) ReservePickup(ctx context.Context, p *models.Pickup) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.FoodItem
		if err := tx.First(&item, "id = ?", p.FoodItemID).Error; err != nil {
			return translate(err)
		}

		res := tx.Model(&models.FoodItem{}).
			Where("id = ? AND is_available = ?", item.ID, true).
			Update("is_available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFoodItemUnavailable
		}

		stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		p.RestaurantID = item.RestaurantID
		p.FoodItem, p.Restaurant, p.Profile = nil, nil, nil
		return translate(tx.Create(p).Error)
	})
}

func (s *GormStore) GetPickup(ctx context.Context, id uuid.UUID) (*models.Pickup, error) {
	var p models.Pickup
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) UpdatePickupStatus(ctx context.Context, id uuid.UUID, from, to models.PickupStatus) (*models.Pickup, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Pickup{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return nil, res.Error
	}

	p, err := s.GetPickup(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrStatusConflict
	}
	return p, nil
}

func (s *GormStore) ListPickupsByUser(ctx context.Context, userID uuid.UUID) ([]models.Pickup, error) {
	pickups := make([]models.Pickup, 0)
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("FoodItem").
		Where("user_id = ?", userID).
		Order("created_at DESC, id").
		Find(&pickups).Error
	if err != nil {
		return nil, err
	}
	return pickups, nil
}

func (s *GormStore) ListPickupsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Pickup, error) {
	pickups := make([]models.Pickup, 0)
	err := s.db.WithContext(ctx).
		Preload("FoodItem").
		Preload("Profile").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC, id").
		Find(&pickups).Error
	if err != nil {
		return nil, err
	}
	return pickups, nil
}

func (s *GormStore) ListCompletedPickups(ctx context.Context) ([]models.Pickup, error) {
	pickups := make([]models.Pickup, 0)
	err := s.db.WithContext(ctx).
		Preload("FoodItem").
		Where("status = ?", models.PickupStatusCompleted).
		Order("created_at ASC, id").
		Find(&pickups).Error
	if err != nil {
		return nil, err
	}
	return pickups, nil
}

// Profiles

func (s *GormStore) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) UpsertProfile(ctx context.Context, p *models.Profile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Profile
		err := tx.First(&existing, "id = ?", p.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
			return tx.Create(p).Error
		case err != nil:
			return err
		}

		p.CreatedAt = existing.CreatedAt
		return tx.Model(&models.Profile{ID: p.ID}).
			Select("*").
			Omit("id", "created_at").
			Updates(p).Error
	})
}

func (s *GormStore) CountProfiles(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Profile{}).Count(&n).Error
	return n, err
}
