package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a food donor listing surplus items
type Restaurant struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city" gorm:"index"`
	State       string    `json:"state"`
	Zip         string    `json:"zip"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Pickups []Pickup `json:"pickups,omitempty" gorm:"foreignKey:RestaurantID"`
}

// HasCoordinates reports whether both latitude and longitude are set
func (r Restaurant) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// RestaurantRequest is the payload for registering or editing a restaurant
type RestaurantRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Address     string   `json:"address" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	Zip         string   `json:"zip" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Website     string   `json:"website" validate:"omitempty,url"`
	IsActive    *bool    `json:"is_active"`
}

// RestaurantListing is a search result with an optional distance from the searcher
type RestaurantListing struct {
	Restaurant
	Distance       *float64   `json:"distance"`
	DistanceText   string     `json:"distance_text,omitempty"`
	FoodTypes      []string   `json:"food_types"`
	EarliestPickup *time.Time `json:"earliest_pickup,omitempty"`
	LatestPickup   *time.Time `json:"latest_pickup,omitempty"`
}

// RestaurantStats summarizes a restaurant's listings and pickups
type RestaurantStats struct {
	TotalFoodItems     int `json:"totalFoodItems"`
	AvailableFoodItems int `json:"availableFoodItems"`
	TotalPickups       int `json:"totalPickups"`
	ScheduledPickups   int `json:"scheduledPickups"`
	InProgressPickups  int `json:"inProgressPickups"`
	CompletedPickups   int `json:"completedPickups"`
	CancelledPickups   int `json:"cancelledPickups"`
}
