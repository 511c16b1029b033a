package models

import (
	"time"

	"github.com/google/uuid"
)

// PickupStatus is the lifecycle state of a pickup reservation
type PickupStatus string

const (
	PickupStatusScheduled  PickupStatus = "scheduled"
	PickupStatusInProgress PickupStatus = "in-progress"
	PickupStatusCompleted  PickupStatus = "completed"
	PickupStatusCancelled  PickupStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s PickupStatus) Valid() bool {
	switch s {
	case PickupStatusScheduled, PickupStatusInProgress, PickupStatusCompleted, PickupStatusCancelled:
		return true
	}
	return false
}

// Pickup links a user to a reserved food item at a restaurant
type Pickup struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID    `json:"restaurant_id" gorm:"type:uuid;not null;index"`
	FoodItemID   uuid.UUID    `json:"food_item_id" gorm:"type:uuid;not null;index"`
	Status       PickupStatus `json:"status" gorm:"not null;index"`
	PickupTime   time.Time    `json:"pickup_time"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time    `json:"updated_at"`

	FoodItem   *FoodItem   `json:"food_item,omitempty" gorm:"foreignKey:FoodItemID"`
	Restaurant *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Profile    *Profile    `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// ReserveRequest is the payload for reserving a food item
type ReserveRequest struct {
	FoodItemID string    `json:"food_item_id" validate:"required,uuid"`
	PickupTime time.Time `json:"pickup_time" validate:"required"`
	Notes      string    `json:"notes" validate:"max=1000"`
}

// StatusRequest is the payload for moving a pickup to a new status
type StatusRequest struct {
	Status PickupStatus `json:"status" validate:"required"`
}
