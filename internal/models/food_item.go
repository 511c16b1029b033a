package models

import (
	"time"

	"github.com/google/uuid"
)

// FoodItem is a posted unit of surplus food with a pickup window
type FoodItem struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RestaurantID      uuid.UUID `json:"restaurant_id" gorm:"type:uuid;not null;index"`
	Name              string    `json:"name" gorm:"not null"`
	Description       string    `json:"description"`
	Quantity          int       `json:"quantity" gorm:"not null"`
	FoodType          string    `json:"food_type" gorm:"index"`
	PickupWindowStart time.Time `json:"pickup_window_start"`
	PickupWindowEnd   time.Time `json:"pickup_window_end"`
	IsAvailable       bool      `json:"is_available" gorm:"index"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FoodItemRequest is the payload for posting a food item
type FoodItemRequest struct {
	Name              string    `json:"name" validate:"required,max=200"`
	Description       string    `json:"description" validate:"max=2000"`
	Quantity          int       `json:"quantity" validate:"required,gt=0"`
	FoodType          string    `json:"food_type" validate:"required"`
	PickupWindowStart time.Time `json:"pickup_window_start" validate:"required"`
	PickupWindowEnd   time.Time `json:"pickup_window_end" validate:"required,gtfield=PickupWindowStart"`
}

// FoodItemUpdate carries a partial edit; nil fields are left untouched
type FoodItemUpdate struct {
	Name              *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string    `json:"description" validate:"omitempty,max=2000"`
	Quantity          *int       `json:"quantity" validate:"omitempty,gt=0"`
	FoodType          *string    `json:"food_type" validate:"omitempty,min=1"`
	PickupWindowStart *time.Time `json:"pickup_window_start"`
	PickupWindowEnd   *time.Time `json:"pickup_window_end"`
	IsAvailable       *bool      `json:"is_available"`
}

// Apply copies the set fields onto item
func (u FoodItemUpdate) Apply(item *FoodItem) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Quantity != nil {
		item.Quantity = *u.Quantity
	}
	if u.FoodType != nil {
		item.FoodType = *u.FoodType
	}
	if u.PickupWindowStart != nil {
		item.PickupWindowStart = *u.PickupWindowStart
	}
	if u.PickupWindowEnd != nil {
		item.PickupWindowEnd = *u.PickupWindowEnd
	}
	if u.IsAvailable != nil {
		item.IsAvailable = *u.IsAvailable
	}
}

// Columns maps the set fields to their column names
func (u FoodItemUpdate) Columns() map[string]any {
	cols := make(map[string]any)
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Quantity != nil {
		cols["quantity"] = *u.Quantity
	}
	if u.FoodType != nil {
		cols["food_type"] = *u.FoodType
	}
	if u.PickupWindowStart != nil {
		cols["pickup_window_start"] = *u.PickupWindowStart
	}
	if u.PickupWindowEnd != nil {
		cols["pickup_window_end"] = *u.PickupWindowEnd
	}
	if u.IsAvailable != nil {
		cols["is_available"] = *u.IsAvailable
	}
	return cols
}
