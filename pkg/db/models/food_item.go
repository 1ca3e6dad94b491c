package models

import (
	"time"

	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/google/uuid"
)

// FoodItem is a surplus listing uploaded by a supplier. Status tracks the
// listing lifecycle, not individual requests against it.
type FoodItem struct {
	ID                uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	FoodType          string               `gorm:"not null" json:"food_type"`
	FoodName          string               `gorm:"not null" json:"food_name"`
	QuantityAvailable float64              `gorm:"not null" json:"quantity_available"`
	ExpiryDate        time.Time            `gorm:"not null;index" json:"expiry_date"`
	DeliveryOption    string               `json:"delivery_option"`
	LocationID        uuid.UUID            `gorm:"type:uuid;not null" json:"location_id"`
	Description       string               `json:"description"`
	Status            enums.FoodItemStatus `gorm:"not null;default:'Unselected'" json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`

	Supplier *User     `gorm:"foreignKey:UserID" json:"supplier,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (FoodItem) TableName() string { return "food_items" }
