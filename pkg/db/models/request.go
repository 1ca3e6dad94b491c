package models

import (
	"time"

	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/google/uuid"
)

// Request is a recipient's claim on part of a food item.
type Request struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"item_id"`
	RecipientID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"recipient_id"`
	QuantityNeeded float64             `gorm:"not null" json:"quantity_needed"`
	UrgencyLevel   enums.UrgencyLevel  `gorm:"not null;default:'Medium'" json:"urgency_level"`
	Status         enums.RequestStatus `gorm:"not null;default:'Pending'" json:"status"`
	CreatedAt      time.Time           `gorm:"index" json:"created_at"`

	Item      *FoodItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Recipient *User     `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Request) TableName() string { return "requests" }
