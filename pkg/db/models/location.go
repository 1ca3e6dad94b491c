package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Placeholder values used when a signup or item upload only names a city.
	DefaultProvince      = "Not specified"
	DefaultZipCode       = "0000"
	DefaultStreetAddress = "Not specified"
)

// Location is a coarse delivery/pickup address shared by users and food items.
type Location struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Province      string    `gorm:"not null" json:"province"`
	City          string    `gorm:"not null;index" json:"city"`
	ZipCode       string    `gorm:"not null" json:"zip_code"`
	StreetAddress string    `gorm:"not null" json:"street_address"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Location) TableName() string { return "locations" }
