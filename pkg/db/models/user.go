package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a single account; roles live in user_roles so one person can act
// as both supplier and recipient.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName      string    `gorm:"not null" json:"full_name"`
	Occupation    string    `json:"occupation"`
	LocationID    uuid.UUID `gorm:"type:uuid;not null" json:"location_id"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (User) TableName() string { return "users" }
