package models

import (
	"time"

	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/google/uuid"
)

// UserRole grants a single role to a user. The composite unique index keeps
// role grants idempotent at the database level.
type UserRole struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role" json:"user_id"`
	Role      enums.Role `gorm:"not null;uniqueIndex:idx_user_roles_user_role" json:"role"`
	CreatedAt time.Time  `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserRole) TableName() string { return "user_roles" }
