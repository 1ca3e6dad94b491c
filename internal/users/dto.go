package user

import (
	"time"

	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/google/uuid"
)

// UserDTO is the account payload returned to clients.
type UserDTO struct {
	ID            uuid.UUID    `json:"id"`
	FullName      string       `json:"full_name"`
	Occupation    string       `json:"occupation,omitempty"`
	ContactNumber string       `json:"contact_number,omitempty"`
	Email         string       `json:"email"`
	LocationID    uuid.UUID    `json:"location_id"`
	Roles         []enums.Role `json:"roles,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// FromModel converts the persisted user into its API shape.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:            user.ID,
		FullName:      user.FullName,
		Occupation:    user.Occupation,
		ContactNumber: user.ContactNumber,
		Email:         user.Email,
		LocationID:    user.LocationID,
		CreatedAt:     user.CreatedAt,
	}
}

// FromModelWithRoles converts the user and attaches its granted roles.
func FromModelWithRoles(user *models.User, roles []enums.Role) *UserDTO {
	dto := FromModel(user)
	if dto != nil {
		dto.Roles = roles
	}
	return dto
}
