package auth

import (
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Roles  []enums.Role
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients. Roles carries
// every role granted to the user, not just the one used at login.
type AccessTokenClaims struct {
	UserID uuid.UUID    `json:"user_id"`
	Roles  []enums.Role `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the given role.
func (c *AccessTokenClaims) HasRole(role enums.Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
