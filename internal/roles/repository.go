package role

import (
	"context"

	"github.com/bfb-software/foodconnect-backend/pkg/db"
	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles role grants.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Grant ensures the user holds the role. Granting an already-held role is a
// no-op; the unique index on (user_id, role) backstops concurrent grants.
func (r *Repository) Grant(ctx context.Context, userID uuid.UUID, role enums.Role) error {
	has, err := r.Has(ctx, userID, role)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	grant := models.UserRole{
		ID:     uuid.New(),
		UserID: userID,
		Role:   role,
	}
	if err := r.db.WithContext(ctx).Create(&grant).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

// Has reports whether the user holds the role.
func (r *Repository) Has(ctx context.Context, userID uuid.UUID, role enums.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser returns every role granted to the user.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]enums.Role, error) {
	var roles []enums.Role
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
