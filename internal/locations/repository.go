package location

import (
	"context"
	"errors"
	"strings"

	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles location persistence.
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

// FindOrCreateByCity returns the first location matching the city exactly,
// inserting one with placeholder fields when none exists. City matching is
// case-sensitive and unnormalized beyond trimming.
func (r *Repository) FindOrCreateByCity(ctx context.Context, city string) (*models.Location, error) {
	city = strings.TrimSpace(city)

	var loc models.Location
	err := r.db.WithContext(ctx).
		Where("city = ?", city).
		Order("created_at ASC").
		First(&loc).Error
	if err == nil {
		return &loc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	loc = models.Location{
		ID:            uuid.New(),
		Province:      models.DefaultProvince,
		City:          city,
		ZipCode:       models.DefaultZipCode,
		StreetAddress: models.DefaultStreetAddress,
	}
	if err := r.db.WithContext(ctx).Create(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}
