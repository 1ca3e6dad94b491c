package inventory

import (
	"context"
	"time"

	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailableRow is a surplus listing joined with its supplier and location.
type AvailableRow struct {
	ID                uuid.UUID
	FoodType          string
	FoodName          string
	QuantityAvailable float64
	ExpiryDate        time.Time
	DeliveryOption    string
	Description       string
	SupplierName      string
	ContactNumber     string
	City              string
	StreetAddress     string
}

// OwnedRow is a supplier's own listing joined with its location.
type OwnedRow struct {
	ID                uuid.UUID
	FoodType          string
	FoodName          string
	QuantityAvailable float64
	ExpiryDate        time.Time
	DeliveryOption    string
	Description       string
	Status            enums.FoodItemStatus
	City              string
	StreetAddress     string
	CreatedAt         time.Time
}

const availableSelect = `
food_items.id,
food_items.food_type,
food_items.food_name,
food_items.quantity_available,
food_items.expiry_date,
food_items.delivery_option,
food_items.description,
users.full_name AS supplier_name,
users.contact_number,
locations.city,
locations.street_address
`

// Repository handles food item persistence.
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

// Create inserts a new food item row.
func (r *Repository) Create(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads a food item by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateStatus sets the item's lifecycle status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FoodItemStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountOwned counts every listing the supplier has uploaded.
func (r *Repository) CountOwned(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("user_id = ?", supplierID).
		Count(&count).Error
	return count, err
}

// CountExpiringBetween counts the supplier's open listings whose expiry
// falls inside [from, to].
func (r *Repository) CountExpiringBetween(ctx context.Context, supplierID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("user_id = ? AND status <> ? AND expiry_date >= ? AND expiry_date <= ?",
			supplierID, enums.FoodItemStatusCompleted, from, to).
		Count(&count).Error
	return count, err
}

// ListAvailable returns unclaimed items that have not expired as of the given
// date, soonest expiry first.
func (r *Repository) ListAvailable(ctx context.Context, asOf time.Time) ([]AvailableRow, error) {
	var rows []AvailableRow
	err := r.db.WithContext(ctx).
		Table("food_items").
		Select(availableSelect).
		Joins("JOIN users ON users.id = food_items.user_id").
		Joins("JOIN locations ON locations.id = food_items.location_id").
		Where("food_items.status = ?", enums.FoodItemStatusUnselected).
		Where("food_items.expiry_date >= ?", asOf).
		Order("food_items.expiry_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPublic returns every unclaimed item regardless of expiry.
func (r *Repository) ListPublic(ctx context.Context) ([]AvailableRow, error) {
	var rows []AvailableRow
	err := r.db.WithContext(ctx).
		Table("food_items").
		Select(availableSelect).
		Joins("JOIN users ON users.id = food_items.user_id").
		Joins("JOIN locations ON locations.id = food_items.location_id").
		Where("food_items.status = ?", enums.FoodItemStatusUnselected).
		Order("food_items.expiry_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOwned returns the supplier's items joined with location, soonest
// expiry first.
func (r *Repository) ListOwned(ctx context.Context, supplierID uuid.UUID) ([]OwnedRow, error) {
	var rows []OwnedRow
	err := r.db.WithContext(ctx).
		Table("food_items").
		Select(`
food_items.id,
food_items.food_type,
food_items.food_name,
food_items.quantity_available,
food_items.expiry_date,
food_items.delivery_option,
food_items.description,
food_items.status,
food_items.created_at,
locations.city,
locations.street_address`).
		Joins("JOIN locations ON locations.id = food_items.location_id").
		Where("food_items.user_id = ?", supplierID).
		Order("food_items.expiry_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
