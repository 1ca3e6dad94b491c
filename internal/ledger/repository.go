package ledger

import (
	"context"
	"time"

	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository records completed donations and serves their aggregates.
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

// Create appends a ledger row. Rows are immutable once written.
func (r *Repository) Create(ctx context.Context, entry *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// SumQuantityBySupplier totals everything the supplier has donated.
func (r *Repository) SumQuantityBySupplier(ctx context.Context, supplierID uuid.UUID) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("supplier_id = ?", supplierID).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// SumQuantityByRecipient totals everything the recipient has received.
func (r *Repository) SumQuantityByRecipient(ctx context.Context, recipientID uuid.UUID) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("recipient_id = ?", recipientID).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// CountDistinctRecipients counts how many different recipients the supplier
// has donated to.
func (r *Repository) CountDistinctRecipients(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("supplier_id = ?", supplierID).
		Distinct("recipient_id").
		Count(&count).Error
	return count, err
}

// CountDistinctSuppliers counts how many different suppliers the recipient
// has received from.
func (r *Repository) CountDistinctSuppliers(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("recipient_id = ?", recipientID).
		Distinct("supplier_id").
		Count(&count).Error
	return count, err
}

// CountForSupplierBetween counts ledger rows the supplier completed in
// [from, to).
func (r *Repository) CountForSupplierBetween(ctx context.Context, supplierID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("supplier_id = ? AND created_at >= ? AND created_at < ?", supplierID, from, to).
		Count(&count).Error
	return count, err
}

// CountByRecipient counts every ledger row for the recipient.
func (r *Repository) CountByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("recipient_id = ?", recipientID).
		Count(&count).Error
	return count, err
}
