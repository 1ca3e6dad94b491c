package request

import (
	"context"

	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/bfb-software/foodconnect-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const detailSelect = `
requests.id,
requests.item_id,
food_items.food_name,
food_items.user_id AS supplier_id,
requests.recipient_id,
users.full_name AS recipient_name,
requests.quantity_needed,
requests.urgency_level,
requests.status,
requests.created_at
`

// Repository handles request persistence.
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

// Create inserts a new request row.
func (r *Repository) Create(ctx context.Context, req *models.Request) (*models.Request, error) {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// FindDetail loads a request joined with its item and recipient.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*DetailRow, error) {
	var row DetailRow
	err := r.detailQuery(ctx).
		Where("requests.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// UpdateStatus sets the request's workflow status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListForSupplier pages through requests made against the supplier's items,
// newest first.
func (r *Repository) ListForSupplier(ctx context.Context, supplierID uuid.UUID, limit int, cursor *pagination.Cursor) ([]DetailRow, error) {
	query := r.detailQuery(ctx).Where("food_items.user_id = ?", supplierID)
	return r.page(query, limit, cursor)
}

// ListForRecipient pages through the recipient's own requests, newest first.
func (r *Repository) ListForRecipient(ctx context.Context, recipientID uuid.UUID, limit int, cursor *pagination.Cursor) ([]DetailRow, error) {
	query := r.detailQuery(ctx).Where("requests.recipient_id = ?", recipientID)
	return r.page(query, limit, cursor)
}

// ListPublic returns the newest requests for the unauthenticated feed.
func (r *Repository) ListPublic(ctx context.Context, limit int) ([]DetailRow, error) {
	return r.page(r.detailQuery(ctx), limit, nil)
}

// CountPendingForSupplier counts open requests against the supplier's items.
func (r *Repository) CountPendingForSupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Joins("JOIN food_items ON food_items.id = requests.item_id").
		Where("food_items.user_id = ? AND requests.status = ?", supplierID, enums.RequestStatusPending).
		Count(&count).Error
	return count, err
}

// CountByRecipient counts every request the recipient has submitted.
func (r *Repository) CountByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("recipient_id = ?", recipientID).
		Count(&count).Error
	return count, err
}

func (r *Repository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("requests").
		Select(detailSelect).
		Joins("JOIN food_items ON food_items.id = requests.item_id").
		Joins("JOIN users ON users.id = requests.recipient_id")
}

func (r *Repository) page(query *gorm.DB, limit int, cursor *pagination.Cursor) ([]DetailRow, error) {
	if cursor != nil {
		query = query.Where(
			"(requests.created_at < ?) OR (requests.created_at = ? AND requests.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var rows []DetailRow
	err := query.
		Order("requests.created_at DESC").
		Order("requests.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
