package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction records a completed donation. Rows are written when a request
// reaches Completed and are never updated afterwards.
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
