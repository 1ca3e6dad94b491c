package request

import (
	"time"

	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/google/uuid"
)

// SubmitInput holds the validated payload to claim part of a food item.
type SubmitInput struct {
	ItemID       uuid.UUID `json:"item_id"`
	Quantity     float64   `json:"quantity"`
	UrgencyLevel string    `json:"urgency_level"`
}

// RequestDTO is the request payload returned to clients, joined with the
// item and recipient names.
type RequestDTO struct {
	ID             uuid.UUID `json:"id"`
	ItemID         uuid.UUID `json:"item_id"`
	FoodName       string    `json:"food_name"`
	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientName  string    `json:"recipient_name"`
	QuantityNeeded float64   `json:"quantity_needed"`
	UrgencyLevel   string    `json:"urgency_level"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListResult is one page of requests plus the cursor for the next one.
type ListResult struct {
	Requests   []RequestDTO `json:"requests"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func rowToDTO(row DetailRow) RequestDTO {
	return RequestDTO{
		ID:             row.ID,
		ItemID:         row.ItemID,
		FoodName:       row.FoodName,
		RecipientID:    row.RecipientID,
		RecipientName:  row.RecipientName,
		QuantityNeeded: row.QuantityNeeded,
		UrgencyLevel:   row.UrgencyLevel.String(),
		Status:         row.Status.String(),
		CreatedAt:      row.CreatedAt,
	}
}

// DetailRow is a request joined with its item and recipient.
type DetailRow struct {
	ID             uuid.UUID
	ItemID         uuid.UUID
	FoodName       string
	RecipientID    uuid.UUID
	RecipientName  string
	SupplierID     uuid.UUID
	QuantityNeeded float64
	UrgencyLevel   enums.UrgencyLevel
	Status         enums.RequestStatus
	CreatedAt      time.Time
}
