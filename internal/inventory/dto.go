package inventory

import (
	"time"

	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ExpiryDateLayout is the wire format for item expiry dates.
const ExpiryDateLayout = "2006-01-02"

// CreateItemInput holds the validated payload to upload a surplus item.
type CreateItemInput struct {
	FoodType       string  `json:"food_type"`
	FoodName       string  `json:"food_name"`
	Quantity       float64 `json:"quantity"`
	ExpiryDate     string  `json:"expiry_date"`
	DeliveryOption string  `json:"delivery_option"`
	City           string  `json:"city"`
	Description    string  `json:"description"`
	Occupation     string  `json:"occupation"`
	ContactNumber  string  `json:"contact_number"`
}

// ItemDTO is a supplier-facing surplus listing.
type ItemDTO struct {
	ID                uuid.UUID `json:"id"`
	FoodType          string    `json:"food_type"`
	FoodName          string    `json:"food_name"`
	QuantityAvailable float64   `json:"quantity_available"`
	ExpiryDate        string    `json:"expiry_date"`
	DeliveryOption    string    `json:"delivery_option,omitempty"`
	Description       string    `json:"description,omitempty"`
	Status            string    `json:"status"`
	City              string    `json:"city"`
	StreetAddress     string    `json:"street_address,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// AvailableItemDTO is the recipient-facing surplus listing joined with
// supplier and location details.
type AvailableItemDTO struct {
	ID                uuid.UUID `json:"id"`
	FoodType          string    `json:"food_type"`
	FoodName          string    `json:"food_name"`
	QuantityAvailable float64   `json:"quantity_available"`
	ExpiryDate        string    `json:"expiry_date"`
	DeliveryOption    string    `json:"delivery_option,omitempty"`
	Description       string    `json:"description,omitempty"`
	SupplierName      string    `json:"supplier_name"`
	ContactNumber     string    `json:"contact_number,omitempty"`
	City              string    `json:"city"`
	StreetAddress     string    `json:"street_address,omitempty"`
}

// NewItemDTO builds the supplier listing payload from the persisted row.
func NewItemDTO(item *models.FoodItem, loc *models.Location) *ItemDTO {
	dto := &ItemDTO{
		ID:                item.ID,
		FoodType:          item.FoodType,
		FoodName:          item.FoodName,
		QuantityAvailable: item.QuantityAvailable,
		ExpiryDate:        item.ExpiryDate.Format(ExpiryDateLayout),
		DeliveryOption:    item.DeliveryOption,
		Description:       item.Description,
		Status:            item.Status.String(),
		CreatedAt:         item.CreatedAt,
	}
	if loc != nil {
		dto.City = loc.City
		dto.StreetAddress = loc.StreetAddress
	}
	return dto
}
