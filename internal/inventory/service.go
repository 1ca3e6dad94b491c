package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	location "github.com/bfb-software/foodconnect-backend/internal/locations"
	user "github.com/bfb-software/foodconnect-backend/internal/users"
	"github.com/bfb-software/foodconnect-backend/pkg/db"
	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes surplus inventory operations.
type Service interface {
	CreateItem(ctx context.Context, supplierID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	ListAvailable(ctx context.Context, asOf time.Time) ([]AvailableItemDTO, error)
	ListPublic(ctx context.Context) ([]AvailableItemDTO, error)
	ListOwned(ctx context.Context, supplierID uuid.UUID) ([]ItemDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateItem resolves the pickup location, refreshes the supplier profile
// when the form carries occupation/contact, and inserts the listing — all in
// one transaction.
func (s *service) CreateItem(ctx context.Context, supplierID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if strings.TrimSpace(input.FoodName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food_name is required")
	}

	expiry, err := time.Parse(ExpiryDateLayout, input.ExpiryDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry_date must be formatted YYYY-MM-DD")
	}

	var dto *ItemDTO
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		locationRepo := location.NewRepository(tx)
		userRepo := user.NewRepository(tx)
		itemRepo := s.repo.WithTx(tx)

		loc, err := locationRepo.FindOrCreateByCity(ctx, input.City)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve location")
		}

		if err := userRepo.UpdateProfile(ctx, supplierID, strings.TrimSpace(input.Occupation), strings.TrimSpace(input.ContactNumber)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update supplier profile")
		}

		item := &models.FoodItem{
			ID:                uuid.New(),
			UserID:            supplierID,
			FoodType:          strings.TrimSpace(input.FoodType),
			FoodName:          strings.TrimSpace(input.FoodName),
			QuantityAvailable: input.Quantity,
			ExpiryDate:        expiry,
			DeliveryOption:    strings.TrimSpace(input.DeliveryOption),
			LocationID:        loc.ID,
			Description:       strings.TrimSpace(input.Description),
			Status:            enums.FoodItemStatusUnselected,
		}
		if _, err := itemRepo.Create(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create food item")
		}

		dto = NewItemDTO(item, loc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListAvailable returns claimable listings for recipients, freshest snapshot
// per call. Expiry dates are stored at midnight, so asOf is truncated to its
// UTC calendar date; items expiring on the asOf day are still listed.
func (s *service) ListAvailable(ctx context.Context, asOf time.Time) ([]AvailableItemDTO, error) {
	asOf = asOf.UTC()
	cutoff := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := s.repo.ListAvailable(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list available items")
	}
	return availableDTOs(rows), nil
}

// ListPublic returns the unauthenticated surplus catalog.
func (s *service) ListPublic(ctx context.Context) ([]AvailableItemDTO, error) {
	rows, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list public items")
	}
	return availableDTOs(rows), nil
}

// ListOwned returns the supplier's listings.
func (s *service) ListOwned(ctx context.Context, supplierID uuid.UUID) ([]ItemDTO, error) {
	rows, err := s.repo.ListOwned(ctx, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list owned items")
	}

	dtos := make([]ItemDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ItemDTO{
			ID:                row.ID,
			FoodType:          row.FoodType,
			FoodName:          row.FoodName,
			QuantityAvailable: row.QuantityAvailable,
			ExpiryDate:        row.ExpiryDate.Format(ExpiryDateLayout),
			DeliveryOption:    row.DeliveryOption,
			Description:       row.Description,
			Status:            row.Status.String(),
			City:              row.City,
			StreetAddress:     row.StreetAddress,
			CreatedAt:         row.CreatedAt,
		})
	}
	return dtos, nil
}

func availableDTOs(rows []AvailableRow) []AvailableItemDTO {
	dtos := make([]AvailableItemDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, AvailableItemDTO{
			ID:                row.ID,
			FoodType:          row.FoodType,
			FoodName:          row.FoodName,
			QuantityAvailable: row.QuantityAvailable,
			ExpiryDate:        row.ExpiryDate.Format(ExpiryDateLayout),
			DeliveryOption:    row.DeliveryOption,
			Description:       row.Description,
			SupplierName:      row.SupplierName,
			ContactNumber:     row.ContactNumber,
			City:              row.City,
			StreetAddress:     row.StreetAddress,
		})
	}
	return dtos
}
