package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/bfb-software/foodconnect-backend/internal/inventory"
	"github.com/bfb-software/foodconnect-backend/internal/ledger"
	"github.com/bfb-software/foodconnect-backend/pkg/db"
	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/bfb-software/foodconnect-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the request workflow: submission, status transitions, and
// the per-role request feeds.
type Service interface {
	Submit(ctx context.Context, recipientID uuid.UUID, input SubmitInput) (*RequestDTO, error)
	UpdateStatus(ctx context.Context, actorID, requestID uuid.UUID, newStatus string) (*RequestDTO, error)
	ListForSupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) (*ListResult, error)
	ListForRecipient(ctx context.Context, recipientID uuid.UUID, params pagination.Params) (*ListResult, error)
	ListPublic(ctx context.Context, limit int) ([]RequestDTO, error)
}

type service struct {
	repo     *Repository
	items    *inventory.Repository
	ledger   *ledger.Repository
	dbClient *db.Client
}

// NewService constructs a request service instance.
func NewService(repo *Repository, items *inventory.Repository, ledgerRepo *ledger.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("request repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     repo,
		items:    items,
		ledger:   ledgerRepo,
		dbClient: dbClient,
	}, nil
}

// Submit claims part of a listing. The quantity check reads the item's
// current availability and compares; it does not reserve, so concurrent
// submissions can both pass and the supplier arbitrates at selection time.
func (s *service) Submit(ctx context.Context, recipientID uuid.UUID, input SubmitInput) (*RequestDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_needed must be positive")
	}

	urgency := enums.UrgencyLevelMedium
	if input.UrgencyLevel != "" {
		parsed, err := enums.ParseUrgencyLevel(input.UrgencyLevel)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid urgency_level %q", input.UrgencyLevel))
		}
		urgency = parsed
	}

	item, err := s.items.FindByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load food item")
	}

	if input.Quantity > item.QuantityAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientQuantity, "requested quantity exceeds available quantity").
			WithDetails(map[string]any{
				"quantity_available": item.QuantityAvailable,
				"quantity_needed":    input.Quantity,
			})
	}

	req := &models.Request{
		ID:             uuid.New(),
		ItemID:         item.ID,
		RecipientID:    recipientID,
		QuantityNeeded: input.Quantity,
		UrgencyLevel:   urgency,
		Status:         enums.RequestStatusPending,
	}
	if _, err := s.repo.Create(ctx, req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create request")
	}

	detail, err := s.repo.FindDetail(ctx, req.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load created request")
	}
	dto := rowToDTO(*detail)
	return &dto, nil
}

// UpdateStatus moves a request through its workflow. Only the item's
// supplier or the request's recipient may act. Reaching Completed writes the
// donation ledger row and closes out the item in the same transaction.
func (s *service) UpdateStatus(ctx context.Context, actorID, requestID uuid.UUID, newStatus string) (*RequestDTO, error) {
	target, err := enums.ParseRequestStatus(newStatus)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", newStatus))
	}

	detail, err := s.repo.FindDetail(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load request")
	}

	if actorID != detail.SupplierID && actorID != detail.RecipientID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a party to this request")
	}

	if !detail.Status.CanTransitionTo(target) {
		if detail.Status.IsTerminal() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("request is already %s", detail.Status))
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("cannot transition request from %s to %s", detail.Status, target))
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		requestRepo := s.repo.WithTx(tx)
		itemRepo := s.items.WithTx(tx)
		ledgerRepo := s.ledger.WithTx(tx)

		if err := requestRepo.UpdateStatus(ctx, requestID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update request status")
		}

		switch target {
		case enums.RequestStatusSelected:
			if err := itemRepo.UpdateStatus(ctx, detail.ItemID, enums.FoodItemStatusSelected); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark item selected")
			}

		case enums.RequestStatusCompleted:
			if _, err := ledgerRepo.Create(ctx, &models.Transaction{
				ID:          uuid.New(),
				SupplierID:  detail.SupplierID,
				RecipientID: detail.RecipientID,
				Quantity:    detail.QuantityNeeded,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write ledger entry")
			}
			if err := itemRepo.UpdateStatus(ctx, detail.ItemID, enums.FoodItemStatusCompleted); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark item completed")
			}

		case enums.RequestStatusCancelled:
			// a cancelled claim reopens the listing
			if detail.Status == enums.RequestStatusSelected {
				if err := itemRepo.UpdateStatus(ctx, detail.ItemID, enums.FoodItemStatusUnselected); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reopen item")
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.FindDetail(ctx, requestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload request")
	}
	dto := rowToDTO(*updated)
	return &dto, nil
}

// ListForSupplier pages through the requests against the supplier's items.
func (s *service) ListForSupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) (*ListResult, error) {
	cursor, err := params.After()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	rows, err := s.repo.ListForSupplier(ctx, supplierID, params.FetchSize(), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list supplier requests")
	}
	return buildListResult(rows, params.PageSize()), nil
}

// ListForRecipient pages through the recipient's submitted requests.
func (s *service) ListForRecipient(ctx context.Context, recipientID uuid.UUID, params pagination.Params) (*ListResult, error) {
	cursor, err := params.After()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	rows, err := s.repo.ListForRecipient(ctx, recipientID, params.FetchSize(), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recipient requests")
	}
	return buildListResult(rows, params.PageSize()), nil
}

// ListPublic returns the newest requests for the unauthenticated feed.
func (s *service) ListPublic(ctx context.Context, limit int) ([]RequestDTO, error) {
	rows, err := s.repo.ListPublic(ctx, pagination.Params{Limit: limit}.PageSize())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list public requests")
	}
	dtos := make([]RequestDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, rowToDTO(row))
	}
	return dtos, nil
}

func buildListResult(rows []DetailRow, limit int) *ListResult {
	result := &ListResult{Requests: make([]RequestDTO, 0, len(rows))}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for _, row := range rows {
		result.Requests = append(result.Requests, rowToDTO(row))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}.Encode()
	}
	return result
}
