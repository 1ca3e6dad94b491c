package kpi

import (
	"context"
	"fmt"
	"time"

	"github.com/bfb-software/foodconnect-backend/internal/inventory"
	"github.com/bfb-software/foodconnect-backend/internal/ledger"
	request "github.com/bfb-software/foodconnect-backend/internal/requests"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/google/uuid"
)

const expiringSoonWindow = 7 * 24 * time.Hour

// SupplierKPIs are the dashboard aggregates for a supplier. All values are
// zero, not null, when the supplier has no activity.
type SupplierKPIs struct {
	TotalItems       int64   `json:"total_items"`
	ExpiringSoon     int64   `json:"expiring_soon"`
	DonatedToday     int64   `json:"donated_today"`
	ActiveRequests   int64   `json:"active_requests"`
	RecipientsHelped int64   `json:"recipients_helped"`
	KgDonated        float64 `json:"kg_donated"`
}

// RecipientKPIs are the dashboard aggregates for a recipient.
type RecipientKPIs struct {
	RequestsUploaded int64   `json:"requests_uploaded"`
	KgReceived       float64 `json:"kg_received"`
	SuppliersCount   int64   `json:"suppliers_count"`
}

// Service computes dashboard aggregates on demand; nothing is cached.
type Service interface {
	SupplierKPIs(ctx context.Context, supplierID uuid.UUID, now time.Time) (*SupplierKPIs, error)
	RecipientKPIs(ctx context.Context, recipientID uuid.UUID) (*RecipientKPIs, error)
}

type service struct {
	items    *inventory.Repository
	requests *request.Repository
	ledger   *ledger.Repository
}

// NewService constructs a KPI service instance.
func NewService(items *inventory.Repository, requests *request.Repository, ledgerRepo *ledger.Repository) (Service, error) {
	if items == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if requests == nil {
		return nil, fmt.Errorf("request repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{items: items, requests: requests, ledger: ledgerRepo}, nil
}

// SupplierKPIs aggregates the supplier dashboard numbers as of now.
func (s *service) SupplierKPIs(ctx context.Context, supplierID uuid.UUID, now time.Time) (*SupplierKPIs, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.Add(24 * time.Hour)

	out := &SupplierKPIs{}
	var err error

	if out.TotalItems, err = s.items.CountOwned(ctx, supplierID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count items")
	}
	if out.ExpiringSoon, err = s.items.CountExpiringBetween(ctx, supplierID, today, today.Add(expiringSoonWindow)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count expiring items")
	}
	if out.DonatedToday, err = s.ledger.CountForSupplierBetween(ctx, supplierID, today, tomorrow); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count today's donations")
	}
	if out.ActiveRequests, err = s.requests.CountPendingForSupplier(ctx, supplierID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active requests")
	}
	if out.RecipientsHelped, err = s.ledger.CountDistinctRecipients(ctx, supplierID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count recipients")
	}
	if out.KgDonated, err = s.ledger.SumQuantityBySupplier(ctx, supplierID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum donated quantity")
	}
	return out, nil
}

// RecipientKPIs aggregates the recipient dashboard numbers.
func (s *service) RecipientKPIs(ctx context.Context, recipientID uuid.UUID) (*RecipientKPIs, error) {
	out := &RecipientKPIs{}
	var err error

	if out.RequestsUploaded, err = s.requests.CountByRecipient(ctx, recipientID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count requests")
	}
	if out.KgReceived, err = s.ledger.SumQuantityByRecipient(ctx, recipientID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum received quantity")
	}
	if out.SuppliersCount, err = s.ledger.CountDistinctSuppliers(ctx, recipientID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count suppliers")
	}
	return out, nil
}
