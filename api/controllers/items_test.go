package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bfb-software/foodconnect-backend/internal/inventory"
)

type stubInventoryService struct {
	lastSupplier uuid.UUID
	lastInput    inventory.CreateItemInput
	item         *inventory.ItemDTO
	err          error
}

func (s *stubInventoryService) CreateItem(_ context.Context, supplierID uuid.UUID, input inventory.CreateItemInput) (*inventory.ItemDTO, error) {
	s.lastSupplier = supplierID
	s.lastInput = input
	return s.item, s.err
}

func (s *stubInventoryService) ListAvailable(context.Context, time.Time) ([]inventory.AvailableItemDTO, error) {
	return nil, s.err
}

func (s *stubInventoryService) ListPublic(context.Context) ([]inventory.AvailableItemDTO, error) {
	return nil, s.err
}

func (s *stubInventoryService) ListOwned(context.Context, uuid.UUID) ([]inventory.ItemDTO, error) {
	return nil, s.err
}

func TestItemCreateReturnsLegacyShape(t *testing.T) {
	supplier := uuid.New()
	itemID := uuid.New()
	svc := &stubInventoryService{item: &inventory.ItemDTO{ID: itemID}}
	handler := ItemCreate(svc, nil)

	body := `{"food_type":"Produce","food_name":"Apples","quantity":3,"expiry_date":"2026-09-15","city":"Jakarta"}`
	req := authedRequest(http.MethodPost, "/supplier/items", body, supplier)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastSupplier != supplier {
		t.Fatalf("expected supplier %s got %s", supplier, svc.lastSupplier)
	}
	if svc.lastInput.FoodName != "Apples" {
		t.Fatalf("unexpected input: %+v", svc.lastInput)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload["success"] != true {
		t.Fatalf("expected success true, got %v", payload)
	}
	if payload["item_id"] != itemID.String() {
		t.Fatalf("expected item_id %s got %v", itemID, payload["item_id"])
	}
	if payload["message"] == "" {
		t.Fatal("expected a message")
	}
}

func TestItemCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubInventoryService{}
	handler := ItemCreate(svc, nil)

	req := authedRequest(http.MethodPost, "/supplier/items", `{"food_name":"Apples","bogus":1}`, uuid.New())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
