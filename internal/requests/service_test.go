package request

import (
	"context"
	"testing"
	"time"

	"github.com/bfb-software/foodconnect-backend/internal/inventory"
	"github.com/bfb-software/foodconnect-backend/internal/ledger"
	"github.com/bfb-software/foodconnect-backend/pkg/db"
	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/bfb-software/foodconnect-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	client *db.Client
	svc    Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.AutoMigrate(
		&models.Location{},
		&models.User{},
		&models.UserRole{},
		&models.FoodItem{},
		&models.Request{},
		&models.Transaction{},
	))

	client := db.FromGorm(conn)
	svc, err := NewService(
		NewRepository(conn),
		inventory.NewRepository(conn),
		ledger.NewRepository(conn),
		client,
	)
	require.NoError(t, err)
	return &testEnv{client: client, svc: svc}
}

func (e *testEnv) mustCreateUser(t *testing.T, name string) *models.User {
	t.Helper()
	loc := &models.Location{
		ID:            uuid.New(),
		Province:      models.DefaultProvince,
		City:          "Jakarta",
		ZipCode:       models.DefaultZipCode,
		StreetAddress: models.DefaultStreetAddress,
	}
	require.NoError(t, e.client.DB().Create(loc).Error)

	account := &models.User{
		ID:           uuid.New(),
		FullName:     name,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		LocationID:   loc.ID,
	}
	require.NoError(t, e.client.DB().Create(account).Error)
	return account
}

func (e *testEnv) mustCreateItem(t *testing.T, supplierID uuid.UUID, name string, qty float64) *models.FoodItem {
	t.Helper()
	var loc models.Location
	require.NoError(t, e.client.DB().First(&loc).Error)

	item := &models.FoodItem{
		ID:                uuid.New(),
		UserID:            supplierID,
		FoodType:          "Meal",
		FoodName:          name,
		QuantityAvailable: qty,
		ExpiryDate:        mustParseDate(t, "2027-06-01"),
		LocationID:        loc.ID,
		Status:            enums.FoodItemStatusUnselected,
	}
	require.NoError(t, e.client.DB().Create(item).Error)
	return item
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipient := env.mustCreateUser(t, "Recipient One")
	item := env.mustCreateItem(t, supplier.ID, "Rice", 20)

	dto, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{
		ItemID:   item.ID,
		Quantity: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, enums.RequestStatusPending.String(), dto.Status)
	assert.Equal(t, enums.UrgencyLevelMedium.String(), dto.UrgencyLevel)
	assert.Equal(t, "Rice", dto.FoodName)
	assert.Equal(t, "Recipient One", dto.RecipientName)
	assert.InDelta(t, 5, dto.QuantityNeeded, 1e-9)
}

func TestSubmitUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	recipient := env.mustCreateUser(t, "Recipient")

	_, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{
		ItemID:   uuid.New(),
		Quantity: 1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSubmitInsufficientQuantity(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipient := env.mustCreateUser(t, "Recipient")
	item := env.mustCreateItem(t, supplier.ID, "Bread", 3)

	_, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{
		ItemID:   item.ID,
		Quantity: 10,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientQuantity, typed.Code())
}

func TestSubmitDoesNotReserveQuantity(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	first := env.mustCreateUser(t, "Recipient One")
	second := env.mustCreateUser(t, "Recipient Two")
	item := env.mustCreateItem(t, supplier.ID, "Rice", 10)

	// each request is checked against the full stock, never a running
	// balance, so overlapping claims both land and the supplier picks one
	a, err := env.svc.Submit(context.Background(), first.ID, SubmitInput{ItemID: item.ID, Quantity: 5})
	require.NoError(t, err)
	b, err := env.svc.Submit(context.Background(), second.ID, SubmitInput{ItemID: item.ID, Quantity: 8})
	require.NoError(t, err)

	assert.Equal(t, enums.RequestStatusPending.String(), a.Status)
	assert.Equal(t, enums.RequestStatusPending.String(), b.Status)

	var reloaded models.FoodItem
	require.NoError(t, env.client.DB().First(&reloaded, "id = ?", item.ID).Error)
	assert.InDelta(t, 10, reloaded.QuantityAvailable, 1e-9)
}

func TestSubmitValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipient := env.mustCreateUser(t, "Recipient")
	item := env.mustCreateItem(t, supplier.ID, "Soup", 10)

	_, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{
		ItemID:   item.ID,
		Quantity: 0,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = env.svc.Submit(context.Background(), recipient.ID, SubmitInput{
		ItemID:       item.ID,
		Quantity:     1,
		UrgencyLevel: "Extreme",
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateStatusAuthorization(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipient := env.mustCreateUser(t, "Recipient")
	stranger := env.mustCreateUser(t, "Stranger")
	item := env.mustCreateItem(t, supplier.ID, "Eggs", 10)

	dto, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{ItemID: item.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), stranger.ID, dto.ID, "Selected")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	// both parties may act
	_, err = env.svc.UpdateStatus(context.Background(), supplier.ID, dto.ID, "Selected")
	require.NoError(t, err)
}

func TestUpdateStatusEnforcesTransitionTable(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipient := env.mustCreateUser(t, "Recipient")
	item := env.mustCreateItem(t, supplier.ID, "Milk", 10)

	dto, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{ItemID: item.ID, Quantity: 2})
	require.NoError(t, err)

	// Pending cannot jump straight to Completed
	_, err = env.svc.UpdateStatus(context.Background(), supplier.ID, dto.ID, "Completed")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// unknown status value
	_, err = env.svc.UpdateStatus(context.Background(), supplier.ID, dto.ID, "Archived")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	updated, err := env.svc.UpdateStatus(context.Background(), supplier.ID, dto.ID, "Selected")
	require.NoError(t, err)
	assert.Equal(t, "Selected", updated.Status)

	updated, err = env.svc.UpdateStatus(context.Background(), supplier.ID, dto.ID, "Completed")
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.Status)

	// Completed is terminal
	_, err = env.svc.UpdateStatus(context.Background(), supplier.ID, dto.ID, "Cancelled")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "request is already Completed", typed.Message())
}

func TestUpdateStatusUnknownRequest(t *testing.T) {
	env := newTestEnv(t)
	actor := env.mustCreateUser(t, "Actor")

	_, err := env.svc.UpdateStatus(context.Background(), actor.ID, uuid.New(), "Selected")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCompletionWritesLedgerAndClosesItem(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipient := env.mustCreateUser(t, "Recipient")
	item := env.mustCreateItem(t, supplier.ID, "Flour", 50)

	dto, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{ItemID: item.ID, Quantity: 7})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), supplier.ID, dto.ID, "Selected")
	require.NoError(t, err)

	var reloaded models.FoodItem
	require.NoError(t, env.client.DB().First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, enums.FoodItemStatusSelected, reloaded.Status)

	_, err = env.svc.UpdateStatus(context.Background(), recipient.ID, dto.ID, "Completed")
	require.NoError(t, err)

	var entry models.Transaction
	require.NoError(t, env.client.DB().First(&entry).Error)
	assert.Equal(t, supplier.ID, entry.SupplierID)
	assert.Equal(t, recipient.ID, entry.RecipientID)
	assert.InDelta(t, 7, entry.Quantity, 1e-9)

	require.NoError(t, env.client.DB().First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, enums.FoodItemStatusCompleted, reloaded.Status)
}

func TestCancellingSelectedReopensItem(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipient := env.mustCreateUser(t, "Recipient")
	item := env.mustCreateItem(t, supplier.ID, "Sugar", 10)

	dto, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{ItemID: item.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), supplier.ID, dto.ID, "Selected")
	require.NoError(t, err)
	_, err = env.svc.UpdateStatus(context.Background(), recipient.ID, dto.ID, "Cancelled")
	require.NoError(t, err)

	var reloaded models.FoodItem
	require.NoError(t, env.client.DB().First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, enums.FoodItemStatusUnselected, reloaded.Status)

	var ledgerCount int64
	require.NoError(t, env.client.DB().Model(&models.Transaction{}).Count(&ledgerCount).Error)
	assert.EqualValues(t, 0, ledgerCount)
}

func TestListForSupplierPaginates(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipient := env.mustCreateUser(t, "Recipient")
	item := env.mustCreateItem(t, supplier.ID, "Veggies", 100)

	for i := 0; i < 5; i++ {
		_, err := env.svc.Submit(context.Background(), recipient.ID, SubmitInput{ItemID: item.ID, Quantity: 1})
		require.NoError(t, err)
	}

	page, err := env.svc.ListForSupplier(context.Background(), supplier.ID, pagination.Params{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page.Requests, 3)
	require.NotEmpty(t, page.NextCursor)

	rest, err := env.svc.ListForSupplier(context.Background(), supplier.ID, pagination.Params{
		Limit:  3,
		Cursor: page.NextCursor,
	})
	require.NoError(t, err)
	require.Len(t, rest.Requests, 2)
	assert.Empty(t, rest.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, r := range append(page.Requests, rest.Requests...) {
		require.False(t, seen[r.ID], "duplicate request across pages")
		seen[r.ID] = true
	}
}

func TestListForRecipientScopesToOwner(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.mustCreateUser(t, "Supplier")
	recipientA := env.mustCreateUser(t, "A")
	recipientB := env.mustCreateUser(t, "B")
	item := env.mustCreateItem(t, supplier.ID, "Fish", 100)

	_, err := env.svc.Submit(context.Background(), recipientA.ID, SubmitInput{ItemID: item.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = env.svc.Submit(context.Background(), recipientB.ID, SubmitInput{ItemID: item.ID, Quantity: 1})
	require.NoError(t, err)

	page, err := env.svc.ListForRecipient(context.Background(), recipientA.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Requests, 1)
	assert.Equal(t, recipientA.ID, page.Requests[0].RecipientID)
}
