package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRepositories(t *testing.T) *Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "garage.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	repos, err := NewGormRepositories(db)
	require.NoError(t, err)
	return repos
}

func TestGormRepositories_CustomerCRUD(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteRepositories(t)

	c := entities.Customer{ID: "c-1", Name: "Ravi", Email: "ravi@example.com", Phone: "555"}
	_, err := repos.Customers.Create(ctx, c)
	require.NoError(t, err)

	_, err = repos.Customers.Create(ctx, c)
	assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)

	got, err := repos.Customers.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	missing, err := repos.Customers.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	c.Phone = ""
	updated, err := repos.Customers.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "c-1", updated.ID)
	got, _ = repos.Customers.GetByID(ctx, "c-1")
	assert.Empty(t, got.Phone, "blank fields are written too")

	ghost, err := repos.Customers.Update(ctx, entities.Customer{ID: "ghost", Name: "x"})
	require.NoError(t, err)
	assert.Empty(t, ghost.ID)

	list, err := repos.Customers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	ok, err := repos.Customers.Delete(ctx, "c-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repos.Customers.Delete(ctx, "c-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormRepositories_InvoiceSnapshotAndStatusSwap(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteRepositories(t)

	date, _ := entities.ParseDate("2025-06-01")
	inv := entities.Invoice{
		ID:         "inv-1",
		CustomerID: "c-1",
		VehicleID:  "v-1",
		Services:   "Oil Change, Tire Rotation",
		Lines: []entities.InvoiceLine{
			{ServiceID: "s-1", Name: "Oil Change", Price: 500},
			{ServiceID: "s-2", Name: "Tire Rotation", Price: 300},
		},
		Status:      entities.InvoiceStatusPending,
		TotalAmount: 800,
		InvoiceDate: date,
	}
	_, err := repos.Invoices.Create(ctx, inv)
	require.NoError(t, err)

	got, err := repos.Invoices.GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, inv, got)

	done, err := repos.Invoices.CompareAndSetStatus(ctx, "inv-1", entities.InvoiceStatusPending, entities.InvoiceStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusCompleted, done.Status)
	assert.Equal(t, 800.0, done.TotalAmount)

	again, err := repos.Invoices.CompareAndSetStatus(ctx, "inv-1", entities.InvoiceStatusPending, entities.InvoiceStatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, again.ID, "swap from a stale status must fail")

	missing, err := repos.Invoices.CompareAndSetStatus(ctx, "ghost", entities.InvoiceStatusPending, entities.InvoiceStatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestGormRepositories_PaymentsByInvoice(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteRepositories(t)
	date, _ := entities.ParseDate("2025-06-01")

	payments := []entities.Payment{
		{ID: "p-1", InvoiceID: "inv-1", Amount: 100, Method: entities.PaymentMethodCash, PaymentDate: date},
		{ID: "p-2", InvoiceID: "inv-2", Amount: 50, Method: entities.PaymentMethodUPI, PaymentDate: date},
		{ID: "p-3", InvoiceID: "inv-1", Amount: 20, Method: entities.PaymentMethodCard, PaymentDate: date,
			ProviderPaymentID: "mp-1", ProviderStatus: "approved", ProviderResponse: json.RawMessage(`{"id":1}`)},
	}
	for _, p := range payments {
		_, err := repos.Payments.Create(ctx, p)
		require.NoError(t, err)
	}

	got, err := repos.Payments.ListByInvoiceID(ctx, "inv-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p-1", got[0].ID)
	assert.Equal(t, payments[2], got[1])

	none, err := repos.Payments.ListByInvoiceID(ctx, "inv-9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormRepositories_JobCardDates(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteRepositories(t)
	created, _ := entities.ParseDate("2025-01-31")

	jc := entities.JobCard{ID: "j-1", CustomerID: "c", VehicleID: "v", ServiceID: "s", CreatedDate: created, Status: entities.JobCardStatusInProgress, EstimatedCost: 450}
	_, err := repos.JobCards.Create(ctx, jc)
	require.NoError(t, err)

	got, err := repos.JobCards.GetByID(ctx, "j-1")
	require.NoError(t, err)
	assert.Equal(t, jc, got)
}
