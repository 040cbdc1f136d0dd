package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"garage_admin/internal/adapter/http/routes"
	"garage_admin/internal/adapter/persistence/repository"
	"garage_admin/internal/client"
	"garage_admin/internal/domain/billing"
	"garage_admin/internal/domain/entities"
	"garage_admin/internal/infrastructure/auth"
	"garage_admin/internal/infrastructure/config"
	"garage_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func startAPI(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "garage.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	repos, err := repository.NewGormRepositories(db)
	require.NoError(t, err)
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	router := routes.NewRouter(routes.Dependencies{
		Config: config.Config{JWTExpiry: time.Hour},
		Repos:  repos,
		Tokens: auth.NewTokenService("test-secret", time.Hour),
		Admin:  usecase.AdminAccount{Email: "admin@garage.test", Name: "Admin", PasswordHash: hash},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestClient_AgainstAPI(t *testing.T) {
	ctx := context.Background()
	c := client.New(startAPI(t))

	_, err := c.Customers.List(ctx)
	require.True(t, client.IsStatus(err, http.StatusUnauthorized))

	_, err = c.Login(ctx, "admin@garage.test", "wrong")
	require.True(t, client.IsStatus(err, http.StatusUnauthorized))
	_, err = c.Login(ctx, "admin@garage.test", "secret")
	require.NoError(t, err)

	cust, err := c.Customers.Create(ctx, entities.Customer{Name: "Asha Rao"})
	require.NoError(t, err)
	veh, err := c.Vehicles.Create(ctx, entities.Vehicle{PlateNumber: "KA01AB1234", CustomerID: cust.ID})
	require.NoError(t, err)
	oil, err := c.Services.Create(ctx, entities.Service{Name: "Oil Change", Price: 1000})
	require.NoError(t, err)
	tires, err := c.Services.Create(ctx, entities.Service{Name: "Tire Rotation", Price: 500})
	require.NoError(t, err)

	inv, err := c.CreateInvoice(ctx, billing.Draft{CustomerID: cust.ID, VehicleID: veh.ID, Selection: billing.NewSelection(oil, tires)}, entities.Date{})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, inv.TotalAmount)
	assert.Equal(t, "Oil Change, Tire Rotation", inv.Services)
	assert.Equal(t, entities.InvoiceStatusPending, inv.Status)

	s, err := c.SettleInvoice(ctx, inv.ID, entities.PaymentMethodCash, "k1")
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusCompleted, s.Invoice.Status)
	assert.Equal(t, 1500.0, s.Payment.Amount)

	again, err := c.SettleInvoice(ctx, inv.ID, entities.PaymentMethodCash, "k1")
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, s.Payment.ID, again.Payment.ID)

	_, err = c.SettleInvoice(ctx, inv.ID, entities.PaymentMethodCash, "k2")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVOICE_NOT_PENDING", apiErr.Code)

	payments, err := c.Payments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	require.NoError(t, c.Customers.Delete(ctx, cust.ID))
	_, err = c.Customers.Get(ctx, cust.ID)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))

	// no cascade: the invoice still points at the deleted customer
	kept, err := c.Invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, cust.ID, kept.CustomerID)
}
