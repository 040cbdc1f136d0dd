package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"garage_admin/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeAPI struct {
	invoices     []entities.Invoice
	deleted      []string
	lastBody     map[string]any
	lastKey      string
	authCalls    int
	failPayments bool
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.authCalls++
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-1", "user": entities.User{ID: "admin", Email: "admin@garage.local", Name: "Admin", Role: entities.RoleAdmin}})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "UNAUTHORIZED", "message": "authentication required"})
			return
		}
		writeJSON(w, http.StatusOK, entities.User{ID: "admin", Email: "admin@garage.local", Name: "Admin", Role: entities.RoleAdmin})
	})
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
	})
	mux.HandleFunc("GET /customers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []entities.Customer{{ID: "c1", Name: "Asha Rao"}, {ID: "c2", Name: "Vikram"}})
	})
	mux.HandleFunc("GET /customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, entities.Customer{ID: r.PathValue("id"), Name: "Asha Rao", Email: "asha@example.com", Phone: "98450"})
	})
	mux.HandleFunc("POST /customers", func(w http.ResponseWriter, r *http.Request) {
		var c entities.Customer
		f.lastBody = nil
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &f.lastBody))
		assert.NoError(t, json.Unmarshal(raw, &c))
		c.ID = "c9"
		writeJSON(w, http.StatusCreated, c)
	})
	mux.HandleFunc("PUT /customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		var c entities.Customer
		f.lastBody = nil
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &f.lastBody))
		assert.NoError(t, json.Unmarshal(raw, &c))
		c.ID = r.PathValue("id")
		writeJSON(w, http.StatusOK, c)
	})
	mux.HandleFunc("GET /vehicles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []entities.Vehicle{{ID: "v1", PlateNumber: "KA01AB1234", CustomerID: "c1"}, {ID: "v2", PlateNumber: "KA05XY9", CustomerID: "c2"}})
	})
	mux.HandleFunc("GET /services", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []entities.Service{{ID: "s1", Name: "Oil Change", Price: 1000}, {ID: "s2", Name: "Tire Rotation", Price: 500}})
	})
	for _, p := range []string{"/jobitems", "/jobcards"} {
		mux.HandleFunc("GET "+p, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []any{})
		})
	}
	mux.HandleFunc("GET /payments", func(w http.ResponseWriter, r *http.Request) {
		if f.failPayments {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"code": "INTERNAL_ERROR", "message": "payments unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, []any{})
	})
	mux.HandleFunc("GET /invoices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, f.invoices)
	})
	mux.HandleFunc("GET /invoices/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, inv := range f.invoices {
			if inv.ID == r.PathValue("id") {
				writeJSON(w, http.StatusOK, inv)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"code": "INVOICE_NOT_FOUND", "message": "invoice not found"})
	})
	mux.HandleFunc("POST /invoices", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastBody))
		writeJSON(w, http.StatusCreated, entities.Invoice{ID: "inv-9", Services: "Oil Change, Tire Rotation", TotalAmount: 1500})
	})
	mux.HandleFunc("PUT /invoices/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.lastBody = nil
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastBody))
		writeJSON(w, http.StatusOK, entities.Invoice{ID: r.PathValue("id"), Services: "Tire Rotation", TotalAmount: 500, Status: entities.InvoiceStatusCancelled})
	})
	mux.HandleFunc("POST /invoices/{id}/settle", func(w http.ResponseWriter, r *http.Request) {
		f.lastKey = r.Header.Get("Idempotency-Key")
		f.lastBody = nil
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastBody))
		writeJSON(w, http.StatusOK, map[string]any{
			"invoice":  entities.Invoice{ID: r.PathValue("id"), Status: entities.InvoiceStatusCompleted},
			"payment":  entities.Payment{ID: "p1", Amount: 1500, Method: entities.PaymentMethodUPI},
			"replayed": f.lastKey == "again",
		})
	})
	mux.HandleFunc("DELETE /customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.deleted = append(f.deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

type harness struct {
	api       *fakeAPI
	url       string
	tokenPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	f := &fakeAPI{invoices: []entities.Invoice{
		{ID: "inv-1", CustomerID: "c1", VehicleID: "v1", Status: entities.InvoiceStatusCompleted, TotalAmount: 1500, Services: "Oil Change, Tire Rotation",
			Lines: []entities.InvoiceLine{{ServiceID: "s1", Name: "Oil Change", Price: 1000}, {ServiceID: "s2", Name: "Tire Rotation", Price: 500}}},
		{ID: "inv-2", CustomerID: "c2", VehicleID: "gone", Status: entities.InvoiceStatusPending, TotalAmount: 500},
	}}
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	return &harness{api: f, url: srv.URL, tokenPath: filepath.Join(t.TempDir(), "garagectl", "token")}
}

func (h *harness) run(stdin string, args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	a := newAppWithTokenPath(h.url, h.tokenPath, strings.NewReader(stdin), &out, &errOut)
	code := a.run(context.Background(), args)
	return code, out.String(), errOut.String()
}

func TestLogin_PersistsTokenForNextRun(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "login", "-email", "admin@garage.local", "-password", "secret")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Logged in as admin@garage.local")

	tok, err := os.ReadFile(h.tokenPath)
	require.NoError(t, err)
	assert.Equal(t, "tok-1\n", string(tok))

	code, out, _ = h.run("", "me")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Admin <admin@garage.local> (admin)")

	code, _, _ = h.run("", "logout")
	require.Equal(t, exitOK, code)
	code, _, errOut := h.run("", "me")
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "Session check failed: authentication required (run garagectl login)\n", errOut)
}

func TestLogin_PromptsForMissingCredentials(t *testing.T) {
	t.Setenv("GARAGE_EMAIL", "")
	t.Setenv("GARAGE_PASSWORD", "")
	h := newHarness(t)

	code, out, _ := h.run("admin@garage.local\nsecret\n", "login")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Email: Password: Logged in")
	assert.Equal(t, 1, h.api.authCalls)
}

func TestList_FiltersAndResolvesNames(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "list", "invoices", "-q", "asha")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "inv-1")
	assert.NotContains(t, out, "inv-2")
	assert.Contains(t, out, "KA01AB1234")
	assert.Contains(t, out, "Revenue: ₹1,500.00")

	code, out, _ = h.run("", "list", "-q", "vikram", "invoices")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "inv-2")
	assert.Contains(t, out, "N/A")
}

func TestList_RendersWhatLoaded(t *testing.T) {
	h := newHarness(t)
	h.api.failPayments = true

	code, out, errOut := h.run("", "list", "customers")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Asha Rao")
	assert.Contains(t, out, "Vikram")
	assert.Equal(t, "Load failed: payments: payments unavailable\n", errOut)

	code, out, errOut = h.run("", "summary")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Customers: 2")
	assert.Contains(t, out, "Payments total: ₹0.00")
	assert.Contains(t, errOut, "Load failed: payments")
}

func TestList_NoResults(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run("", "list", "customers", "-q", "nobody")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "No results\n"))
}

func TestList_UnknownResourceIsUsageError(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "list", "widgets")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "usage: garagectl list")
}

func TestList_ExportsXLSX(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "customers.xlsx")

	code, out, _ := h.run("", "list", "customers", "-xlsx", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Exported 2 rows")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Customers")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDelete_AsksForConfirmation(t *testing.T) {
	h := newHarness(t)

	code, out, errOut := h.run("n\n", "delete", "customers", "c1")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, out, "Delete customer c1? [y/N]: ")
	assert.Equal(t, "Delete cancelled\n", errOut)
	assert.Empty(t, h.api.deleted)

	code, _, _ = h.run("yes\n", "delete", "customers", "c1")
	assert.Equal(t, exitOK, code)
	code, _, _ = h.run("", "delete", "customers", "c2", "-y")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, []string{"c1", "c2"}, h.api.deleted)
}

func TestInvoiceCreate(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "invoice", "create", "-customer", "c1", "-vehicle", "v1", "-services", "s1, s2,s1")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Invoice inv-9 created: Oil Change, Tire Rotation, ₹1,500.00")
	assert.Equal(t, []any{"s1", "s2"}, h.api.lastBody["serviceIds"])
}

func TestInvoiceCreate_ValidationFailsLocally(t *testing.T) {
	h := newHarness(t)

	code, _, errOut := h.run("", "invoice", "create", "-customer", "c1", "-vehicle", "v1")
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "Save failed: customer, vehicle and at least one service are required\n", errOut)

	code, _, errOut = h.run("", "invoice", "create", "-customer", "c1", "-vehicle", "v1", "-services", "s404")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, `unknown service "s404"`)
	assert.Nil(t, h.api.lastBody)
}

func TestInvoiceCreate_RejectsVehicleOfAnotherCustomer(t *testing.T) {
	h := newHarness(t)

	code, _, errOut := h.run("", "invoice", "create", "-customer", "c1", "-vehicle", "v2", "-services", "s1")
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "Save failed: vehicle \"v2\" does not belong to customer \"c1\"\n", errOut)
	assert.Nil(t, h.api.lastBody)
}

func TestCreate_FromFlagsAndFile(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "create", "customers", "-set", "name=Meera", "-set", "phone=98450")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Created customer")
	assert.Contains(t, out, `"id": "c9"`)
	assert.Equal(t, "98450", h.api.lastBody["phone"], "string fields stay strings")
	assert.NotContains(t, h.api.lastBody, "id")

	path := filepath.Join(t.TempDir(), "customer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Ravi","email":"ravi@example.com"}`), 0o600))
	code, _, _ = h.run("", "create", "customers", "-f", path, "-set", "phone=1")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Ravi", h.api.lastBody["name"])
	assert.Equal(t, "1", h.api.lastBody["phone"])

	code, _, _ = h.run(`{"name":"Stdin"}`, "create", "customers", "-f", "-")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Stdin", h.api.lastBody["name"])

	code, _, _ = h.run("", "create", "customers")
	assert.Equal(t, exitUsage, code)
}

func TestCreate_InvoicesUseInvoiceCommand(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "create", "invoices", "-set", "services=Oil Change")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "garagectl invoice create|edit")
	assert.Nil(t, h.api.lastBody)
}

func TestEdit_KeepsUnsetFields(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "edit", "customers", "c1", "-set", "phone=11111")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Updated customer c1")
	assert.Equal(t, "Asha Rao", h.api.lastBody["name"])
	assert.Equal(t, "asha@example.com", h.api.lastBody["email"])
	assert.Equal(t, "11111", h.api.lastBody["phone"])
}

func TestPing(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run("", "ping")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "API reachable\n", out)
}

func TestInvoiceEdit_StatusOnly(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "invoice", "edit", "inv-2", "-status", "cancelled")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "is now cancelled")
	assert.Equal(t, map[string]any{"status": "cancelled"}, h.api.lastBody)
}

func TestInvoiceEdit_StartsFromStoredLines(t *testing.T) {
	h := newHarness(t)

	code, _, _ := h.run("", "invoice", "edit", "inv-1", "-remove", "s1")
	require.Equal(t, exitOK, code)
	assert.Equal(t, []any{"s2"}, h.api.lastBody["serviceIds"])
	assert.Equal(t, "c1", h.api.lastBody["customerId"])
}

func TestSettle(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "settle", "inv-2", "-method", "upi", "-key", "k1")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Invoice inv-2 paid: ₹1,500.00 by upi\n", out)
	assert.Equal(t, "k1", h.api.lastKey)

	_, out, _ = h.run("", "settle", "inv-2", "-method", "upi", "-key", "again")
	assert.Contains(t, out, "(already recorded)")

	code, _, _ = h.run("", "settle", "inv-2")
	assert.Equal(t, exitUsage, code)
}

func TestSettle_CardPayload(t *testing.T) {
	h := newHarness(t)

	code, _, _ := h.run("", "settle", "inv-2", "-method", "card", "-payload", `{"token":"tok","payment_method_id":"visa"}`)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "card", h.api.lastBody["method"])
	payload, ok := h.api.lastBody["providerPayload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "visa", payload["payment_method_id"])

	path := filepath.Join(t.TempDir(), "card.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"from-file"}`), 0o600))
	code, _, _ = h.run("", "settle", "inv-2", "-method", "card", "-payload", "@"+path)
	require.Equal(t, exitOK, code)
	payload, _ = h.api.lastBody["providerPayload"].(map[string]any)
	assert.Equal(t, "from-file", payload["token"])

	code, _, errOut := h.run("", "settle", "inv-2", "-method", "card", "-payload", "{")
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "Payment failed: payload is not valid JSON\n", errOut)
}

func TestSummary(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run("", "summary")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Customers: 2")
	assert.Contains(t, out, "Invoices pending: 1  paid: 1  unpaid: 1  revenue: ₹1,500.00")
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, `unknown command "frobnicate"`)
}
