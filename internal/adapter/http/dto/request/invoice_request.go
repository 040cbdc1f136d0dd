package request

import (
	"encoding/json"
	"strings"

	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase"
)

// InvoiceRequest creates or edits an invoice from a service selection.
// A body with only `status` edits the status and keeps the billed lines.
//
// Record-shaped bodies (`services` names plus `totalAmount`) are accepted;
// serviceIds wins when both are sent. A sent totalAmount is ignored and
// recomputed from the catalog.
type InvoiceRequest struct {
	CustomerID  string        `json:"customerId"`
	VehicleID   string        `json:"vehicleId"`
	ServiceIDs  []string      `json:"serviceIds"`
	Services    string        `json:"services"`
	Status      string        `json:"status" binding:"omitempty,invoice_status"`
	InvoiceDate entities.Date `json:"invoiceDate"`
}

func (r InvoiceRequest) ToInput() usecase.InvoiceInput {
	return usecase.InvoiceInput{
		CustomerID:  r.CustomerID,
		VehicleID:   r.VehicleID,
		ServiceIDs:  r.ServiceIDs,
		Services:    r.Services,
		Status:      r.Status,
		InvoiceDate: r.InvoiceDate,
	}
}

type SettleRequest struct {
	Method          string          `json:"method" binding:"required,payment_method"`
	IdempotencyKey  string          `json:"idempotencyKey"`
	ProviderPayload json.RawMessage `json:"providerPayload"`
}

// ToCommand builds the settle command. The Idempotency-Key header wins over
// the body field.
func (r SettleRequest) ToCommand(invoiceID, headerKey string) usecase.SettleCommand {
	key := strings.TrimSpace(headerKey)
	if key == "" {
		key = strings.TrimSpace(r.IdempotencyKey)
	}
	return usecase.SettleCommand{
		InvoiceID:       invoiceID,
		Method:          r.Method,
		IdempotencyKey:  key,
		ProviderPayload: r.ProviderPayload,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
