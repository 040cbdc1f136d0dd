package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"garage_admin/internal/domain/billing"
	"garage_admin/internal/domain/entities"
)

type invoiceBody struct {
	CustomerID  string        `json:"customerId,omitempty"`
	VehicleID   string        `json:"vehicleId,omitempty"`
	ServiceIDs  []string      `json:"serviceIds,omitempty"`
	Status      string        `json:"status,omitempty"`
	InvoiceDate entities.Date `json:"invoiceDate"`
}

func draftBody(d billing.Draft, date entities.Date) invoiceBody {
	return invoiceBody{
		CustomerID:  strings.TrimSpace(d.CustomerID),
		VehicleID:   strings.TrimSpace(d.VehicleID),
		ServiceIDs:  d.ServiceIDs(),
		Status:      string(d.Status),
		InvoiceDate: date,
	}
}

// CreateInvoice submits a draft. Incomplete drafts fail with ErrValidation
// and nothing is sent. A zero date lets the server pick today.
func (c *Client) CreateInvoice(ctx context.Context, d billing.Draft, date entities.Date) (entities.Invoice, error) {
	if err := d.Validate(); err != nil {
		return entities.Invoice{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var out entities.Invoice
	err := c.do(ctx, http.MethodPost, c.Invoices.path, nil, draftBody(d, date), &out)
	return out, err
}

// UpdateInvoice replaces the billed selection of an invoice.
func (c *Client) UpdateInvoice(ctx context.Context, id string, d billing.Draft, date entities.Date) (entities.Invoice, error) {
	if err := d.Validate(); err != nil {
		return entities.Invoice{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var out entities.Invoice
	err := c.do(ctx, http.MethodPut, c.Invoices.item(id), nil, draftBody(d, date), &out)
	return out, err
}

// SetInvoiceStatus edits only the status and keeps the billed lines.
func (c *Client) SetInvoiceStatus(ctx context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error) {
	if _, ok := entities.ParseInvoiceStatus(string(status)); !ok {
		return entities.Invoice{}, fmt.Errorf("%w: invalid invoice status %q", ErrValidation, status)
	}
	var out entities.Invoice
	err := c.do(ctx, http.MethodPut, c.Invoices.item(id), nil, map[string]string{"status": string(status)}, &out)
	return out, err
}

// Settlement is the answer to a settle call. Replayed is set when the same
// idempotency key had already settled the invoice.
type Settlement struct {
	Invoice  entities.Invoice `json:"invoice"`
	Payment  entities.Payment `json:"payment"`
	Replayed bool             `json:"replayed"`
}

type settleBody struct {
	Method          entities.PaymentMethod `json:"method"`
	ProviderPayload json.RawMessage        `json:"providerPayload,omitempty"`
}

// SettleInvoice records a payment for the full invoice amount and completes
// the invoice in one server-side operation. Repeating the call with the same
// key returns the original settlement.
func (c *Client) SettleInvoice(ctx context.Context, invoiceID string, method entities.PaymentMethod, key string) (Settlement, error) {
	return c.settle(ctx, invoiceID, settleBody{Method: method}, key)
}

// SettleInvoiceWithProvider is SettleInvoice with a provider payload, used for
// card payments that go through the payment gateway.
func (c *Client) SettleInvoiceWithProvider(ctx context.Context, invoiceID string, method entities.PaymentMethod, key string, payload json.RawMessage) (Settlement, error) {
	return c.settle(ctx, invoiceID, settleBody{Method: method, ProviderPayload: payload}, key)
}

func (c *Client) settle(ctx context.Context, invoiceID string, body settleBody, key string) (Settlement, error) {
	if strings.TrimSpace(invoiceID) == "" {
		return Settlement{}, fmt.Errorf("%w: invoice id is required", ErrValidation)
	}
	m, ok := entities.ParsePaymentMethod(string(body.Method))
	if !ok {
		return Settlement{}, fmt.Errorf("%w: invalid payment method %q", ErrValidation, body.Method)
	}
	body.Method = m

	var header http.Header
	if key = strings.TrimSpace(key); key != "" {
		header = http.Header{headerIdempotencyKey: []string{key}}
	}
	var out Settlement
	err := c.do(ctx, http.MethodPost, c.Invoices.item(invoiceID)+"/settle", header, body, &out)
	return out, err
}
