package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"garage_admin/internal/domain/entities"
)

var ErrInvalidCardPayload = errors.New("invalid card payload")

// CardCharge is the card payment a settlement asks the provider to make.
//
// IdempotencyKey is stable across retries of one settlement attempt, so the
// provider answers a repeated charge with the original payment.
type CardCharge struct {
	IdempotencyKey string
	InvoiceID      string
	Amount         float64
	Description    string
	// Card holds the tokenized card fields sent by the client (token,
	// payment_method_id, installments, issuer_id, payer). Amount, invoice
	// reference and description always come from the invoice.
	Card json.RawMessage
}

// NewCardCharge bills the full invoice amount.
func NewCardCharge(inv entities.Invoice, idempotencyKey string, card json.RawMessage) (CardCharge, error) {
	if len(card) > 0 && !json.Valid(card) {
		return CardCharge{}, ErrInvalidCardPayload
	}
	desc := "Invoice " + inv.ID
	if s := strings.TrimSpace(inv.Services); s != "" {
		desc = fmt.Sprintf("%s: %s", desc, s)
	}
	return CardCharge{
		IdempotencyKey: idempotencyKey,
		InvoiceID:      inv.ID,
		Amount:         inv.TotalAmount,
		Description:    desc,
		Card:           card,
	}, nil
}

// ChargeResult is the provider's answer to a CardCharge.
type ChargeResult struct {
	ProviderPaymentID string
	Status            string
	Response          json.RawMessage
}

// Declined reports statuses where no money moved.
func (r ChargeResult) Declined() bool {
	switch strings.ToLower(r.Status) {
	case "rejected", "cancelled":
		return true
	}
	return false
}

// Apply records the provider data on the payment.
func (r ChargeResult) Apply(p *entities.Payment) {
	p.ProviderPaymentID = r.ProviderPaymentID
	p.ProviderStatus = r.Status
	p.ProviderResponse = r.Response
}
