package entities

import (
	"encoding/json"
	"strings"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodBank PaymentMethod = "bank"
	PaymentMethodUPI  PaymentMethod = "upi"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBank, PaymentMethodUPI:
		return m, true
	}
	return "", false
}

// Payment records money received against an invoice.
//
// Provider* fields are only set when the payment went through an external
// gateway; ProviderResponse keeps the raw gateway body for traceability.
type Payment struct {
	ID                string          `json:"id"`
	InvoiceID         string          `json:"invoiceId"`
	Amount            float64         `json:"amount"`
	Method            PaymentMethod   `json:"method"`
	PaymentDate       Date            `json:"paymentDate"`
	ProviderPaymentID string          `json:"providerPaymentId,omitempty"`
	ProviderStatus    string          `json:"providerStatus,omitempty"`
	ProviderResponse  json.RawMessage `json:"providerResponse,omitempty"`
}
