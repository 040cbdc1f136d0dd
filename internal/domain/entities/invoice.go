package entities

import "strings"

// InvoiceStatus represents the lifecycle of an invoice.
//
//	pending -> completed  (settlement or explicit edit)
//	pending -> cancelled  (explicit edit only)
//
// completed and cancelled are terminal.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusCompleted InvoiceStatus = "completed"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	st := InvoiceStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case InvoiceStatusPending, InvoiceStatusCompleted, InvoiceStatusCancelled:
		return st, true
	}
	return "", false
}

func (s InvoiceStatus) Terminal() bool {
	return s == InvoiceStatusCompleted || s == InvoiceStatusCancelled
}

// CanTransitionTo reports whether an edit may move the invoice from s to next.
// Re-asserting the current status is always allowed.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if s == next {
		return true
	}
	return s == InvoiceStatusPending && (next == InvoiceStatusCompleted || next == InvoiceStatusCancelled)
}

// InvoiceLine is the snapshot of one billed service at invoicing time.
type InvoiceLine struct {
	ServiceID string  `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// Invoice bills a set of services for one customer/vehicle pair.
//
// Lines, Services and TotalAmount are written together from the same
// selection and are never recomputed from the live service catalog.
// Services is the ", "-joined line names kept for older consumers that
// only understand the flat string.
type Invoice struct {
	ID          string        `json:"id"`
	CustomerID  string        `json:"customerId"`
	VehicleID   string        `json:"vehicleId"`
	Services    string        `json:"services"`
	Lines       []InvoiceLine `json:"lines,omitempty"`
	Status      InvoiceStatus `json:"status"`
	TotalAmount float64       `json:"totalAmount"`
	InvoiceDate Date          `json:"invoiceDate"`
}
