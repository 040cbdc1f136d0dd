package entities

import (
	"encoding/json"
	"testing"
	"time"
)

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to InvoiceStatus
		want     bool
	}{
		{InvoiceStatusPending, InvoiceStatusCompleted, true},
		{InvoiceStatusPending, InvoiceStatusCancelled, true},
		{InvoiceStatusPending, InvoiceStatusPending, true},
		{InvoiceStatusCompleted, InvoiceStatusPending, false},
		{InvoiceStatusCompleted, InvoiceStatusCancelled, false},
		{InvoiceStatusCancelled, InvoiceStatusCompleted, false},
		{InvoiceStatusCancelled, InvoiceStatusCancelled, true},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if m, ok := ParsePaymentMethod(" UPI "); !ok || m != PaymentMethodUPI {
		t.Fatalf("expected upi, got %q %v", m, ok)
	}
	if _, ok := ParsePaymentMethod("cheque"); ok {
		t.Fatalf("expected cheque to be rejected")
	}
	if s, ok := ParseInvoiceStatus("Completed"); !ok || s != InvoiceStatusCompleted {
		t.Fatalf("expected completed, got %q %v", s, ok)
	}
	if s, ok := ParseJobCardStatus("in_progress"); !ok || s != JobCardStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %q %v", s, ok)
	}
	if _, ok := ParseJobCardStatus(""); ok {
		t.Fatalf("expected empty status to be rejected")
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 9, 17, 4, 0, 0, time.UTC))
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"2025-03-09"` {
		t.Fatalf("unexpected json: %s", b)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2025-03-09T10:00:00Z"`), &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("expected %v, got %v", d, back)
	}

	var empty Date
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil || !empty.IsZero() {
		t.Fatalf("expected zero date, got %v err=%v", empty, err)
	}
	if _, err := ParseDate("09/03/2025"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestJobItem_Total(t *testing.T) {
	if got := (JobItem{Qty: 3, Rate: 2.5}).Total(); got != 7.5 {
		t.Fatalf("expected 7.5, got %v", got)
	}
}
