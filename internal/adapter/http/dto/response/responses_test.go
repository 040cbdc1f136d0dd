package response

import (
	"encoding/json"
	"testing"

	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase"
)

func TestFromJobItem(t *testing.T) {
	r := FromJobItem(entities.JobItem{ID: "j1", Description: "Brake pad", Qty: 2, Rate: 350.5})
	if r.Total != 701 {
		t.Fatalf("expected total 701, got %v", r.Total)
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if _, ok := m["total"]; !ok {
		t.Fatalf("expected total in %s", b)
	}
}

func TestFromSettlement(t *testing.T) {
	s := usecase.Settlement{
		Invoice:  entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusCompleted, TotalAmount: 1500},
		Payment:  entities.Payment{ID: "p-1", InvoiceID: "inv-1", Amount: 1500, Method: entities.PaymentMethodUPI},
		Replayed: true,
	}
	b, err := json.Marshal(FromSettlement(s))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		Invoice  map[string]any `json:"invoice"`
		Payment  map[string]any `json:"payment"`
		Replayed bool           `json:"replayed"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Invoice["status"] != "completed" || got.Payment["method"] != "upi" || got.Payment["amount"] != 1500.0 || !got.Replayed {
		t.Fatalf("unexpected body: %s", b)
	}
}
