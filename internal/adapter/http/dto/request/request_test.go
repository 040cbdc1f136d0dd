package request

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func bind(t *testing.T, body string, dst any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindWith(dst, binding.JSON)
}

func TestCustomValidators(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		dst     any
		wantErr bool
	}{
		{"payment method ok", `{"invoiceId":"i","amount":10,"method":"UPI"}`, &PaymentRequest{}, false},
		{"payment method unknown", `{"invoiceId":"i","amount":10,"method":"cheque"}`, &PaymentRequest{}, true},
		{"negative amount", `{"invoiceId":"i","amount":-1,"method":"cash"}`, &PaymentRequest{}, true},
		{"invoice status ok", `{"status":"completed"}`, &InvoiceRequest{}, false},
		{"invoice status unknown", `{"status":"paid"}`, &InvoiceRequest{}, true},
		{"jobcard status ok", `{"customerId":"c","vehicleId":"v","serviceId":"s","status":"in_progress"}`, &JobCardRequest{}, false},
		{"jobcard status unknown", `{"customerId":"c","vehicleId":"v","serviceId":"s","status":"DONE"}`, &JobCardRequest{}, true},
		{"bad date", `{"customerId":"c","vehicleId":"v","serviceId":"s","createdDate":"31/01/2025"}`, &JobCardRequest{}, true},
		{"settle needs method", `{}`, &SettleRequest{}, true},
		{"job item qty", `{"description":"bolt","qty":0,"rate":2}`, &JobItemRequest{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := bind(t, tc.body, tc.dst)
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSettleRequest_ToCommand(t *testing.T) {
	r := SettleRequest{Method: "card", IdempotencyKey: " body-key ", ProviderPayload: json.RawMessage(`{"token":"x"}`)}

	cmd := r.ToCommand("inv-1", "")
	if cmd.IdempotencyKey != "body-key" || cmd.InvoiceID != "inv-1" || cmd.Method != "card" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd := r.ToCommand("inv-1", "header-key"); cmd.IdempotencyKey != "header-key" {
		t.Fatalf("header key should win, got %q", cmd.IdempotencyKey)
	}
}

func TestInvoiceRequest_ToInput(t *testing.T) {
	var r InvoiceRequest
	if err := bind(t, `{"customerId":"c","vehicleId":"v","serviceIds":["s1","s2"],"invoiceDate":"2025-06-01"}`, &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := r.ToInput()
	if len(in.ServiceIDs) != 2 || in.InvoiceDate.String() != "2025-06-01" {
		t.Fatalf("unexpected input: %+v", in)
	}
}
