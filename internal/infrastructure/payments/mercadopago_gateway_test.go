package payments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"garage_admin/internal/domain/billing"
	"garage_admin/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport answers SDK requests with a canned response.
type recordingTransport struct {
	mu     sync.Mutex
	status int
	body   string
	keys   []string
	bodies []map[string]any
	paths  []string
}

func (r *recordingTransport) Do(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, req.Header.Get("X-Idempotency-Key"))
	r.paths = append(r.paths, req.URL.Path)
	if req.Body != nil {
		var m map[string]any
		b, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(b, &m)
		r.bodies = append(r.bodies, m)
	}
	return &http.Response{
		StatusCode: r.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(r.body)),
	}, nil
}

func cardCharge(key string) billing.CardCharge {
	return billing.CardCharge{
		IdempotencyKey: key,
		InvoiceID:      "inv-1",
		Amount:         800,
		Description:    "Invoice inv-1: Oil Change",
		Card:           json.RawMessage(`{"token":"tok","payment_method_id":"visa","installments":1,"transaction_amount":1,"external_reference":"other"}`),
	}
}

func TestNewMercadoPagoGateway_RequiresToken(t *testing.T) {
	_, err := NewMercadoPagoGateway("", false)
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
}

func TestMercadoPagoGateway_ChargeSendsIdempotencyKey(t *testing.T) {
	rt := &recordingTransport{status: http.StatusCreated, body: `{"id":42,"status":"approved"}`}
	g, err := NewMercadoPagoGateway("TEST-token", false, withTransport(rt), WithPayerEmail("payer@test.com"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		r, err := g.Charge(context.Background(), cardCharge("settle-key"))
		require.NoError(t, err)
		assert.Equal(t, "42", r.ProviderPaymentID)
		assert.Equal(t, "approved", r.Status)
	}

	require.Len(t, rt.keys, 2)
	assert.Equal(t, []string{"settle-key", "settle-key"}, rt.keys)

	body := rt.bodies[0]
	assert.Equal(t, 800.0, body["transaction_amount"])
	assert.Equal(t, "inv-1", body["external_reference"])
	assert.Equal(t, "Invoice inv-1: Oil Change", body["description"])
	assert.Equal(t, "tok", body["token"])
	payer, ok := body["payer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "customer", payer["type"])
	assert.Equal(t, "payer@test.com", payer["email"])
}

func TestMercadoPagoGateway_ClassifiesErrors(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		rt := &recordingTransport{status: http.StatusUnauthorized, body: `{"message":"invalid access token","error":"unauthorized","status":401}`}
		g, err := NewMercadoPagoGateway("TEST-token", false, withTransport(rt))
		require.NoError(t, err)

		_, err = g.Charge(context.Background(), cardCharge("k"))
		assert.ErrorIs(t, err, interfaces.ErrGatewayUnauthorized)
	})

	t.Run("bad request", func(t *testing.T) {
		rt := &recordingTransport{status: http.StatusBadRequest, body: `{"message":"invalid card token","status":400}`}
		g, err := NewMercadoPagoGateway("TEST-token", false, withTransport(rt))
		require.NoError(t, err)

		_, err = g.Charge(context.Background(), cardCharge("k"))
		assert.ErrorIs(t, err, interfaces.ErrGatewayBadRequest)
	})
}

func TestMercadoPagoGateway_Refund(t *testing.T) {
	rt := &recordingTransport{status: http.StatusCreated, body: `{"id":7,"payment_id":42,"status":"approved"}`}
	g, err := NewMercadoPagoGateway("TEST-token", false, withTransport(rt))
	require.NoError(t, err)

	require.NoError(t, g.Refund(context.Background(), "42"))
	require.Len(t, rt.paths, 1)
	assert.Contains(t, rt.paths[0], "/42/refunds")

	assert.ErrorIs(t, g.Refund(context.Background(), "not-a-number"), interfaces.ErrGatewayBadRequest)
}

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	g, err := NewMercadoPagoGateway("", true)
	require.NoError(t, err)
	at := time.Unix(1700000000, 0)
	g.now = func() time.Time { at = at.Add(time.Second); return at }

	first, err := g.Charge(context.Background(), cardCharge("k1"))
	require.NoError(t, err)
	assert.Equal(t, "approved", first.Status)
	assert.Equal(t, "1700000001000000000", first.ProviderPaymentID)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(first.Response, &resp))
	assert.Equal(t, "inv-1", resp["external_reference"])
	assert.Equal(t, 800.0, resp["transaction_amount"])
	assert.Equal(t, "accredited", resp["status_detail"])

	again, err := g.Charge(context.Background(), cardCharge("k1"))
	require.NoError(t, err)
	assert.Equal(t, first.ProviderPaymentID, again.ProviderPaymentID)

	other, err := g.Charge(context.Background(), cardCharge("k2"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ProviderPaymentID, other.ProviderPaymentID)

	require.NoError(t, g.Refund(context.Background(), first.ProviderPaymentID))
	afterRefund, err := g.Charge(context.Background(), cardCharge("k1"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ProviderPaymentID, afterRefund.ProviderPaymentID)
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	_, err := g.Charge(context.Background(), cardCharge("k"))
	assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
	assert.ErrorIs(t, g.Refund(context.Background(), "1"), ErrMercadoPagoGatewayNotConfigured)
}
