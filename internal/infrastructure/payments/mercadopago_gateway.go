package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"garage_admin/internal/domain/billing"
	"garage_admin/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/mperror"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"github.com/mercadopago/sdk-go/pkg/requester"
	"github.com/sirupsen/logrus"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const requestTimeout = 30 * time.Second

// MercadoPagoGateway charges invoice settlements on Mercado Pago cards.
type MercadoPagoGateway struct {
	payments   payment.Client
	refunds    refund.Client
	payerEmail string
	mockMode   bool
	now        func() time.Time
	log        *logrus.Entry

	mu      sync.Mutex
	charged map[string]billing.ChargeResult
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

type Option func(*gatewayOptions)

type gatewayOptions struct {
	payerEmail string
	transport  requester.Requester
}

// WithPayerEmail fills the payer email when the card payload has none.
// Sandbox accounts require one.
func WithPayerEmail(email string) Option {
	return func(o *gatewayOptions) { o.payerEmail = strings.TrimSpace(email) }
}

func withTransport(r requester.Requester) Option {
	return func(o *gatewayOptions) { o.transport = r }
}

// NewMercadoPagoGateway builds the SDK clients. In mock mode no token is
// needed and every charge is approved locally.
func NewMercadoPagoGateway(accessToken string, mockMode bool, opts ...Option) (*MercadoPagoGateway, error) {
	o := gatewayOptions{transport: &http.Client{Timeout: requestTimeout}}
	for _, opt := range opts {
		opt(&o)
	}

	log := logrus.WithField("component", "mercadopago")
	g := &MercadoPagoGateway{
		payerEmail: o.payerEmail,
		now:        time.Now,
		log:        log,
		charged:    map[string]billing.ChargeResult{},
	}
	if mockMode {
		log.Info("[payment][gateway] mock mode enabled")
		g.mockMode = true
		return g, nil
	}

	if accessToken == "" {
		log.Warn("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken, config.WithHTTPClient(idempotentTransport{next: o.transport}))
	if err != nil {
		log.WithError(err).Error("[payment][gateway] failed creating sdk config")
		return nil, err
	}
	g.payments = payment.NewClient(cfg)
	g.refunds = refund.NewClient(cfg)
	log.Info("[payment][gateway] Mercado Pago client initialized")
	return g, nil
}

// Charge creates the provider payment. The charge's IdempotencyKey is sent
// as X-Idempotency-Key, so a retried settlement gets the original payment
// back instead of a second charge.
func (g *MercadoPagoGateway) Charge(ctx context.Context, charge billing.CardCharge) (billing.ChargeResult, error) {
	if g == nil {
		return billing.ChargeResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	req, err := g.paymentRequest(charge)
	if err != nil {
		return billing.ChargeResult{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayBadRequest, err)
	}
	log := g.log.WithFields(logrus.Fields{"invoice_id": charge.InvoiceID, "idempotency_key": charge.IdempotencyKey})

	if g.mockMode {
		return g.mockCharge(log, charge.IdempotencyKey, req)
	}
	if g.payments == nil {
		return billing.ChargeResult{}, ErrMercadoPagoGatewayNotConfigured
	}

	log.WithField("amount", req.TransactionAmount).Info("[payment][gateway] charge start")
	resp, err := g.payments.Create(withIdempotencyKey(ctx, charge.IdempotencyKey), req)
	if err != nil {
		log.WithError(err).Error("[payment][gateway] sdk create failed")
		return billing.ChargeResult{}, classify(err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return billing.ChargeResult{}, err
	}
	result := billing.ChargeResult{ProviderPaymentID: strconv.Itoa(resp.ID), Status: resp.Status, Response: raw}
	log.WithFields(logrus.Fields{"provider_payment_id": result.ProviderPaymentID, "provider_status": result.Status}).Info("[payment][gateway] charge success")
	return result, nil
}

// Refund returns the full amount of a provider payment.
func (g *MercadoPagoGateway) Refund(ctx context.Context, providerPaymentID string) error {
	if g == nil {
		return ErrMercadoPagoGatewayNotConfigured
	}
	log := g.log.WithField("provider_payment_id", providerPaymentID)

	if g.mockMode {
		g.mu.Lock()
		defer g.mu.Unlock()
		for key, r := range g.charged {
			if r.ProviderPaymentID == providerPaymentID {
				delete(g.charged, key)
			}
		}
		log.Info("[payment][gateway] mock refund success")
		return nil
	}
	if g.refunds == nil {
		return ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return fmt.Errorf("%w: provider payment id %q", interfaces.ErrGatewayBadRequest, providerPaymentID)
	}
	if _, err := g.refunds.Create(ctx, id); err != nil {
		log.WithError(err).Error("[payment][gateway] refund failed")
		return classify(err)
	}
	log.Info("[payment][gateway] refund success")
	return nil
}

// paymentRequest maps a charge onto the SDK request. Card fields come from
// the client; amount and invoice reference always come from the invoice.
func (g *MercadoPagoGateway) paymentRequest(charge billing.CardCharge) (payment.Request, error) {
	var req payment.Request
	if len(charge.Card) > 0 {
		if err := json.Unmarshal(charge.Card, &req); err != nil {
			return payment.Request{}, err
		}
	}
	req.TransactionAmount = charge.Amount
	req.ExternalReference = charge.InvoiceID
	if req.Description == "" {
		req.Description = charge.Description
	}
	if req.Payer == nil {
		req.Payer = &payment.PayerRequest{}
	}
	if req.Payer.Type == "" {
		req.Payer.Type = "customer"
	}
	if req.Payer.Email == "" {
		req.Payer.Email = g.payerEmail
	}
	return req, nil
}

func (g *MercadoPagoGateway) mockCharge(log *logrus.Entry, key string, req payment.Request) (billing.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.charged[key]; ok && key != "" {
		log.WithField("provider_payment_id", r.ProviderPaymentID).Info("[payment][gateway] mock charge replayed")
		return r, nil
	}

	at := g.now().UTC()
	id := strconv.FormatInt(at.UnixNano(), 10)
	stamp := at.Format(time.RFC3339Nano)
	raw, err := json.Marshal(struct {
		payment.Request
		ID           string `json:"id"`
		Status       string `json:"status"`
		StatusDetail string `json:"status_detail"`
		DateCreated  string `json:"date_created"`
		DateApproved string `json:"date_approved"`
	}{req, id, "approved", "accredited", stamp, stamp})
	if err != nil {
		return billing.ChargeResult{}, err
	}

	r := billing.ChargeResult{ProviderPaymentID: id, Status: "approved", Response: raw}
	if key != "" {
		g.charged[key] = r
	}
	log.WithField("provider_payment_id", id).Info("[payment][gateway] mock charge success")
	return r, nil
}

func classify(err error) error {
	var respErr *mperror.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}
	switch respErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", interfaces.ErrGatewayUnauthorized, respErr.Message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", interfaces.ErrGatewayBadRequest, respErr.Message)
	}
	return err
}

type idempotencyKeyCtx struct{}

func withIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// idempotentTransport replaces the random X-Idempotency-Key the SDK puts on
// every write with the charge's own key.
type idempotentTransport struct {
	next requester.Requester
}

func (t idempotentTransport) Do(req *http.Request) (*http.Response, error) {
	if key, ok := req.Context().Value(idempotencyKeyCtx{}).(string); ok {
		req.Header.Set("X-Idempotency-Key", key)
	}
	return t.next.Do(req)
}
