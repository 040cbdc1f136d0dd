package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"garage_admin/internal/domain/billing"
	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidPaymentMethod       = errors.New("invalid payment method")
	ErrInvoiceNotPending          = errors.New("invoice is not pending")
	ErrIdempotencyKeyReused       = errors.New("idempotency key already used for another invoice")
	ErrInvalidProviderPayload     = errors.New("invalid payment provider payload")
	ErrPaymentDeclined            = errors.New("payment declined by provider")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// settlementNamespace scopes derived settlement payment IDs.
var settlementNamespace = uuid.MustParse("6f1d4c8e-2b7a-4e55-9a0c-3d1f8e6b2c47")

// SettleCommand asks to record payment for an invoice and complete it.
type SettleCommand struct {
	InvoiceID string
	Method    string
	// IdempotencyKey identifies one settlement attempt across retries. When
	// empty, the invoice ID is used, so an invoice can be settled once.
	IdempotencyKey string
	// ProviderPayload is forwarded to the card gateway, enriched with the
	// amount and invoice reference.
	ProviderPayload json.RawMessage
}

type Settlement struct {
	Invoice entities.Invoice `json:"invoice"`
	Payment entities.Payment `json:"payment"`
	// Replayed is true when the call matched an already finished settlement.
	Replayed bool `json:"replayed"`
}

// ISettlementUseCase records a payment against a pending invoice and marks
// the invoice completed as one retry-safe operation.
type ISettlementUseCase interface {
	Settle(ctx context.Context, cmd SettleCommand) (Settlement, error)
}

type SettlementUseCase struct {
	invoices interfaces.IInvoiceRepository
	payments interfaces.IPaymentRepository
	gateway  interfaces.IPaymentGateway
	now      func() time.Time
	log      *logrus.Entry
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

// NewSettlementUseCase wires settlement. gateway may be nil, in which case
// card payments are recorded without a provider charge.
func NewSettlementUseCase(invoices interfaces.IInvoiceRepository, payments interfaces.IPaymentRepository, gateway interfaces.IPaymentGateway) *SettlementUseCase {
	return &SettlementUseCase{
		invoices: invoices,
		payments: payments,
		gateway:  gateway,
		now:      time.Now,
		log:      logrus.WithField("component", "settlement"),
	}
}

// SettlementPaymentID derives the payment ID used for a settlement attempt.
func SettlementPaymentID(invoiceID, idempotencyKey string) string {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		key = "invoice"
	}
	return uuid.NewSHA1(settlementNamespace, []byte(invoiceID+"/"+key)).String()
}

// Settle runs the settlement steps:
//
//  1. load the invoice and derive the settlement payment ID;
//  2. if the invoice already left pending, replay the finished settlement
//     or reject with ErrInvoiceNotPending;
//  3. create the payment unless a previous attempt already did;
//  4. compare-and-set the invoice from pending to completed. Losing the
//     swap to a different settlement reverts the payment from step 3.
//
// A failure between 3 and 4 leaves a payment behind; calling Settle again
// with the same key finds it and finishes step 4.
func (u *SettlementUseCase) Settle(ctx context.Context, cmd SettleCommand) (Settlement, error) {
	invoiceID := strings.TrimSpace(cmd.InvoiceID)
	log := u.log.WithField("invoice_id", invoiceID)
	log.WithField("method", cmd.Method).Info("[settlement][usecase] settle start")

	if invoiceID == "" {
		return Settlement{}, ErrInvalidInvoiceID
	}
	method, ok := entities.ParsePaymentMethod(cmd.Method)
	if !ok {
		return Settlement{}, ErrInvalidPaymentMethod
	}
	if len(cmd.ProviderPayload) > 0 && !json.Valid(cmd.ProviderPayload) {
		return Settlement{}, ErrInvalidProviderPayload
	}

	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		log.WithError(err).Error("[settlement][usecase] failed loading invoice")
		return Settlement{}, err
	}
	if inv.ID == "" {
		return Settlement{}, ErrInvoiceNotFound
	}

	paymentID := SettlementPaymentID(inv.ID, cmd.IdempotencyKey)
	existing, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return Settlement{}, err
	}
	if existing.ID != "" && existing.InvoiceID != inv.ID {
		return Settlement{}, ErrIdempotencyKeyReused
	}

	if inv.Status != entities.InvoiceStatusPending {
		if existing.ID != "" && inv.Status == entities.InvoiceStatusCompleted {
			log.WithField("payment_id", existing.ID).Info("[settlement][usecase] replaying finished settlement")
			return Settlement{Invoice: inv, Payment: existing, Replayed: true}, nil
		}
		log.WithField("status", inv.Status).Warn("[settlement][usecase] invoice not pending")
		return Settlement{}, ErrInvoiceNotPending
	}

	payment, created := existing, false
	if payment.ID == "" {
		payment, created, err = u.recordPayment(ctx, inv, paymentID, method, cmd.ProviderPayload)
		if err != nil {
			return Settlement{}, err
		}
	} else {
		log.WithField("payment_id", payment.ID).Info("[settlement][usecase] resuming with existing payment")
	}

	completed, err := u.invoices.CompareAndSetStatus(ctx, inv.ID, entities.InvoiceStatusPending, entities.InvoiceStatusCompleted)
	if err != nil {
		log.WithError(err).WithField("payment_id", payment.ID).Error("[settlement][usecase] payment recorded but invoice not completed")
		return Settlement{}, err
	}
	if completed.ID == "" {
		return u.afterLostSwap(ctx, log, inv.ID, payment, created)
	}

	log.WithFields(logrus.Fields{"payment_id": payment.ID, "amount": payment.Amount}).Info("[settlement][usecase] settle success")
	return Settlement{Invoice: completed, Payment: payment}, nil
}

// afterLostSwap handles an invoice that left pending between our read and
// our compare-and-set. The payment we hold stands only when it is the sole
// payment of a completed invoice (a concurrent call with the same key won).
// Otherwise it is refunded and removed so the invoice keeps one payment.
func (u *SettlementUseCase) afterLostSwap(ctx context.Context, log *logrus.Entry, invoiceID string, payment entities.Payment, created bool) (Settlement, error) {
	current, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return Settlement{}, err
	}
	if current.Status == entities.InvoiceStatusCompleted {
		recorded, err := u.payments.ListByInvoiceID(ctx, invoiceID)
		if err != nil {
			return Settlement{}, err
		}
		if !hasOtherPayment(recorded, payment.ID) {
			log.WithField("payment_id", payment.ID).Info("[settlement][usecase] concurrent settlement with same key completed invoice")
			return Settlement{Invoice: current, Payment: payment, Replayed: !created}, nil
		}
	}

	log.WithFields(logrus.Fields{"payment_id": payment.ID, "status": current.Status}).Warn("[settlement][usecase] lost race, reverting payment")
	u.revertPayment(ctx, log, payment)
	return Settlement{}, ErrInvoiceNotPending
}

func hasOtherPayment(payments []entities.Payment, own string) bool {
	for _, p := range payments {
		if p.ID != own {
			return true
		}
	}
	return false
}

// revertPayment refunds the provider charge and deletes the payment record.
// Failures are logged; the caller already reports ErrInvoiceNotPending.
func (u *SettlementUseCase) revertPayment(ctx context.Context, log *logrus.Entry, p entities.Payment) {
	log = log.WithField("payment_id", p.ID)
	if p.ProviderPaymentID != "" && u.gateway != nil {
		if err := u.gateway.Refund(ctx, p.ProviderPaymentID); err != nil {
			log.WithError(err).WithField("provider_payment_id", p.ProviderPaymentID).Error("[settlement][usecase] refund failed, needs manual refund")
		}
	}
	if _, err := u.payments.Delete(ctx, p.ID); err != nil {
		log.WithError(err).Error("[settlement][usecase] failed deleting reverted payment")
	}
}

// recordPayment charges the card when needed and stores the payment. created
// is false when a concurrent attempt with the same key stored it first.
func (u *SettlementUseCase) recordPayment(ctx context.Context, inv entities.Invoice, paymentID string, method entities.PaymentMethod, providerPayload json.RawMessage) (entities.Payment, bool, error) {
	p := entities.Payment{
		ID:          paymentID,
		InvoiceID:   inv.ID,
		Amount:      inv.TotalAmount,
		Method:      method,
		PaymentDate: entities.NewDate(u.now().UTC()),
	}

	if method == entities.PaymentMethodCard && u.gateway != nil {
		// paymentID doubles as the provider idempotency key, so a retry after
		// a failed Create below reuses the charge instead of making another.
		charge, err := billing.NewCardCharge(inv, paymentID, providerPayload)
		if err != nil {
			return entities.Payment{}, false, ErrInvalidProviderPayload
		}
		result, err := u.chargeCard(ctx, charge)
		if err != nil {
			return entities.Payment{}, false, err
		}
		result.Apply(&p)
	}

	created, err := u.payments.Create(ctx, p)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		stored, err := u.payments.GetByID(ctx, paymentID)
		return stored, false, err
	}
	if err != nil {
		u.log.WithError(err).WithField("invoice_id", inv.ID).Error("[settlement][usecase] payment create failed")
		return entities.Payment{}, false, err
	}
	return created, true, nil
}

func (u *SettlementUseCase) chargeCard(ctx context.Context, charge billing.CardCharge) (billing.ChargeResult, error) {
	log := u.log.WithField("invoice_id", charge.InvoiceID)
	result, err := u.gateway.Charge(ctx, charge)
	if err != nil {
		log.WithError(err).Error("[settlement][usecase] payment gateway failed")
		switch {
		case errors.Is(err, interfaces.ErrGatewayUnauthorized):
			return billing.ChargeResult{}, ErrPaymentGatewayUnauthorized
		case errors.Is(err, interfaces.ErrGatewayBadRequest):
			return billing.ChargeResult{}, ErrPaymentGatewayBadRequest
		}
		return billing.ChargeResult{}, err
	}
	if result.Declined() {
		log.WithField("provider_status", result.Status).Warn("[settlement][usecase] payment declined")
		return billing.ChargeResult{}, ErrPaymentDeclined
	}
	return result, nil
}
