package interfaces

import (
	"context"
	"errors"

	"garage_admin/internal/domain/billing"
)

var (
	ErrGatewayUnauthorized = errors.New("payment gateway rejected credentials")
	ErrGatewayBadRequest   = errors.New("payment gateway rejected request")
)

// IPaymentGateway abstracts external card payment providers (e.g. Mercado Pago).
//
// Charge must treat a repeated IdempotencyKey as the same charge. Refund
// returns the money of a charge whose settlement was abandoned.
type IPaymentGateway interface {
	Charge(ctx context.Context, charge billing.CardCharge) (billing.ChargeResult, error)
	Refund(ctx context.Context, providerPaymentID string) error
}
