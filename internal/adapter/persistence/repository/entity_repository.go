package repository

import (
	"context"

	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase/interfaces"
)

// entityRepository maps one domain entity onto a record store.
type entityRepository[E any, R record] struct {
	store recordStore[R]
	to    func(E) R
	from  func(R) E
}

func newEntityRepository[E any, R record](store recordStore[R], to func(E) R, from func(R) E) *entityRepository[E, R] {
	return &entityRepository[E, R]{store: store, to: to, from: from}
}

func (r *entityRepository[E, R]) fromAll(rows []R) []E {
	out := make([]E, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.from(row))
	}
	return out
}

func (r *entityRepository[E, R]) List(ctx context.Context) ([]E, error) {
	rows, err := r.store.scan(ctx)
	if err != nil {
		return nil, err
	}
	return r.fromAll(rows), nil
}

func (r *entityRepository[E, R]) GetByID(ctx context.Context, id string) (E, error) {
	var zero E
	row, ok, err := r.store.get(ctx, id)
	if err != nil || !ok {
		return zero, err
	}
	return r.from(row), nil
}

func (r *entityRepository[E, R]) Create(ctx context.Context, e E) (E, error) {
	var zero E
	if err := r.store.insert(ctx, r.to(e)); err != nil {
		return zero, err
	}
	return e, nil
}

func (r *entityRepository[E, R]) Update(ctx context.Context, e E) (E, error) {
	var zero E
	ok, err := r.store.replace(ctx, r.to(e))
	if err != nil || !ok {
		return zero, err
	}
	return e, nil
}

func (r *entityRepository[E, R]) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.remove(ctx, id)
}

type invoiceRepository struct {
	*entityRepository[entities.Invoice, invoiceRecord]
}

var _ interfaces.IInvoiceRepository = (*invoiceRepository)(nil)

func (r *invoiceRepository) CompareAndSetStatus(ctx context.Context, id string, from, to entities.InvoiceStatus) (entities.Invoice, error) {
	row, ok, err := r.store.swap(ctx, id, "status", string(from), string(to))
	if err != nil || !ok {
		return entities.Invoice{}, err
	}
	return r.from(row), nil
}

type paymentRepository struct {
	*entityRepository[entities.Payment, paymentRecord]
}

var _ interfaces.IPaymentRepository = (*paymentRepository)(nil)

func (r *paymentRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	rows, err := r.store.findBy(ctx, "invoice_id", invoiceID)
	if err != nil {
		return nil, err
	}
	return r.fromAll(rows), nil
}
