package interfaces

import (
	"context"
	"errors"

	"garage_admin/internal/domain/entities"
)

// ErrAlreadyExists is returned by Create when the record ID is taken.
var ErrAlreadyExists = errors.New("record already exists")

// IRepository abstracts persistence for one garage resource.
//
// Lookups follow the same convention for every entity: a missing record
// is not an error, it comes back as the zero value (empty ID) or false.
type IRepository[E any] interface {
	List(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, e E) (E, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type (
	ICustomerRepository = IRepository[entities.Customer]
	IVehicleRepository  = IRepository[entities.Vehicle]
	IServiceRepository  = IRepository[entities.Service]
	IJobItemRepository  = IRepository[entities.JobItem]
	IJobCardRepository  = IRepository[entities.JobCard]
)

// IInvoiceRepository adds the conditional status swap settlement relies on.
type IInvoiceRepository interface {
	IRepository[entities.Invoice]
	// CompareAndSetStatus moves the invoice to `to` only while it is still
	// in `from`. It returns the zero Invoice when the condition fails or the
	// invoice does not exist.
	CompareAndSetStatus(ctx context.Context, id string, from, to entities.InvoiceStatus) (entities.Invoice, error)
}

type IPaymentRepository interface {
	IRepository[entities.Payment]
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}
