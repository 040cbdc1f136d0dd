package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"garage_admin/internal/domain/billing"
	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrInvalidInvoiceID        = errors.New("invalid invoice id")
	ErrIncompleteInvoice       = billing.ErrIncompleteDraft
	ErrServiceNotFound         = errors.New("service not found")
	ErrInvalidInvoiceStatus    = errors.New("invalid invoice status")
	ErrInvoiceStatusTransition = errors.New("invoice status transition not allowed")
)

// InvoiceInput is the editable part of an invoice.
//
// Services are chosen by ServiceIDs, or else by Services, the joined
// service names older clients send ("Oil Change, Tire Rotation"). Either
// way lines and total are rebuilt from the catalog.
//
// On update, an input with no customer, vehicle or services is a
// status-only edit and keeps the stored snapshot.
type InvoiceInput struct {
	CustomerID  string
	VehicleID   string
	ServiceIDs  []string
	Services    string
	Status      string
	InvoiceDate entities.Date
}

func (in InvoiceInput) statusOnly() bool {
	return strings.TrimSpace(in.CustomerID) == "" && strings.TrimSpace(in.VehicleID) == "" &&
		len(in.ServiceIDs) == 0 && strings.TrimSpace(in.Services) == ""
}

func (in InvoiceInput) byName() bool {
	return len(in.ServiceIDs) == 0 && strings.TrimSpace(in.Services) != ""
}

type IInvoiceUseCase interface {
	List(ctx context.Context) ([]entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	Create(ctx context.Context, in InvoiceInput) (entities.Invoice, error)
	Update(ctx context.Context, id string, in InvoiceInput) (entities.Invoice, error)
	Delete(ctx context.Context, id string) error
}

type InvoiceUseCase struct {
	repo     interfaces.IInvoiceRepository
	services interfaces.IServiceRepository
	log      *logrus.Entry
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(repo interfaces.IInvoiceRepository, services interfaces.IServiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, services: services, log: logrus.WithField("resource", "invoice")}
}

func (u *InvoiceUseCase) List(ctx context.Context) ([]entities.Invoice, error) {
	return u.repo.List(ctx)
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

// Create aggregates the chosen services into a new invoice snapshot.
// Incomplete drafts are rejected before any storage call.
func (u *InvoiceUseCase) Create(ctx context.Context, in InvoiceInput) (entities.Invoice, error) {
	status := entities.InvoiceStatusPending
	if strings.TrimSpace(in.Status) != "" {
		st, ok := entities.ParseInvoiceStatus(in.Status)
		if !ok {
			return entities.Invoice{}, ErrInvalidInvoiceStatus
		}
		status = st
	}
	if err := precheckDraft(in); err != nil {
		return entities.Invoice{}, err
	}

	sel, err := u.resolveSelection(ctx, in)
	if err != nil {
		return entities.Invoice{}, err
	}

	inv := entities.Invoice{
		ID:          uuid.NewString(),
		CustomerID:  strings.TrimSpace(in.CustomerID),
		VehicleID:   strings.TrimSpace(in.VehicleID),
		Status:      status,
		InvoiceDate: in.InvoiceDate,
	}
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = entities.Today()
	}
	sel.Apply(&inv)

	created, err := u.repo.Create(ctx, inv)
	if err != nil {
		u.log.WithError(err).Error("[invoice][usecase] create failed")
		return entities.Invoice{}, err
	}
	u.log.WithFields(logrus.Fields{"invoice_id": created.ID, "total": created.TotalAmount, "lines": len(created.Lines)}).Info("[invoice][usecase] created")
	return created, nil
}

// Update re-aggregates the invoice from the given services, or only moves
// its status when the input carries nothing else. Leaving a terminal status
// is rejected.
func (u *InvoiceUseCase) Update(ctx context.Context, id string, in InvoiceInput) (entities.Invoice, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}

	next := existing
	if strings.TrimSpace(in.Status) != "" {
		st, ok := entities.ParseInvoiceStatus(in.Status)
		if !ok {
			return entities.Invoice{}, ErrInvalidInvoiceStatus
		}
		if !existing.Status.CanTransitionTo(st) {
			return entities.Invoice{}, fmt.Errorf("%w: %s -> %s", ErrInvoiceStatusTransition, existing.Status, st)
		}
		next.Status = st
	}

	if !in.statusOnly() {
		if err := precheckDraft(in); err != nil {
			return entities.Invoice{}, err
		}
		sel, err := u.resolveSelection(ctx, in)
		if err != nil {
			return entities.Invoice{}, err
		}
		next.CustomerID = strings.TrimSpace(in.CustomerID)
		next.VehicleID = strings.TrimSpace(in.VehicleID)
		sel.Apply(&next)
	}
	if !in.InvoiceDate.IsZero() {
		next.InvoiceDate = in.InvoiceDate
	}

	updated, err := u.repo.Update(ctx, next)
	if err != nil {
		u.log.WithError(err).WithField("invoice_id", existing.ID).Error("[invoice][usecase] update failed")
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	u.log.WithFields(logrus.Fields{"invoice_id": updated.ID, "status": updated.Status, "status_only": in.statusOnly()}).Info("[invoice][usecase] updated")
	return updated, nil
}

func (u *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInvoiceID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInvoiceNotFound
	}
	return nil
}

// precheckDraft validates required selections without touching storage.
func precheckDraft(in InvoiceInput) error {
	sel := &billing.Selection{}
	for _, id := range in.ServiceIDs {
		sel.AddLine(entities.InvoiceLine{ServiceID: strings.TrimSpace(id)})
	}
	if in.byName() {
		for _, name := range billing.SplitServices(in.Services) {
			sel.AddLine(entities.InvoiceLine{ServiceID: name, Name: name})
		}
	}
	return billing.Draft{CustomerID: in.CustomerID, VehicleID: in.VehicleID, Selection: sel}.Validate()
}

func (u *InvoiceUseCase) resolveSelection(ctx context.Context, in InvoiceInput) (*billing.Selection, error) {
	if in.byName() {
		return u.resolveNames(ctx, in.Services)
	}
	return u.resolveIDs(ctx, in.ServiceIDs)
}

// resolveIDs snapshots the current catalog entry of each service ID,
// keeping request order and ignoring repeated IDs.
func (u *InvoiceUseCase) resolveIDs(ctx context.Context, ids []string) (*billing.Selection, error) {
	sel := &billing.Selection{}
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" || sel.Contains(id) {
			continue
		}
		svc, err := u.services.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if svc.ID == "" {
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
		}
		sel.Add(svc)
	}
	return sel, nil
}

// resolveNames matches joined service names against the catalog. Any
// client-sent price or total is ignored.
func (u *InvoiceUseCase) resolveNames(ctx context.Context, services string) (*billing.Selection, error) {
	catalog, err := u.services.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(catalog))
	for _, svc := range catalog {
		known[svc.Name] = true
	}
	for _, name := range billing.SplitServices(services) {
		if !known[name] {
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
		}
	}
	return billing.SelectionFromInvoice(entities.Invoice{Services: services}, catalog), nil
}
