package usecase

import (
	"context"
	"math"
	"strings"

	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase/interfaces"
)

func NewCustomerUseCase(repo interfaces.ICustomerRepository) *CrudUseCase[entities.Customer] {
	return newCrudUseCase(repo, entityRules[entities.Customer]{
		resource: "customer",
		idOf:     func(c entities.Customer) string { return c.ID },
		withID:   func(c entities.Customer, id string) entities.Customer { c.ID = id; return c },
		prepare: func(_ context.Context, c, _ entities.Customer, _ bool) (entities.Customer, error) {
			c.Name = strings.TrimSpace(c.Name)
			c.Email = strings.TrimSpace(c.Email)
			c.Phone = strings.TrimSpace(c.Phone)
			if c.Name == "" {
				return c, invalidInput("name is required")
			}
			return c, nil
		},
	})
}

// NewVehicleUseCase does not check that CustomerID exists; owner lookups
// fall back to "N/A" for dangling references.
func NewVehicleUseCase(repo interfaces.IVehicleRepository) *CrudUseCase[entities.Vehicle] {
	return newCrudUseCase(repo, entityRules[entities.Vehicle]{
		resource: "vehicle",
		idOf:     func(v entities.Vehicle) string { return v.ID },
		withID:   func(v entities.Vehicle, id string) entities.Vehicle { v.ID = id; return v },
		prepare: func(_ context.Context, v, _ entities.Vehicle, _ bool) (entities.Vehicle, error) {
			v.PlateNumber = strings.ToUpper(strings.TrimSpace(v.PlateNumber))
			v.Brand = strings.TrimSpace(v.Brand)
			v.Model = strings.TrimSpace(v.Model)
			v.FuelType = strings.TrimSpace(v.FuelType)
			v.CustomerID = strings.TrimSpace(v.CustomerID)
			if v.PlateNumber == "" {
				return v, invalidInput("plateNumber is required")
			}
			return v, nil
		},
	})
}

func NewServiceUseCase(repo interfaces.IServiceRepository) *CrudUseCase[entities.Service] {
	return newCrudUseCase(repo, entityRules[entities.Service]{
		resource: "service",
		idOf:     func(s entities.Service) string { return s.ID },
		withID:   func(s entities.Service, id string) entities.Service { s.ID = id; return s },
		prepare: func(_ context.Context, s, _ entities.Service, _ bool) (entities.Service, error) {
			s.Name = strings.TrimSpace(s.Name)
			s.Description = strings.TrimSpace(s.Description)
			if s.Name == "" {
				return s, invalidInput("name is required")
			}
			if s.Price < 0 || math.IsNaN(s.Price) {
				return s, invalidInput("price must not be negative")
			}
			return s, nil
		},
	})
}

func NewJobItemUseCase(repo interfaces.IJobItemRepository) *CrudUseCase[entities.JobItem] {
	return newCrudUseCase(repo, entityRules[entities.JobItem]{
		resource: "job item",
		idOf:     func(j entities.JobItem) string { return j.ID },
		withID:   func(j entities.JobItem, id string) entities.JobItem { j.ID = id; return j },
		prepare: func(_ context.Context, j, _ entities.JobItem, _ bool) (entities.JobItem, error) {
			j.Description = strings.TrimSpace(j.Description)
			if j.Description == "" {
				return j, invalidInput("description is required")
			}
			if j.Qty <= 0 {
				return j, invalidInput("qty must be positive")
			}
			if j.Rate < 0 {
				return j, invalidInput("rate must not be negative")
			}
			return j, nil
		},
	})
}

// NewJobCardUseCase snapshots the service price into EstimatedCost on every
// write. An unknown service yields a zero estimate rather than an error.
func NewJobCardUseCase(repo interfaces.IJobCardRepository, services interfaces.IServiceRepository) *CrudUseCase[entities.JobCard] {
	return newCrudUseCase(repo, entityRules[entities.JobCard]{
		resource: "job card",
		idOf:     func(j entities.JobCard) string { return j.ID },
		withID:   func(j entities.JobCard, id string) entities.JobCard { j.ID = id; return j },
		prepare: func(ctx context.Context, j, existing entities.JobCard, creating bool) (entities.JobCard, error) {
			j.CustomerID = strings.TrimSpace(j.CustomerID)
			j.VehicleID = strings.TrimSpace(j.VehicleID)
			j.ServiceID = strings.TrimSpace(j.ServiceID)
			if j.CustomerID == "" || j.VehicleID == "" || j.ServiceID == "" {
				return j, invalidInput("customerId, vehicleId and serviceId are required")
			}

			if j.Status == "" {
				j.Status = entities.JobCardStatusPending
			} else if st, ok := entities.ParseJobCardStatus(string(j.Status)); ok {
				j.Status = st
			} else {
				return j, invalidInput("unknown status %q", j.Status)
			}

			if j.CreatedDate.IsZero() {
				if creating {
					j.CreatedDate = entities.Today()
				} else {
					j.CreatedDate = existing.CreatedDate
				}
			}

			svc, err := services.GetByID(ctx, j.ServiceID)
			if err != nil {
				return j, err
			}
			j.EstimatedCost = 0
			if svc.ID != "" && svc.Price > 0 {
				j.EstimatedCost = svc.Price
			}
			return j, nil
		},
	})
}

// NewPaymentUseCase backs the plain /payments resource. Recording a payment
// here does not touch the invoice; settlement does both.
func NewPaymentUseCase(repo interfaces.IPaymentRepository) *CrudUseCase[entities.Payment] {
	return newCrudUseCase[entities.Payment](repo, entityRules[entities.Payment]{
		resource: "payment",
		idOf:     func(p entities.Payment) string { return p.ID },
		withID:   func(p entities.Payment, id string) entities.Payment { p.ID = id; return p },
		prepare: func(_ context.Context, p, existing entities.Payment, creating bool) (entities.Payment, error) {
			p.InvoiceID = strings.TrimSpace(p.InvoiceID)
			if p.InvoiceID == "" {
				return p, invalidInput("invoiceId is required")
			}
			m, ok := entities.ParsePaymentMethod(string(p.Method))
			if !ok {
				return p, ErrInvalidPaymentMethod
			}
			p.Method = m
			if p.Amount < 0 {
				return p, invalidInput("amount must not be negative")
			}
			if p.PaymentDate.IsZero() {
				if creating {
					p.PaymentDate = entities.Today()
				} else {
					p.PaymentDate = existing.PaymentDate
				}
			}
			if !creating && p.ProviderPaymentID == "" {
				p.ProviderPaymentID = existing.ProviderPaymentID
				p.ProviderStatus = existing.ProviderStatus
				p.ProviderResponse = existing.ProviderResponse
			}
			return p, nil
		},
	})
}
