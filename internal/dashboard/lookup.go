// Package dashboard holds the list-view logic of the garage back office:
// search filters, owner lookups, page statistics, table rendering and
// spreadsheet export.
package dashboard

import "garage_admin/internal/domain/entities"

// NotAvailable is shown when a referenced record cannot be resolved.
const NotAvailable = "N/A"

// Snapshot is everything one dashboard screen needs, fetched up front.
type Snapshot struct {
	Customers []entities.Customer
	Vehicles  []entities.Vehicle
	Services  []entities.Service
	JobItems  []entities.JobItem
	JobCards  []entities.JobCard
	Invoices  []entities.Invoice
	Payments  []entities.Payment
}

// Lookup resolves weak references by ID. When IDs repeat, the first record
// wins.
type Lookup struct {
	customers map[string]entities.Customer
	vehicles  map[string]entities.Vehicle
	services  map[string]entities.Service
	invoices  map[string]entities.Invoice
}

func (s Snapshot) Lookup() *Lookup {
	return &Lookup{
		customers: index(s.Customers, func(c entities.Customer) string { return c.ID }),
		vehicles:  index(s.Vehicles, func(v entities.Vehicle) string { return v.ID }),
		services:  index(s.Services, func(v entities.Service) string { return v.ID }),
		invoices:  index(s.Invoices, func(v entities.Invoice) string { return v.ID }),
	}
}

func index[T any](list []T, id func(T) string) map[string]T {
	m := make(map[string]T, len(list))
	for _, v := range list {
		k := id(v)
		if _, seen := m[k]; k == "" || seen {
			continue
		}
		m[k] = v
	}
	return m
}

func (l *Lookup) Customer(id string) (entities.Customer, bool) {
	c, ok := l.customers[id]
	return c, ok
}

func (l *Lookup) Vehicle(id string) (entities.Vehicle, bool) {
	v, ok := l.vehicles[id]
	return v, ok
}

func (l *Lookup) Service(id string) (entities.Service, bool) {
	s, ok := l.services[id]
	return s, ok
}

func (l *Lookup) Invoice(id string) (entities.Invoice, bool) {
	inv, ok := l.invoices[id]
	return inv, ok
}

func (l *Lookup) CustomerName(id string) string {
	return orNA(l.customers[id].Name)
}

func (l *Lookup) VehiclePlate(id string) string {
	return orNA(l.vehicles[id].PlateNumber)
}

func (l *Lookup) ServiceName(id string) string {
	return orNA(l.services[id].Name)
}

// InvoiceCustomerName follows a payment's invoice to its customer.
func (l *Lookup) InvoiceCustomerName(invoiceID string) string {
	inv, ok := l.invoices[invoiceID]
	if !ok {
		return NotAvailable
	}
	return l.CustomerName(inv.CustomerID)
}

// InvoiceTotal is nil when the invoice is not loaded.
func (l *Lookup) InvoiceTotal(invoiceID string) *float64 {
	inv, ok := l.invoices[invoiceID]
	if !ok {
		return nil
	}
	total := inv.TotalAmount
	return &total
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// VehiclesForCustomer narrows the vehicle choice to one owner. An empty
// customer ID keeps every vehicle.
func VehiclesForCustomer(vehicles []entities.Vehicle, customerID string) []entities.Vehicle {
	if customerID == "" {
		return vehicles
	}
	out := make([]entities.Vehicle, 0)
	for _, v := range vehicles {
		if v.CustomerID == customerID {
			out = append(out, v)
		}
	}
	return out
}

// UnpaidInvoices are the invoices still open for payment.
func UnpaidInvoices(invoices []entities.Invoice) []entities.Invoice {
	out := make([]entities.Invoice, 0)
	for _, inv := range invoices {
		if !inv.Status.Terminal() {
			out = append(out, inv)
		}
	}
	return out
}
