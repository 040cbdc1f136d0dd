package dashboard

import (
	"strings"

	"garage_admin/internal/domain/entities"
)

// Matches reports whether any field contains term, ignoring case.
// An empty term matches everything.
func Matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func FilterCustomers(list []entities.Customer, term string) []entities.Customer {
	return filter(list, func(c entities.Customer) bool {
		return Matches(term, c.Name, c.Email, c.Phone)
	})
}

func FilterVehicles(list []entities.Vehicle, term string) []entities.Vehicle {
	return filter(list, func(v entities.Vehicle) bool {
		return Matches(term, v.PlateNumber, v.Brand, v.Model)
	})
}

func FilterServices(list []entities.Service, term string) []entities.Service {
	return filter(list, func(s entities.Service) bool {
		return Matches(term, s.Name, s.Description)
	})
}

func FilterJobItems(list []entities.JobItem, term string) []entities.JobItem {
	return filter(list, func(j entities.JobItem) bool {
		return Matches(term, j.Description)
	})
}

// FilterJobCards matches on the referenced IDs, the resolved service name
// and the status.
func FilterJobCards(list []entities.JobCard, lk *Lookup, term string) []entities.JobCard {
	return filter(list, func(j entities.JobCard) bool {
		svc, _ := lk.Service(j.ServiceID)
		return Matches(term, j.CustomerID, j.VehicleID, svc.Name, string(j.Status))
	})
}

// FilterPayments matches on invoice ID, method and the customer billed on
// the paid invoice.
func FilterPayments(list []entities.Payment, lk *Lookup, term string) []entities.Payment {
	return filter(list, func(p entities.Payment) bool {
		var customer string
		if inv, ok := lk.Invoice(p.InvoiceID); ok {
			c, _ := lk.Customer(inv.CustomerID)
			customer = c.Name
		}
		return Matches(term, p.InvoiceID, string(p.Method), customer)
	})
}

// FilterInvoices matches on customer name, vehicle plate and invoice ID.
func FilterInvoices(list []entities.Invoice, lk *Lookup, term string) []entities.Invoice {
	return filter(list, func(inv entities.Invoice) bool {
		c, _ := lk.Customer(inv.CustomerID)
		v, _ := lk.Vehicle(inv.VehicleID)
		return Matches(term, c.Name, v.PlateNumber, inv.ID)
	})
}
