// Package billing turns a chosen set of catalog services into the fields
// an invoice stores: the ordered line snapshot, the joined service names
// and the total amount.
package billing

import (
	"errors"
	"strings"

	"garage_admin/internal/domain/entities"
)

// ServicesSeparator joins line names into Invoice.Services.
const ServicesSeparator = ", "

var ErrIncompleteDraft = errors.New("customer, vehicle and at least one service are required")

// Selection is an ordered set of services keyed by service ID.
// The zero value is an empty selection ready to use.
type Selection struct {
	lines []entities.InvoiceLine
}

func NewSelection(services ...entities.Service) *Selection {
	s := &Selection{}
	for _, svc := range services {
		s.Add(svc)
	}
	return s
}

// Add appends svc unless a service with the same ID is already selected.
// It reports whether the selection changed.
func (s *Selection) Add(svc entities.Service) bool {
	return s.AddLine(entities.InvoiceLine{ServiceID: svc.ID, Name: svc.Name, Price: svc.Price})
}

func (s *Selection) AddLine(line entities.InvoiceLine) bool {
	if line.ServiceID == "" || s.Contains(line.ServiceID) {
		return false
	}
	s.lines = append(s.lines, line)
	return true
}

// Remove deletes the service with the given ID; absent IDs are ignored.
func (s *Selection) Remove(serviceID string) bool {
	for i, l := range s.lines {
		if l.ServiceID == serviceID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Selection) Contains(serviceID string) bool {
	for _, l := range s.lines {
		if l.ServiceID == serviceID {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int {
	return len(s.lines)
}

// Total sums line prices. Negative prices are not valid catalog prices and
// count as zero, the same as a missing price.
func (s *Selection) Total() float64 {
	total := 0.0
	for _, l := range s.lines {
		if l.Price > 0 {
			total += l.Price
		}
	}
	return total
}

// ServicesString joins line names in selection order.
func (s *Selection) ServicesString() string {
	names := make([]string, 0, len(s.lines))
	for _, l := range s.lines {
		names = append(names, l.Name)
	}
	return strings.Join(names, ServicesSeparator)
}

// Lines returns a copy of the selected lines in insertion order.
func (s *Selection) Lines() []entities.InvoiceLine {
	out := make([]entities.InvoiceLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Apply writes the selection snapshot onto inv.
func (s *Selection) Apply(inv *entities.Invoice) {
	inv.Lines = s.Lines()
	inv.Services = s.ServicesString()
	inv.TotalAmount = s.Total()
}

// SelectionFromInvoice rebuilds the selection of an existing invoice for
// editing.
//
// Invoices that carry Lines are restored exactly. Older invoices that only
// have the flat Services string are resolved by name against catalog;
// names that are missing from the catalog are dropped, and when two
// catalog services share a name the first one wins.
func SelectionFromInvoice(inv entities.Invoice, catalog []entities.Service) *Selection {
	s := &Selection{}
	if len(inv.Lines) > 0 {
		for _, l := range inv.Lines {
			s.AddLine(l)
		}
		return s
	}
	for _, name := range SplitServices(inv.Services) {
		for _, svc := range catalog {
			if svc.Name == name {
				s.Add(svc)
				break
			}
		}
	}
	return s
}

// SplitServices returns the non-blank names of a joined Services field.
func SplitServices(services string) []string {
	var names []string
	for _, name := range strings.Split(services, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Draft is an invoice being composed before it is submitted.
type Draft struct {
	CustomerID string
	VehicleID  string
	Status     entities.InvoiceStatus
	Selection  *Selection
}

// Validate rejects drafts that lack a customer, a vehicle or services.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.CustomerID) == "" || strings.TrimSpace(d.VehicleID) == "" {
		return ErrIncompleteDraft
	}
	if d.Selection == nil || d.Selection.Len() == 0 {
		return ErrIncompleteDraft
	}
	return nil
}

// ServiceIDs lists the selected service IDs in order.
func (d Draft) ServiceIDs() []string {
	if d.Selection == nil {
		return nil
	}
	ids := make([]string, 0, d.Selection.Len())
	for _, l := range d.Selection.lines {
		ids = append(ids, l.ServiceID)
	}
	return ids
}
