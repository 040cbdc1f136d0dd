package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"garage_admin/internal/domain/entities"
)

// NoResults is printed instead of an empty table.
const NoResults = "No results"

// Money marks a cell holding an amount. Tables print it as currency and
// spreadsheets keep the number.
type Money float64

// View is one rendered list: a title, column headers and rows of cells.
// Cells are strings, Money, float64 or *float64 for an amount that may be
// missing.
type View struct {
	Title   string
	Headers []string
	Rows    [][]any
}

func (v View) Empty() bool { return len(v.Rows) == 0 }

func CustomersView(list []entities.Customer) View {
	v := View{Title: "Customers", Headers: []string{"ID", "Name", "Email", "Phone"}}
	for _, c := range list {
		v.Rows = append(v.Rows, []any{c.ID, c.Name, c.Email, c.Phone})
	}
	return v
}

func VehiclesView(list []entities.Vehicle, lk *Lookup) View {
	v := View{Title: "Vehicles", Headers: []string{"ID", "Plate", "Brand", "Model", "Fuel", "Owner"}}
	for _, x := range list {
		v.Rows = append(v.Rows, []any{x.ID, x.PlateNumber, x.Brand, x.Model, x.FuelType, lk.CustomerName(x.CustomerID)})
	}
	return v
}

func ServicesView(list []entities.Service) View {
	v := View{Title: "Services", Headers: []string{"ID", "Name", "Description", "Price"}}
	for _, s := range list {
		v.Rows = append(v.Rows, []any{s.ID, s.Name, s.Description, Money(s.Price)})
	}
	return v
}

func JobItemsView(list []entities.JobItem) View {
	v := View{Title: "Job Items", Headers: []string{"ID", "Description", "Qty", "Rate", "Total"}}
	for _, j := range list {
		v.Rows = append(v.Rows, []any{j.ID, j.Description, j.Qty, Money(j.Rate), Money(j.Total())})
	}
	return v
}

func JobCardsView(list []entities.JobCard, lk *Lookup) View {
	v := View{Title: "Job Cards", Headers: []string{"ID", "Date", "Customer", "Vehicle", "Service", "Status", "Estimated Cost"}}
	for _, j := range list {
		v.Rows = append(v.Rows, []any{
			j.ID, orNA(j.CreatedDate.String()), lk.CustomerName(j.CustomerID), lk.VehiclePlate(j.VehicleID),
			lk.ServiceName(j.ServiceID), string(j.Status), Money(j.EstimatedCost),
		})
	}
	return v
}

func InvoicesView(list []entities.Invoice, lk *Lookup) View {
	v := View{Title: "Invoices", Headers: []string{"ID", "Date", "Customer", "Vehicle", "Services", "Total", "Status"}}
	for _, inv := range list {
		v.Rows = append(v.Rows, []any{
			inv.ID, orNA(inv.InvoiceDate.String()), lk.CustomerName(inv.CustomerID), lk.VehiclePlate(inv.VehicleID),
			inv.Services, Money(inv.TotalAmount), string(inv.Status),
		})
	}
	return v
}

func PaymentsView(list []entities.Payment, lk *Lookup) View {
	v := View{Title: "Payments", Headers: []string{"ID", "Invoice", "Customer", "Amount", "Method", "Date", "Invoice Total"}}
	for _, p := range list {
		v.Rows = append(v.Rows, []any{
			p.ID, p.InvoiceID, lk.InvoiceCustomerName(p.InvoiceID), Money(p.Amount), string(p.Method), orNA(p.PaymentDate.String()),
			lk.InvoiceTotal(p.InvoiceID),
		})
	}
	return v
}

// Render writes v as an aligned text table, or NoResults when it has no rows.
func Render(w io.Writer, v View) error {
	if v.Empty() {
		_, err := fmt.Fprintln(w, NoResults)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(v.Headers, "\t"))
	for _, row := range v.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellText(c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func cellText(c any) string {
	switch x := c.(type) {
	case Money:
		return Amount(float64(x))
	case *float64:
		return Currency(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
