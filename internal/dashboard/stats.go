package dashboard

import "garage_admin/internal/domain/entities"

type Counts struct {
	Customers int
	Vehicles  int
	Invoices  int
}

func (s Snapshot) Counts() Counts {
	return Counts{Customers: len(s.Customers), Vehicles: len(s.Vehicles), Invoices: len(s.Invoices)}
}

// InvoiceStats summarizes an invoice list. Revenue only counts completed
// invoices.
type InvoiceStats struct {
	Total   int
	Pending int
	Paid    int
	Revenue float64
}

func InvoiceStatsOf(list []entities.Invoice) InvoiceStats {
	st := InvoiceStats{Total: len(list)}
	for _, inv := range list {
		switch inv.Status {
		case entities.InvoiceStatusPending:
			st.Pending++
		case entities.InvoiceStatusCompleted:
			st.Paid++
			st.Revenue += inv.TotalAmount
		}
	}
	return st
}

type PaymentStats struct {
	Total float64
	Cash  float64
	Card  float64
}

func PaymentStatsOf(list []entities.Payment) PaymentStats {
	var st PaymentStats
	for _, p := range list {
		st.Total += p.Amount
		switch p.Method {
		case entities.PaymentMethodCash:
			st.Cash += p.Amount
		case entities.PaymentMethodCard:
			st.Card += p.Amount
		}
	}
	return st
}

type JobCardStats struct {
	Pending    int
	InProgress int
	Completed  int
}

func JobCardStatsOf(list []entities.JobCard) JobCardStats {
	var st JobCardStats
	for _, j := range list {
		switch j.Status {
		case entities.JobCardStatusPending:
			st.Pending++
		case entities.JobCardStatusInProgress:
			st.InProgress++
		case entities.JobCardStatusCompleted:
			st.Completed++
		}
	}
	return st
}
