package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"garage_admin/internal/client"
	"garage_admin/internal/dashboard"
	"garage_admin/internal/domain/entities"
)

var resourceNames = []string{"customers", "vehicles", "services", "jobitems", "jobcards", "invoices", "payments"}

var errInvoiceCommand = fmt.Errorf("%w: invoices are saved with garagectl invoice create|edit", client.ErrValidation)

type recordAccess interface {
	get(ctx context.Context, id string) (any, error)
	remove(ctx context.Context, id string) error
	// create and update take the record's JSON fields.
	create(ctx context.Context, fields map[string]json.RawMessage) (any, error)
	update(ctx context.Context, id string, fields map[string]json.RawMessage) (any, error)
	// template is the JSON of an empty record, used to type -set values.
	template() map[string]json.RawMessage
}

type readOnly[T any] struct {
	r *client.Collection[T]
}

func (x readOnly[T]) get(ctx context.Context, id string) (any, error) { return x.r.Get(ctx, id) }

func (x readOnly[T]) remove(ctx context.Context, id string) error { return x.r.Delete(ctx, id) }

func (x readOnly[T]) create(context.Context, map[string]json.RawMessage) (any, error) {
	return nil, errInvoiceCommand
}

func (x readOnly[T]) update(context.Context, string, map[string]json.RawMessage) (any, error) {
	return nil, errInvoiceCommand
}

func (x readOnly[T]) template() map[string]json.RawMessage { return nil }

type record[T any] struct {
	r *client.Resource[T]
}

func (x record[T]) get(ctx context.Context, id string) (any, error) { return x.r.Get(ctx, id) }

func (x record[T]) remove(ctx context.Context, id string) error { return x.r.Delete(ctx, id) }

func (x record[T]) create(ctx context.Context, fields map[string]json.RawMessage) (any, error) {
	var v T
	if err := decodeFields(fields, &v); err != nil {
		return nil, err
	}
	return x.r.Create(ctx, v)
}

// update overlays fields on the stored record, so unset fields keep their
// current value.
func (x record[T]) update(ctx context.Context, id string, fields map[string]json.RawMessage) (any, error) {
	current, err := x.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := recordFields(current)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	var v T
	if err := decodeFields(merged, &v); err != nil {
		return nil, err
	}
	return x.r.Update(ctx, id, v)
}

func (x record[T]) template() map[string]json.RawMessage {
	var zero T
	fields, _ := recordFields(zero)
	return fields
}

func (a *app) resource(name string) (recordAccess, error) {
	switch name {
	case "customers":
		return record[entities.Customer]{a.api.Customers}, nil
	case "vehicles":
		return record[entities.Vehicle]{a.api.Vehicles}, nil
	case "services":
		return record[entities.Service]{a.api.Services}, nil
	case "jobitems":
		return record[entities.JobItem]{a.api.JobItems}, nil
	case "jobcards":
		return record[entities.JobCard]{a.api.JobCards}, nil
	case "invoices":
		return readOnly[entities.Invoice]{a.api.Invoices}, nil
	case "payments":
		return record[entities.Payment]{a.api.Payments}, nil
	}
	return nil, fmt.Errorf("%w: unknown resource %q", errUsage, name)
}

func recordFields(v any) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeFields(fields map[string]json.RawMessage, v any) error {
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", client.ErrValidation, err)
	}
	return nil
}

// readFields loads a JSON object from r.
func readFields(r io.Reader) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: record file must hold a JSON object: %v", client.ErrValidation, err)
	}
	return fields, nil
}

// setFlags collects repeated -set name=value pairs.
type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("want name=value, got %q", v)
	}
	*s = append(*s, v)
	return nil
}

// apply writes each pair into fields. A value becomes a JSON string when the
// record's field is a string (or the value is not JSON), else raw JSON, so
// -set price=1200 stays a number while -set phone=98450 stays text.
func (s setFlags) apply(fields map[string]json.RawMessage, template map[string]json.RawMessage) {
	for _, pair := range s {
		name, value, _ := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		tmpl, known := template[name]
		isString := known && len(tmpl) > 0 && tmpl[0] == '"'
		if !isString && json.Valid([]byte(value)) {
			fields[name] = json.RawMessage(value)
			continue
		}
		quoted, _ := json.Marshal(value)
		fields[name] = quoted
	}
}

// loadSnapshot fetches every collection. Lists that fail come back empty and
// their errors are joined.
func (a *app) loadSnapshot(ctx context.Context) (dashboard.Snapshot, error) {
	var s dashboard.Snapshot
	var errs []error
	keep := func(name string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	var err error
	s.Customers, err = a.api.Customers.List(ctx)
	keep("customers", err)
	s.Vehicles, err = a.api.Vehicles.List(ctx)
	keep("vehicles", err)
	s.Services, err = a.api.Services.List(ctx)
	keep("services", err)
	s.JobItems, err = a.api.JobItems.List(ctx)
	keep("jobitems", err)
	s.JobCards, err = a.api.JobCards.List(ctx)
	keep("jobcards", err)
	s.Invoices, err = a.api.Invoices.List(ctx)
	keep("invoices", err)
	s.Payments, err = a.api.Payments.List(ctx)
	keep("payments", err)
	return s, errors.Join(errs...)
}

// loadBanner reports collections that failed to load. The page still
// renders with whatever did load.
func (a *app) loadBanner(err error) {
	if err == nil {
		return
	}
	var msgs []string
	for _, e := range unwrapJoined(err) {
		msgs = append(msgs, loadMessage(e))
	}
	fmt.Fprintf(a.errOut, "Load failed: %s\n", strings.Join(msgs, "; "))
}

func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

func loadMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		name, _, _ := strings.Cut(err.Error(), ":")
		return name + ": " + apiErr.Message
	}
	return err.Error()
}

func viewFor(resource string, s dashboard.Snapshot, term string) (dashboard.View, error) {
	lk := s.Lookup()
	switch resource {
	case "customers":
		return dashboard.CustomersView(dashboard.FilterCustomers(s.Customers, term)), nil
	case "vehicles":
		return dashboard.VehiclesView(dashboard.FilterVehicles(s.Vehicles, term), lk), nil
	case "services":
		return dashboard.ServicesView(dashboard.FilterServices(s.Services, term)), nil
	case "jobitems":
		return dashboard.JobItemsView(dashboard.FilterJobItems(s.JobItems, term)), nil
	case "jobcards":
		return dashboard.JobCardsView(dashboard.FilterJobCards(s.JobCards, lk, term), lk), nil
	case "invoices":
		return dashboard.InvoicesView(dashboard.FilterInvoices(s.Invoices, lk, term), lk), nil
	case "payments":
		return dashboard.PaymentsView(dashboard.FilterPayments(s.Payments, lk, term), lk), nil
	}
	return dashboard.View{}, fmt.Errorf("%w: unknown resource %q", errUsage, resource)
}
