package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"garage_admin/internal/client"
	"garage_admin/internal/dashboard"
	"garage_admin/internal/domain/billing"
	"garage_admin/internal/domain/entities"
)

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse lets positional arguments and flags come in any order.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func splitIDs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", os.Getenv("GARAGE_EMAIL"), "admin email")
	password := fs.String("password", os.Getenv("GARAGE_PASSWORD"), "admin password")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" {
		*email = a.prompt("Email")
	}
	if *password == "" {
		*password = a.prompt("Password")
	}

	u, err := a.api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.saveToken(a.api.Token()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return nil
}

func (a *app) logout(_ context.Context, _ []string) error {
	if err := os.Remove(a.tokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	a.api.SetToken("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) me(ctx context.Context, _ []string) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := a.flags("list")
	term := fs.String("q", "", "filter term")
	xlsx := fs.String("xlsx", "", "export to this .xlsx file")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}
	resource := pos[0]

	snap, loadErr := a.loadSnapshot(ctx)
	a.loadBanner(loadErr)
	view, err := viewFor(resource, snap, *term)
	if err != nil {
		return err
	}

	if *xlsx != "" {
		f, err := os.Create(*xlsx)
		if err != nil {
			return err
		}
		if err := dashboard.ExportXLSX(f, view); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Exported %d rows to %s\n", len(view.Rows), *xlsx)
		return nil
	}

	if err := dashboard.Render(a.out, view); err != nil {
		return err
	}
	a.printListStats(resource, snap, *term)
	return nil
}

// printListStats prints the figures shown above each list page. Payment
// totals follow the filter; the other figures cover the whole collection.
func (a *app) printListStats(resource string, s dashboard.Snapshot, term string) {
	switch resource {
	case "invoices":
		st := dashboard.InvoiceStatsOf(s.Invoices)
		fmt.Fprintf(a.out, "\nTotal: %d  Pending: %d  Paid: %d  Revenue: %s\n", st.Total, st.Pending, st.Paid, dashboard.Amount(st.Revenue))
	case "payments":
		st := dashboard.PaymentStatsOf(dashboard.FilterPayments(s.Payments, s.Lookup(), term))
		fmt.Fprintf(a.out, "\nTotal: %s  Cash: %s  Card: %s  Unpaid invoices: %d\n",
			dashboard.Amount(st.Total), dashboard.Amount(st.Cash), dashboard.Amount(st.Card), len(dashboard.UnpaidInvoices(s.Invoices)))
	case "jobcards":
		st := dashboard.JobCardStatsOf(s.JobCards)
		fmt.Fprintf(a.out, "\nPending: %d  In progress: %d  Completed: %d\n", st.Pending, st.InProgress, st.Completed)
	}
}

func (a *app) get(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	r, err := a.resource(args[0])
	if err != nil {
		return err
	}
	rec, err := r.get(ctx, args[1])
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// recordInput reads the -f file, or stdin for "-". No file means no fields.
func (a *app) recordInput(path string) (map[string]json.RawMessage, error) {
	switch path {
	case "":
		return map[string]json.RawMessage{}, nil
	case "-":
		return readFields(a.in)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readFields(f)
}

func (a *app) recordFlags(name string) (*flag.FlagSet, *string, *setFlags) {
	fs := a.flags(name)
	file := fs.String("f", "", "JSON file with the record fields, - for stdin")
	sets := &setFlags{}
	fs.Var(sets, "set", "name=value, repeatable")
	return fs, file, sets
}

func (a *app) create(ctx context.Context, args []string) error {
	fs, file, sets := a.recordFlags("create")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}
	r, err := a.resource(pos[0])
	if err != nil {
		return err
	}
	fields, err := a.recordInput(*file)
	if err != nil {
		return err
	}
	sets.apply(fields, r.template())
	if len(fields) == 0 {
		return errUsage
	}

	rec, err := r.create(ctx, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s\n", strings.TrimSuffix(pos[0], "s"))
	return a.printJSON(rec)
}

// edit changes only the fields given; the rest keep their stored value.
func (a *app) edit(ctx context.Context, args []string) error {
	fs, file, sets := a.recordFlags("edit")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 2 {
		return errUsage
	}
	r, err := a.resource(pos[0])
	if err != nil {
		return err
	}
	fields, err := a.recordInput(*file)
	if err != nil {
		return err
	}
	sets.apply(fields, r.template())
	if len(fields) == 0 {
		return errUsage
	}
	delete(fields, "id")

	rec, err := r.update(ctx, pos[1], fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s %s\n", strings.TrimSuffix(pos[0], "s"), pos[1])
	return a.printJSON(rec)
}

func (a *app) ping(ctx context.Context, _ []string) error {
	if err := a.api.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "API reachable")
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := a.flags("delete")
	yes := fs.Bool("y", false, "do not ask for confirmation")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 2 {
		return errUsage
	}
	r, err := a.resource(pos[0])
	if err != nil {
		return err
	}
	if !*yes && !a.confirm(fmt.Sprintf("Delete %s %s?", strings.TrimSuffix(pos[0], "s"), pos[1])) {
		return ErrDeleteDeclined
	}
	if err := r.remove(ctx, pos[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func (a *app) invoice(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "create":
		return a.invoiceCreate(ctx, args[1:])
	case "edit":
		return a.invoiceEdit(ctx, args[1:])
	}
	return errUsage
}

// selectServices resolves IDs against the catalog so unknown services are
// reported before anything is sent.
func selectServices(sel *billing.Selection, catalog []entities.Service, ids []string) error {
	for _, id := range ids {
		found := false
		for _, svc := range catalog {
			if svc.ID == id {
				sel.Add(svc)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: unknown service %q", client.ErrValidation, id)
		}
	}
	return nil
}

// checkVehicleOwner rejects a vehicle registered to another customer. Blank
// IDs are left to draft validation.
func (a *app) checkVehicleOwner(ctx context.Context, customerID, vehicleID string) error {
	customerID, vehicleID = strings.TrimSpace(customerID), strings.TrimSpace(vehicleID)
	if customerID == "" || vehicleID == "" {
		return nil
	}
	vehicles, err := a.api.Vehicles.List(ctx)
	if err != nil {
		return err
	}
	for _, v := range dashboard.VehiclesForCustomer(vehicles, customerID) {
		if v.ID == vehicleID {
			return nil
		}
	}
	return fmt.Errorf("%w: vehicle %q does not belong to customer %q", client.ErrValidation, vehicleID, customerID)
}

func parseDateFlag(s string) (entities.Date, error) {
	d, err := entities.ParseDate(s)
	if err != nil {
		return entities.Date{}, fmt.Errorf("%w: invalid date %q", client.ErrValidation, s)
	}
	return d, nil
}

func (a *app) invoiceCreate(ctx context.Context, args []string) error {
	fs := a.flags("invoice create")
	customer := fs.String("customer", "", "customer id")
	vehicle := fs.String("vehicle", "", "vehicle id")
	services := fs.String("services", "", "comma separated service ids")
	date := fs.String("date", "", "invoice date YYYY-MM-DD")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	day, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	catalog, err := a.api.Services.List(ctx)
	if err != nil {
		return err
	}
	sel := billing.NewSelection()
	if err := selectServices(sel, catalog, splitIDs(*services)); err != nil {
		return err
	}
	if err := a.checkVehicleOwner(ctx, *customer, *vehicle); err != nil {
		return err
	}

	inv, err := a.api.CreateInvoice(ctx, billing.Draft{CustomerID: *customer, VehicleID: *vehicle, Selection: sel}, day)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Invoice %s created: %s, %s\n", inv.ID, inv.Services, dashboard.Amount(inv.TotalAmount))
	return nil
}

// invoiceEdit starts from the stored selection and applies -add/-remove.
// With only -status it changes the status and leaves the billed lines alone.
func (a *app) invoiceEdit(ctx context.Context, args []string) error {
	fs := a.flags("invoice edit")
	customer := fs.String("customer", "", "customer id")
	vehicle := fs.String("vehicle", "", "vehicle id")
	add := fs.String("add", "", "comma separated service ids to add")
	remove := fs.String("remove", "", "comma separated service ids to remove")
	status := fs.String("status", "", "pending|completed|cancelled")
	date := fs.String("date", "", "invoice date YYYY-MM-DD")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errUsage
	}
	id := pos[0]

	statusOnly := true
	for _, name := range []string{"customer", "vehicle", "add", "remove", "date"} {
		if isSet(fs, name) {
			statusOnly = false
		}
	}
	if statusOnly {
		if *status == "" {
			return errUsage
		}
		inv, err := a.api.SetInvoiceStatus(ctx, id, entities.InvoiceStatus(strings.ToLower(*status)))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Invoice %s is now %s\n", inv.ID, inv.Status)
		return nil
	}

	day, err := parseDateFlag(*date)
	if err != nil {
		return err
	}
	inv, err := a.api.Invoices.Get(ctx, id)
	if err != nil {
		return err
	}
	catalog, err := a.api.Services.List(ctx)
	if err != nil {
		return err
	}

	sel := billing.SelectionFromInvoice(inv, catalog)
	for _, sid := range splitIDs(*remove) {
		sel.Remove(sid)
	}
	if err := selectServices(sel, catalog, splitIDs(*add)); err != nil {
		return err
	}

	draft := billing.Draft{CustomerID: inv.CustomerID, VehicleID: inv.VehicleID, Selection: sel}
	if *customer != "" {
		draft.CustomerID = *customer
	}
	if *vehicle != "" {
		draft.VehicleID = *vehicle
	}
	if *status != "" {
		draft.Status = entities.InvoiceStatus(strings.ToLower(*status))
	}

	updated, err := a.api.UpdateInvoice(ctx, id, draft, day)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Invoice %s updated: %s, %s\n", updated.ID, updated.Services, dashboard.Amount(updated.TotalAmount))
	return nil
}

func (a *app) settle(ctx context.Context, args []string) error {
	fs := a.flags("settle")
	method := fs.String("method", "", "cash|card|bank|upi")
	key := fs.String("key", "", "idempotency key")
	payload := fs.String("payload", "", "card payload JSON, or @file")
	pos, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 || *method == "" {
		return errUsage
	}

	var s client.Settlement
	if *payload != "" {
		raw, err := providerPayload(*payload)
		if err != nil {
			return err
		}
		s, err = a.api.SettleInvoiceWithProvider(ctx, pos[0], entities.PaymentMethod(*method), *key, raw)
		if err != nil {
			return err
		}
	} else {
		s, err = a.api.SettleInvoice(ctx, pos[0], entities.PaymentMethod(*method), *key)
		if err != nil {
			return err
		}
	}
	note := ""
	if s.Replayed {
		note = " (already recorded)"
	}
	fmt.Fprintf(a.out, "Invoice %s paid: %s by %s%s\n", s.Invoice.ID, dashboard.Amount(s.Payment.Amount), s.Payment.Method, note)
	return nil
}

// providerPayload takes inline JSON or @path to a JSON file.
func providerPayload(arg string) (json.RawMessage, error) {
	raw := []byte(arg)
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", client.ErrValidation)
	}
	return json.RawMessage(raw), nil
}

func (a *app) summary(ctx context.Context, _ []string) error {
	snap, loadErr := a.loadSnapshot(ctx)
	a.loadBanner(loadErr)
	c := snap.Counts()
	inv := dashboard.InvoiceStatsOf(snap.Invoices)
	pay := dashboard.PaymentStatsOf(snap.Payments)
	jc := dashboard.JobCardStatsOf(snap.JobCards)

	fmt.Fprintf(a.out, "Customers: %d\nVehicles:  %d\nInvoices:  %d\n\n", c.Customers, c.Vehicles, c.Invoices)
	fmt.Fprintf(a.out, "Invoices pending: %d  paid: %d  unpaid: %d  revenue: %s\n",
		inv.Pending, inv.Paid, len(dashboard.UnpaidInvoices(snap.Invoices)), dashboard.Amount(inv.Revenue))
	fmt.Fprintf(a.out, "Payments total: %s  cash: %s  card: %s\n", dashboard.Amount(pay.Total), dashboard.Amount(pay.Cash), dashboard.Amount(pay.Card))
	fmt.Fprintf(a.out, "Job cards pending: %d  in progress: %d  completed: %d\n", jc.Pending, jc.InProgress, jc.Completed)
	return nil
}
