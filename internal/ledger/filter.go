package ledger

import "github.com/certiflow/certiflow/internal/model"

// InvoiceEntry pairs an invoice with its canonical store index so that a
// selection made on a filtered view still deletes or edits the right record.
type InvoiceEntry struct {
	Invoice model.Invoice
	Index   int
}

// ChargeEntry pairs a charge with its canonical store index.
type ChargeEntry struct {
	Charge model.Charge
	Index  int
}

// InvoiceFilter narrows an invoice listing. Zero values match everything.
type InvoiceFilter struct {
	Client   string
	Category string
	Status   model.InvoiceStatus
}

// ChargeFilter narrows a charge listing. Zero values match everything.
type ChargeFilter struct {
	Category string
	Status   model.ChargeStatus
}

// FilterInvoices returns the invoices of one kind matching the filter, in
// insertion order, each carrying its canonical index.
func (s *Session) FilterInvoices(kind model.InvoiceKind, f InvoiceFilter) []InvoiceEntry {
	var out []InvoiceEntry
	for i, inv := range *s.bucket(kind) {
		if f.Client != "" && inv.Client != f.Client {
			continue
		}
		if f.Category != "" && inv.Category != f.Category {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		out = append(out, InvoiceEntry{Invoice: inv, Index: i})
	}
	return out
}

// FilterCharges returns the charges matching the filter, in insertion order,
// each carrying its canonical index.
func (s *Session) FilterCharges(f ChargeFilter) []ChargeEntry {
	var out []ChargeEntry
	for i, c := range s.charges {
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, ChargeEntry{Charge: c, Index: i})
	}
	return out
}

// InvoiceClients returns the distinct clients of one invoice kind, in first-
// appearance order. Used to build filter choices.
func (s *Session) InvoiceClients(kind model.InvoiceKind) []string {
	return distinct(*s.bucket(kind), func(inv model.Invoice) string { return inv.Client })
}

// InvoiceCategories returns the distinct categories of one invoice kind, in
// first-appearance order.
func (s *Session) InvoiceCategories(kind model.InvoiceKind) []string {
	return distinct(*s.bucket(kind), func(inv model.Invoice) string { return inv.Category })
}

// ChargeCategories returns the distinct charge categories, in first-
// appearance order.
func (s *Session) ChargeCategories() []string {
	return distinct(s.charges, func(c model.Charge) string { return c.Category })
}

func distinct[T any](records []T, key func(T) string) []string {
	seen := make(map[string]bool, len(records))
	var out []string
	for _, r := range records {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
