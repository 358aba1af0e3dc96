// Package ledger owns the in-memory record collections for one working
// session: certification invoices, other-service invoices and misc charges.
// Collections preserve insertion order; records have no intrinsic id beyond
// their position, so every mutation addresses the canonical store directly.
package ledger

import (
	"fmt"

	"github.com/certiflow/certiflow/internal/common"
	"github.com/certiflow/certiflow/internal/model"
)

// Session holds all record state for one run of the tool. It replaces the
// ambient string-keyed state of earlier iterations with explicit fields and
// explicit mutation methods.
type Session struct {
	certifications []model.Invoice
	services       []model.Invoice
	charges        []model.Charge
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Certifications returns a copy of the certification invoices in insertion order.
func (s *Session) Certifications() []model.Invoice {
	return append([]model.Invoice(nil), s.certifications...)
}

// Services returns a copy of the other-service invoices in insertion order.
func (s *Session) Services() []model.Invoice {
	return append([]model.Invoice(nil), s.services...)
}

// Charges returns a copy of the misc charges in insertion order.
func (s *Session) Charges() []model.Charge {
	return append([]model.Charge(nil), s.charges...)
}

// Invoices returns a copy of the invoices of the given kind.
func (s *Session) Invoices(kind model.InvoiceKind) []model.Invoice {
	return append([]model.Invoice(nil), *s.bucket(kind)...)
}

// AppendInvoices validates then appends a batch of invoices of one kind,
// preserving order. The append is atomic: if any record fails validation,
// nothing is stored. Returns the number of records appended.
func (s *Session) AppendInvoices(kind model.InvoiceKind, invoices []model.Invoice) (int, error) {
	for n, inv := range invoices {
		if inv.Kind != kind {
			return 0, fmt.Errorf("record %d: expected kind %s, got %s", n, kind, inv.Kind)
		}
		if err := inv.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", n, err)
		}
	}
	bucket := s.bucket(kind)
	*bucket = append(*bucket, invoices...)
	return len(invoices), nil
}

// ReplaceInvoices discards the invoices of one kind and stores the given
// batch instead ("replace" import mode). Atomic like AppendInvoices: on a
// validation failure the existing records are kept.
func (s *Session) ReplaceInvoices(kind model.InvoiceKind, invoices []model.Invoice) (int, error) {
	for n, inv := range invoices {
		if inv.Kind != kind {
			return 0, fmt.Errorf("record %d: expected kind %s, got %s", n, kind, inv.Kind)
		}
		if err := inv.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", n, err)
		}
	}
	*s.bucket(kind) = append([]model.Invoice(nil), invoices...)
	return len(invoices), nil
}

// AddInvoice validates and appends a single invoice.
func (s *Session) AddInvoice(inv model.Invoice) error {
	_, err := s.AppendInvoices(inv.Kind, []model.Invoice{inv})
	return err
}

// UpdateInvoice replaces the invoice at the canonical index with a new one.
// Partial patches are not supported; edits always carry the full record.
func (s *Session) UpdateInvoice(kind model.InvoiceKind, index int, inv model.Invoice) error {
	bucket := s.bucket(kind)
	if index < 0 || index >= len(*bucket) {
		return fmt.Errorf("%s invoice %d: %w", kind, index, common.ErrIndexOutOfRange)
	}
	if inv.Kind != kind {
		return fmt.Errorf("expected kind %s, got %s", kind, inv.Kind)
	}
	if err := inv.Validate(); err != nil {
		return err
	}
	(*bucket)[index] = inv
	return nil
}

// DeleteInvoice removes the invoice at the canonical index. Callers showing
// a filtered view must pass the canonical index carried by the view entry,
// never the view's own row number.
func (s *Session) DeleteInvoice(kind model.InvoiceKind, index int) error {
	bucket := s.bucket(kind)
	if index < 0 || index >= len(*bucket) {
		return fmt.Errorf("%s invoice %d: %w", kind, index, common.ErrIndexOutOfRange)
	}
	*bucket = append((*bucket)[:index], (*bucket)[index+1:]...)
	return nil
}

// AppendCharges validates then appends a batch of charges, atomically.
func (s *Session) AppendCharges(charges []model.Charge) (int, error) {
	for n, c := range charges {
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", n, err)
		}
	}
	s.charges = append(s.charges, charges...)
	return len(charges), nil
}

// ReplaceCharges discards existing charges and stores the given batch.
func (s *Session) ReplaceCharges(charges []model.Charge) (int, error) {
	for n, c := range charges {
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", n, err)
		}
	}
	s.charges = append([]model.Charge(nil), charges...)
	return len(charges), nil
}

// AddCharge validates and appends a single charge.
func (s *Session) AddCharge(c model.Charge) error {
	_, err := s.AppendCharges([]model.Charge{c})
	return err
}

// UpdateCharge replaces the charge at the canonical index.
func (s *Session) UpdateCharge(index int, c model.Charge) error {
	if index < 0 || index >= len(s.charges) {
		return fmt.Errorf("charge %d: %w", index, common.ErrIndexOutOfRange)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.charges[index] = c
	return nil
}

// DeleteCharge removes the charge at the canonical index.
func (s *Session) DeleteCharge(index int) error {
	if index < 0 || index >= len(s.charges) {
		return fmt.Errorf("charge %d: %w", index, common.ErrIndexOutOfRange)
	}
	s.charges = append(s.charges[:index], s.charges[index+1:]...)
	return nil
}

func (s *Session) bucket(kind model.InvoiceKind) *[]model.Invoice {
	if kind == model.KindOther {
		return &s.services
	}
	return &s.certifications
}
