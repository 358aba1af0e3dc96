// Package model defines the record types tracked by certiflow and the
// margin calculations derived from them.
package model

import (
	"math"
	"time"

	"github.com/certiflow/certiflow/internal/common"
)

// InvoiceKind distinguishes the two invoicing lines of the business.
type InvoiceKind string

const (
	// KindCertification represents certification audit invoices.
	KindCertification InvoiceKind = "certification"
	// KindOther represents other service invoices (training, consulting, auditor loan).
	KindOther InvoiceKind = "other"
)

// InvoiceStatus indicates where an invoice sits in its billing lifecycle.
type InvoiceStatus string

const (
	// StatusInvoiced means the amount has been billed.
	StatusInvoiced InvoiceStatus = "Invoiced"
	// StatusPlanned means the work is committed but not yet billed.
	StatusPlanned InvoiceStatus = "Planned"
	// StatusQuoted means only a quote has been issued. Informational; not a KPI input.
	StatusQuoted InvoiceStatus = "Quoted"
)

// Invoice represents a single invoicing line for either kind of service.
// Category holds the certification scheme (e.g. "IFS FOOD") for
// certification invoices and the service type (e.g. "Training") for others.
type Invoice struct {
	Date        time.Time
	Client      string
	Category    string
	Description string
	Kind        InvoiceKind
	Status      InvoiceStatus
	Days        float64 // audit duration in days, certification only
	Amount      float64
	MissionFee  float64
	AuditorCost float64
}

// Validate checks field constraints before an invoice may enter the store.
func (i Invoice) Validate() error {
	if i.Date.IsZero() {
		return common.NewValidationError("date", "must be set", i.Date)
	}
	switch i.Kind {
	case KindCertification, KindOther:
	default:
		return common.NewValidationError("kind", "must be certification or other", i.Kind)
	}
	switch i.Status {
	case StatusInvoiced, StatusPlanned, StatusQuoted:
	default:
		return common.NewValidationError("status", "must be Invoiced, Planned or Quoted", i.Status)
	}
	if err := validAmount("amount", i.Amount); err != nil {
		return err
	}
	if err := validAmount("missionFee", i.MissionFee); err != nil {
		return err
	}
	if err := validAmount("auditorCost", i.AuditorCost); err != nil {
		return err
	}
	if i.Days < 0 || math.IsInf(i.Days, 0) || math.IsNaN(i.Days) {
		return common.NewValidationError("days", "must be a non-negative finite number", i.Days)
	}
	return nil
}

// Month returns the invoice date truncated to its calendar month.
// Aggregation ignores the day of month entirely.
func (i Invoice) Month() time.Time {
	return MonthOf(i.Date)
}

// MonthOf truncates a date to midnight on the first of its month, UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func validAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return common.NewValidationError(field, "must be a finite number", v)
	}
	if v < 0 {
		return common.NewValidationError(field, "must not be negative", v)
	}
	return nil
}
