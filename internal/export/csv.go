// Package export serializes record collections and projection grids to flat
// tabular formats. Column order follows the data model; dates are ISO-8601
// and numbers plain decimal text, so exports re-ingest cleanly.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/certiflow/certiflow/internal/forecast"
	"github.com/certiflow/certiflow/internal/model"
)

// InvoiceHeader is the canonical invoice column order.
var InvoiceHeader = []string{"date", "client", "category", "description", "days", "amount", "missionFee", "auditorCost", "status"}

// ChargeHeader is the canonical charge column order.
var ChargeHeader = []string{"date", "category", "description", "amount", "status"}

// ProjectionHeader is the projection column order: the five editable base
// fields followed by the derived totals.
var ProjectionHeader = []string{"month", "certRevenue", "otherRevenue", "missionFees", "auditorCosts", "miscCharges", "totalRevenue", "totalCharges", "result", "marginPct"}

// WriteInvoices writes invoices as CSV, one data row per record.
func WriteInvoices(w io.Writer, invoices []model.Invoice) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(InvoiceHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, inv := range invoices {
		row := []string{
			inv.Date.Format("2006-01-02"),
			inv.Client,
			inv.Category,
			inv.Description,
			number(inv.Days),
			number(inv.Amount),
			number(inv.MissionFee),
			number(inv.AuditorCost),
			string(inv.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write invoice row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCharges writes charges as CSV.
func WriteCharges(w io.Writer, charges []model.Charge) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ChargeHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range charges {
		row := []string{
			c.Date.Format("2006-01-02"),
			c.Category,
			c.Description,
			number(c.Amount),
			string(c.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write charge row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProjection writes the forecast grid as CSV, derived fields included.
func WriteProjection(w io.Writer, rows []forecast.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ProjectionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		row := []string{
			r.Label(),
			number(r.CertRevenue),
			number(r.OtherRevenue),
			number(r.MissionFees),
			number(r.AuditorCosts),
			number(r.MiscCharges),
			number(r.TotalRevenue()),
			number(r.TotalCharges()),
			number(r.Result()),
			number(r.MarginPct()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write projection row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
