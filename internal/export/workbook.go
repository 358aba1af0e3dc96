package export

import (
	"fmt"

	"github.com/certiflow/certiflow/internal/forecast"
	"github.com/certiflow/certiflow/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names used in workbook exports. They deliberately match the import
// hints so an exported workbook re-imports without configuration.
const (
	SheetCertifications = "Certifications"
	SheetServices       = "Other Services"
	SheetCharges        = "Charges"
	SheetForecast       = "Forecast"
)

// WriteWorkbook writes the three record collections and the projection grid
// to one .xlsx workbook, one sheet each.
func WriteWorkbook(path string, certifications, services []model.Invoice, charges []model.Charge, rows []forecast.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeInvoiceSheet(f, SheetCertifications, certifications); err != nil {
		return err
	}
	if err := writeInvoiceSheet(f, SheetServices, services); err != nil {
		return err
	}
	if err := writeChargeSheet(f, SheetCharges, charges); err != nil {
		return err
	}
	if err := writeForecastSheet(f, SheetForecast, rows); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeInvoiceSheet(f *excelize.File, sheet string, invoices []model.Invoice) error {
	if err := newSheet(f, sheet, InvoiceHeader); err != nil {
		return err
	}
	for i, inv := range invoices {
		row := []any{
			inv.Date.Format("2006-01-02"),
			inv.Client,
			inv.Category,
			inv.Description,
			inv.Days,
			inv.Amount,
			inv.MissionFee,
			inv.AuditorCost,
			string(inv.Status),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeChargeSheet(f *excelize.File, sheet string, charges []model.Charge) error {
	if err := newSheet(f, sheet, ChargeHeader); err != nil {
		return err
	}
	for i, c := range charges {
		row := []any{
			c.Date.Format("2006-01-02"),
			c.Category,
			c.Description,
			c.Amount,
			string(c.Status),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeForecastSheet(f *excelize.File, sheet string, rows []forecast.Row) error {
	if err := newSheet(f, sheet, ProjectionHeader); err != nil {
		return err
	}
	for i, r := range rows {
		row := []any{
			r.Label(),
			r.CertRevenue,
			r.OtherRevenue,
			r.MissionFees,
			r.AuditorCosts,
			r.MiscCharges,
			r.TotalRevenue(),
			r.TotalCharges(),
			r.Result(),
			r.MarginPct(),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func newSheet(f *excelize.File, sheet string, header []string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	return writeRow(f, sheet, 1, cells)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to name cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
