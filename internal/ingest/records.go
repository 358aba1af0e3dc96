package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/certiflow/certiflow/internal/common"
	"github.com/certiflow/certiflow/internal/model"
)

// Result reports what a conversion produced. Skipped counts rows dropped for
// a missing, unparsable or non-positive amount, or for being blank.
type Result struct {
	Skipped int
}

// Date layouts accepted on input, tried in order. ISO first; the rest cover
// the European spreadsheets this tool sees in practice.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"01/2006",
}

// Invoices converts table rows into invoices of the given kind using the
// mapping. Rows that fail the amount rule are skipped, never stored; rows
// that parse but fail model validation abort the conversion so the caller
// can refuse the import as a whole.
func Invoices(t Table, m Mapping, kind model.InvoiceKind) ([]model.Invoice, Result, error) {
	if len(t.Rows) == 0 {
		return nil, Result{}, common.ErrEmptyTable
	}

	var out []model.Invoice
	var res Result
	for _, row := range t.Rows {
		if blankRow(row) {
			res.Skipped++
			continue
		}
		amount, ok := parseAmount(cell(row, m, FieldAmount))
		if !ok || amount <= 0 {
			res.Skipped++
			continue
		}
		date, ok := parseDate(cell(row, m, FieldDate))
		if !ok {
			res.Skipped++
			continue
		}

		inv := model.Invoice{
			Date:        date,
			Client:      strings.TrimSpace(cell(row, m, FieldClient)),
			Category:    strings.TrimSpace(cell(row, m, FieldCategory)),
			Description: strings.TrimSpace(cell(row, m, FieldDescription)),
			Kind:        kind,
			Status:      parseInvoiceStatus(cell(row, m, FieldStatus)),
			Days:        parseOptionalAmount(cell(row, m, FieldDays)),
			Amount:      amount,
			MissionFee:  parseOptionalAmount(cell(row, m, FieldMissionFee)),
			AuditorCost: parseOptionalAmount(cell(row, m, FieldAuditorCost)),
		}
		if err := inv.Validate(); err != nil {
			return nil, Result{}, err
		}
		out = append(out, inv)
	}
	return out, res, nil
}

// Charges converts table rows into charges using the mapping.
func Charges(t Table, m Mapping) ([]model.Charge, Result, error) {
	if len(t.Rows) == 0 {
		return nil, Result{}, common.ErrEmptyTable
	}

	var out []model.Charge
	var res Result
	for _, row := range t.Rows {
		if blankRow(row) {
			res.Skipped++
			continue
		}
		amount, ok := parseAmount(cell(row, m, FieldAmount))
		if !ok || amount <= 0 {
			res.Skipped++
			continue
		}
		date, ok := parseDate(cell(row, m, FieldDate))
		if !ok {
			res.Skipped++
			continue
		}

		c := model.Charge{
			Date:        date,
			Category:    strings.TrimSpace(cell(row, m, FieldCategory)),
			Description: strings.TrimSpace(cell(row, m, FieldDescription)),
			Status:      parseChargeStatus(cell(row, m, FieldStatus)),
			Amount:      amount,
		}
		if err := c.Validate(); err != nil {
			return nil, Result{}, err
		}
		out = append(out, c)
	}
	return out, res, nil
}

func cell(row []string, m Mapping, field string) string {
	idx, ok := m[field]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount handles plain decimals plus the formatting found in exported
// sheets: currency symbols, thousands separators and decimal commas.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	clean := strings.NewReplacer("€", "", "$", "", " ", "", " ", "").Replace(s)
	if strings.Contains(clean, ",") && !strings.Contains(clean, ".") {
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseOptionalAmount(s string) float64 {
	v, ok := parseAmount(s)
	if !ok {
		return 0
	}
	return v
}

// Status spellings accepted on input, including the French labels of the
// original workbooks. Blank or unrecognized values default to Invoiced for
// invoices and Paid for charges: historical imports are realized figures.
func parseInvoiceStatus(s string) model.InvoiceStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "planned", "prévu", "prevu":
		return model.StatusPlanned
	case "quoted", "devis", "quote":
		return model.StatusQuoted
	default:
		return model.StatusInvoiced
	}
}

func parseChargeStatus(s string) model.ChargeStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "due", "dû", "du":
		return model.ChargeDue
	case "planned", "prévu", "prevu":
		return model.ChargePlanned
	default:
		return model.ChargePaid
	}
}
