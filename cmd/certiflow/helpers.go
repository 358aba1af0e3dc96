package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/certiflow/certiflow/internal/cli"
	"github.com/certiflow/certiflow/internal/common"
	"github.com/certiflow/certiflow/internal/config"
	"github.com/certiflow/certiflow/internal/forecast"
	"github.com/certiflow/certiflow/internal/ingest"
	"github.com/certiflow/certiflow/internal/ledger"
	"github.com/certiflow/certiflow/internal/model"
	"github.com/certiflow/certiflow/internal/report"
)

// loadSession builds the working session: from the configured workbook when
// one is set, otherwise from the demo seed (or empty when seeding is off).
func loadSession() (*ledger.Session, error) {
	path := viper.GetString(config.KeyImportFile)
	if path == "" {
		if viper.GetBool(config.KeySeedDemo) {
			return ledger.NewSeededSession(), nil
		}
		return ledger.NewSession(), nil
	}
	return sessionFromWorkbook(config.ExpandPath(path))
}

// sessionFromWorkbook reads a workbook and loads every recognized sheet into
// a fresh session. A sheet that fails mapping or validation refuses the whole
// load; skipped rows are only logged.
func sessionFromWorkbook(path string) (*ledger.Session, error) {
	wb, err := ingest.ReadWorkbook(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not read workbook %s", path), err)
	}

	session := ledger.NewSession()

	if wb.Certifications != nil {
		if err := loadInvoiceSheet(session, wb.Certifications, model.KindCertification, "certifications"); err != nil {
			return nil, err
		}
	}
	if wb.Services != nil {
		if err := loadInvoiceSheet(session, wb.Services, model.KindOther, "services"); err != nil {
			return nil, err
		}
	}
	if wb.Charges != nil {
		if err := loadChargeSheet(session, wb.Charges); err != nil {
			return nil, err
		}
	}

	common.LogInfo("workbook loaded", common.Fields{
		"path":           path,
		"certifications": len(session.Certifications()),
		"services":       len(session.Services()),
		"charges":        len(session.Charges()),
	})
	return session, nil
}

func loadInvoiceSheet(session *ledger.Session, table *ingest.Table, kind model.InvoiceKind, label string) error {
	mapping, err := ingest.DetectInvoiceMapping(table.Header, kind)
	if err != nil {
		return fmt.Errorf("%s sheet: %w", label, err)
	}

	invoices, res, err := ingest.Invoices(*table, mapping, kind)
	if errors.Is(err, common.ErrEmptyTable) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s sheet: %w", label, err)
	}
	if res.Skipped > 0 {
		common.LogWarn("skipped unusable rows", common.Fields{"sheet": label, "count": res.Skipped})
	}

	count, err := session.ReplaceInvoices(kind, invoices)
	if err != nil {
		return err
	}
	common.LogDebug("sheet loaded", common.Fields{"sheet": label, "records": count})
	return nil
}

func loadChargeSheet(session *ledger.Session, table *ingest.Table) error {
	mapping, err := ingest.DetectChargeMapping(table.Header)
	if err != nil {
		return fmt.Errorf("charges sheet: %w", err)
	}

	charges, res, err := ingest.Charges(*table, mapping)
	if errors.Is(err, common.ErrEmptyTable) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("charges sheet: %w", err)
	}
	if res.Skipped > 0 {
		common.LogWarn("skipped unusable rows", common.Fields{"sheet": "charges", "count": res.Skipped})
	}

	count, err := session.ReplaceCharges(charges)
	if err != nil {
		return err
	}
	common.LogDebug("sheet loaded", common.Fields{"sheet": "charges", "records": count})
	return nil
}

// Display formatting.

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " €"
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + " %"
}

func invoiceTableRows(entries []ledger.InvoiceEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Index + 1),
			e.Invoice.Date.Format("2006-01-02"),
			e.Invoice.Client,
			e.Invoice.Category,
			string(e.Invoice.Status),
			money(e.Invoice.Amount),
			money(e.Invoice.GrossMargin()),
			pct(e.Invoice.MarginRate()),
		})
	}
	return rows
}

var invoiceTableHeader = []string{"#", "Date", "Client", "Category", "Status", "Amount", "Margin", "Rate"}

func chargeTableRows(entries []ledger.ChargeEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Index + 1),
			e.Charge.Date.Format("2006-01-02"),
			e.Charge.Category,
			e.Charge.Description,
			string(e.Charge.Status),
			money(e.Charge.Amount),
		})
	}
	return rows
}

var chargeTableHeader = []string{"#", "Date", "Category", "Description", "Status", "Amount"}

func projectionTableRows(rows []forecast.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for i, r := range rows {
		out = append(out, []string{
			strconv.Itoa(i + 1),
			r.Label(),
			money(r.CertRevenue),
			money(r.OtherRevenue),
			money(r.MissionFees),
			money(r.AuditorCosts),
			money(r.MiscCharges),
			money(r.Result()),
			pct(r.MarginPct()),
		})
	}
	return out
}

var projectionTableHeader = []string{"#", "Month", "Cert revenue", "Other revenue", "Mission fees", "Auditor costs", "Misc charges", "Result", "Margin"}

func monthTableRows(rollups []report.MonthRollup) [][]string {
	rows := make([][]string, 0, len(rollups))
	for _, m := range rollups {
		rows = append(rows, []string{
			m.Label(),
			money(m.Amount),
			money(m.GrossMargin),
			pct(m.Rate()),
		})
	}
	return rows
}

var monthTableHeader = []string{"Month", "Revenue", "Margin", "Rate"}

func rollupTableRows(rollups []report.Rollup) [][]string {
	rows := make([][]string, 0, len(rollups))
	for _, r := range rollups {
		rows = append(rows, []string{
			r.Key,
			strconv.Itoa(r.Count),
			money(r.Amount),
			money(r.GrossMargin),
			pct(r.Rate()),
		})
	}
	return rows
}

func rollupTableHeader(keyName string) []string {
	return []string{keyName, "Invoices", "Revenue", "Margin", "Rate"}
}

// Interactive prompts.

func promptString(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", cli.FormatPrompt(prompt)) //nolint:forbidigo // User-facing output

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(input), nil
}

func promptChoice(reader *bufio.Reader, prompt string, validChoices []string) (string, error) {
	for {
		input, err := promptString(reader, prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		fmt.Println(cli.FormatError("Invalid choice. Please try again.")) //nolint:forbidigo // User-facing output
	}
}

func promptYesNo(reader *bufio.Reader, prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", cli.FormatPrompt(prompt)) //nolint:forbidigo // User-facing output

	input, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes", nil
}

func promptAmount(reader *bufio.Reader, prompt string) (float64, error) {
	for {
		input, err := promptString(reader, prompt)
		if err != nil {
			return 0, err
		}

		input = strings.Trim(input, "€ ")
		amount, err := strconv.ParseFloat(input, 64)
		if err != nil {
			fmt.Println(cli.FormatError("Please enter a valid amount (numbers only, no currency symbols needed)")) //nolint:forbidigo // User-facing output
			continue
		}

		if amount <= 0 {
			fmt.Println(cli.FormatError("Please enter an amount greater than 0")) //nolint:forbidigo // User-facing output
			continue
		}

		return amount, nil
	}
}

// promptOptionalAmount accepts an empty answer as zero. Used for the cost
// components that many invoices simply don't carry.
func promptOptionalAmount(reader *bufio.Reader, prompt string) (float64, error) {
	for {
		input, err := promptString(reader, prompt)
		if err != nil {
			return 0, err
		}
		if input == "" {
			return 0, nil
		}

		amount, err := strconv.ParseFloat(input, 64)
		if err != nil || amount < 0 {
			fmt.Println(cli.FormatError("Please enter a non-negative amount, or leave empty for 0")) //nolint:forbidigo // User-facing output
			continue
		}

		return amount, nil
	}
}

func promptInt(reader *bufio.Reader, prompt string, minVal, maxVal int) (int, error) {
	for {
		input, err := promptString(reader, prompt)
		if err != nil {
			return 0, err
		}

		value, err := strconv.Atoi(input)
		if err != nil {
			fmt.Println(cli.FormatError("Invalid number. Please try again.")) //nolint:forbidigo // User-facing output
			continue
		}

		if value < minVal || value > maxVal {
			fmt.Println(cli.FormatError(fmt.Sprintf("Number must be between %d and %d.", minVal, maxVal))) //nolint:forbidigo // User-facing output
			continue
		}

		return value, nil
	}
}

func promptRate(reader *bufio.Reader, prompt string) (float64, error) {
	for {
		input, err := promptString(reader, prompt)
		if err != nil {
			return 0, err
		}

		rate, err := strconv.ParseFloat(strings.TrimSuffix(input, "%"), 64)
		if err != nil {
			fmt.Println(cli.FormatError("Please enter a growth rate in percent, e.g. 3 or -1.5")) //nolint:forbidigo // User-facing output
			continue
		}

		return rate, nil
	}
}

func promptDate(reader *bufio.Reader, prompt string) (time.Time, error) {
	for {
		input, err := promptString(reader, prompt)
		if err != nil {
			return time.Time{}, err
		}

		for _, layout := range []string{"2006-01-02", "02/01/2006"} {
			if t, parseErr := time.ParseInLocation(layout, input, time.UTC); parseErr == nil {
				return t, nil
			}
		}

		fmt.Println(cli.FormatError("Please enter a date as 2006-01-02 or 02/01/2006")) //nolint:forbidigo // User-facing output
	}
}

func promptInvoiceStatus(reader *bufio.Reader) (model.InvoiceStatus, error) {
	fmt.Println("\nStatus:")      //nolint:forbidigo // User-facing output
	fmt.Println("  [1] Invoiced") //nolint:forbidigo // User-facing output
	fmt.Println("  [2] Planned")  //nolint:forbidigo // User-facing output
	fmt.Println("  [3] Quoted")   //nolint:forbidigo // User-facing output

	choice, err := promptChoice(reader, "Choice", []string{"1", "2", "3"})
	if err != nil {
		return "", err
	}

	switch choice {
	case "2":
		return model.StatusPlanned, nil
	case "3":
		return model.StatusQuoted, nil
	default:
		return model.StatusInvoiced, nil
	}
}

func promptChargeStatus(reader *bufio.Reader) (model.ChargeStatus, error) {
	fmt.Println("\nStatus:")     //nolint:forbidigo // User-facing output
	fmt.Println("  [1] Paid")    //nolint:forbidigo // User-facing output
	fmt.Println("  [2] Due")     //nolint:forbidigo // User-facing output
	fmt.Println("  [3] Planned") //nolint:forbidigo // User-facing output

	choice, err := promptChoice(reader, "Choice", []string{"1", "2", "3"})
	if err != nil {
		return "", err
	}

	switch choice {
	case "2":
		return model.ChargeDue, nil
	case "3":
		return model.ChargePlanned, nil
	default:
		return model.ChargePaid, nil
	}
}

// parseInvoiceStatusFlag maps a --status flag value onto a billing status.
func parseInvoiceStatusFlag(s string) (model.InvoiceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "invoiced":
		return model.StatusInvoiced, nil
	case "planned":
		return model.StatusPlanned, nil
	case "quoted":
		return model.StatusQuoted, nil
	default:
		return "", fmt.Errorf("invalid status %q (want invoiced, planned or quoted)", s)
	}
}

func parseChargeStatusFlag(s string) (model.ChargeStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "paid":
		return model.ChargePaid, nil
	case "due":
		return model.ChargeDue, nil
	case "planned":
		return model.ChargePlanned, nil
	default:
		return "", fmt.Errorf("invalid status %q (want paid, due or planned)", s)
	}
}

func parseKindFlag(s string) (model.InvoiceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cert", "certification", "certifications":
		return model.KindCertification, nil
	case "other", "service", "services":
		return model.KindOther, nil
	default:
		return "", fmt.Errorf("invalid kind %q (want certification or other)", s)
	}
}
