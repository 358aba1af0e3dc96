package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/certiflow/certiflow/internal/cli"
	"github.com/certiflow/certiflow/internal/config"
	"github.com/certiflow/certiflow/internal/forecast"
	"github.com/certiflow/certiflow/internal/ledger"
	"github.com/certiflow/certiflow/internal/model"
	"github.com/certiflow/certiflow/internal/report"
)

func flowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flow",
		Short: "Interactive session: records, KPIs and forecast in one loop",
		Long: `Start an interactive session over the loaded data.

From the main menu you can browse the dashboard, manage certification
and service invoices, manage operating charges, work the forecast grid,
and export everything back to a workbook. Changes live for the duration
of the session; export to keep them.`,
		RunE: runFlow,
	}
}

func runFlow(_ *cobra.Command, _ []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	months, rates, err := config.LoadForecast()
	if err != nil {
		return err
	}

	engine, err := forecast.NewEngine(
		forecast.ComputeBaseline(session.Certifications(), session.Services(), session.Charges()),
		rates,
		months,
		forecast.StartMonth(session.Certifications(), session.Services(), time.Now().UTC()),
	)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println(cli.FormatTitle("certiflow")) //nolint:forbidigo // User-facing output

	for {
		fmt.Println("\n  [1] Dashboard")             //nolint:forbidigo // User-facing output
		fmt.Println("  [2] Certifications")          //nolint:forbidigo // User-facing output
		fmt.Println("  [3] Other services")          //nolint:forbidigo // User-facing output
		fmt.Println("  [4] Charges")                 //nolint:forbidigo // User-facing output
		fmt.Println("  [5] Forecast")                //nolint:forbidigo // User-facing output
		fmt.Println("  [6] Export")                  //nolint:forbidigo // User-facing output
		fmt.Println("  [q] Quit")                    //nolint:forbidigo // User-facing output

		choice, err := promptChoice(reader, "Menu", []string{"1", "2", "3", "4", "5", "6", "q"})
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			showDashboard(session)
		case "2":
			err = invoiceMenu(reader, session, model.KindCertification, "Certifications")
		case "3":
			err = invoiceMenu(reader, session, model.KindOther, "Other services")
		case "4":
			err = chargeMenu(reader, session)
		case "5":
			err = forecastMenu(reader, session, engine)
		case "6":
			err = exportMenu(reader, session, engine)
		case "q":
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func showDashboard(session *ledger.Session) {
	d := report.Overview(session.Certifications(), session.Services(), session.Charges())

	content := fmt.Sprintf(
		"Certification revenue  %s\nOther revenue          %s\nTotal revenue          %s\n\n"+
			"Mission fees           %s\nAuditor costs          %s\nMisc charges           %s\nTotal charges          %s\n\n"+
			"Result                 %s\nNet margin             %s",
		money(d.CertRevenue), money(d.OtherRevenue), money(d.TotalRevenue),
		money(d.MissionFees), money(d.AuditorCosts), money(d.MiscCharges), money(d.TotalCharges),
		money(d.Result), pct(d.NetMarginPct),
	)
	fmt.Println(cli.RenderBox("Dashboard", content)) //nolint:forbidigo // User-facing output

	fmt.Printf("\nCertifications: invoiced %s, planned %s\n", //nolint:forbidigo // User-facing output
		money(d.CertByStatus.Invoiced), money(d.CertByStatus.Planned))
	fmt.Printf("Other services: invoiced %s, planned %s\n", //nolint:forbidigo // User-facing output
		money(d.OtherByStatus.Invoiced), money(d.OtherByStatus.Planned))

	all := append(session.Certifications(), session.Services()...)
	if byMonth := report.ByMonthFilled(all); len(byMonth) > 0 {
		fmt.Println("\n" + cli.FormatTitle("Monthly evolution"))                           //nolint:forbidigo // User-facing output
		fmt.Println(cli.RenderTable(monthTableHeader, monthTableRows(byMonth)))            //nolint:forbidigo // User-facing output
	}
}

func invoiceMenu(reader *bufio.Reader, session *ledger.Session, kind model.InvoiceKind, title string) error {
	for {
		entries := session.FilterInvoices(kind, ledger.InvoiceFilter{})
		fmt.Println("\n" + cli.FormatTitle(title)) //nolint:forbidigo // User-facing output
		if len(entries) == 0 {
			fmt.Println(cli.InfoStyle.Render("No invoices recorded.")) //nolint:forbidigo // User-facing output
		} else {
			fmt.Println(cli.RenderTable(invoiceTableHeader, invoiceTableRows(entries))) //nolint:forbidigo // User-facing output
		}

		fmt.Println("\n  [a] Add    [d] Delete    [f] Filter    [b] Back") //nolint:forbidigo // User-facing output
		choice, err := promptChoice(reader, "Action", []string{"a", "d", "f", "b"})
		if err != nil {
			return err
		}

		switch choice {
		case "a":
			if err := addInvoiceInteractive(reader, session, kind); err != nil {
				return err
			}
		case "d":
			if err := deleteInvoiceInteractive(reader, session, kind, entries); err != nil {
				return err
			}
		case "f":
			if err := filterInvoicesInteractive(reader, session, kind); err != nil {
				return err
			}
		case "b":
			return nil
		}
	}
}

func addInvoiceInteractive(reader *bufio.Reader, session *ledger.Session, kind model.InvoiceKind) error {
	date, err := promptDate(reader, "Date")
	if err != nil {
		return err
	}
	client, err := promptString(reader, "Client")
	if err != nil {
		return err
	}
	categoryLabel := "Scheme (e.g. IFS FOOD)"
	if kind == model.KindOther {
		categoryLabel = "Service type (e.g. Training)"
	}
	category, err := promptString(reader, categoryLabel)
	if err != nil {
		return err
	}
	amount, err := promptAmount(reader, "Amount")
	if err != nil {
		return err
	}
	missionFee, err := promptOptionalAmount(reader, "Mission fee (optional)")
	if err != nil {
		return err
	}
	auditorCost, err := promptOptionalAmount(reader, "Auditor cost (optional)")
	if err != nil {
		return err
	}
	days, err := promptOptionalAmount(reader, "Audit days (optional)")
	if err != nil {
		return err
	}
	status, err := promptInvoiceStatus(reader)
	if err != nil {
		return err
	}

	inv := model.Invoice{
		Date:        date,
		Client:      client,
		Category:    category,
		Kind:        kind,
		Status:      status,
		Days:        days,
		Amount:      amount,
		MissionFee:  missionFee,
		AuditorCost: auditorCost,
	}
	if err := session.AddInvoice(inv); err != nil {
		fmt.Println(cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Invoice recorded: %s, margin %s (%s)", //nolint:forbidigo // User-facing output
		money(inv.Amount), money(inv.GrossMargin()), pct(inv.MarginRate()))))
	return nil
}

func deleteInvoiceInteractive(reader *bufio.Reader, session *ledger.Session, kind model.InvoiceKind, entries []ledger.InvoiceEntry) error {
	if len(entries) == 0 {
		fmt.Println(cli.FormatWarning("Nothing to delete.")) //nolint:forbidigo // User-facing output
		return nil
	}

	num, err := promptInt(reader, "Invoice # to delete", 1, len(session.Invoices(kind)))
	if err != nil {
		return err
	}

	ok, err := promptYesNo(reader, fmt.Sprintf("Delete invoice #%d?", num))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := session.DeleteInvoice(kind, num-1); err != nil {
		fmt.Println(cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
		return nil
	}
	fmt.Println(cli.FormatSuccess("Invoice deleted.")) //nolint:forbidigo // User-facing output
	return nil
}

func filterInvoicesInteractive(reader *bufio.Reader, session *ledger.Session, kind model.InvoiceKind) error {
	client, err := promptString(reader, "Client (empty for all)")
	if err != nil {
		return err
	}
	category, err := promptString(reader, "Category (empty for all)")
	if err != nil {
		return err
	}

	entries := session.FilterInvoices(kind, ledger.InvoiceFilter{Client: client, Category: category})
	if len(entries) == 0 {
		fmt.Println(cli.InfoStyle.Render("No invoices match.")) //nolint:forbidigo // User-facing output
		return nil
	}
	fmt.Println(cli.RenderTable(invoiceTableHeader, invoiceTableRows(entries))) //nolint:forbidigo // User-facing output
	return nil
}

func chargeMenu(reader *bufio.Reader, session *ledger.Session) error {
	for {
		entries := session.FilterCharges(ledger.ChargeFilter{})
		fmt.Println("\n" + cli.FormatTitle("Charges")) //nolint:forbidigo // User-facing output
		if len(entries) == 0 {
			fmt.Println(cli.InfoStyle.Render("No charges recorded.")) //nolint:forbidigo // User-facing output
		} else {
			fmt.Println(cli.RenderTable(chargeTableHeader, chargeTableRows(entries))) //nolint:forbidigo // User-facing output
			fmt.Printf("\nMonthly average: %s\n", money(report.ChargesMonthlyAverage(session.Charges()))) //nolint:forbidigo // User-facing output
		}

		fmt.Println("\n  [a] Add    [d] Delete    [b] Back") //nolint:forbidigo // User-facing output
		choice, err := promptChoice(reader, "Action", []string{"a", "d", "b"})
		if err != nil {
			return err
		}

		switch choice {
		case "a":
			if err := addChargeInteractive(reader, session); err != nil {
				return err
			}
		case "d":
			if err := deleteChargeInteractive(reader, session, entries); err != nil {
				return err
			}
		case "b":
			return nil
		}
	}
}

func addChargeInteractive(reader *bufio.Reader, session *ledger.Session) error {
	date, err := promptDate(reader, "Date")
	if err != nil {
		return err
	}
	category, err := promptString(reader, "Category (e.g. Overhead)")
	if err != nil {
		return err
	}
	description, err := promptString(reader, "Description (optional)")
	if err != nil {
		return err
	}
	amount, err := promptAmount(reader, "Amount")
	if err != nil {
		return err
	}
	status, err := promptChargeStatus(reader)
	if err != nil {
		return err
	}

	c := model.Charge{Date: date, Category: category, Description: description, Status: status, Amount: amount}
	if err := session.AddCharge(c); err != nil {
		fmt.Println(cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
		return nil
	}
	fmt.Println(cli.FormatSuccess("Charge recorded.")) //nolint:forbidigo // User-facing output
	return nil
}

func deleteChargeInteractive(reader *bufio.Reader, session *ledger.Session, entries []ledger.ChargeEntry) error {
	if len(entries) == 0 {
		fmt.Println(cli.FormatWarning("Nothing to delete.")) //nolint:forbidigo // User-facing output
		return nil
	}

	num, err := promptInt(reader, "Charge # to delete", 1, len(session.Charges()))
	if err != nil {
		return err
	}

	ok, err := promptYesNo(reader, fmt.Sprintf("Delete charge #%d?", num))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := session.DeleteCharge(num - 1); err != nil {
		fmt.Println(cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
		return nil
	}
	fmt.Println(cli.FormatSuccess("Charge deleted.")) //nolint:forbidigo // User-facing output
	return nil
}

func forecastMenu(reader *bufio.Reader, session *ledger.Session, engine *forecast.Engine) error {
	for {
		rows := engine.Rows()
		fmt.Println("\n" + cli.FormatTitle("Forecast")) //nolint:forbidigo // User-facing output
		fmt.Println(cli.RenderTable(projectionTableHeader, projectionTableRows(rows))) //nolint:forbidigo // User-facing output

		s := engine.Summary()
		fmt.Printf("\nHorizon total: revenue %s, charges %s, result %s, margin %s\n", //nolint:forbidigo // User-facing output
			money(s.TotalRevenue), money(s.TotalCharges), money(s.Result), pct(s.MarginPct))

		fmt.Println("\n  [e] Edit cell    [g] Growth rates    [h] Horizon    [r] Reset    [b] Back") //nolint:forbidigo // User-facing output
		choice, err := promptChoice(reader, "Action", []string{"e", "g", "h", "r", "b"})
		if err != nil {
			return err
		}

		baseline := forecast.ComputeBaseline(session.Certifications(), session.Services(), session.Charges())

		switch choice {
		case "e":
			if err := editProjectionCell(reader, engine); err != nil {
				return err
			}
		case "g":
			certRate, err := promptRate(reader, "Certification growth %/month")
			if err != nil {
				return err
			}
			otherRate, err := promptRate(reader, "Other services growth %/month")
			if err != nil {
				return err
			}
			chargeRate, err := promptRate(reader, "Charges growth %/month")
			if err != nil {
				return err
			}
			engine.SetRates(forecast.Rates{CertRevenue: certRate, OtherRevenue: otherRate, Charges: chargeRate})
			fmt.Println(cli.FormatInfo("Rates stored. Reset or change the horizon to regenerate the grid.")) //nolint:forbidigo // User-facing output
		case "h":
			months, err := promptInt(reader, "Months to project (1-60)", 1, 60)
			if err != nil {
				return err
			}
			regenerated, err := engine.SetHorizon(months, baseline)
			if err != nil {
				fmt.Println(cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
			} else if regenerated {
				fmt.Println(cli.FormatWarning("Grid regenerated; manual edits were discarded.")) //nolint:forbidigo // User-facing output
			}
		case "r":
			engine.Reset(baseline)
			fmt.Println(cli.FormatSuccess("Grid regenerated from current data and rates.")) //nolint:forbidigo // User-facing output
		case "b":
			return nil
		}
	}
}

func editProjectionCell(reader *bufio.Reader, engine *forecast.Engine) error {
	row, err := promptInt(reader, "Row #", 1, engine.Horizon())
	if err != nil {
		return err
	}

	fields := forecast.Fields()
	fmt.Println("\nField:") //nolint:forbidigo // User-facing output
	for i, f := range fields {
		fmt.Printf("  [%d] %s\n", i+1, f) //nolint:forbidigo // User-facing output
	}
	fieldNum, err := promptInt(reader, "Choice", 1, len(fields))
	if err != nil {
		return err
	}

	value, err := promptOptionalAmount(reader, "New value")
	if err != nil {
		return err
	}

	if err := engine.ApplyEdit(row-1, fields[fieldNum-1], value); err != nil {
		fmt.Println(cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
		return nil
	}
	fmt.Println(cli.FormatSuccess("Cell updated; derived columns follow.")) //nolint:forbidigo // User-facing output
	return nil
}

func exportMenu(reader *bufio.Reader, session *ledger.Session, engine *forecast.Engine) error {
	fmt.Println("\n  [1] Workbook (.xlsx)    [2] CSV files    [b] Back") //nolint:forbidigo // User-facing output
	choice, err := promptChoice(reader, "Format", []string{"1", "2", "b"})
	if err != nil {
		return err
	}
	if choice == "b" {
		return nil
	}

	dir, err := promptString(reader, "Output directory (empty for current)")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		path, err := exportWorkbook(session, engine.Rows(), dir)
		if err != nil {
			fmt.Println(cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
			return nil
		}
		fmt.Println(cli.FormatSuccess("Workbook written: " + path)) //nolint:forbidigo // User-facing output
	case "2":
		paths, err := exportCSVs(session, engine.Rows(), dir)
		if err != nil {
			fmt.Println(cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
			return nil
		}
		for _, p := range paths {
			fmt.Println(cli.FormatSuccess("Written: " + p)) //nolint:forbidigo // User-facing output
		}
	}
	return nil
}
