package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/certiflow/certiflow/internal/cli"
	"github.com/certiflow/certiflow/internal/ledger"
	"github.com/certiflow/certiflow/internal/model"
	"github.com/certiflow/certiflow/internal/report"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List, add or delete invoices without the interactive session",
	}

	cmd.PersistentFlags().StringP("kind", "k", "certification", "invoice kind (certification, other)")

	cmd.AddCommand(invoicesListCmd())
	cmd.AddCommand(invoicesAddCmd())
	cmd.AddCommand(invoicesDeleteCmd())

	return cmd
}

func invoicesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices, optionally filtered",
		RunE:  runInvoicesList,
	}

	cmd.Flags().String("client", "", "filter by client")
	cmd.Flags().String("category", "", "filter by scheme or service type")
	cmd.Flags().String("status", "", "filter by status (invoiced, planned, quoted)")
	cmd.Flags().Bool("monthly", false, "append the monthly rollup")

	return cmd
}

func runInvoicesList(cmd *cobra.Command, _ []string) error {
	session, kind, err := sessionAndKind(cmd)
	if err != nil {
		return err
	}

	filter := ledger.InvoiceFilter{}
	filter.Client, _ = cmd.Flags().GetString("client")
	filter.Category, _ = cmd.Flags().GetString("category")
	if statusFlag, _ := cmd.Flags().GetString("status"); statusFlag != "" {
		status, err := parseInvoiceStatusFlag(statusFlag)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	entries := session.FilterInvoices(kind, filter)
	if len(entries) == 0 {
		fmt.Println(cli.InfoStyle.Render("No invoices match.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.RenderTable(invoiceTableHeader, invoiceTableRows(entries))) //nolint:forbidigo // User-facing output

	if monthly, _ := cmd.Flags().GetBool("monthly"); monthly {
		invoices := make([]model.Invoice, 0, len(entries))
		for _, e := range entries {
			invoices = append(invoices, e.Invoice)
		}
		fmt.Println("\n" + cli.FormatTitle("Monthly"))                                       //nolint:forbidigo // User-facing output
		fmt.Println(cli.RenderTable(monthTableHeader, monthTableRows(report.ByMonthFilled(invoices)))) //nolint:forbidigo // User-facing output
	}

	return nil
}

func invoicesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one invoice and show its margin",
		Long: `Add an invoice from flags and print its gross margin and margin rate.
The session is in-memory; combine with --out to persist the result.`,
		RunE: runInvoicesAdd,
	}

	cmd.Flags().String("date", "", "invoice date (2006-01-02)")
	cmd.Flags().String("client", "", "client name")
	cmd.Flags().String("category", "", "scheme or service type")
	cmd.Flags().String("description", "", "free-form description")
	cmd.Flags().Float64("amount", 0, "invoiced amount")
	cmd.Flags().Float64("mission-fee", 0, "certifier mission fee")
	cmd.Flags().Float64("auditor-cost", 0, "subcontracted auditor cost")
	cmd.Flags().Float64("days", 0, "audit days")
	cmd.Flags().String("status", "invoiced", "billing status (invoiced, planned, quoted)")
	cmd.Flags().String("out", "", "write the updated session to this workbook")

	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runInvoicesAdd(cmd *cobra.Command, _ []string) error {
	session, kind, err := sessionAndKind(cmd)
	if err != nil {
		return err
	}

	dateFlag, _ := cmd.Flags().GetString("date")
	date, err := time.ParseInLocation("2006-01-02", dateFlag, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dateFlag, err)
	}

	statusFlag, _ := cmd.Flags().GetString("status")
	status, err := parseInvoiceStatusFlag(statusFlag)
	if err != nil {
		return err
	}

	inv := model.Invoice{Date: date, Kind: kind, Status: status}
	inv.Client, _ = cmd.Flags().GetString("client")
	inv.Category, _ = cmd.Flags().GetString("category")
	inv.Description, _ = cmd.Flags().GetString("description")
	inv.Amount, _ = cmd.Flags().GetFloat64("amount")
	inv.MissionFee, _ = cmd.Flags().GetFloat64("mission-fee")
	inv.AuditorCost, _ = cmd.Flags().GetFloat64("auditor-cost")
	inv.Days, _ = cmd.Flags().GetFloat64("days")

	if err := session.AddInvoice(inv); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Invoice recorded: %s, margin %s (%s)", //nolint:forbidigo // User-facing output
		money(inv.Amount), money(inv.GrossMargin()), pct(inv.MarginRate()))))

	return writeBack(cmd, session)
}

func invoicesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the invoice at a position",
		RunE:  runInvoicesDelete,
	}

	cmd.Flags().Int("index", 0, "1-based invoice position, as shown by list")
	cmd.Flags().String("out", "", "write the updated session to this workbook")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func runInvoicesDelete(cmd *cobra.Command, _ []string) error {
	session, kind, err := sessionAndKind(cmd)
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("index")
	if err := session.DeleteInvoice(kind, index-1); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Invoice #%d deleted.", index))) //nolint:forbidigo // User-facing output
	return writeBack(cmd, session)
}

func sessionAndKind(cmd *cobra.Command) (*ledger.Session, model.InvoiceKind, error) {
	session, err := loadSession()
	if err != nil {
		return nil, "", err
	}

	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, err := parseKindFlag(kindFlag)
	if err != nil {
		return nil, "", err
	}
	return session, kind, nil
}

// writeBack persists the session when --out is set. The forecast sheet is
// regenerated from the updated data.
func writeBack(cmd *cobra.Command, session *ledger.Session) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return nil
	}

	rows, err := forecastRows(session)
	if err != nil {
		return err
	}
	path, err := exportWorkbookTo(out, session, rows)
	if err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess("Workbook written: " + path)) //nolint:forbidigo // User-facing output
	return nil
}
