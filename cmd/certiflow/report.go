package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certiflow/certiflow/internal/cli"
	"github.com/certiflow/certiflow/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the KPI dashboard and monthly breakdowns",
		Long: `Compute the session-wide KPIs (revenue, charges, result, net margin),
the invoiced/planned split, and the per-month, per-client and
per-category rollups for the loaded data.`,
		RunE: runReport,
	}

	cmd.Flags().Bool("by-client", false, "include the per-client rollup")
	cmd.Flags().Bool("by-category", false, "include the per-category rollup")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	showDashboard(session)

	all := append(session.Certifications(), session.Services()...)

	if byClient, _ := cmd.Flags().GetBool("by-client"); byClient {
		fmt.Println("\n" + cli.FormatTitle("By client"))                                          //nolint:forbidigo // User-facing output
		fmt.Println(cli.RenderTable(rollupTableHeader("Client"), rollupTableRows(report.ByClient(all)))) //nolint:forbidigo // User-facing output
	}
	if byCategory, _ := cmd.Flags().GetBool("by-category"); byCategory {
		fmt.Println("\n" + cli.FormatTitle("By category"))                                              //nolint:forbidigo // User-facing output
		fmt.Println(cli.RenderTable(rollupTableHeader("Category"), rollupTableRows(report.ByCategory(all)))) //nolint:forbidigo // User-facing output
	}

	if charges := report.ChargesByCategory(session.Charges()); len(charges) > 0 {
		fmt.Println("\n" + cli.FormatTitle("Charges by category")) //nolint:forbidigo // User-facing output
		rows := make([][]string, 0, len(charges))
		for _, c := range charges {
			rows = append(rows, []string{c.Key, money(c.Amount)})
		}
		fmt.Println(cli.RenderTable([]string{"Category", "Total"}, rows)) //nolint:forbidigo // User-facing output
	}

	return nil
}
