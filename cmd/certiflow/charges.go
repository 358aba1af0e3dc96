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

func chargesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charges",
		Short: "List, add or delete operating charges",
	}

	cmd.AddCommand(chargesListCmd())
	cmd.AddCommand(chargesAddCmd())
	cmd.AddCommand(chargesDeleteCmd())

	return cmd
}

func chargesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List charges, optionally filtered",
		RunE:  runChargesList,
	}

	cmd.Flags().String("category", "", "filter by category")
	cmd.Flags().String("status", "", "filter by status (paid, due, planned)")

	return cmd
}

func runChargesList(cmd *cobra.Command, _ []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	filter := ledger.ChargeFilter{}
	filter.Category, _ = cmd.Flags().GetString("category")
	if statusFlag, _ := cmd.Flags().GetString("status"); statusFlag != "" {
		status, err := parseChargeStatusFlag(statusFlag)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	entries := session.FilterCharges(filter)
	if len(entries) == 0 {
		fmt.Println(cli.InfoStyle.Render("No charges match.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.RenderTable(chargeTableHeader, chargeTableRows(entries)))                     //nolint:forbidigo // User-facing output
	fmt.Printf("\nMonthly average: %s\n", money(report.ChargesMonthlyAverage(session.Charges()))) //nolint:forbidigo // User-facing output
	return nil
}

func chargesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one operating charge",
		RunE:  runChargesAdd,
	}

	cmd.Flags().String("date", "", "charge date (2006-01-02)")
	cmd.Flags().String("category", "", "charge category")
	cmd.Flags().String("description", "", "free-form description")
	cmd.Flags().Float64("amount", 0, "charge amount")
	cmd.Flags().String("status", "paid", "payment status (paid, due, planned)")
	cmd.Flags().String("out", "", "write the updated session to this workbook")

	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runChargesAdd(cmd *cobra.Command, _ []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	dateFlag, _ := cmd.Flags().GetString("date")
	date, err := time.ParseInLocation("2006-01-02", dateFlag, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dateFlag, err)
	}

	statusFlag, _ := cmd.Flags().GetString("status")
	status, err := parseChargeStatusFlag(statusFlag)
	if err != nil {
		return err
	}

	c := model.Charge{Date: date, Status: status}
	c.Category, _ = cmd.Flags().GetString("category")
	c.Description, _ = cmd.Flags().GetString("description")
	c.Amount, _ = cmd.Flags().GetFloat64("amount")

	if err := session.AddCharge(c); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Charge recorded: " + money(c.Amount))) //nolint:forbidigo // User-facing output
	return writeBack(cmd, session)
}

func chargesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the charge at a position",
		RunE:  runChargesDelete,
	}

	cmd.Flags().Int("index", 0, "1-based charge position, as shown by list")
	cmd.Flags().String("out", "", "write the updated session to this workbook")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func runChargesDelete(cmd *cobra.Command, _ []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("index")
	if err := session.DeleteCharge(index - 1); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Charge #%d deleted.", index))) //nolint:forbidigo // User-facing output
	return writeBack(cmd, session)
}
