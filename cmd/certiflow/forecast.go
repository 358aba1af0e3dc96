package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/certiflow/certiflow/internal/cli"
	"github.com/certiflow/certiflow/internal/config"
	"github.com/certiflow/certiflow/internal/export"
	"github.com/certiflow/certiflow/internal/forecast"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project the coming months from the historical baseline",
		Long: `Generate a month-by-month projection from the loaded data. Each revenue
line compounds under its own growth rate; mission fees, auditor costs
and misc charges share the charges rate.

Rates and horizon come from flags, config, or the built-in defaults.`,
		RunE: runForecast,
	}

	cmd.Flags().IntP("months", "m", 0, "months to project (default: forecast.months config)")
	cmd.Flags().Float64("growth-cert", 0, "certification revenue growth, %/month")
	cmd.Flags().Float64("growth-services", 0, "other services growth, %/month")
	cmd.Flags().Float64("growth-charges", 0, "charges growth, %/month")
	cmd.Flags().String("csv", "", "also write the projection to this CSV file")

	return cmd
}

func runForecast(cmd *cobra.Command, _ []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	// Flag overrides layer on top of the configured defaults.
	if cmd.Flags().Changed("months") {
		months, _ := cmd.Flags().GetInt("months")
		viper.Set(config.KeyForecastMonths, months)
	}
	if cmd.Flags().Changed("growth-cert") {
		rate, _ := cmd.Flags().GetFloat64("growth-cert")
		viper.Set(config.KeyGrowthCerts, rate)
	}
	if cmd.Flags().Changed("growth-services") {
		rate, _ := cmd.Flags().GetFloat64("growth-services")
		viper.Set(config.KeyGrowthServices, rate)
	}
	if cmd.Flags().Changed("growth-charges") {
		rate, _ := cmd.Flags().GetFloat64("growth-charges")
		viper.Set(config.KeyGrowthCharges, rate)
	}

	months, rates, err := config.LoadForecast()
	if err != nil {
		return err
	}

	rows := forecast.Generate(
		forecast.ComputeBaseline(session.Certifications(), session.Services(), session.Charges()),
		rates,
		months,
		forecast.StartMonth(session.Certifications(), session.Services(), time.Now().UTC()),
	)

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Forecast, next %d months", months)))  //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderTable(projectionTableHeader, projectionTableRows(rows))) //nolint:forbidigo // User-facing output

	s := forecast.Summarize(rows)
	fmt.Printf("\nHorizon total: revenue %s, charges %s, result %s, margin %s\n", //nolint:forbidigo // User-facing output
		money(s.TotalRevenue), money(s.TotalCharges), money(s.Result), pct(s.MarginPct))

	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		csvPath = config.ExpandPath(csvPath)
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", csvPath, err)
		}
		writeErr := export.WriteProjection(f, rows)
		closeErr := f.Close()
		if writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", csvPath, writeErr)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close %s: %w", csvPath, closeErr)
		}
		fmt.Println(cli.FormatSuccess("Projection written: " + csvPath)) //nolint:forbidigo // User-facing output
	}

	return nil
}
