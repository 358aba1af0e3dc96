package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/certiflow/certiflow/internal/cli"
	"github.com/certiflow/certiflow/internal/config"
	"github.com/certiflow/certiflow/internal/export"
	"github.com/certiflow/certiflow/internal/forecast"
	"github.com/certiflow/certiflow/internal/ledger"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded data to a workbook or CSV files",
		Long: `Export the loaded session as an .xlsx workbook (one sheet per record
kind plus the forecast) or as one CSV file per collection. Exported
workbooks re-import without configuration.`,
		RunE: runExport,
	}

	cmd.Flags().String("format", "xlsx", "output format (xlsx, csv)")
	cmd.Flags().StringP("dir", "o", "", "output directory (default: export.dir config)")

	_ = viper.BindPFlag("export.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag(config.KeyExportDir, cmd.Flags().Lookup("dir"))

	return cmd
}

func runExport(_ *cobra.Command, _ []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	rows, err := forecastRows(session)
	if err != nil {
		return err
	}

	dir := config.ExpandPath(viper.GetString(config.KeyExportDir))

	switch format := viper.GetString("export.format"); format {
	case "xlsx":
		path, err := exportWorkbook(session, rows, dir)
		if err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("Workbook written: " + path)) //nolint:forbidigo // User-facing output
	case "csv":
		paths, err := exportCSVs(session, rows, dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(cli.FormatSuccess("Written: " + p)) //nolint:forbidigo // User-facing output
		}
	default:
		return fmt.Errorf("invalid export format %q (want xlsx or csv)", format)
	}

	return nil
}

// forecastRows generates the projection for the session under the configured
// horizon and rates.
func forecastRows(session *ledger.Session) ([]forecast.Row, error) {
	months, rates, err := config.LoadForecast()
	if err != nil {
		return nil, err
	}
	return forecast.Generate(
		forecast.ComputeBaseline(session.Certifications(), session.Services(), session.Charges()),
		rates,
		months,
		forecast.StartMonth(session.Certifications(), session.Services(), time.Now().UTC()),
	), nil
}

func exportWorkbookTo(path string, session *ledger.Session, rows []forecast.Row) (string, error) {
	path = config.ExpandPath(path)
	err := export.WriteWorkbook(path, session.Certifications(), session.Services(), session.Charges(), rows)
	if err != nil {
		return "", fmt.Errorf("failed to export workbook: %w", err)
	}
	return path, nil
}

func exportWorkbook(session *ledger.Session, rows []forecast.Row, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	return exportWorkbookTo(filepath.Join(dir, "certiflow.xlsx"), session, rows)
}

func exportCSVs(session *ledger.Session, rows []forecast.Row, dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	files := []struct {
		write func(f *os.File) error
		name  string
	}{
		{name: "certifications.csv", write: func(f *os.File) error { return export.WriteInvoices(f, session.Certifications()) }},
		{name: "services.csv", write: func(f *os.File) error { return export.WriteInvoices(f, session.Services()) }},
		{name: "charges.csv", write: func(f *os.File) error { return export.WriteCharges(f, session.Charges()) }},
		{name: "forecast.csv", write: func(f *os.File) error { return export.WriteProjection(f, rows) }},
	}

	paths := make([]string, 0, len(files))
	for _, target := range files {
		path := filepath.Join(dir, target.name)
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		writeErr := target.write(f)
		closeErr := f.Close()
		if writeErr != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, writeErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
