package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/certiflow/certiflow/internal/cli"
	"github.com/certiflow/certiflow/internal/common"
	"github.com/certiflow/certiflow/internal/config"
	"github.com/certiflow/certiflow/internal/export"
	"github.com/certiflow/certiflow/internal/ingest"
	"github.com/certiflow/certiflow/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <workbook.xlsx> [more workbooks...]",
		Short: "Validate workbooks and convert them to canonical CSV files",
		Long: `Read one or more .xlsx workbooks, detect the record sheets by name,
map their columns onto the canonical fields (French and English headers
are recognized), and report what would be imported.

Without --dry-run, each workbook is converted to one canonical CSV per
recognized sheet next to the original file (or under --csv-dir).`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportWorkbooks,
	}

	cmd.Flags().Bool("dry-run", false, "validate and report without writing anything")
	cmd.Flags().String("csv-dir", "", "directory for the converted CSV files")

	return cmd
}

func runImportWorkbooks(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	csvDir, _ := cmd.Flags().GetString("csv-dir")
	csvDir = config.ExpandPath(csvDir)

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Importing workbooks..."),
		)
	}

	var failed int
	for _, arg := range args {
		path := config.ExpandPath(arg)
		if err := importOneWorkbook(path, csvDir, dryRun); err != nil {
			failed++
			common.LogError(err, "workbook import failed", common.Fields{"path": path})
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %v", path, err))) //nolint:forbidigo // User-facing output
		}
		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d workbooks failed to import", failed, len(args))
	}
	return nil
}

func importOneWorkbook(path, csvDir string, dryRun bool) error {
	wb, err := ingest.ReadWorkbook(path)
	if err != nil {
		return err
	}

	session, err := sessionFromWorkbook(path)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle(filepath.Base(path))) //nolint:forbidigo // User-facing output
	reportSheet(wb.Certifications, "certifications", len(session.Certifications()))
	reportSheet(wb.Services, "services", len(session.Services()))
	reportSheet(wb.Charges, "charges", len(session.Charges()))

	if dryRun {
		fmt.Println(cli.FormatWarning("Dry run mode - no files written")) //nolint:forbidigo // User-facing output
		return nil
	}

	dir := csvDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if err := writeRecordCSV(filepath.Join(dir, base+"-certifications.csv"), func(f *os.File) error {
		return export.WriteInvoices(f, session.Invoices(model.KindCertification))
	}); err != nil {
		return err
	}
	if err := writeRecordCSV(filepath.Join(dir, base+"-services.csv"), func(f *os.File) error {
		return export.WriteInvoices(f, session.Invoices(model.KindOther))
	}); err != nil {
		return err
	}
	return writeRecordCSV(filepath.Join(dir, base+"-charges.csv"), func(f *os.File) error {
		return export.WriteCharges(f, session.Charges())
	})
}

func reportSheet(table *ingest.Table, label string, loaded int) {
	if table == nil {
		fmt.Println(cli.FormatWarning("No " + label + " sheet recognized")) //nolint:forbidigo // User-facing output
		return
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %d rows, %d records loaded", label, len(table.Rows), loaded))) //nolint:forbidigo // User-facing output
}

func writeRecordCSV(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	writeErr := write(f)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	fmt.Println(cli.FormatSuccess("Written: " + path)) //nolint:forbidigo // User-facing output
	return nil
}
