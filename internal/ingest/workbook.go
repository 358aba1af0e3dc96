package ingest

import (
	"fmt"
	"strings"

	"github.com/certiflow/certiflow/internal/common"
	"github.com/xuri/excelize/v2"
)

// Workbook holds the raw tables found in an imported spreadsheet, one per
// record kind. A nil table means the corresponding sheet was not present.
type Workbook struct {
	Certifications *Table
	Services       *Table
	Charges        *Table
}

// Sheet name fragments recognized per record kind, lowercase. The first
// sheet matching a fragment wins. Covers the historical workbook layout
// ("Facturation-Certif", "Facturation-Autres", "FRAIS DIVERS") and plain
// English names.
var (
	certSheetHints    = []string{"certif"}
	serviceSheetHints = []string{"autre", "other", "service"}
	chargeSheetHints  = []string{"frais", "divers", "charge", "expense"}
)

// ReadWorkbook opens an .xlsx workbook and extracts the recognizable record
// sheets. Returns ErrNoSheets when none of the sheet names match.
func ReadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, sheet := range f.GetSheetList() {
		name := strings.ToLower(sheet)
		switch {
		case wb.Certifications == nil && matchesAny(name, certSheetHints):
			if wb.Certifications, err = readSheet(f, sheet); err != nil {
				return nil, err
			}
		case wb.Services == nil && matchesAny(name, serviceSheetHints):
			if wb.Services, err = readSheet(f, sheet); err != nil {
				return nil, err
			}
		case wb.Charges == nil && matchesAny(name, chargeSheetHints):
			if wb.Charges, err = readSheet(f, sheet); err != nil {
				return nil, err
			}
		}
	}

	if wb.Certifications == nil && wb.Services == nil && wb.Charges == nil {
		return nil, fmt.Errorf("%s: %w", path, common.ErrNoSheets)
	}
	return wb, nil
}

func matchesAny(name string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(name, h) {
			return true
		}
	}
	return false
}

// readSheet loads one sheet as a table. The header is the first row with at
// least two non-empty cells; anything above it (titles, spacer rows) is
// dropped, as are fully blank leading rows below it.
func readSheet(f *excelize.File, sheet string) (*Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	headerIdx := -1
	for i, row := range rows {
		if countFilled(row) >= 2 {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return &Table{}, nil
	}

	return &Table{
		Header: rows[headerIdx],
		Rows:   rows[headerIdx+1:],
	}, nil
}

func countFilled(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}
