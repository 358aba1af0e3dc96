package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/certiflow/certiflow/internal/common"
)

// ReadCSV loads a comma-delimited table: first row is the header, the rest
// are data rows. Used to re-ingest this tool's own exports.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are handled by the mapper

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, common.ErrEmptyTable
	}

	return &Table{
		Header: records[0],
		Rows:   records[1:],
	}, nil
}
