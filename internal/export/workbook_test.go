package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/certiflow/certiflow/internal/forecast"
	"github.com/certiflow/certiflow/internal/ingest"
	"github.com/certiflow/certiflow/internal/ledger"
	"github.com/certiflow/certiflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkbookRoundTrip(t *testing.T) {
	session := ledger.NewSeededSession()
	rows := forecast.Generate(
		forecast.ComputeBaseline(session.Certifications(), session.Services(), session.Charges()),
		forecast.Rates{CertRevenue: 3, OtherRevenue: 2, Charges: 1.5},
		6,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	)

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, WriteWorkbook(path, session.Certifications(), session.Services(), session.Charges(), rows))

	wb, err := ingest.ReadWorkbook(path)
	require.NoError(t, err)
	require.NotNil(t, wb.Certifications, "certification sheet must be recognized on re-import")
	require.NotNil(t, wb.Services)
	require.NotNil(t, wb.Charges)

	certMapping, err := ingest.DetectInvoiceMapping(wb.Certifications.Header, model.KindCertification)
	require.NoError(t, err)
	certs, res, err := ingest.Invoices(*wb.Certifications, certMapping, model.KindCertification)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, certs, len(session.Certifications()))

	for i, want := range session.Certifications() {
		got := certs[i]
		assert.True(t, got.Date.Equal(want.Date), "row %d date", i)
		assert.Equal(t, want.Client, got.Client, "row %d", i)
		assert.Equal(t, want.Status, got.Status, "row %d", i)
		assert.InDelta(t, want.Amount, got.Amount, 0.01, "row %d", i)
		assert.InDelta(t, want.MissionFee, got.MissionFee, 0.01, "row %d", i)
		assert.InDelta(t, want.AuditorCost, got.AuditorCost, 0.01, "row %d", i)
	}

	chargeMapping, err := ingest.DetectChargeMapping(wb.Charges.Header)
	require.NoError(t, err)
	charges, _, err := ingest.Charges(*wb.Charges, chargeMapping)
	require.NoError(t, err)
	require.Len(t, charges, len(session.Charges()))
}

func TestWriteWorkbook_EmptyCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteWorkbook(path, nil, nil, nil, nil))

	// Sheets exist with headers only; re-import finds them but has no rows.
	wb, err := ingest.ReadWorkbook(path)
	require.NoError(t, err)
	require.NotNil(t, wb.Certifications)
	assert.Empty(t, wb.Certifications.Rows)
}
