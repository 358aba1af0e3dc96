package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/certiflow/certiflow/internal/forecast"
	"github.com/certiflow/certiflow/internal/ingest"
	"github.com/certiflow/certiflow/internal/ledger"
	"github.com/certiflow/certiflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInvoices_Format(t *testing.T) {
	invoices := []model.Invoice{
		{
			Date:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			Client:      "LIDL",
			Category:    "IFS FOOD",
			Kind:        model.KindCertification,
			Status:      model.StatusInvoiced,
			Days:        1.5,
			Amount:      2000,
			MissionFee:  250.50,
			AuditorCost: 800,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInvoices(&buf, invoices))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,client,category,description,days,amount,missionFee,auditorCost,status", lines[0])
	assert.Equal(t, "2025-01-31,LIDL,IFS FOOD,,1.5,2000,250.5,800,Invoiced", lines[1])
}

func TestWriteCharges_Format(t *testing.T) {
	charges := []model.Charge{
		{
			Date:        time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			Category:    "Marketing",
			Description: "Google ads",
			Status:      model.ChargeDue,
			Amount:      300,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCharges(&buf, charges))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,category,description,amount,status", lines[0])
	assert.Equal(t, "2025-02-28,Marketing,Google ads,300,Due", lines[1])
}

func TestWriteProjection_DerivedColumns(t *testing.T) {
	rows := []forecast.Row{
		{
			Month:        time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			CertRevenue:  2000,
			OtherRevenue: 1000,
			MissionFees:  300,
			AuditorCosts: 900,
			MiscCharges:  300,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProjection(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "month,certRevenue,otherRevenue,missionFees,auditorCosts,miscCharges,totalRevenue,totalCharges,result,marginPct", lines[0])
	assert.Equal(t, "September 2025,2000,1000,300,900,300,3000,1500,1500,50", lines[1])
}

func TestInvoiceCSVRoundTrip(t *testing.T) {
	session := ledger.NewSeededSession()
	original := session.Certifications()

	var buf bytes.Buffer
	require.NoError(t, WriteInvoices(&buf, original))

	table, err := ingest.ReadCSV(&buf)
	require.NoError(t, err)

	mapping, err := ingest.DetectInvoiceMapping(table.Header, model.KindCertification)
	require.NoError(t, err)

	reimported, res, err := ingest.Invoices(*table, mapping, model.KindCertification)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, reimported, len(original))

	for i, want := range original {
		got := reimported[i]
		assert.True(t, got.Date.Equal(want.Date), "row %d date", i)
		assert.Equal(t, want.Client, got.Client, "row %d", i)
		assert.Equal(t, want.Category, got.Category, "row %d", i)
		assert.Equal(t, want.Status, got.Status, "row %d", i)
		assert.InDelta(t, want.Amount, got.Amount, 0.01, "row %d", i)
		assert.InDelta(t, want.MissionFee, got.MissionFee, 0.01, "row %d", i)
		assert.InDelta(t, want.AuditorCost, got.AuditorCost, 0.01, "row %d", i)
		assert.InDelta(t, want.Days, got.Days, 0.01, "row %d", i)
	}
}

func TestChargeCSVRoundTrip(t *testing.T) {
	session := ledger.NewSeededSession()
	original := session.Charges()

	var buf bytes.Buffer
	require.NoError(t, WriteCharges(&buf, original))

	table, err := ingest.ReadCSV(&buf)
	require.NoError(t, err)

	mapping, err := ingest.DetectChargeMapping(table.Header)
	require.NoError(t, err)

	reimported, _, err := ingest.Charges(*table, mapping)
	require.NoError(t, err)
	require.Len(t, reimported, len(original))

	for i, want := range original {
		got := reimported[i]
		assert.True(t, got.Date.Equal(want.Date), "row %d date", i)
		assert.Equal(t, want.Category, got.Category, "row %d", i)
		assert.Equal(t, want.Description, got.Description, "row %d", i)
		assert.Equal(t, want.Status, got.Status, "row %d", i)
		assert.InDelta(t, want.Amount, got.Amount, 0.01, "row %d", i)
	}
}
