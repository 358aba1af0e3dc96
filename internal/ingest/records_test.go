package ingest

import (
	"testing"
	"time"

	"github.com/certiflow/certiflow/internal/common"
	"github.com/certiflow/certiflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func certTable(rows ...[]string) (Table, Mapping) {
	t := Table{
		Header: []string{"Date", "Client", "Référentiel", "Durée", "Montant", "Frais_Mission", "Cout_Auditeur", "Statut"},
		Rows:   rows,
	}
	m := Mapping{
		FieldDate:        0,
		FieldClient:      1,
		FieldCategory:    2,
		FieldDays:        3,
		FieldAmount:      4,
		FieldMissionFee:  5,
		FieldAuditorCost: 6,
		FieldStatus:      7,
	}
	return t, m
}

func TestInvoices_ParsesRows(t *testing.T) {
	tbl, m := certTable(
		[]string{"2025-01-31", "LIDL", "IFS FOOD", "1.5", "2000", "250", "800", "Invoiced"},
		[]string{"15/02/2025", "Client A", "BRC FOOD", "2", "2 200,50 €", "180", "900", "Prévu"},
	)

	invoices, res, err := Invoices(tbl, m, model.KindCertification)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, 0, res.Skipped)

	first := invoices[0]
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "LIDL", first.Client)
	assert.Equal(t, "IFS FOOD", first.Category)
	assert.Equal(t, model.KindCertification, first.Kind)
	assert.Equal(t, model.StatusInvoiced, first.Status)
	assert.Equal(t, 1.5, first.Days)
	assert.Equal(t, 2000.0, first.Amount)

	second := invoices[1]
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), second.Date)
	assert.Equal(t, 2200.50, second.Amount, "currency symbol, space and decimal comma are tolerated")
	assert.Equal(t, model.StatusPlanned, second.Status)
}

func TestInvoices_SkipsInvalidAmountRows(t *testing.T) {
	tbl, m := certTable(
		[]string{"2025-01-31", "LIDL", "IFS FOOD", "1", "2000", "0", "0", "Invoiced"},
		[]string{"2025-02-28", "ITM", "IFS FOOD", "1", "0", "0", "0", "Invoiced"},      // zero amount
		[]string{"2025-03-31", "KIWA", "IFS FOOD", "1", "-500", "0", "0", "Invoiced"}, // negative amount
		[]string{"2025-04-30", "SGS", "IFS FOOD", "1", "n/a", "0", "0", "Invoiced"},   // unparsable
		[]string{"", "", "", "", "", "", "", ""},                                      // blank line
	)

	invoices, res, err := Invoices(tbl, m, model.KindCertification)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "LIDL", invoices[0].Client)
	assert.Equal(t, 4, res.Skipped)
}

func TestInvoices_SkipsUnparsableDates(t *testing.T) {
	tbl, m := certTable(
		[]string{"soon", "LIDL", "IFS FOOD", "1", "2000", "0", "0", "Invoiced"},
	)

	invoices, res, err := Invoices(tbl, m, model.KindCertification)
	require.NoError(t, err)
	assert.Empty(t, invoices)
	assert.Equal(t, 1, res.Skipped)
}

func TestInvoices_EmptyTable(t *testing.T) {
	tbl, m := certTable()
	_, _, err := Invoices(tbl, m, model.KindCertification)
	assert.ErrorIs(t, err, common.ErrEmptyTable)
}

func TestInvoices_StatusDefaults(t *testing.T) {
	tbl, m := certTable(
		[]string{"2025-01-31", "LIDL", "IFS FOOD", "1", "1000", "0", "0", ""},
		[]string{"2025-02-28", "ITM", "IFS FOOD", "1", "1000", "0", "0", "Facturé"},
		[]string{"2025-03-31", "KIWA", "IFS FOOD", "1", "1000", "0", "0", "Devis"},
	)

	invoices, _, err := Invoices(tbl, m, model.KindCertification)
	require.NoError(t, err)
	require.Len(t, invoices, 3)
	assert.Equal(t, model.StatusInvoiced, invoices[0].Status, "blank defaults to Invoiced")
	assert.Equal(t, model.StatusInvoiced, invoices[1].Status, "French spelling accepted")
	assert.Equal(t, model.StatusQuoted, invoices[2].Status)
}

func TestInvoices_MissingOptionalColumns(t *testing.T) {
	tbl := Table{
		Header: []string{"Date", "Client", "Montant"},
		Rows: [][]string{
			{"2025-01-31", "LIDL", "1500"},
		},
	}
	m := Mapping{FieldDate: 0, FieldClient: 1, FieldAmount: 2}

	invoices, _, err := Invoices(tbl, m, model.KindOther)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, 0.0, invoices[0].MissionFee, "absent fee defaults to 0")
	assert.Equal(t, 0.0, invoices[0].AuditorCost)
	assert.Equal(t, model.StatusInvoiced, invoices[0].Status)
}

func TestCharges_ParsesRows(t *testing.T) {
	tbl := Table{
		Header: []string{"Date", "Catégorie", "Description", "Montant", "Statut"},
		Rows: [][]string{
			{"2025-01-31", "Overhead", "Office rent", "800", "Payé"},
			{"2025-02-28", "Marketing", "Google ads", "300", "Due"},
			{"2025-03-31", "IT", "Cloud", "0", "Paid"}, // zero amount skipped
		},
	}
	m := Mapping{FieldDate: 0, FieldCategory: 1, FieldDescription: 2, FieldAmount: 3, FieldStatus: 4}

	charges, res, err := Charges(tbl, m)
	require.NoError(t, err)
	require.Len(t, charges, 2)
	assert.Equal(t, 1, res.Skipped)

	assert.Equal(t, model.ChargePaid, charges[0].Status)
	assert.Equal(t, model.ChargeDue, charges[1].Status)
	assert.Equal(t, "Office rent", charges[0].Description)
}
