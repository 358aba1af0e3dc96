package ledger

import (
	"testing"
	"time"

	"github.com/certiflow/certiflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice(client string, amount float64) model.Invoice {
	return model.Invoice{
		Date:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Client:      client,
		Category:    "IFS FOOD",
		Kind:        model.KindCertification,
		Status:      model.StatusInvoiced,
		Amount:      amount,
		MissionFee:  100,
		AuditorCost: 400,
	}
}

func TestSession_AppendInvoicesIsAtomic(t *testing.T) {
	s := NewSession()

	good := testInvoice("LIDL", 2000)
	bad := testInvoice("KIWA", -50)

	count, err := s.AppendInvoices(model.KindCertification, []model.Invoice{good, bad})
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, s.Certifications(), "failed batch must not partially mutate the store")

	count, err = s.AppendInvoices(model.KindCertification, []model.Invoice{good})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, s.Certifications(), 1)
}

func TestSession_AppendInvoicesRejectsWrongKind(t *testing.T) {
	s := NewSession()
	inv := testInvoice("LIDL", 2000)
	inv.Kind = model.KindOther

	_, err := s.AppendInvoices(model.KindCertification, []model.Invoice{inv})
	require.Error(t, err)
	assert.Empty(t, s.Certifications())
	assert.Empty(t, s.Services())
}

func TestSession_ReplaceInvoices(t *testing.T) {
	s := NewSession()
	_, err := s.AppendInvoices(model.KindCertification, []model.Invoice{
		testInvoice("LIDL", 2000),
		testInvoice("ITM", 1500),
	})
	require.NoError(t, err)

	count, err := s.ReplaceInvoices(model.KindCertification, []model.Invoice{testInvoice("SGS", 900)})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got := s.Certifications()
	require.Len(t, got, 1)
	assert.Equal(t, "SGS", got[0].Client)

	// A failed replace keeps the existing records.
	_, err = s.ReplaceInvoices(model.KindCertification, []model.Invoice{testInvoice("BAD", -1)})
	require.Error(t, err)
	assert.Len(t, s.Certifications(), 1)
}

func TestSession_InsertionOrderPreserved(t *testing.T) {
	s := NewSession()
	clients := []string{"LIDL", "ITM", "KIWA", "SGS"}
	for _, c := range clients {
		require.NoError(t, s.AddInvoice(testInvoice(c, 1000)))
	}

	got := s.Certifications()
	require.Len(t, got, len(clients))
	for i, c := range clients {
		assert.Equal(t, c, got[i].Client)
	}
}

func TestSession_DeleteInvoiceByCanonicalIndex(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddInvoice(testInvoice("LIDL", 2000)))
	require.NoError(t, s.AddInvoice(testInvoice("ITM", 1500)))
	require.NoError(t, s.AddInvoice(testInvoice("LIDL", 1350)))

	// A filtered view shows only LIDL rows; its second row is canonical index 2.
	view := s.FilterInvoices(model.KindCertification, InvoiceFilter{Client: "LIDL"})
	require.Len(t, view, 2)
	assert.Equal(t, 0, view[0].Index)
	assert.Equal(t, 2, view[1].Index)

	require.NoError(t, s.DeleteInvoice(model.KindCertification, view[1].Index))

	got := s.Certifications()
	require.Len(t, got, 2)
	assert.Equal(t, "LIDL", got[0].Client)
	assert.Equal(t, 2000.0, got[0].Amount)
	assert.Equal(t, "ITM", got[1].Client)
}

func TestSession_DeleteInvoiceBounds(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddInvoice(testInvoice("LIDL", 2000)))

	assert.Error(t, s.DeleteInvoice(model.KindCertification, -1))
	assert.Error(t, s.DeleteInvoice(model.KindCertification, 1))
	assert.Len(t, s.Certifications(), 1)
}

func TestSession_UpdateInvoiceFullReplace(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddInvoice(testInvoice("LIDL", 2000)))

	updated := testInvoice("LIDL", 2100)
	updated.MissionFee = 260
	require.NoError(t, s.UpdateInvoice(model.KindCertification, 0, updated))

	got := s.Certifications()
	assert.Equal(t, 2100.0, got[0].Amount)
	assert.Equal(t, 260.0, got[0].MissionFee)

	// Invalid replacement leaves the stored record untouched.
	bad := updated
	bad.Amount = -5
	require.Error(t, s.UpdateInvoice(model.KindCertification, 0, bad))
	assert.Equal(t, 2100.0, s.Certifications()[0].Amount)
}

func TestSession_AccessorsReturnCopies(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddInvoice(testInvoice("LIDL", 2000)))

	view := s.Certifications()
	view[0].Amount = 9999

	assert.Equal(t, 2000.0, s.Certifications()[0].Amount)
}

func TestSession_ChargeLifecycle(t *testing.T) {
	s := NewSession()
	charge := model.Charge{
		Date:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Category:    "Marketing",
		Description: "Google ads",
		Status:      model.ChargePaid,
		Amount:      300,
	}

	count, err := s.AppendCharges([]model.Charge{charge})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	charge.Amount = 350
	require.NoError(t, s.UpdateCharge(0, charge))
	assert.Equal(t, 350.0, s.Charges()[0].Amount)

	require.NoError(t, s.DeleteCharge(0))
	assert.Empty(t, s.Charges())
	assert.Error(t, s.DeleteCharge(0))
}

func TestNewSeededSession(t *testing.T) {
	s := NewSeededSession()

	assert.Len(t, s.Certifications(), 8)
	assert.Len(t, s.Services(), 6)
	assert.Len(t, s.Charges(), 8)

	for _, inv := range s.Certifications() {
		require.NoError(t, inv.Validate())
	}
	for _, inv := range s.Services() {
		require.NoError(t, inv.Validate())
		assert.Equal(t, model.KindOther, inv.Kind)
	}
	for _, c := range s.Charges() {
		require.NoError(t, c.Validate())
	}
}

func TestSession_DistinctHelpers(t *testing.T) {
	s := NewSeededSession()

	clients := s.InvoiceClients(model.KindCertification)
	assert.Equal(t, []string{"LIDL", "Client A", "Client B", "Client C"}, clients)

	cats := s.ChargeCategories()
	assert.Equal(t, []string{"Overhead", "Marketing", "IT", "Insurance", "Training"}, cats)
}
