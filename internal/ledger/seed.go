package ledger

import (
	"time"

	"github.com/certiflow/certiflow/internal/model"
)

// NewSeededSession creates a session preloaded with the demo dataset, used
// when no workbook is imported. The figures cover the current business year
// and exercise every status.
func NewSeededSession() *Session {
	s := NewSession()
	s.certifications = seedCertifications()
	s.services = seedServices()
	s.charges = seedCharges()
	return s
}

func seedCertifications() []model.Invoice {
	rows := []struct {
		month    time.Month
		client   string
		scheme   string
		days     float64
		amount   float64
		fee      float64
		cost     float64
		invoiced bool
	}{
		{time.January, "LIDL", "IFS FOOD", 1.5, 2000, 250, 800, true},
		{time.February, "Client A", "BRC FOOD", 2, 2200, 180, 900, true},
		{time.March, "LIDL", "IFS FOOD", 1, 1350, 200, 600, true},
		{time.April, "Client B", "IFS LOGISTICS", 1.5, 1800, 150, 750, true},
		{time.May, "LIDL", "IFS FOOD", 1.5, 2000, 220, 800, true},
		{time.June, "Client C", "BRC FOOD", 2, 2400, 300, 1000, false},
		{time.July, "Client A", "IFS FOOD", 1, 1350, 180, 600, false},
		{time.August, "LIDL", "IFS FOOD", 1.5, 2000, 240, 800, false},
	}

	out := make([]model.Invoice, 0, len(rows))
	for _, r := range rows {
		status := model.StatusPlanned
		if r.invoiced {
			status = model.StatusInvoiced
		}
		out = append(out, model.Invoice{
			Date:        seedDate(r.month),
			Client:      r.client,
			Category:    r.scheme,
			Kind:        model.KindCertification,
			Status:      status,
			Days:        r.days,
			Amount:      r.amount,
			MissionFee:  r.fee,
			AuditorCost: r.cost,
		})
	}
	return out
}

func seedServices() []model.Invoice {
	rows := []struct {
		month    time.Month
		service  string
		client   string
		desc     string
		amount   float64
		fee      float64
		cost     float64
		invoiced bool
	}{
		{time.January, "Training", "ITM", "IFS Food", 1200, 100, 400, true},
		{time.February, "Consulting", "Client D", "Compliance work", 1500, 150, 600, true},
		{time.March, "Auditor loan", "KIWA", "1 day audit", 750, 80, 500, true},
		{time.April, "Training", "Client E", "BRC", 1000, 120, 350, true},
		{time.May, "Consulting", "LIDL", "Process optimization", 1800, 200, 700, false},
		{time.June, "Auditor loan", "SGS", "1.5 day audit", 1125, 100, 750, false},
	}

	out := make([]model.Invoice, 0, len(rows))
	for _, r := range rows {
		status := model.StatusPlanned
		if r.invoiced {
			status = model.StatusInvoiced
		}
		out = append(out, model.Invoice{
			Date:        seedDate(r.month),
			Client:      r.client,
			Category:    r.service,
			Description: r.desc,
			Kind:        model.KindOther,
			Status:      status,
			Amount:      r.amount,
			MissionFee:  r.fee,
			AuditorCost: r.cost,
		})
	}
	return out
}

func seedCharges() []model.Charge {
	rows := []struct {
		month    time.Month
		category string
		desc     string
		amount   float64
		paid     bool
	}{
		{time.January, "Overhead", "Office rent", 800, true},
		{time.February, "Marketing", "Google ads", 300, true},
		{time.March, "IT", "Software subscription", 150, true},
		{time.April, "Insurance", "Professional liability", 450, true},
		{time.May, "Overhead", "Supplies", 200, true},
		{time.June, "Training", "Continuing education", 500, true},
		{time.July, "IT", "Cloud hosting", 180, false},
		{time.August, "Marketing", "LinkedIn ads", 250, false},
	}

	out := make([]model.Charge, 0, len(rows))
	for _, r := range rows {
		status := model.ChargePlanned
		if r.paid {
			status = model.ChargePaid
		}
		out = append(out, model.Charge{
			Date:        seedDate(r.month),
			Category:    r.category,
			Description: r.desc,
			Status:      status,
			Amount:      r.amount,
		})
	}
	return out
}

// seedDate places each seed record at the end of its month in the current
// seed year, one record per month.
func seedDate(m time.Month) time.Time {
	return time.Date(seedYear, m+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

const seedYear = 2025
