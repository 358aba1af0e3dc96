package report

import (
	"testing"
	"time"

	"github.com/certiflow/certiflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inv(date time.Time, client string, amount, fee, cost float64) model.Invoice {
	return model.Invoice{
		Date:        date,
		Client:      client,
		Category:    "IFS FOOD",
		Kind:        model.KindCertification,
		Status:      model.StatusInvoiced,
		Amount:      amount,
		MissionFee:  fee,
		AuditorCost: cost,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestByMonth_BucketsIgnoreDay(t *testing.T) {
	invoices := []model.Invoice{
		inv(day(2025, 1, 3), "LIDL", 1000, 100, 300),
		inv(day(2025, 1, 28), "ITM", 500, 50, 100),
		inv(day(2025, 3, 15), "LIDL", 2000, 200, 700),
	}

	months := ByMonth(invoices)
	require.Len(t, months, 2, "sparse: february must not appear")

	jan := months[0]
	assert.Equal(t, day(2025, 1, 1), jan.Month)
	assert.Equal(t, 1500.0, jan.Amount)
	assert.Equal(t, 150.0, jan.MissionFee)
	assert.Equal(t, 400.0, jan.AuditorCost)
	assert.Equal(t, 2, jan.Count)

	mar := months[1]
	assert.Equal(t, day(2025, 3, 1), mar.Month)
	assert.Equal(t, 2000.0, mar.Amount)
}

func TestByMonth_ChronologicalOrder(t *testing.T) {
	invoices := []model.Invoice{
		inv(day(2025, 6, 1), "A", 100, 0, 0),
		inv(day(2024, 12, 1), "B", 100, 0, 0),
		inv(day(2025, 2, 1), "C", 100, 0, 0),
	}

	months := ByMonth(invoices)
	require.Len(t, months, 3)
	assert.True(t, months[0].Month.Before(months[1].Month))
	assert.True(t, months[1].Month.Before(months[2].Month))
}

func TestByMonthFilled_BackfillsGaps(t *testing.T) {
	invoices := []model.Invoice{
		inv(day(2025, 1, 10), "A", 100, 0, 0),
		inv(day(2025, 4, 10), "B", 400, 0, 0),
	}

	months := ByMonthFilled(invoices)
	require.Len(t, months, 4)
	assert.Equal(t, 100.0, months[0].Amount)
	assert.Equal(t, 0.0, months[1].Amount)
	assert.Equal(t, 0.0, months[2].Amount)
	assert.Equal(t, 400.0, months[3].Amount)
	assert.Equal(t, day(2025, 2, 1), months[1].Month)
	assert.Equal(t, day(2025, 3, 1), months[2].Month)
}

func TestByClient_MarginFromComponentSums(t *testing.T) {
	// Per-row rates round to one decimal; the grouped margin must still be
	// the exact subtraction of the component sums.
	invoices := []model.Invoice{
		inv(day(2025, 1, 1), "LIDL", 1000.10, 333.33, 333.33),
		inv(day(2025, 2, 1), "LIDL", 999.90, 333.27, 333.37),
		inv(day(2025, 2, 1), "ITM", 500, 100, 100),
	}

	rollups := ByClient(invoices)
	require.Len(t, rollups, 2)

	lidl := rollups[0]
	assert.Equal(t, "LIDL", lidl.Key)
	assert.Equal(t, 2, lidl.Count)
	wantMargin := (1000.10 + 999.90) - (333.33 + 333.27) - (333.33 + 333.37)
	assert.Equal(t, wantMargin, lidl.GrossMargin)
	assert.Equal(t, lidl.Amount-lidl.MissionFee-lidl.AuditorCost, lidl.GrossMargin)
}

func TestRollup_RateZeroAmountPolicy(t *testing.T) {
	r := Rollup{Key: "empty", Amount: 0, MissionFee: 50, AuditorCost: 20, GrossMargin: -70}
	assert.Equal(t, 0.0, r.Rate())

	r = Rollup{Key: "half", Amount: 2000, GrossMargin: 950}
	assert.Equal(t, 47.5, r.Rate())
}

func TestMonthlyAverages_DistinctMonthsDenominator(t *testing.T) {
	// January and April have activity, February/March do not. The average
	// divides by 2 (months present), not 4 (calendar span).
	invoices := []model.Invoice{
		inv(day(2025, 1, 5), "A", 1000, 100, 200),
		inv(day(2025, 1, 20), "B", 2000, 300, 400),
		inv(day(2025, 4, 2), "C", 3000, 200, 600),
	}

	avg := MonthlyAverages(invoices)
	assert.Equal(t, 2, avg.Months)
	assert.Equal(t, 3000.0, avg.Amount)
	assert.Equal(t, 300.0, avg.MissionFee)
	assert.Equal(t, 600.0, avg.AuditorCost)
}

func TestMonthlyAverages_Empty(t *testing.T) {
	avg := MonthlyAverages(nil)
	assert.Equal(t, 0, avg.Months)
	assert.Equal(t, 0.0, avg.Amount)
	assert.Equal(t, 0.0, avg.MissionFee)
	assert.Equal(t, 0.0, avg.AuditorCost)
}

func TestChargesAggregation(t *testing.T) {
	charges := []model.Charge{
		{Date: day(2025, 1, 5), Category: "Overhead", Status: model.ChargePaid, Amount: 800},
		{Date: day(2025, 1, 25), Category: "Marketing", Status: model.ChargePaid, Amount: 300},
		{Date: day(2025, 3, 5), Category: "Overhead", Status: model.ChargeDue, Amount: 200},
	}

	months := ChargesByMonth(charges)
	require.Len(t, months, 2)
	assert.Equal(t, 1100.0, months[0].Amount)
	assert.Equal(t, 200.0, months[1].Amount)

	assert.Equal(t, 650.0, ChargesMonthlyAverage(charges))

	cats := ChargesByCategory(charges)
	require.Len(t, cats, 2)
	assert.Equal(t, "Overhead", cats[0].Key)
	assert.Equal(t, 1000.0, cats[0].Amount)
	assert.Equal(t, 2, cats[0].Count)
}

func TestOverview(t *testing.T) {
	certs := []model.Invoice{
		inv(day(2025, 1, 1), "LIDL", 2000, 250, 800),
		inv(day(2025, 2, 1), "ITM", 1000, 100, 400),
	}
	certs[1].Status = model.StatusPlanned

	services := []model.Invoice{
		{Date: day(2025, 1, 1), Client: "KIWA", Category: "Training", Kind: model.KindOther,
			Status: model.StatusInvoiced, Amount: 1200, MissionFee: 100, AuditorCost: 400},
		{Date: day(2025, 2, 1), Client: "SGS", Category: "Consulting", Kind: model.KindOther,
			Status: model.StatusQuoted, Amount: 500},
	}

	charges := []model.Charge{
		{Date: day(2025, 1, 5), Category: "Overhead", Status: model.ChargePaid, Amount: 800},
	}

	d := Overview(certs, services, charges)

	assert.Equal(t, 3000.0, d.CertRevenue)
	assert.Equal(t, 1700.0, d.OtherRevenue)
	assert.Equal(t, 4700.0, d.TotalRevenue)
	assert.Equal(t, 450.0, d.MissionFees)
	assert.Equal(t, 1600.0, d.AuditorCosts)
	assert.Equal(t, 800.0, d.MiscCharges)
	assert.Equal(t, 2850.0, d.TotalCharges)
	assert.Equal(t, 1850.0, d.Result)
	assert.Equal(t, model.Round1(1850.0/4700.0*100), d.NetMarginPct)

	assert.Equal(t, 2000.0, d.CertByStatus.Invoiced)
	assert.Equal(t, 1000.0, d.CertByStatus.Planned)
	// Quoted revenue stays out of the split.
	assert.Equal(t, 1200.0, d.OtherByStatus.Invoiced)
	assert.Equal(t, 0.0, d.OtherByStatus.Planned)
}

func TestOverview_ZeroRevenue(t *testing.T) {
	d := Overview(nil, nil, []model.Charge{
		{Date: day(2025, 1, 5), Category: "Overhead", Status: model.ChargePaid, Amount: 100},
	})
	assert.Equal(t, 0.0, d.NetMarginPct, "zero revenue reports 0, not NaN")
	assert.Equal(t, -100.0, d.Result)
}
