// Package forecast derives historical monthly baselines and projects them
// forward under independent compound growth rates. It owns the editable
// projection grid: base fields may be overwritten cell by cell while every
// derived total is recomputed on read, never stored.
package forecast

import (
	"math"
	"time"

	"github.com/certiflow/certiflow/internal/model"
	"github.com/certiflow/certiflow/internal/report"
)

// Baseline holds the historical monthly averages seeding a projection.
// All statuses count: planned work is as informative a signal as billed work.
type Baseline struct {
	CertRevenue      float64
	OtherRevenue     float64
	CertMissionFee   float64
	OtherMissionFee  float64
	CertAuditorCost  float64
	OtherAuditorCost float64
	MiscCharges      float64
}

// ComputeBaseline derives the monthly averages from the historical records,
// using the aggregator's distinct-months-present denominator.
func ComputeBaseline(certifications, services []model.Invoice, charges []model.Charge) Baseline {
	cert := report.MonthlyAverages(certifications)
	other := report.MonthlyAverages(services)
	return Baseline{
		CertRevenue:      cert.Amount,
		OtherRevenue:     other.Amount,
		CertMissionFee:   cert.MissionFee,
		OtherMissionFee:  other.MissionFee,
		CertAuditorCost:  cert.AuditorCost,
		OtherAuditorCost: other.AuditorCost,
		MiscCharges:      report.ChargesMonthlyAverage(charges),
	}
}

// Rates are compound growth percentages per month. Certification and other
// revenue grow under their own rates; mission fees, auditor costs and misc
// charges share the single charges rate. Negative rates are valid.
type Rates struct {
	CertRevenue  float64
	OtherRevenue float64
	Charges      float64
}

// Field names one of the five editable cells of a projection row.
type Field string

const (
	// FieldCertRevenue is the projected certification revenue.
	FieldCertRevenue Field = "certRevenue"
	// FieldOtherRevenue is the projected other-service revenue.
	FieldOtherRevenue Field = "otherRevenue"
	// FieldMissionFees is the projected mission fee total.
	FieldMissionFees Field = "missionFees"
	// FieldAuditorCosts is the projected auditor cost total.
	FieldAuditorCosts Field = "auditorCosts"
	// FieldMiscCharges is the projected misc charge total.
	FieldMiscCharges Field = "miscCharges"
)

// Fields lists the editable fields in display order.
func Fields() []Field {
	return []Field{FieldCertRevenue, FieldOtherRevenue, FieldMissionFees, FieldAuditorCosts, FieldMiscCharges}
}

// Row is one forecast month. Only the five monetary base fields are state;
// everything else is derived on read.
type Row struct {
	Month        time.Time
	CertRevenue  float64
	OtherRevenue float64
	MissionFees  float64
	AuditorCosts float64
	MiscCharges  float64
}

// Label renders the month for display, e.g. "September 2025".
func (r Row) Label() string {
	return r.Month.Format("January 2006")
}

// TotalRevenue is certification plus other revenue.
func (r Row) TotalRevenue() float64 {
	return r.CertRevenue + r.OtherRevenue
}

// TotalCharges is mission fees plus auditor costs plus misc charges.
func (r Row) TotalCharges() float64 {
	return r.MissionFees + r.AuditorCosts + r.MiscCharges
}

// Result is total revenue minus total charges.
func (r Row) Result() float64 {
	return r.TotalRevenue() - r.TotalCharges()
}

// MarginPct is the result as a percentage of total revenue, one decimal,
// 0 when the row has no revenue.
func (r Row) MarginPct() float64 {
	rev := r.TotalRevenue()
	if rev <= 0 {
		return 0
	}
	return model.Round1(r.Result() / rev * 100)
}

// Field returns the value of one editable cell.
func (r Row) Field(f Field) float64 {
	switch f {
	case FieldCertRevenue:
		return r.CertRevenue
	case FieldOtherRevenue:
		return r.OtherRevenue
	case FieldMissionFees:
		return r.MissionFees
	case FieldAuditorCosts:
		return r.AuditorCosts
	case FieldMiscCharges:
		return r.MiscCharges
	}
	return 0
}

// Generate projects the baseline over n months starting at start (truncated
// to its month). Month i carries baseline × (1+rate/100)^i, rounded once to
// whole currency units: what the user sees editing is exactly what sums are
// computed from. Values compounding negative stay negative.
func Generate(b Baseline, rates Rates, n int, start time.Time) []Row {
	first := model.MonthOf(start)
	rows := make([]Row, 0, n)
	for i := 1; i <= n; i++ {
		certGrowth := compound(rates.CertRevenue, i)
		otherGrowth := compound(rates.OtherRevenue, i)
		chargeGrowth := compound(rates.Charges, i)
		rows = append(rows, Row{
			Month:        first.AddDate(0, i-1, 0),
			CertRevenue:  math.Round(b.CertRevenue * certGrowth),
			OtherRevenue: math.Round(b.OtherRevenue * otherGrowth),
			MissionFees:  math.Round((b.CertMissionFee + b.OtherMissionFee) * chargeGrowth),
			AuditorCosts: math.Round((b.CertAuditorCost + b.OtherAuditorCost) * chargeGrowth),
			MiscCharges:  math.Round(b.MiscCharges * chargeGrowth),
		})
	}
	return rows
}

func compound(ratePct float64, months int) float64 {
	return math.Pow(1+ratePct/100, float64(months))
}

// StartMonth returns the first month to project: the month after the latest
// invoice on record, or the month after now when history is empty. The anchor
// is billing activity only; charge dates do not move the projection start, so
// a late operating charge cannot push the grid past unbilled months.
func StartMonth(certifications, services []model.Invoice, now time.Time) time.Time {
	last := time.Time{}
	for _, inv := range certifications {
		if inv.Date.After(last) {
			last = inv.Date
		}
	}
	for _, inv := range services {
		if inv.Date.After(last) {
			last = inv.Date
		}
	}
	if last.IsZero() {
		last = now
	}
	return model.MonthOf(last).AddDate(0, 1, 0)
}

// Summary holds the horizon totals of a projection.
type Summary struct {
	TotalRevenue float64
	TotalCharges float64
	Result       float64
	MarginPct    float64
}

// Summarize sums the derived totals across all rows. The aggregate margin is
// Σresult over Σrevenue, not the average of per-row percentages, so a large
// month cannot be outvoted by two small ones.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalRevenue += r.TotalRevenue()
		s.TotalCharges += r.TotalCharges()
		s.Result += r.Result()
	}
	if s.TotalRevenue > 0 {
		s.MarginPct = model.Round1(s.Result / s.TotalRevenue * 100)
	}
	return s
}
