// Package report groups records by month or by dimension and sums their
// monetary fields. It feeds both the dashboard and the forecast baseline.
package report

import (
	"sort"
	"time"

	"github.com/certiflow/certiflow/internal/model"
)

// Rollup is one summary row per distinct grouping key. GrossMargin is always
// the subtraction of the component sums, never a sum of per-row rounded
// margins, so rounding applied to individual rates can never drift into it.
type Rollup struct {
	Key         string
	Amount      float64
	MissionFee  float64
	AuditorCost float64
	GrossMargin float64
	Count       int
}

// Rate returns the rollup's margin as a percentage of its summed amount,
// one decimal, 0 for a zero amount.
func (r Rollup) Rate() float64 {
	if r.Amount <= 0 {
		return 0
	}
	return model.Round1(r.GrossMargin / r.Amount * 100)
}

// MonthRollup is one summary row per calendar month with activity.
type MonthRollup struct {
	Month       time.Time
	Amount      float64
	MissionFee  float64
	AuditorCost float64
	GrossMargin float64
	Count       int
}

// Label renders the month as YYYY-MM.
func (m MonthRollup) Label() string {
	return m.Month.Format("2006-01")
}

// Rate returns the month's margin as a percentage of its summed amount,
// one decimal, 0 for a zero amount.
func (m MonthRollup) Rate() float64 {
	if m.Amount <= 0 {
		return 0
	}
	return model.Round1(m.GrossMargin / m.Amount * 100)
}

// ByMonth buckets invoices by calendar month (year+month, day ignored) and
// sums their monetary fields. The result is sparse: months without records
// are not emitted. Rows are in ascending chronological order.
func ByMonth(invoices []model.Invoice) []MonthRollup {
	buckets := make(map[time.Time]*MonthRollup)
	for _, inv := range invoices {
		m := inv.Month()
		b := buckets[m]
		if b == nil {
			b = &MonthRollup{Month: m}
			buckets[m] = b
		}
		b.Amount += inv.Amount
		b.MissionFee += inv.MissionFee
		b.AuditorCost += inv.AuditorCost
		b.Count++
	}

	out := make([]MonthRollup, 0, len(buckets))
	for _, b := range buckets {
		b.GrossMargin = b.Amount - b.MissionFee - b.AuditorCost
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// ByMonthFilled is ByMonth backfilled to a contiguous month range: every
// month from first to last activity appears, zero-valued when idle. Callers
// that chart evolution want the dense form; averages never use it.
func ByMonthFilled(invoices []model.Invoice) []MonthRollup {
	sparse := ByMonth(invoices)
	if len(sparse) < 2 {
		return sparse
	}

	out := make([]MonthRollup, 0, len(sparse))
	next := sparse[0].Month
	for _, row := range sparse {
		for next.Before(row.Month) {
			out = append(out, MonthRollup{Month: next})
			next = next.AddDate(0, 1, 0)
		}
		out = append(out, row)
		next = row.Month.AddDate(0, 1, 0)
	}
	return out
}

// ByClient groups invoices by client, in first-appearance order.
func ByClient(invoices []model.Invoice) []Rollup {
	return byKey(invoices, func(inv model.Invoice) string { return inv.Client })
}

// ByCategory groups invoices by category (certification scheme or service
// type), in first-appearance order.
func ByCategory(invoices []model.Invoice) []Rollup {
	return byKey(invoices, func(inv model.Invoice) string { return inv.Category })
}

func byKey(invoices []model.Invoice, key func(model.Invoice) string) []Rollup {
	index := make(map[string]int)
	var out []Rollup
	for _, inv := range invoices {
		k := key(inv)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Rollup{Key: k})
		}
		out[i].Amount += inv.Amount
		out[i].MissionFee += inv.MissionFee
		out[i].AuditorCost += inv.AuditorCost
		out[i].Count++
	}
	for i := range out {
		out[i].GrossMargin = out[i].Amount - out[i].MissionFee - out[i].AuditorCost
	}
	return out
}

// ChargesByMonth buckets charges by calendar month, sparse and chronological.
func ChargesByMonth(charges []model.Charge) []MonthRollup {
	buckets := make(map[time.Time]*MonthRollup)
	for _, c := range charges {
		m := c.Month()
		b := buckets[m]
		if b == nil {
			b = &MonthRollup{Month: m}
			buckets[m] = b
		}
		b.Amount += c.Amount
		b.Count++
	}

	out := make([]MonthRollup, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// ChargesByCategory groups charges by expense category, in first-appearance order.
func ChargesByCategory(charges []model.Charge) []Rollup {
	index := make(map[string]int)
	var out []Rollup
	for _, c := range charges {
		i, ok := index[c.Category]
		if !ok {
			i = len(out)
			index[c.Category] = i
			out = append(out, Rollup{Key: c.Category})
		}
		out[i].Amount += c.Amount
		out[i].Count++
	}
	return out
}

// Averages holds the historical monthly averages of one invoice stream.
type Averages struct {
	Amount      float64
	MissionFee  float64
	AuditorCost float64
	Months      int
}

// MonthlyAverages computes per-field monthly averages as the field sum over
// the number of distinct months with activity. A month with no records does
// not count as a zero month; only backfilling could make it one, and
// averages never backfill.
func MonthlyAverages(invoices []model.Invoice) Averages {
	months := ByMonth(invoices)
	avg := Averages{Months: len(months)}
	if len(months) == 0 {
		return avg
	}
	for _, m := range months {
		avg.Amount += m.Amount
		avg.MissionFee += m.MissionFee
		avg.AuditorCost += m.AuditorCost
	}
	n := float64(len(months))
	avg.Amount /= n
	avg.MissionFee /= n
	avg.AuditorCost /= n
	return avg
}

// ChargesMonthlyAverage computes the average charge total over the distinct
// months with charge activity. Zero when there are no charges.
func ChargesMonthlyAverage(charges []model.Charge) float64 {
	months := ChargesByMonth(charges)
	if len(months) == 0 {
		return 0
	}
	var sum float64
	for _, m := range months {
		sum += m.Amount
	}
	return sum / float64(len(months))
}
