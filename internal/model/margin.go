package model

import "math"

// Margin carries the derived profitability figures for one invoice.
// These are always recomputed from the base fields, never stored.
type Margin struct {
	Gross float64 // amount - missionFee - auditorCost, exact
	Rate  float64 // gross as % of amount, one decimal, 0 when amount is 0
}

// GrossMargin returns the invoiced amount minus mission fee and auditor cost.
// Negative margins are valid and surfaced as-is.
func (i Invoice) GrossMargin() float64 {
	return i.Amount - i.MissionFee - i.AuditorCost
}

// MarginRate returns the gross margin as a percentage of the invoiced
// amount, rounded to one decimal place (half away from zero). An invoice
// with a zero amount has a rate of 0; division by zero never occurs.
func (i Invoice) MarginRate() float64 {
	if i.Amount <= 0 {
		return 0
	}
	return Round1(i.GrossMargin() / i.Amount * 100)
}

// Margin computes both derived figures at once.
func (i Invoice) Margin() Margin {
	return Margin{Gross: i.GrossMargin(), Rate: i.MarginRate()}
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
