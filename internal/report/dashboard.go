package report

import "github.com/certiflow/certiflow/internal/model"

// Dashboard carries the session-wide KPIs shown on the main screen.
type Dashboard struct {
	CertRevenue  float64
	OtherRevenue float64
	TotalRevenue float64

	MissionFees  float64
	AuditorCosts float64
	MiscCharges  float64
	TotalCharges float64

	Result       float64
	NetMarginPct float64

	CertByStatus  StatusSplit
	OtherByStatus StatusSplit
}

// StatusSplit separates revenue already invoiced from revenue committed but
// not yet billed. Quoted amounts are informational and excluded.
type StatusSplit struct {
	Invoiced float64
	Planned  float64
}

// Overview computes the dashboard KPIs from the three record collections.
func Overview(certifications, services []model.Invoice, charges []model.Charge) Dashboard {
	var d Dashboard

	for _, inv := range certifications {
		d.CertRevenue += inv.Amount
		d.MissionFees += inv.MissionFee
		d.AuditorCosts += inv.AuditorCost
	}
	for _, inv := range services {
		d.OtherRevenue += inv.Amount
		d.MissionFees += inv.MissionFee
		d.AuditorCosts += inv.AuditorCost
	}
	for _, c := range charges {
		d.MiscCharges += c.Amount
	}

	d.TotalRevenue = d.CertRevenue + d.OtherRevenue
	d.TotalCharges = d.MissionFees + d.AuditorCosts + d.MiscCharges
	d.Result = d.TotalRevenue - d.TotalCharges
	if d.TotalRevenue > 0 {
		d.NetMarginPct = model.Round1(d.Result / d.TotalRevenue * 100)
	}

	d.CertByStatus = SplitByStatus(certifications)
	d.OtherByStatus = SplitByStatus(services)
	return d
}

// SplitByStatus sums invoice amounts per billing status.
func SplitByStatus(invoices []model.Invoice) StatusSplit {
	var s StatusSplit
	for _, inv := range invoices {
		switch inv.Status {
		case model.StatusInvoiced:
			s.Invoiced += inv.Amount
		case model.StatusPlanned:
			s.Planned += inv.Amount
		case model.StatusQuoted:
			// informational only
		}
	}
	return s
}
