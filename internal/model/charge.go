package model

import (
	"time"

	"github.com/certiflow/certiflow/internal/common"
)

// ChargeStatus indicates the payment state of an operating charge.
type ChargeStatus string

const (
	// ChargePaid means the charge has been settled.
	ChargePaid ChargeStatus = "Paid"
	// ChargeDue means the charge is invoiced to us but unpaid.
	ChargeDue ChargeStatus = "Due"
	// ChargePlanned means the charge is expected but not yet incurred.
	ChargePlanned ChargeStatus = "Planned"
)

// Charge represents a miscellaneous operating expense (rent, marketing,
// software, insurance...), distinct from per-invoice mission fees and
// auditor costs.
type Charge struct {
	Date        time.Time
	Category    string
	Description string
	Status      ChargeStatus
	Amount      float64
}

// Validate checks field constraints before a charge may enter the store.
func (c Charge) Validate() error {
	if c.Date.IsZero() {
		return common.NewValidationError("date", "must be set", c.Date)
	}
	switch c.Status {
	case ChargePaid, ChargeDue, ChargePlanned:
	default:
		return common.NewValidationError("status", "must be Paid, Due or Planned", c.Status)
	}
	return validAmount("amount", c.Amount)
}

// Month returns the charge date truncated to its calendar month.
func (c Charge) Month() time.Time {
	return MonthOf(c.Date)
}
