package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/certiflow/certiflow/internal/common"
)

// Engine maintains the editable projection grid. Rows are regenerated from
// scratch only when the horizon changes or on an explicit reset; changing a
// growth rate alone leaves existing rows, and any user edits on them, intact
// until the next regeneration.
type Engine struct {
	start   time.Time
	rows    []Row
	rates   Rates
	horizon int
}

// NewEngine generates an initial projection and returns the engine owning it.
func NewEngine(b Baseline, rates Rates, horizon int, start time.Time) (*Engine, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon %d: %w", horizon, common.ErrInvalidHorizon)
	}
	return &Engine{
		start:   start,
		rows:    Generate(b, rates, horizon, start),
		rates:   rates,
		horizon: horizon,
	}, nil
}

// Rows returns a copy of the projection rows.
func (e *Engine) Rows() []Row {
	return append([]Row(nil), e.rows...)
}

// Horizon returns the configured number of forecast months.
func (e *Engine) Horizon() int {
	return e.horizon
}

// Rates returns the configured growth rates.
func (e *Engine) Rates() Rates {
	return e.rates
}

// SetRates stores new growth rates without touching the current rows. The
// rates take effect on the next regeneration only.
func (e *Engine) SetRates(rates Rates) {
	e.rates = rates
}

// SetHorizon changes the forecast horizon. The grid is regenerated, and
// edits discarded, only when the row count actually changes. Returns whether
// a regeneration happened.
func (e *Engine) SetHorizon(horizon int, b Baseline) (bool, error) {
	if horizon < 1 {
		return false, fmt.Errorf("horizon %d: %w", horizon, common.ErrInvalidHorizon)
	}
	e.horizon = horizon
	if horizon == len(e.rows) {
		return false, nil
	}
	e.rows = Generate(b, e.rates, horizon, e.start)
	return true, nil
}

// Reset regenerates every row from the baseline under the current rates and
// horizon, discarding all user edits. This is the only way to apply changed
// rates to an existing grid of the same size.
func (e *Engine) Reset(b Baseline) {
	e.rows = Generate(b, e.rates, e.horizon, e.start)
}

// ApplyEdit overwrites one base field on one row. Negative and non-finite
// values are rejected and nothing is applied; on success only the addressed
// row changes, and its derived totals follow on the next read.
func (e *Engine) ApplyEdit(row int, field Field, value float64) error {
	if row < 0 || row >= len(e.rows) {
		return fmt.Errorf("projection row %d: %w", row, common.ErrIndexOutOfRange)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return common.NewValidationError(string(field), "must be a finite number", value)
	}
	if value < 0 {
		return common.NewValidationError(string(field), "must not be negative", value)
	}

	switch field {
	case FieldCertRevenue:
		e.rows[row].CertRevenue = value
	case FieldOtherRevenue:
		e.rows[row].OtherRevenue = value
	case FieldMissionFees:
		e.rows[row].MissionFees = value
	case FieldAuditorCosts:
		e.rows[row].AuditorCosts = value
	case FieldMiscCharges:
		e.rows[row].MiscCharges = value
	default:
		return fmt.Errorf("%q: %w", field, common.ErrUnknownField)
	}
	return nil
}

// Summary sums the derived totals over the current grid.
func (e *Engine) Summary() Summary {
	return Summarize(e.rows)
}
