/*
duration.go - Business-day duration calculation

PURPOSE:
  Converts a date range plus half-day boundary portions into a decimal
  count of working days. Weekends and holidays are excluded through the
  injected working-day predicate, so the weekday pattern and the holiday
  calendar are swappable policies rather than hard-coded rules.

ALGORITHM:
  Iterate every calendar date from start to end inclusive. Skip dates
  where the predicate says non-working. The first and last working day
  in range contribute 0.5 when their portion is a half day, 1.0
  otherwise; interior working days always contribute 1.0. A single-day
  request contributes only the start portion's weight, once.

EDGE CASES:
  - End before start: ValidationError ("end_before_start")
  - Single day with mismatched portions: ValidationError
  - Range with zero working days: returns 0; Submit rejects it

SEE ALSO:
  - calendar.go:  WorkingCalendar supplies the predicate
  - lifecycle.go: Submit computes DurationDays through this calculator
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// WorkingDayFunc reports whether a date counts as a working day.
type WorkingDayFunc func(Date) bool

// DurationCalculator computes the working-day length of a request.
type DurationCalculator struct {
	IsWorkingDay WorkingDayFunc
}

// NewDurationCalculator builds a calculator over the given calendar.
func NewDurationCalculator(calendar *WorkingCalendar) *DurationCalculator {
	return &DurationCalculator{IsWorkingDay: calendar.IsWorkingDay}
}

// Compute returns the decimal number of working days in [start, end]
// with the given boundary portions. The result has 0.5 granularity.
func (dc *DurationCalculator) Compute(start, end Date, startPortion, endPortion DayPortion) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, &ValidationError{
			Code:    "end_before_start",
			Message: "end date " + end.String() + " is before start date " + start.String(),
		}
	}
	if !startPortion.Valid() || !endPortion.Valid() {
		return decimal.Zero, &ValidationError{
			Code:    "invalid_portion",
			Message: "day portion must be full_day, morning, or afternoon",
		}
	}

	// Single-day request: only the start portion is meaningful, and the
	// end portion must agree with it.
	if start.Equal(end) {
		if endPortion != startPortion {
			return decimal.Zero, &ValidationError{
				Code:    "portion_mismatch",
				Message: "single-day request must carry the same portion on both boundaries",
			}
		}
		if !dc.IsWorkingDay(start) {
			return decimal.Zero, nil
		}
		return startPortion.Weight(), nil
	}

	// Collect the working days in range; only the first and last of them
	// are boundary days eligible for half-day weights.
	var workdays []Date
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if dc.IsWorkingDay(d) {
			workdays = append(workdays, d)
		}
	}
	if len(workdays) == 0 {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	for i := range workdays {
		switch i {
		case 0:
			total = total.Add(startPortion.Weight())
		case len(workdays) - 1:
			total = total.Add(endPortion.Weight())
		default:
			total = total.Add(decimal.NewFromInt(1))
		}
	}
	return total, nil
}
