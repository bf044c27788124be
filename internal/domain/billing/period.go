package billing

import (
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// Period is the half-month-offset billing window: a month's period runs
// from the 16th of the preceding calendar month through the 15th of the
// target month. The offset staggers invoicing from calendar-month
// operational reporting and is applied uniformly everywhere storage weeks
// are aggregated.
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodForMonth returns the billing period for the given target month,
// e.g. January 2025 yields 2024-12-16 through 2025-01-15.
func PeriodForMonth(year int, month time.Month) Period {
	end := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -1, 1)
	return Period{Start: start, End: end}
}

// NewPeriod builds a period from explicit boundaries
func NewPeriod(start, end time.Time) (Period, error) {
	start = start.UTC()
	end = end.UTC()
	if !start.Before(end) {
		return Period{}, shared.ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// Contains reports whether the given day falls within the period (inclusive)
func (p Period) Contains(day time.Time) bool {
	d := day.UTC()
	return !d.Before(p.Start) && !d.After(p.End)
}

// Mondays enumerates every Monday within the period in ascending order.
// These are the week-ending checkpoints a storage ledger snapshot is taken
// at.
func (p Period) Mondays() []time.Time {
	var mondays []time.Time
	day := p.Start
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	for !day.After(p.End) {
		mondays = append(mondays, day)
		day = day.AddDate(0, 0, 7)
	}
	return mondays
}

// EndOfDay returns the last instant of the given day, used as the as-of
// cutoff when folding balances for a Monday checkpoint
func EndOfDay(day time.Time) time.Time {
	d := day.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
