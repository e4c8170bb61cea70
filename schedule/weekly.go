/*
weekly.go - Weekly hour totals and overtime flags

PURPOSE:
  Sums a PA's approved hours over a Monday-to-Sunday week and flags the
  total against their weekly limit (default 40 when unset). One
  WeeklyCoverage record exists per (period, PA, week-start-Monday) and,
  like critical coverage, is always recomputed from scratch.

WEEK KEYING:
  Weeks are keyed by their Monday. Any supplied date is normalized back
  to the Monday on or before it.

PERIOD KEYING:
  The record takes the period of the first shift in the window, ordered
  by (date, id). In practice all shifts in a coherent week belong to one
  period; the deterministic pick keeps the record key stable if they
  ever don't.

SEE ALSO:
  - coverage.go: The other derived-state calculator
  - lifecycle.go: When recomputation is triggered
*/
package schedule

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWeeklyLimit applies when a PA has no configured limit.
var DefaultWeeklyLimit = decimal.NewFromInt(40)

// WeekStart returns the Monday on or before the given date.
func WeekStart(date time.Time) time.Time {
	d := DateOf(date)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday ending the week containing the given date.
func WeekEnd(date time.Time) time.Time {
	return WeekStart(date).AddDate(0, 0, 6)
}

// WeeklyAggregator recomputes WeeklyCoverage records.
type WeeklyAggregator struct{}

// Recompute derives the weekly record for a PA from the approved shifts
// in [weekStart, weekStart+6]. Shifts outside the window, for other PAs,
// or not approved are ignored, so callers may pass a loose superset.
// A zero limit means DefaultWeeklyLimit.
//
// Idempotent: identical input yields an identical record. When the window
// holds no approved shifts the returned record has an empty PeriodID and
// zero hours; the caller decides whether such a record is persisted.
func (a *WeeklyAggregator) Recompute(pa PAID, weekStart time.Time, shifts []ShiftRequest, limit decimal.Decimal) WeeklyCoverage {
	start := WeekStart(weekStart)
	end := start.AddDate(0, 0, 6)

	if limit.IsZero() {
		limit = DefaultWeeklyLimit
	}

	pool := make([]ShiftRequest, 0, len(shifts))
	for _, s := range shifts {
		if s.PA != pa || s.Status != StatusApproved {
			continue
		}
		d := DateOf(s.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		pool = append(pool, s)
	}
	sort.Slice(pool, func(i, j int) bool {
		if !pool[i].Date.Equal(pool[j].Date) {
			return pool[i].Date.Before(pool[j].Date)
		}
		return pool[i].ID < pool[j].ID
	})

	total := decimal.Zero
	var periodID PeriodID
	for i := range pool {
		total = total.Add(pool[i].DurationHours)
		if periodID == "" {
			periodID = pool[i].PeriodID
		}
	}

	return WeeklyCoverage{
		PeriodID:     periodID,
		PA:           pa,
		WeekStart:    start,
		TotalHours:   total,
		ExceedsLimit: total.GreaterThan(limit),
	}
}
