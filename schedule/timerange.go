package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TIME OF DAY - Wall-clock time within a calendar date
// =============================================================================

// TimeOfDay is a time of day expressed as minutes since midnight.
// It deliberately has no date or timezone attached; a TimeRange pairs
// two of these with a calendar date.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hour (0-23) and minute (0-59).
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On anchors the time of day to a calendar date, producing an instant.
func (t TimeOfDay) On(date time.Time) time.Time {
	d := DateOf(date)
	return d.Add(time.Duration(t) * time.Minute)
}

// =============================================================================
// DATE HELPERS
// =============================================================================

// DateOf truncates an instant to its calendar date (midnight UTC).
// All dates in the engine are normalized through this.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate builds a normalized calendar date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format("2006-01-02") }

// ParseDate parses YYYY-MM-DD into a normalized calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// =============================================================================
// TIME RANGE - [start, end) on a calendar date, with overnight wrap
// =============================================================================

// TimeRange is a half-open interval [Start, End) on a calendar date.
//
// INVARIANT: if End <= Start the range crosses midnight and the effective
// interval is [Date@Start, Date+1@End). Duration is therefore always
// positive after normalization; a range cannot be empty.
type TimeRange struct {
	Date  time.Time // calendar date, midnight UTC
	Start TimeOfDay
	End   TimeOfDay
}

// NewTimeRange builds a range on the given date, normalizing the date.
func NewTimeRange(date time.Time, start, end TimeOfDay) TimeRange {
	return TimeRange{Date: DateOf(date), Start: start, End: end}
}

// Overnight reports whether the range wraps past midnight.
func (r TimeRange) Overnight() bool { return r.End <= r.Start }

// Normalize returns the absolute [start, end) instants of the range.
// For overnight ranges the end instant falls on the following day.
func (r TimeRange) Normalize() (time.Time, time.Time) {
	start := r.Start.On(r.Date)
	end := r.End.On(r.Date)
	if r.Overnight() {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// DurationHours returns the wrap-normalized length of the range in hours.
func (r TimeRange) DurationHours() decimal.Decimal {
	start, end := r.Normalize()
	minutes := int64(end.Sub(start) / time.Minute)
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60))
}

// Overlaps reports whether two ranges intersect, comparing wrap-normalized
// instants. Half-open semantics: touching endpoints do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	startA, endA := r.Normalize()
	startB, endB := other.Normalize()
	return startA.Before(endB) && endA.After(startB)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s %s-%s", FormatDate(r.Date), r.Start, r.End)
}
