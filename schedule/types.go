/*
Package schedule provides the core shift scheduling engine.

PURPOSE:
  This package contains the domain types and algorithms for managing
  personal assistant (PA) shift requests: submission, approval, rejection,
  cancellation, conflict detection, and the derived state that must stay
  consistent with the approved shift set (critical-time coverage and
  weekly hour totals).

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftRequest: A request to work a time range on a date, with a status
  - SchedulePeriod: The administrative window requests belong to
  - CriticalTimeCoverage: Per-date derived record of critical-window cover
  - WeeklyCoverage: Per-(period, PA, week) derived record of hours worked
  - PA: The personal assistant registry entry with a weekly-hour limit

DESIGN PRINCIPLES:
  1. Derived state is never patched: coverage and weekly records are
     always recomputed from scratch from the approved shift set.
  2. Precision: decimal.Decimal for all hour quantities, never float64.
  3. Type safety: distinct ID types for shifts, periods, and PAs.
  4. Status transitions only move through the lifecycle in lifecycle.go;
     nothing else writes Status.

SEE ALSO:
  - timerange.go: TimeRange value type with overnight-wrap normalization
  - lifecycle.go: The state machine that owns all transitions
  - coverage.go, weekly.go: Derived-state calculators
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ShiftID string
type PeriodID string
type PAID string

// =============================================================================
// SHIFT REQUEST
// =============================================================================

type ShiftStatus string

const (
	StatusPending   ShiftStatus = "PENDING"
	StatusApproved  ShiftStatus = "APPROVED"
	StatusRejected  ShiftStatus = "REJECTED"
	StatusCancelled ShiftStatus = "CANCELLED"
)

// ShiftRequest is a PA's request to work [Start, End) on Date.
//
// INVARIANT: DurationHours is always consistent with the time range; it is
// recomputed via SyncDuration on every time change and never set directly.
// INVARIANT: Date lies within the owning period's [StartDate, EndDate].
type ShiftRequest struct {
	ID       ShiftID
	PeriodID PeriodID
	PA       PAID

	Date  time.Time // calendar date, midnight UTC
	Start TimeOfDay
	End   TimeOfDay

	// Derived from the time range, wrap-normalized.
	DurationHours decimal.Decimal

	Status         ShiftStatus
	Notes          string
	AdminNotes     string
	RejectedReason string

	// Approval tracking
	ApprovedBy *string
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the shift's time range as a value.
func (s *ShiftRequest) Range() TimeRange {
	return TimeRange{Date: s.Date, Start: s.Start, End: s.End}
}

// Overnight reports whether the shift crosses midnight.
func (s *ShiftRequest) Overnight() bool { return s.End <= s.Start }

// SyncDuration recomputes DurationHours from the time range.
// Must be called after any change to Date/Start/End.
func (s *ShiftRequest) SyncDuration() {
	s.DurationHours = s.Range().DurationHours()
}

// =============================================================================
// SCHEDULE PERIOD
// =============================================================================

type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "OPEN"
	PeriodLocked    PeriodStatus = "LOCKED"
	PeriodFinalized PeriodStatus = "FINALIZED"
)

// SchedulePeriod is the administrative date range shift requests belong to.
// New requests are accepted only while OPEN. FINALIZED is terminal.
//
// INVARIANT: EndDate >= StartDate.
type SchedulePeriod struct {
	ID        PeriodID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether a date falls within [StartDate, EndDate].
func (p *SchedulePeriod) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// Dates returns every calendar date in the period, in order.
func (p *SchedulePeriod) Dates() []time.Time {
	var dates []time.Time
	for d := p.StartDate; !d.After(p.EndDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// =============================================================================
// CRITICAL TIME COVERAGE - Derived, one record per calendar date
// =============================================================================

// CoverageStatus summarizes a date's critical-window coverage.
type CoverageStatus string

const (
	CoverageComplete CoverageStatus = "complete"
	CoveragePartial  CoverageStatus = "partial"
	CoverageNone     CoverageStatus = "none"
)

// CriticalTimeCoverage records whether the fixed morning and evening
// windows are covered on a date, and by which approved shift.
//
// Derived entirely from the APPROVED shifts on the date. Never mutated
// directly; always fully recomputed (see CoverageCalculator.Recompute).
// The shift references are non-owning and are cleared or reassigned on
// every recompute, never left dangling.
type CriticalTimeCoverage struct {
	Date           time.Time
	MorningCovered bool
	EveningCovered bool
	MorningShift   *ShiftID
	EveningShift   *ShiftID
	UpdatedAt      time.Time
}

// FullyCovered reports whether both windows are covered.
func (c *CriticalTimeCoverage) FullyCovered() bool {
	return c.MorningCovered && c.EveningCovered
}

// Status is a pure function of the two covered flags.
func (c *CriticalTimeCoverage) CoverageStatus() CoverageStatus {
	switch {
	case c.MorningCovered && c.EveningCovered:
		return CoverageComplete
	case c.MorningCovered || c.EveningCovered:
		return CoveragePartial
	default:
		return CoverageNone
	}
}

// =============================================================================
// WEEKLY COVERAGE - Derived, one record per (period, PA, week)
// =============================================================================

// WeeklyCoverage records a PA's total approved hours for one Monday-keyed
// week, and whether the total exceeds the PA's weekly limit.
type WeeklyCoverage struct {
	PeriodID     PeriodID
	PA           PAID
	WeekStart    time.Time // always a Monday
	TotalHours   decimal.Decimal
	ExceedsLimit bool
	UpdatedAt    time.Time
}

// =============================================================================
// PA - Personal assistant registry entry
// =============================================================================

// PA is the person who works shifts. MaxHoursPerWeek of zero means the
// default limit applies (see DefaultWeeklyLimit).
type PA struct {
	ID              PAID
	Name            string
	Email           string
	MaxHoursPerWeek decimal.Decimal
	CreatedAt       time.Time
}
