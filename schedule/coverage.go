/*
coverage.go - Critical-time coverage recomputation

PURPOSE:
  Determines whether the fixed critical windows of a date are staffed:

    Morning: 06:00 - 09:00 (must cover the full 3 hours)
    Evening: 21:00 - 22:00 (must cover the full 1 hour)

  One CriticalTimeCoverage record exists per date and is derived entirely
  from that date's APPROVED shifts. Recomputation always starts from a
  cleared record and replays every shift - no incremental patching, so
  the record can never drift from the shift table.

OVERNIGHT SHIFTS:
  A wrapped shift (end <= start) is judged by looser rules:
    - it covers the evening window if it starts at or before 21:00
    - it covers the morning window if its wrapped end reaches 09:00,
      credited to the record of the date the shift STARTS, even though
      those hours physically fall on the next calendar day
  The morning crediting matches the system this engine replaced;
  historical coverage rows depend on it.

DETERMINISM:
  Shifts are replayed in ascending ID order and the first qualifying
  shift per window wins; later qualifiers do not overwrite.

SEE ALSO:
  - weekly.go: The other derived-state calculator
  - lifecycle.go: When recomputation is triggered
*/
package schedule

import (
	"sort"
	"time"
)

// Critical window boundaries. Fixed by the staffing contract, not config.
var (
	MorningStart = NewTimeOfDay(6, 0)
	MorningEnd   = NewTimeOfDay(9, 0)
	EveningStart = NewTimeOfDay(21, 0)
	EveningEnd   = NewTimeOfDay(22, 0)
)

// CoverageCalculator recomputes CriticalTimeCoverage records.
type CoverageCalculator struct{}

// Recompute derives the coverage record for a date from its approved
// shifts. Pure and idempotent: identical input yields an identical record.
// Non-approved shifts in the input are ignored.
func (c *CoverageCalculator) Recompute(date time.Time, shifts []ShiftRequest) CriticalTimeCoverage {
	cov := CriticalTimeCoverage{Date: DateOf(date)}

	pool := make([]ShiftRequest, len(shifts))
	copy(pool, shifts)
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })

	for i := range pool {
		s := &pool[i]
		if s.Status != StatusApproved {
			continue
		}
		if !cov.MorningCovered && c.CoversMorning(s) {
			cov.MorningCovered = true
			id := s.ID
			cov.MorningShift = &id
		}
		if !cov.EveningCovered && c.CoversEvening(s) {
			cov.EveningCovered = true
			id := s.ID
			cov.EveningShift = &id
		}
	}
	return cov
}

// CoversMorning reports whether a shift satisfies the morning window.
// Same-day shifts must fully contain 06:00-09:00. Overnight shifts
// qualify when the wrapped end reaches 09:00.
func (c *CoverageCalculator) CoversMorning(s *ShiftRequest) bool {
	if s.Overnight() {
		return s.End >= MorningEnd
	}
	return s.Start <= MorningStart && s.End >= MorningEnd
}

// CoversEvening reports whether a shift satisfies the evening window.
// Same-day shifts must fully contain 21:00-22:00. Overnight shifts
// qualify when they start at or before 21:00.
func (c *CoverageCalculator) CoversEvening(s *ShiftRequest) bool {
	if s.Overnight() {
		return s.Start <= EveningStart
	}
	return s.Start <= EveningStart && s.End >= EveningEnd
}
