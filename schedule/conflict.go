/*
conflict.go - Overlap detection between shift time ranges

PURPOSE:
  Decides whether a candidate time range collides with existing shift
  requests on the same date, and if so, returns the first blocking shift.

BLOCKING POLICY:
  - APPROVED shifts always block, for every PA. One person on shift at a
    time is the staffing model, so any approved overlap is a conflict.
  - PENDING requests never block each other or new submissions across
    PAs. Multiple competing pending requests for the same slot are
    allowed and resolved later by admin approval of exactly one.
  - When a PA scope is supplied (the same-PA duplicate check used at
    submission time), that PA's own PENDING requests also block: a PA
    must not hold two simultaneous requests for themselves.

DETERMINISM:
  The pool is scanned in ascending ID order and the FIRST conflict is
  returned. One example is enough to block and explain; exhaustive
  conflict reporting is deliberately not offered.

SEE ALSO:
  - timerange.go: Overlaps() half-open interval semantics
  - lifecycle.go: Which scope each transition uses
*/
package schedule

import "sort"

// ConflictDetector finds the first shift whose range overlaps a candidate.
type ConflictDetector struct{}

// FindConflict scans shifts (any statuses; typically everything on the
// candidate's date) and returns the first blocking shift, or nil.
//
// paScope, when non-nil, widens the blocking set with that PA's own
// PENDING requests. excludeID, when non-nil, skips that shift so an
// existing request can be re-checked against its peers.
func (d *ConflictDetector) FindConflict(candidate TimeRange, paScope *PAID, shifts []ShiftRequest, excludeID *ShiftID) *ShiftRequest {
	pool := make([]ShiftRequest, len(shifts))
	copy(pool, shifts)
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })

	for i := range pool {
		s := &pool[i]
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if !d.blocks(s, paScope) {
			continue
		}
		if candidate.Overlaps(s.Range()) {
			return s
		}
	}
	return nil
}

func (d *ConflictDetector) blocks(s *ShiftRequest, paScope *PAID) bool {
	switch s.Status {
	case StatusApproved:
		return true
	case StatusPending:
		return paScope != nil && s.PA == *paScope
	default:
		return false
	}
}
