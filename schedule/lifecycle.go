/*
lifecycle.go - Shift request state machine

PURPOSE:
  Owns every legal status transition and the derived-state recomputation
  each one triggers:

    PENDING  -> APPROVED | REJECTED | CANCELLED
    APPROVED -> CANCELLED
    APPROVED -> APPROVED   (edit: date/time change)

  REJECTED and CANCELLED are terminal; re-entry is a fresh PENDING
  request. Creation starts PENDING unless the admin-direct path creates
  straight into APPROVED.

TRANSITION FLOW:
  Every transition executes as one unit inside TxRunner.WithTx:
  read current status, validate preconditions against the same snapshot,
  write the new status, recompute coverage and weekly hours for whatever
  the change touched. A recompute failure rolls the whole transition
  back; status and derived state are never committed separately.

RECOMPUTE TRIGGERS:
  create (pending)   nothing (pending carries no coverage weight)
  approve            coverage(date), weekly(pa, week)
  reject             nothing
  edit               coverage(old date + new date), weekly(old + new week)
  cancel (approved)  coverage(date), weekly(pa, week)
  cancel (pending)   nothing
  finalize           nothing (bulk-rejects pending only)

EVENTS:
  Transitions return the events to dispatch instead of broadcasting
  themselves; the caller owns delivery. See events.go.

AUTHORIZATION:
  The transport layer authenticates actors before calling in. The engine
  enforces only domain invariants: ownership of a request, period
  openness, status preconditions.

SEE ALSO:
  - conflict.go, coverage.go, weekly.go: The calculators driven from here
  - stores.go: The transaction contract this file relies on
*/
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lifecycle drives shift and period transitions.
type Lifecycle struct {
	Runner TxRunner

	Detector *ConflictDetector
	Coverage *CoverageCalculator
	Weekly   *WeeklyAggregator

	// Injection points for tests.
	Now         func() time.Time
	NewShiftID  func() ShiftID
	NewPeriodID func() PeriodID
}

// NewLifecycle wires a lifecycle against a transaction runner. Everything
// a transition reads or writes, weekly limits included, comes from the
// Stores bundle the runner hands it.
func NewLifecycle(runner TxRunner) *Lifecycle {
	return &Lifecycle{
		Runner:      runner,
		Detector:    &ConflictDetector{},
		Coverage:    &CoverageCalculator{},
		Weekly:      &WeeklyAggregator{},
		Now:         time.Now,
		NewShiftID:  func() ShiftID { return ShiftID(uuid.NewString()) },
		NewPeriodID: func() PeriodID { return PeriodID(uuid.NewString()) },
	}
}

func (l *Lifecycle) now() time.Time { return l.Now().UTC() }

// =============================================================================
// PERIOD OPERATIONS
// =============================================================================

// PeriodInput describes a new schedule period.
type PeriodInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Actor     string
}

// CreatePeriod opens a new schedule period.
func (l *Lifecycle) CreatePeriod(ctx context.Context, in PeriodInput) (*SchedulePeriod, error) {
	start, end := DateOf(in.StartDate), DateOf(in.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s before %s", ErrInvalidPeriod, FormatDate(end), FormatDate(start))
	}

	now := l.now()
	period := &SchedulePeriod{
		ID:        l.NewPeriodID(),
		Name:      in.Name,
		StartDate: start,
		EndDate:   end,
		Status:    PeriodOpen,
		CreatedBy: in.Actor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := l.Runner.WithTx(ctx, func(s Stores) error {
		return s.Periods.SavePeriod(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	return period, nil
}

// Lock freezes an open period: no new submissions, but the pending queue
// stays workable until finalize.
func (l *Lifecycle) Lock(ctx context.Context, id PeriodID) (*SchedulePeriod, error) {
	var period *SchedulePeriod
	err := l.Runner.WithTx(ctx, func(s Stores) error {
		var err error
		period, err = s.Periods.GetPeriod(ctx, id)
		if err != nil {
			return err
		}
		if period == nil {
			return fmt.Errorf("%w: %s", ErrPeriodNotFound, id)
		}
		if period.Status != PeriodOpen {
			return fmt.Errorf("%w: cannot lock %s period %s", ErrInvalidStateTransition, period.Status, id)
		}
		period.Status = PeriodLocked
		period.UpdatedAt = l.now()
		return s.Periods.SavePeriod(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	return period, nil
}

// Finalize closes out a period: every PENDING request in it is bulk
// rejected with reason "period finalized", and the period becomes
// FINALIZED (terminal). No coverage recompute runs - pending shifts
// carried no coverage weight. The emitted period.finalized event carries
// a coverage-gap report built by READING the stored coverage records for
// every date in range; dates without a record count as uncovered.
func (l *Lifecycle) Finalize(ctx context.Context, id PeriodID, actor string) (*SchedulePeriod, []Event, error) {
	var (
		period *SchedulePeriod
		events []Event
	)
	err := l.Runner.WithTx(ctx, func(s Stores) error {
		var err error
		period, err = s.Periods.GetPeriod(ctx, id)
		if err != nil {
			return err
		}
		if period == nil {
			return fmt.Errorf("%w: %s", ErrPeriodNotFound, id)
		}
		if period.Status == PeriodFinalized {
			return fmt.Errorf("%w: period %s already finalized", ErrInvalidStateTransition, id)
		}

		pending, err := s.Shifts.List(ctx, ShiftFilter{
			PeriodID: &id,
			Statuses: []ShiftStatus{StatusPending},
		})
		if err != nil {
			return err
		}
		now := l.now()
		for i := range pending {
			sh := &pending[i]
			sh.Status = StatusRejected
			sh.RejectedReason = "period finalized"
			sh.UpdatedAt = now
			if err := s.Shifts.Upsert(ctx, sh); err != nil {
				return err
			}
		}

		period.Status = PeriodFinalized
		period.UpdatedAt = now
		if err := s.Periods.SavePeriod(ctx, period); err != nil {
			return err
		}

		var gaps []map[string]any
		for _, date := range period.Dates() {
			cov, err := s.Coverage.GetCoverage(ctx, date)
			if err != nil {
				return err
			}
			morning, evening := false, false
			if cov != nil {
				morning, evening = cov.MorningCovered, cov.EveningCovered
			}
			if !morning || !evening {
				gaps = append(gaps, map[string]any{
					"date":            FormatDate(date),
					"morning_covered": morning,
					"evening_covered": evening,
				})
			}
		}

		events = append(events, Event{
			Type:     EventPeriodFinalized,
			PeriodID: id,
			Actor:    actor,
			At:       now,
			Payload: map[string]any{
				"name":             period.Name,
				"rejected_pending": len(pending),
				"coverage_gaps":    gaps,
			},
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return period, events, nil
}

// =============================================================================
// SHIFT CREATION
// =============================================================================

// CreateInput describes a new shift request.
type CreateInput struct {
	PeriodID PeriodID
	PA       PAID
	Date     time.Time
	Start    TimeOfDay
	End      TimeOfDay
	Notes    string

	// AdminDirect creates the shift straight into APPROVED, bypassing
	// the pending queue. Admin-only at the transport layer.
	AdminDirect bool
	Actor       string
}

// Create submits a shift request. Preconditions: the period is OPEN, the
// date lies within it, no identical pending request exists, and the PA's
// own pending requests plus everyone's approved shifts leave the slot
// free. Pending creation triggers no recompute; admin-direct creation
// recomputes like an approval.
func (l *Lifecycle) Create(ctx context.Context, in CreateInput) (*ShiftRequest, []Event, error) {
	var (
		shift  *ShiftRequest
		events []Event
	)
	err := l.Runner.WithTx(ctx, func(s Stores) error {
		period, err := s.Periods.GetPeriod(ctx, in.PeriodID)
		if err != nil {
			return err
		}
		if period == nil {
			return fmt.Errorf("%w: %s", ErrPeriodNotFound, in.PeriodID)
		}
		if period.Status != PeriodOpen {
			return fmt.Errorf("%w: period %s is %s", ErrPeriodNotOpen, period.ID, period.Status)
		}
		date := DateOf(in.Date)
		if !period.Contains(date) {
			return &BoundsError{
				PeriodID: period.ID,
				Date:     FormatDate(date),
				Start:    FormatDate(period.StartDate),
				End:      FormatDate(period.EndDate),
			}
		}

		onDate, err := s.Shifts.OnDate(ctx, date)
		if err != nil {
			return err
		}
		for i := range onDate {
			ex := &onDate[i]
			if ex.Status == StatusPending && ex.PA == in.PA &&
				ex.Start == in.Start && ex.End == in.End {
				return fmt.Errorf("%w: shift %s", ErrDuplicateRequest, ex.ID)
			}
		}

		candidate := NewTimeRange(date, in.Start, in.End)
		if c := l.Detector.FindConflict(candidate, &in.PA, onDate, nil); c != nil {
			return &ConflictError{ShiftID: c.ID, PA: c.PA, Range: c.Range()}
		}

		now := l.now()
		shift = &ShiftRequest{
			ID:        l.NewShiftID(),
			PeriodID:  in.PeriodID,
			PA:        in.PA,
			Date:      date,
			Start:     in.Start,
			End:       in.End,
			Status:    StatusPending,
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		shift.SyncDuration()

		if in.AdminDirect {
			shift.Status = StatusApproved
			actor := in.Actor
			shift.ApprovedBy = &actor
			shift.ApprovedAt = &now
		}
		if err := s.Shifts.Upsert(ctx, shift); err != nil {
			return err
		}

		if in.AdminDirect {
			_, _, err := l.recomputeCoverage(ctx, s, date)
			if err != nil {
				return err
			}
			weekly, err := l.recomputeWeekly(ctx, s, in.PA, date)
			if err != nil {
				return err
			}
			events = append(events, l.shiftEvent(EventShiftApproved, shift, in.Actor, approvalPayload(shift, weekly)))
		} else {
			events = append(events, l.shiftEvent(EventShiftRequested, shift, in.Actor, nil))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return shift, events, nil
}

// =============================================================================
// SHIFT TRANSITIONS
// =============================================================================

// Approve transitions PENDING -> APPROVED. The slot is re-checked against
// every other APPROVED shift on the date (excluding self); pending
// requests never block, so competing requests lose only when one of
// them is approved first.
func (l *Lifecycle) Approve(ctx context.Context, id ShiftID, approver, adminNotes string) (*ShiftRequest, []Event, error) {
	var (
		shift  *ShiftRequest
		events []Event
	)
	err := l.Runner.WithTx(ctx, func(s Stores) error {
		var err error
		shift, err = s.Shifts.Get(ctx, id)
		if err != nil {
			return err
		}
		if shift == nil {
			return fmt.Errorf("%w: %s", ErrShiftNotFound, id)
		}
		if shift.Status != StatusPending {
			return &StateTransitionError{ShiftID: id, From: shift.Status, To: StatusApproved}
		}

		approved, err := s.Shifts.ApprovedOnDate(ctx, shift.Date)
		if err != nil {
			return err
		}
		if c := l.Detector.FindConflict(shift.Range(), nil, approved, &shift.ID); c != nil {
			return &ConflictError{ShiftID: c.ID, PA: c.PA, Range: c.Range()}
		}

		now := l.now()
		shift.Status = StatusApproved
		shift.ApprovedBy = &approver
		shift.ApprovedAt = &now
		if adminNotes != "" {
			shift.AdminNotes = adminNotes
		}
		shift.UpdatedAt = now
		if err := s.Shifts.Upsert(ctx, shift); err != nil {
			return err
		}

		if _, _, err := l.recomputeCoverage(ctx, s, shift.Date); err != nil {
			return err
		}
		weekly, err := l.recomputeWeekly(ctx, s, shift.PA, shift.Date)
		if err != nil {
			return err
		}
		events = append(events, l.shiftEvent(EventShiftApproved, shift, approver, approvalPayload(shift, weekly)))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return shift, events, nil
}

// Reject transitions PENDING -> REJECTED. The reason is required and
// recorded; no recompute runs since the shift never carried coverage.
func (l *Lifecycle) Reject(ctx context.Context, id ShiftID, actor, reason string) (*ShiftRequest, []Event, error) {
	if reason == "" {
		return nil, nil, ErrReasonRequired
	}
	var (
		shift  *ShiftRequest
		events []Event
	)
	err := l.Runner.WithTx(ctx, func(s Stores) error {
		var err error
		shift, err = s.Shifts.Get(ctx, id)
		if err != nil {
			return err
		}
		if shift == nil {
			return fmt.Errorf("%w: %s", ErrShiftNotFound, id)
		}
		if shift.Status != StatusPending {
			return &StateTransitionError{ShiftID: id, From: shift.Status, To: StatusRejected}
		}

		shift.Status = StatusRejected
		shift.RejectedReason = reason
		shift.UpdatedAt = l.now()
		if err := s.Shifts.Upsert(ctx, shift); err != nil {
			return err
		}
		events = append(events, l.shiftEvent(EventShiftRejected, shift, actor, map[string]any{
			"reason": reason,
		}))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return shift, events, nil
}

// EditInput describes a date/time change to an existing request.
type EditInput struct {
	Date  time.Time
	Start TimeOfDay
	End   TimeOfDay
	Notes *string // nil leaves notes unchanged

	Actor string
	Admin bool
}

// Edit moves a request to a new date/time. Owner may edit their own
// PENDING request; APPROVED edits re-check conflicts at the new slot and
// recompute coverage for both old and new dates, plus weekly hours for
// both weeks touched. The PA never changes on edit.
func (l *Lifecycle) Edit(ctx context.Context, id ShiftID, in EditInput) (*ShiftRequest, []Event, error) {
	var (
		shift  *ShiftRequest
		events []Event
	)
	err := l.Runner.WithTx(ctx, func(s Stores) error {
		var err error
		shift, err = s.Shifts.Get(ctx, id)
		if err != nil {
			return err
		}
		if shift == nil {
			return fmt.Errorf("%w: %s", ErrShiftNotFound, id)
		}
		if !in.Admin && in.Actor != string(shift.PA) {
			return fmt.Errorf("%w: shift %s", ErrNotOwner, id)
		}
		if shift.Status != StatusPending && shift.Status != StatusApproved {
			return &StateTransitionError{ShiftID: id, From: shift.Status, To: shift.Status}
		}

		period, err := s.Periods.GetPeriod(ctx, shift.PeriodID)
		if err != nil {
			return err
		}
		if period == nil {
			return fmt.Errorf("%w: %s", ErrPeriodNotFound, shift.PeriodID)
		}
		newDate := DateOf(in.Date)
		if !period.Contains(newDate) {
			return &BoundsError{
				PeriodID: period.ID,
				Date:     FormatDate(newDate),
				Start:    FormatDate(period.StartDate),
				End:      FormatDate(period.EndDate),
			}
		}

		onDate, err := s.Shifts.OnDate(ctx, newDate)
		if err != nil {
			return err
		}
		candidate := NewTimeRange(newDate, in.Start, in.End)
		var scope *PAID
		if shift.Status == StatusPending {
			// A pending edit re-validates like a fresh submission.
			pa := shift.PA
			scope = &pa
		}
		if c := l.Detector.FindConflict(candidate, scope, onDate, &shift.ID); c != nil {
			return &ConflictError{ShiftID: c.ID, PA: c.PA, Range: c.Range()}
		}

		oldDate := shift.Date
		changes := diffShift(shift, newDate, in.Start, in.End)

		shift.Date = newDate
		shift.Start = in.Start
		shift.End = in.End
		if in.Notes != nil {
			shift.Notes = *in.Notes
		}
		shift.SyncDuration()
		shift.UpdatedAt = l.now()
		if err := s.Shifts.Upsert(ctx, shift); err != nil {
			return err
		}

		if shift.Status == StatusApproved {
			alerts, err := l.recomputeAround(ctx, s, shift, oldDate)
			if err != nil {
				return err
			}
			events = append(events, alerts...)
		}
		events = append(events, l.shiftEvent(EventShiftUpdated, shift, in.Actor, map[string]any{
			"changes": changes,
		}))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return shift, events, nil
}

// Cancel transitions PENDING or APPROVED -> CANCELLED. Only the owning PA
// or an admin may cancel. Cancelling an approved shift recomputes the
// date's coverage and the PA's week, and the emitted event flags any
// critical window the shift had been covering (checked against the shift
// itself, before removal).
func (l *Lifecycle) Cancel(ctx context.Context, id ShiftID, actor string, admin bool) (*ShiftRequest, []Event, error) {
	var (
		shift  *ShiftRequest
		events []Event
	)
	err := l.Runner.WithTx(ctx, func(s Stores) error {
		var err error
		shift, err = s.Shifts.Get(ctx, id)
		if err != nil {
			return err
		}
		if shift == nil {
			return fmt.Errorf("%w: %s", ErrShiftNotFound, id)
		}
		if !admin && actor != string(shift.PA) {
			return fmt.Errorf("%w: shift %s", ErrNotOwner, id)
		}
		if shift.Status != StatusPending && shift.Status != StatusApproved {
			return &StateTransitionError{ShiftID: id, From: shift.Status, To: StatusCancelled}
		}

		wasApproved := shift.Status == StatusApproved
		coveredMorning := wasApproved && l.Coverage.CoversMorning(shift)
		coveredEvening := wasApproved && l.Coverage.CoversEvening(shift)

		shift.Status = StatusCancelled
		shift.UpdatedAt = l.now()
		if err := s.Shifts.Upsert(ctx, shift); err != nil {
			return err
		}

		if wasApproved {
			alerts, err := l.recomputeAround(ctx, s, shift, shift.Date)
			if err != nil {
				return err
			}
			events = append(events, alerts...)
		}
		events = append(events, l.shiftEvent(EventShiftCancelled, shift, actor, map[string]any{
			"was_approved":         wasApproved,
			"coverage_gap_warning": coveredMorning || coveredEvening,
			"covered_morning":      coveredMorning,
			"covered_evening":      coveredEvening,
		}))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return shift, events, nil
}

// =============================================================================
// RECOMPUTE PLUMBING
// =============================================================================

// recomputeCoverage rebuilds a date's coverage record from its approved
// shifts, inside the ambient transaction. Returns the record before and
// after.
func (l *Lifecycle) recomputeCoverage(ctx context.Context, s Stores, date time.Time) (before, after CriticalTimeCoverage, err error) {
	rec, err := s.Coverage.GetOrCreateCoverage(ctx, date)
	if err != nil {
		return before, after, err
	}
	before = *rec

	approved, err := s.Shifts.ApprovedOnDate(ctx, date)
	if err != nil {
		return before, after, err
	}
	next := l.Coverage.Recompute(date, approved)
	rec.MorningCovered = next.MorningCovered
	rec.EveningCovered = next.EveningCovered
	rec.MorningShift = next.MorningShift
	rec.EveningShift = next.EveningShift
	rec.UpdatedAt = l.now()
	if err := s.Coverage.SaveCoverage(ctx, rec); err != nil {
		return before, after, err
	}
	return before, *rec, nil
}

// recomputeWeekly rebuilds the PA's weekly record for the week containing
// date. When the week no longer holds approved shifts, an existing record
// is zeroed in place (keeping its key) rather than left stale.
func (l *Lifecycle) recomputeWeekly(ctx context.Context, s Stores, pa PAID, date time.Time) (*WeeklyCoverage, error) {
	weekStart := WeekStart(date)
	weekEnd := weekStart.AddDate(0, 0, 6)

	shifts, err := s.Shifts.List(ctx, ShiftFilter{
		PA:       &pa,
		Statuses: []ShiftStatus{StatusApproved},
		From:     &weekStart,
		To:       &weekEnd,
	})
	if err != nil {
		return nil, err
	}
	limit, err := s.Limits.WeeklyLimit(ctx, pa)
	if err != nil {
		return nil, err
	}
	next := l.Weekly.Recompute(pa, weekStart, shifts, limit)

	if next.PeriodID == "" {
		existing, err := s.Weekly.FindWeekly(ctx, pa, weekStart)
		if err != nil || existing == nil {
			return existing, err
		}
		existing.TotalHours = next.TotalHours
		existing.ExceedsLimit = false
		existing.UpdatedAt = l.now()
		return existing, s.Weekly.SaveWeekly(ctx, existing)
	}

	rec, err := s.Weekly.GetOrCreateWeekly(ctx, next.PeriodID, pa, weekStart)
	if err != nil {
		return nil, err
	}
	rec.TotalHours = next.TotalHours
	rec.ExceedsLimit = next.ExceedsLimit
	rec.UpdatedAt = l.now()
	return rec, s.Weekly.SaveWeekly(ctx, rec)
}

// recomputeAround refreshes derived state after a change to an approved
// shift: coverage for the old date and (when moved) the new date, weekly
// hours for both weeks touched. Emits coverage.alert events for windows
// this shift was recorded as covering that are now uncovered.
func (l *Lifecycle) recomputeAround(ctx context.Context, s Stores, shift *ShiftRequest, oldDate time.Time) ([]Event, error) {
	var events []Event

	before, after, err := l.recomputeCoverage(ctx, s, oldDate)
	if err != nil {
		return nil, err
	}
	events = append(events, l.coverageAlerts(shift, oldDate, before, after)...)

	if !DateOf(shift.Date).Equal(DateOf(oldDate)) {
		if _, _, err := l.recomputeCoverage(ctx, s, shift.Date); err != nil {
			return nil, err
		}
	}

	if _, err := l.recomputeWeekly(ctx, s, shift.PA, oldDate); err != nil {
		return nil, err
	}
	if !WeekStart(shift.Date).Equal(WeekStart(oldDate)) {
		if _, err := l.recomputeWeekly(ctx, s, shift.PA, shift.Date); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// coverageAlerts compares a date's coverage before and after a recompute
// and reports windows that this shift was covering and nobody picked up.
func (l *Lifecycle) coverageAlerts(shift *ShiftRequest, date time.Time, before, after CriticalTimeCoverage) []Event {
	var events []Event
	lost := func(window string) Event {
		return Event{
			Type:     EventCoverageAlert,
			ShiftID:  shift.ID,
			PeriodID: shift.PeriodID,
			At:       l.now(),
			Payload: map[string]any{
				"date":   FormatDate(date),
				"window": window,
				"status": string(after.CoverageStatus()),
			},
		}
	}
	if before.MorningShift != nil && *before.MorningShift == shift.ID && !after.MorningCovered {
		events = append(events, lost("morning"))
	}
	if before.EveningShift != nil && *before.EveningShift == shift.ID && !after.EveningCovered {
		events = append(events, lost("evening"))
	}
	return events
}

// =============================================================================
// EVENT BUILDING
// =============================================================================

func (l *Lifecycle) shiftEvent(t EventType, s *ShiftRequest, actor string, extra map[string]any) Event {
	payload := map[string]any{
		"pa":     string(s.PA),
		"date":   FormatDate(s.Date),
		"start":  s.Start.String(),
		"end":    s.End.String(),
		"status": string(s.Status),
	}
	for k, v := range extra {
		payload[k] = v
	}
	return Event{
		Type:     t,
		ShiftID:  s.ID,
		PeriodID: s.PeriodID,
		Actor:    actor,
		At:       l.now(),
		Payload:  payload,
	}
}

func approvalPayload(s *ShiftRequest, weekly *WeeklyCoverage) map[string]any {
	payload := map[string]any{}
	if weekly != nil {
		payload["weekly_hours"] = weekly.TotalHours.String()
		payload["exceeds_limit"] = weekly.ExceedsLimit
	}
	return payload
}

// diffShift records which schedulable fields an edit changed.
func diffShift(s *ShiftRequest, date time.Time, start, end TimeOfDay) map[string]any {
	changes := map[string]any{}
	if !DateOf(s.Date).Equal(DateOf(date)) {
		changes["date"] = map[string]string{"from": FormatDate(s.Date), "to": FormatDate(date)}
	}
	if s.Start != start {
		changes["start"] = map[string]string{"from": s.Start.String(), "to": start.String()}
	}
	if s.End != end {
		changes["end"] = map[string]string{"from": s.End.String(), "to": end.String()}
	}
	return changes
}
