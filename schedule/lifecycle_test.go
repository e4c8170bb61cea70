package schedule_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/schedule/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// newTestEngine wires a lifecycle over the in-memory store with
// deterministic IDs ("shift-1", "shift-2", ...) and a fixed clock.
func newTestEngine(t *testing.T) (*schedule.Lifecycle, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	engine := schedule.NewLifecycle(mem)

	var shiftSeq, periodSeq int
	engine.NewShiftID = func() schedule.ShiftID {
		shiftSeq++
		return schedule.ShiftID(fmt.Sprintf("shift-%d", shiftSeq))
	}
	engine.NewPeriodID = func() schedule.PeriodID {
		periodSeq++
		return schedule.PeriodID(fmt.Sprintf("period-%d", periodSeq))
	}
	engine.Now = func() time.Time {
		return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return engine, mem
}

// openPeriod creates a period spanning March 2025.
func openPeriod(t *testing.T, engine *schedule.Lifecycle) *schedule.SchedulePeriod {
	t.Helper()
	period, err := engine.CreatePeriod(context.Background(), schedule.PeriodInput{
		Name:      "March 2025",
		StartDate: date(2025, time.March, 1),
		EndDate:   date(2025, time.March, 31),
		Actor:     "admin",
	})
	require.NoError(t, err)
	return period
}

func submit(t *testing.T, engine *schedule.Lifecycle, periodID schedule.PeriodID, pa string, d time.Time, start, end schedule.TimeOfDay) *schedule.ShiftRequest {
	t.Helper()
	shift, _, err := engine.Create(context.Background(), schedule.CreateInput{
		PeriodID: periodID,
		PA:       schedule.PAID(pa),
		Date:     d,
		Start:    start,
		End:      end,
		Actor:    pa,
	})
	require.NoError(t, err)
	return shift
}

func eventTypes(events []schedule.Event) []schedule.EventType {
	types := make([]schedule.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// =============================================================================
// CREATION
// =============================================================================

func TestCreate_PendingByDefault(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	shift, events, err := engine.Create(context.Background(), schedule.CreateInput{
		PeriodID: period.ID,
		PA:       "pa-1",
		Date:     date(2025, time.March, 10),
		Start:    tod(9, 0),
		End:      tod(17, 0),
		Notes:    "regular day",
		Actor:    "pa-1",
	})
	require.NoError(t, err)

	assert.Equal(t, schedule.StatusPending, shift.Status)
	assert.True(t, shift.DurationHours.Equal(dec(8)))
	assert.Equal(t, []schedule.EventType{schedule.EventShiftRequested}, eventTypes(events))
}

func TestCreate_OutsidePeriodBounds(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	_, _, err := engine.Create(context.Background(), schedule.CreateInput{
		PeriodID: period.ID,
		PA:       "pa-1",
		Date:     date(2025, time.April, 1),
		Start:    tod(9, 0),
		End:      tod(17, 0),
		Actor:    "pa-1",
	})
	assert.ErrorIs(t, err, schedule.ErrOutOfPeriodBounds)
}

func TestCreate_DuplicateIdenticalPendingRejected(t *testing.T) {
	// GIVEN: pa-1 already has a pending request for the exact slot
	// WHEN: They submit it again
	// THEN: ErrDuplicateRequest, not a generic conflict
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10)

	submit(t, engine, period.ID, "pa-1", d, tod(9, 0), tod(17, 0))

	_, _, err := engine.Create(context.Background(), schedule.CreateInput{
		PeriodID: period.ID,
		PA:       "pa-1",
		Date:     d,
		Start:    tod(9, 0),
		End:      tod(17, 0),
		Actor:    "pa-1",
	})
	assert.ErrorIs(t, err, schedule.ErrDuplicateRequest)
}

func TestCreate_OwnPendingOverlapBlocks(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10)

	submit(t, engine, period.ID, "pa-1", d, tod(9, 0), tod(17, 0))

	// Overlapping but not identical: still blocked for the same PA.
	_, _, err := engine.Create(context.Background(), schedule.CreateInput{
		PeriodID: period.ID,
		PA:       "pa-1",
		Date:     d,
		Start:    tod(12, 0),
		End:      tod(20, 0),
		Actor:    "pa-1",
	})
	assert.ErrorIs(t, err, schedule.ErrConflict)

	// A different PA may compete for the overlapping slot.
	_, _, err = engine.Create(context.Background(), schedule.CreateInput{
		PeriodID: period.ID,
		PA:       "pa-2",
		Date:     d,
		Start:    tod(12, 0),
		End:      tod(20, 0),
		Actor:    "pa-2",
	})
	assert.NoError(t, err)
}

func TestCreate_ApprovedShiftBlocksEveryPA(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10)

	s := submit(t, engine, period.ID, "pa-1", d, tod(9, 0), tod(17, 0))
	_, _, err := engine.Approve(context.Background(), s.ID, "admin", "")
	require.NoError(t, err)

	_, _, err = engine.Create(context.Background(), schedule.CreateInput{
		PeriodID: period.ID,
		PA:       "pa-2",
		Date:     d,
		Start:    tod(16, 0),
		End:      tod(20, 0),
		Actor:    "pa-2",
	})
	var conflict *schedule.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, s.ID, conflict.ShiftID)
}

func TestCreate_AdminDirectSkipsQueue(t *testing.T) {
	engine, mem := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10)

	shift, events, err := engine.Create(context.Background(), schedule.CreateInput{
		PeriodID:    period.ID,
		PA:          "pa-1",
		Date:        d,
		Start:       tod(6, 0),
		End:         tod(14, 0),
		AdminDirect: true,
		Actor:       "admin",
	})
	require.NoError(t, err)

	assert.Equal(t, schedule.StatusApproved, shift.Status)
	require.NotNil(t, shift.ApprovedBy)
	assert.Equal(t, "admin", *shift.ApprovedBy)
	assert.Equal(t, []schedule.EventType{schedule.EventShiftApproved}, eventTypes(events))

	// Derived state exists immediately.
	cov, err := mem.GetCoverage(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, cov)
	assert.True(t, cov.MorningCovered)
}

func TestCreate_PeriodNotOpen(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	_, err := engine.Lock(context.Background(), period.ID)
	require.NoError(t, err)

	_, _, err = engine.Create(context.Background(), schedule.CreateInput{
		PeriodID: period.ID,
		PA:       "pa-1",
		Date:     date(2025, time.March, 10),
		Start:    tod(9, 0),
		End:      tod(17, 0),
		Actor:    "pa-1",
	})
	assert.ErrorIs(t, err, schedule.ErrPeriodNotOpen)
}

// =============================================================================
// APPROVE / REJECT
// =============================================================================

func TestApprove_UpdatesCoverageAndWeekly(t *testing.T) {
	engine, mem := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10) // a Monday

	s := submit(t, engine, period.ID, "pa-1", d, tod(6, 0), tod(14, 0))
	shift, events, err := engine.Approve(context.Background(), s.ID, "admin", "note")
	require.NoError(t, err)

	assert.Equal(t, schedule.StatusApproved, shift.Status)
	assert.Equal(t, "note", shift.AdminNotes)
	assert.Equal(t, []schedule.EventType{schedule.EventShiftApproved}, eventTypes(events))

	cov, err := mem.GetCoverage(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, cov)
	assert.True(t, cov.MorningCovered)
	assert.Equal(t, s.ID, *cov.MorningShift)
	assert.False(t, cov.EveningCovered)

	weekly, err := mem.FindWeekly(context.Background(), "pa-1", d)
	require.NoError(t, err)
	require.NotNil(t, weekly)
	assert.True(t, weekly.TotalHours.Equal(dec(8)))
	assert.False(t, weekly.ExceedsLimit)
}

func TestApprove_CompetingRequestLosesAfterFirstApproval(t *testing.T) {
	// GIVEN: Two PAs with pending requests for overlapping slots
	// WHEN: The first is approved
	// THEN: Approving the second fails with a conflict, leaving it pending
	engine, mem := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10)

	first := submit(t, engine, period.ID, "pa-1", d, tod(9, 0), tod(17, 0))
	second := submit(t, engine, period.ID, "pa-2", d, tod(12, 0), tod(20, 0))

	_, _, err := engine.Approve(context.Background(), first.ID, "admin", "")
	require.NoError(t, err)

	_, _, err = engine.Approve(context.Background(), second.ID, "admin", "")
	assert.ErrorIs(t, err, schedule.ErrConflict)

	got, err := mem.Get(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusPending, got.Status, "failed approval must not change status")
}

func TestApprove_NonPendingFails(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	s := submit(t, engine, period.ID, "pa-1", date(2025, time.March, 10), tod(9, 0), tod(17, 0))
	_, _, err := engine.Reject(context.Background(), s.ID, "admin", "not needed")
	require.NoError(t, err)

	_, _, err = engine.Approve(context.Background(), s.ID, "admin", "")
	assert.ErrorIs(t, err, schedule.ErrInvalidStateTransition)
}

func TestReject_RequiresReason(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	s := submit(t, engine, period.ID, "pa-1", date(2025, time.March, 10), tod(9, 0), tod(17, 0))

	_, _, err := engine.Reject(context.Background(), s.ID, "admin", "")
	assert.ErrorIs(t, err, schedule.ErrReasonRequired)

	shift, events, err := engine.Reject(context.Background(), s.ID, "admin", "shift not needed")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusRejected, shift.Status)
	assert.Equal(t, "shift not needed", shift.RejectedReason)
	assert.Equal(t, []schedule.EventType{schedule.EventShiftRejected}, eventTypes(events))
}

func TestOvertime_FlaggedNotBlocked(t *testing.T) {
	// GIVEN: 35 approved hours in a week
	// WHEN: A 7h shift is approved, pushing the total to 42
	// THEN: The approval succeeds with exceeds_limit in the payload
	engine, mem := newTestEngine(t)
	period := openPeriod(t, engine)
	monday := date(2025, time.March, 10)

	for i := 0; i < 5; i++ {
		s := submit(t, engine, period.ID, "pa-1", monday.AddDate(0, 0, i), tod(8, 0), tod(15, 0))
		_, _, err := engine.Approve(context.Background(), s.ID, "admin", "")
		require.NoError(t, err)
	}

	sat := submit(t, engine, period.ID, "pa-1", monday.AddDate(0, 0, 5), tod(8, 0), tod(15, 0))
	_, events, err := engine.Approve(context.Background(), sat.ID, "admin", "")
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "42", events[0].Payload["weekly_hours"])
	assert.Equal(t, true, events[0].Payload["exceeds_limit"])

	weekly, err := mem.FindWeekly(context.Background(), "pa-1", monday)
	require.NoError(t, err)
	assert.True(t, weekly.ExceedsLimit)
}

func TestOvertime_CustomPALimit(t *testing.T) {
	engine, mem := newTestEngine(t)
	period := openPeriod(t, engine)
	monday := date(2025, time.March, 10)

	require.NoError(t, mem.SavePA(context.Background(), schedule.PA{
		ID:              "pa-1",
		Name:            "Part-timer",
		MaxHoursPerWeek: decimal.NewFromInt(20),
	}))

	a := submit(t, engine, period.ID, "pa-1", monday, tod(6, 0), tod(18, 0)) // 12h
	_, _, err := engine.Approve(context.Background(), a.ID, "admin", "")
	require.NoError(t, err)

	b := submit(t, engine, period.ID, "pa-1", monday.AddDate(0, 0, 1), tod(6, 0), tod(18, 0))
	_, _, err = engine.Approve(context.Background(), b.ID, "admin", "")
	require.NoError(t, err)

	weekly, err := mem.FindWeekly(context.Background(), "pa-1", monday)
	require.NoError(t, err)
	assert.True(t, weekly.TotalHours.Equal(dec(24)))
	assert.True(t, weekly.ExceedsLimit, "24h exceeds the 20h personal limit")
}

// =============================================================================
// CANCEL
// =============================================================================

func TestCancel_ApprovedRevertsCoverage(t *testing.T) {
	// GIVEN: An approved morning shift recorded as the day's coverage
	// WHEN: It is cancelled
	// THEN: Coverage and weekly hours revert, and a coverage.alert fires
	engine, mem := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10)

	s := submit(t, engine, period.ID, "pa-1", d, tod(6, 0), tod(14, 0))
	_, _, err := engine.Approve(context.Background(), s.ID, "admin", "")
	require.NoError(t, err)

	shift, events, err := engine.Cancel(context.Background(), s.ID, "pa-1", false)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusCancelled, shift.Status)

	types := eventTypes(events)
	assert.Contains(t, types, schedule.EventCoverageAlert)
	assert.Contains(t, types, schedule.EventShiftCancelled)

	var cancelled schedule.Event
	for _, e := range events {
		if e.Type == schedule.EventShiftCancelled {
			cancelled = e
		}
	}
	assert.Equal(t, true, cancelled.Payload["was_approved"])
	assert.Equal(t, true, cancelled.Payload["coverage_gap_warning"])
	assert.Equal(t, true, cancelled.Payload["covered_morning"])
	assert.Equal(t, false, cancelled.Payload["covered_evening"])

	cov, err := mem.GetCoverage(context.Background(), d)
	require.NoError(t, err)
	assert.False(t, cov.MorningCovered)
	assert.Nil(t, cov.MorningShift)

	weekly, err := mem.FindWeekly(context.Background(), "pa-1", d)
	require.NoError(t, err)
	assert.True(t, weekly.TotalHours.IsZero())
	assert.False(t, weekly.ExceedsLimit)
}

func TestCancel_PendingNoAlert(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	s := submit(t, engine, period.ID, "pa-1", date(2025, time.March, 10), tod(6, 0), tod(14, 0))
	shift, events, err := engine.Cancel(context.Background(), s.ID, "pa-1", false)
	require.NoError(t, err)

	assert.Equal(t, schedule.StatusCancelled, shift.Status)
	assert.Equal(t, []schedule.EventType{schedule.EventShiftCancelled}, eventTypes(events))
	assert.Equal(t, false, events[0].Payload["was_approved"])
	assert.Equal(t, false, events[0].Payload["coverage_gap_warning"])
}

func TestCancel_OnlyOwnerOrAdmin(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	s := submit(t, engine, period.ID, "pa-1", date(2025, time.March, 10), tod(9, 0), tod(17, 0))

	_, _, err := engine.Cancel(context.Background(), s.ID, "pa-2", false)
	assert.ErrorIs(t, err, schedule.ErrNotOwner)

	_, _, err = engine.Cancel(context.Background(), s.ID, "someone-else", true)
	assert.NoError(t, err, "admins may cancel any shift")
}

func TestCancel_ReplacementRestoresCoverage(t *testing.T) {
	// Cancel the morning holder, approve a replacement: the coverage
	// record points at the new shift.
	engine, mem := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10)

	a := submit(t, engine, period.ID, "pa-1", d, tod(6, 0), tod(14, 0))
	_, _, err := engine.Approve(context.Background(), a.ID, "admin", "")
	require.NoError(t, err)

	_, _, err = engine.Cancel(context.Background(), a.ID, "pa-1", false)
	require.NoError(t, err)

	b := submit(t, engine, period.ID, "pa-2", d, tod(5, 0), tod(13, 0))
	_, _, err = engine.Approve(context.Background(), b.ID, "admin", "")
	require.NoError(t, err)

	cov, err := mem.GetCoverage(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, cov.MorningCovered)
	assert.Equal(t, b.ID, *cov.MorningShift)
}

// =============================================================================
// EDIT
// =============================================================================

func TestEdit_MovesApprovedShiftAcrossDates(t *testing.T) {
	engine, mem := newTestEngine(t)
	period := openPeriod(t, engine)
	oldDate := date(2025, time.March, 10)
	newDate := date(2025, time.March, 20) // different week

	s := submit(t, engine, period.ID, "pa-1", oldDate, tod(6, 0), tod(14, 0))
	_, _, err := engine.Approve(context.Background(), s.ID, "admin", "")
	require.NoError(t, err)

	shift, events, err := engine.Edit(context.Background(), s.ID, schedule.EditInput{
		Date:  newDate,
		Start: tod(6, 0),
		End:   tod(14, 0),
		Actor: "pa-1",
	})
	require.NoError(t, err)
	assert.Equal(t, newDate, shift.Date)
	assert.Contains(t, eventTypes(events), schedule.EventShiftUpdated)
	// The old date lost its only morning cover.
	assert.Contains(t, eventTypes(events), schedule.EventCoverageAlert)

	oldCov, err := mem.GetCoverage(context.Background(), oldDate)
	require.NoError(t, err)
	assert.False(t, oldCov.MorningCovered)

	newCov, err := mem.GetCoverage(context.Background(), newDate)
	require.NoError(t, err)
	assert.True(t, newCov.MorningCovered)

	// Weekly hours moved between the two weeks.
	oldWeek, err := mem.FindWeekly(context.Background(), "pa-1", oldDate)
	require.NoError(t, err)
	assert.True(t, oldWeek.TotalHours.IsZero())

	newWeek, err := mem.FindWeekly(context.Background(), "pa-1", newDate)
	require.NoError(t, err)
	assert.True(t, newWeek.TotalHours.Equal(dec(8)))
}

func TestEdit_OwnerOnlyUnlessAdmin(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	s := submit(t, engine, period.ID, "pa-1", date(2025, time.March, 10), tod(9, 0), tod(17, 0))

	_, _, err := engine.Edit(context.Background(), s.ID, schedule.EditInput{
		Date:  date(2025, time.March, 11),
		Start: tod(9, 0),
		End:   tod(17, 0),
		Actor: "pa-2",
	})
	assert.ErrorIs(t, err, schedule.ErrNotOwner)
}

func TestEdit_ConflictAtNewSlot(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)
	d := date(2025, time.March, 10)

	blocker := submit(t, engine, period.ID, "pa-2", d, tod(9, 0), tod(17, 0))
	_, _, err := engine.Approve(context.Background(), blocker.ID, "admin", "")
	require.NoError(t, err)

	s := submit(t, engine, period.ID, "pa-1", date(2025, time.March, 11), tod(9, 0), tod(17, 0))
	_, _, err = engine.Edit(context.Background(), s.ID, schedule.EditInput{
		Date:  d,
		Start: tod(10, 0),
		End:   tod(18, 0),
		Actor: "pa-1",
	})
	assert.ErrorIs(t, err, schedule.ErrConflict)
}

// =============================================================================
// PERIOD LIFECYCLE
// =============================================================================

func TestPeriod_LockThenFinalize(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	locked, err := engine.Lock(context.Background(), period.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.PeriodLocked, locked.Status)

	// Locking twice fails.
	_, err = engine.Lock(context.Background(), period.ID)
	assert.ErrorIs(t, err, schedule.ErrInvalidStateTransition)
}

func TestFinalize_BulkRejectsPendingAndReportsGaps(t *testing.T) {
	// GIVEN: A period with one approved full-coverage day and two
	//        pending requests
	// WHEN: The period is finalized
	// THEN: Pending requests become REJECTED ("period finalized"), the
	//       approved shift is untouched, and the event reports every
	//       date with an uncovered window
	engine, mem := newTestEngine(t)
	ctx := context.Background()

	period, err := engine.CreatePeriod(ctx, schedule.PeriodInput{
		Name:      "Short week",
		StartDate: date(2025, time.March, 10),
		EndDate:   date(2025, time.March, 12),
		Actor:     "admin",
	})
	require.NoError(t, err)

	covered := submit(t, engine, period.ID, "pa-1", date(2025, time.March, 10), tod(6, 0), tod(22, 0))
	_, _, err = engine.Approve(ctx, covered.ID, "admin", "")
	require.NoError(t, err)

	p1 := submit(t, engine, period.ID, "pa-1", date(2025, time.March, 11), tod(9, 0), tod(17, 0))
	p2 := submit(t, engine, period.ID, "pa-2", date(2025, time.March, 12), tod(9, 0), tod(17, 0))

	final, events, err := engine.Finalize(ctx, period.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, schedule.PeriodFinalized, final.Status)

	for _, id := range []schedule.ShiftID{p1.ID, p2.ID} {
		got, err := mem.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, schedule.StatusRejected, got.Status)
		assert.Equal(t, "period finalized", got.RejectedReason)
	}
	keeper, err := mem.Get(ctx, covered.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusApproved, keeper.Status)

	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, schedule.EventPeriodFinalized, e.Type)
	assert.Equal(t, 2, e.Payload["rejected_pending"])

	gaps, ok := e.Payload["coverage_gaps"].([]map[string]any)
	require.True(t, ok)
	// March 10 is fully covered; 11 and 12 are not.
	require.Len(t, gaps, 2)
	assert.Equal(t, "2025-03-11", gaps[0]["date"])
	assert.Equal(t, "2025-03-12", gaps[1]["date"])
}

func TestFinalize_Twice(t *testing.T) {
	engine, _ := newTestEngine(t)
	period := openPeriod(t, engine)

	_, _, err := engine.Finalize(context.Background(), period.ID, "admin")
	require.NoError(t, err)

	_, _, err = engine.Finalize(context.Background(), period.ID, "admin")
	assert.ErrorIs(t, err, schedule.ErrInvalidStateTransition)
}

func TestCreatePeriod_EndBeforeStart(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CreatePeriod(context.Background(), schedule.PeriodInput{
		Name:      "Backwards",
		StartDate: date(2025, time.March, 31),
		EndDate:   date(2025, time.March, 1),
		Actor:     "admin",
	})
	assert.ErrorIs(t, err, schedule.ErrInvalidPeriod)
}

func TestUnknownShift(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, _, err := engine.Approve(context.Background(), "missing", "admin", "")
	assert.True(t, errors.Is(err, schedule.ErrShiftNotFound))
}
