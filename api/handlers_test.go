/*
handlers_test.go - HTTP API tests

Tests run against the full router with an in-memory SQLite store, so
they cover routing, identity headers, JSON codecs, and the lifecycle
engine together.
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewRouter(NewHandler(store))
}

// do performs a request as the given actor. Role "admin" grants admin
// endpoints; anything else is a regular PA.
func do(t *testing.T, router http.Handler, method, path string, body any, who, role string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if who != "" {
		req.Header.Set("X-Actor", who)
	}
	if role != "" {
		req.Header.Set("X-Actor-Role", role)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func mustCreatePeriod(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := do(t, router, "POST", "/api/periods", CreatePeriodRequest{
		Name:      "June 2025",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	}, "admin", "admin")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[PeriodDTO](t, rec).ID
}

func mustCreateShift(t *testing.T, router http.Handler, periodID, pa, date, start, end string) ShiftDTO {
	t.Helper()
	rec := do(t, router, "POST", "/api/shifts", CreateShiftRequest{
		PeriodID:  periodID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, pa, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[ShiftDTO](t, rec)
}

// =============================================================================
// SHIFT LIFECYCLE
// =============================================================================

func TestShiftLifecycle_RequestApproveConflict(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)

	// GIVEN: pa-1 requests the morning shift
	shift := mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "06:00", "14:00")
	assert.Equal(t, "PENDING", shift.Status)
	assert.Equal(t, "pa-1", shift.PAID)
	assert.Equal(t, 8.0, shift.DurationHours)

	// It shows up in the pending queue
	rec := do(t, router, "GET", "/api/shifts/pending", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	queue := decode[map[string][]ShiftDTO](t, rec)
	require.Len(t, queue["requests"], 1)

	// WHEN: an admin approves it
	rec = do(t, router, "POST", "/api/shifts/"+shift.ID+"/approve", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "APPROVED", decode[ShiftDTO](t, rec).Status)

	// THEN: the morning window is covered
	rec = do(t, router, "GET", "/api/coverage?date=2025-06-02", nil, "pa-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cov := decode[CoverageDTO](t, rec)
	assert.True(t, cov.MorningCovered)
	assert.False(t, cov.EveningCovered)
	assert.Equal(t, "partial", cov.Status)

	// And the week shows the hours
	rec = do(t, router, "GET", "/api/coverage/weekly?pa_id=pa-1&date=2025-06-02", nil, "pa-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	weekly := decode[WeeklyDTO](t, rec)
	assert.Equal(t, 8.0, weekly.TotalHours)
	assert.False(t, weekly.ExceedsLimit)

	// AND: an overlapping request from another PA is now rejected outright
	rec = do(t, router, "POST", "/api/shifts", CreateShiftRequest{
		PeriodID:  periodID,
		Date:      "2025-06-02",
		StartTime: "10:00",
		EndTime:   "18:00",
	}, "pa-2", "")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestApproveShift_RequiresAdmin(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)
	shift := mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "09:00", "17:00")

	rec := do(t, router, "POST", "/api/shifts/"+shift.ID+"/approve", nil, "pa-1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRejectShift_RequiresReason(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)
	shift := mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "09:00", "17:00")

	rec := do(t, router, "POST", "/api/shifts/"+shift.ID+"/reject",
		RejectShiftRequest{}, "admin", "admin")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = do(t, router, "POST", "/api/shifts/"+shift.ID+"/reject",
		RejectShiftRequest{Reason: "coverage already arranged"}, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	rejected := decode[ShiftDTO](t, rec)
	assert.Equal(t, "REJECTED", rejected.Status)
	assert.Equal(t, "coverage already arranged", rejected.RejectedReason)
}

func TestCreateShift_ForAnotherPAIsForbidden(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)

	rec := do(t, router, "POST", "/api/shifts", CreateShiftRequest{
		PeriodID:  periodID,
		PAID:      "pa-2",
		Date:      "2025-06-02",
		StartTime: "09:00",
		EndTime:   "17:00",
	}, "pa-1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateShift_AdminDirectSkipsQueue(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)

	rec := do(t, router, "POST", "/api/shifts", CreateShiftRequest{
		PeriodID:    periodID,
		PAID:        "pa-1",
		Date:        "2025-06-02",
		StartTime:   "21:00",
		EndTime:     "22:00",
		AdminDirect: true,
	}, "admin", "admin")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "APPROVED", decode[ShiftDTO](t, rec).Status)

	// Non-admins cannot use admin_direct.
	rec = do(t, router, "POST", "/api/shifts", CreateShiftRequest{
		PeriodID:    periodID,
		Date:        "2025-06-03",
		StartTime:   "09:00",
		EndTime:     "17:00",
		AdminDirect: true,
	}, "pa-1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEditShift_KeepsOmittedFields(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)
	shift := mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "09:00", "17:00")

	// Only the date changes; the times carry over.
	rec := do(t, router, "PATCH", "/api/shifts/"+shift.ID,
		EditShiftRequest{Date: "2025-06-03"}, "pa-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	edited := decode[ShiftDTO](t, rec)
	assert.Equal(t, "2025-06-03", edited.Date)
	assert.Equal(t, "09:00", edited.StartTime)
	assert.Equal(t, "17:00", edited.EndTime)
}

func TestCancelShift_OwnerOnly(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)
	shift := mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "09:00", "17:00")

	rec := do(t, router, "DELETE", "/api/shifts/"+shift.ID, nil, "pa-2", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, "DELETE", "/api/shifts/"+shift.ID, nil, "pa-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CANCELLED", decode[ShiftDTO](t, rec).Status)
}

func TestGetShift_NotFound(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, "GET", "/api/shifts/does-not-exist", nil, "pa-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// PERIODS
// =============================================================================

func TestFinalizePeriod_BulkRejectsPending(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)

	approved := mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "06:00", "14:00")
	rec := do(t, router, "POST", "/api/shifts/"+approved.ID+"/approve", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)

	pending := mustCreateShift(t, router, periodID, "pa-2", "2025-06-03", "09:00", "17:00")

	rec = do(t, router, "POST", "/api/periods/"+periodID+"/finalize", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[FinalizeResponse](t, rec)
	assert.Equal(t, "FINALIZED", resp.Period.Status)
	assert.Equal(t, 1, resp.RejectedPending)
	assert.NotEmpty(t, resp.CoverageGaps, "uncovered dates are reported")

	rec = do(t, router, "GET", "/api/shifts/"+pending.ID, nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "REJECTED", decode[ShiftDTO](t, rec).Status)

	rec = do(t, router, "GET", "/api/shifts/"+approved.ID, nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "APPROVED", decode[ShiftDTO](t, rec).Status)

	// Finalizing twice is a state error.
	rec = do(t, router, "POST", "/api/periods/"+periodID+"/finalize", nil, "admin", "admin")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLockPeriod_BlocksNewRequests(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)

	rec := do(t, router, "POST", "/api/periods/"+periodID+"/lock", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "LOCKED", decode[PeriodDTO](t, rec).Status)

	rec = do(t, router, "POST", "/api/shifts", CreateShiftRequest{
		PeriodID:  periodID,
		Date:      "2025-06-02",
		StartTime: "09:00",
		EndTime:   "17:00",
	}, "pa-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestCreatePeriod_RequiresAdmin(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, "POST", "/api/periods", CreatePeriodRequest{
		Name:      "June 2025",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	}, "pa-1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// =============================================================================
// CALENDAR
// =============================================================================

func TestCalendarDay(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)

	shift := mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "06:00", "14:00")
	rec := do(t, router, "POST", "/api/shifts/"+shift.ID+"/approve", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, "GET", "/api/calendar/day/2025-06-02", nil, "pa-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	day := decode[CalendarDayDTO](t, rec)
	assert.Equal(t, "2025-06-02", day.Date)
	require.Len(t, day.Shifts, 1)
	assert.True(t, day.Coverage.MorningCovered)

	// The 06:00-14:00 shift fills the timeline up to (not including) 14:00.
	require.Len(t, day.Timeline, 18)
	assert.Equal(t, "06:00", day.Timeline[0].Hour)
	assert.Equal(t, []string{shift.ID}, day.Timeline[0].ShiftIDs)
	assert.Empty(t, day.Timeline[8].ShiftIDs) // 14:00
}

func TestCalendarMonth(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)
	mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "09:00", "17:00")

	rec := do(t, router, "GET", "/api/calendar/month/2025/6", nil, "pa-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cal := decode[CalendarDTO](t, rec)
	assert.Equal(t, "2025-06-01", cal.From)
	assert.Equal(t, "2025-06-30", cal.To)
	assert.Len(t, cal.Days, 30)
}

// =============================================================================
// PA REGISTRY
// =============================================================================

func TestPARegistry(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, "POST", "/api/pas", CreatePARequest{
		ID: "pa-anna", Name: "Anna", MaxHoursPerWeek: 30,
	}, "admin", "admin")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Non-admins cannot register PAs.
	rec = do(t, router, "POST", "/api/pas", CreatePARequest{Name: "Erik"}, "pa-1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A name is mandatory.
	rec = do(t, router, "POST", "/api/pas", CreatePARequest{}, "admin", "admin")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, "GET", "/api/pas/pa-anna", nil, "pa-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	pa := decode[PADTO](t, rec)
	assert.Equal(t, "Anna", pa.Name)
	assert.Equal(t, 30.0, pa.MaxHoursPerWeek)

	rec = do(t, router, "GET", "/api/pas/nope", nil, "pa-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// EVENT FEED
// =============================================================================

func TestEventFeedRecordsLifecycle(t *testing.T) {
	router := newTestRouter(t)
	periodID := mustCreatePeriod(t, router)
	shift := mustCreateShift(t, router, periodID, "pa-1", "2025-06-02", "06:00", "14:00")
	rec := do(t, router, "POST", "/api/shifts/"+shift.ID+"/approve", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, "GET", "/api/events?type=shift.approved", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[map[string][]EventDTO](t, rec)
	require.Len(t, feed["events"], 1)
	assert.Equal(t, shift.ID, feed["events"][0].ShiftID)
	assert.Equal(t, "admin", feed["events"][0].Actor)
}

// =============================================================================
// DEMO
// =============================================================================

func TestDemoSeedAndReset(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, "POST", "/api/demo/seed", nil, "admin", "admin")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, "GET", "/api/pas", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]PADTO](t, rec), 3)

	rec = do(t, router, "POST", "/api/demo/reset", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, "GET", "/api/pas", nil, "admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]PADTO](t, rec))
}
