/*
handlers.go - HTTP API handlers for the shift scheduling system

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Shifts:
    POST   /api/shifts                 Submit shift request
    GET    /api/shifts                 List (status/period/pa/date filters)
    GET    /api/shifts/pending         Pending approval queue
    GET    /api/shifts/{id}            Get shift details
    PATCH  /api/shifts/{id}            Edit date/time
    DELETE /api/shifts/{id}            Cancel
    POST   /api/shifts/{id}/approve    Approve (admin)
    POST   /api/shifts/{id}/reject     Reject with reason (admin)

  Periods:
    GET    /api/periods                List periods
    POST   /api/periods                Create period (admin)
    GET    /api/periods/{id}
    POST   /api/periods/{id}/lock      OPEN -> LOCKED (admin)
    POST   /api/periods/{id}/finalize  Finalize, bulk-reject pending (admin)

  Coverage:
    GET    /api/coverage?date=         Per-date critical window coverage
    GET    /api/coverage/weekly?pa=&date=  Weekly hour aggregate

  PAs:
    GET    /api/pas | POST /api/pas | GET /api/pas/{id}

  Events:
    GET    /api/events                 Persisted lifecycle event feed

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store:  Database access (also the event feed sink)
  - Engine: Shift lifecycle state machine

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (lifecycle, stores)
  4. Persist any emitted events
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 403: Not the owner / not an admin
  - 404: Resource not found
  - 409: Conflict, duplicate, bad state transition
  - 500: Internal errors

IDENTITY:
  The acting user arrives in the X-Actor header, their role in
  X-Actor-Role ("admin" or "pa"). Upstream auth (reverse proxy / API
  gateway) is assumed to have set both; the handlers only read them.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - schedule/lifecycle.go: The state machine these delegate to
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *schedule.Lifecycle
}

// NewHandler creates a new handler around the store, wiring the
// lifecycle engine to it.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:  store,
		Engine: schedule.NewLifecycle(store),
	}
}

func actor(r *http.Request) string {
	if a := r.Header.Get("X-Actor"); a != "" {
		return a
	}
	return "anonymous"
}

func isAdmin(r *http.Request) bool {
	return r.Header.Get("X-Actor-Role") == "admin"
}

// dispatch persists emitted lifecycle events to the feed. Event loss is
// logged but never fails the request - the state change already
// committed.
func (h *Handler) dispatch(r *http.Request, events []schedule.Event) {
	for _, e := range events {
		rec := sqlite.EventRecord{
			ID:       uuid.NewString(),
			Type:     string(e.Type),
			ShiftID:  string(e.ShiftID),
			PeriodID: string(e.PeriodID),
			Actor:    e.Actor,
			At:       e.At,
			Payload:  e.Payload,
		}
		if err := h.Store.AppendEvent(r.Context(), rec); err != nil {
			log.Printf("[API] Failed to persist event %s: %v", e.Type, err)
		}
	}
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// CreateShift submits a new shift request.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_time (use HH:MM)", err)
		return
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_time (use HH:MM)", err)
		return
	}

	admin := isAdmin(r)
	paID := req.PAID
	if paID == "" {
		paID = actor(r)
	}
	if req.AdminDirect && !admin {
		writeError(w, http.StatusForbidden, "Admin role required for direct creation", nil)
		return
	}
	// A PA can only file requests for themselves.
	if !admin && paID != actor(r) {
		writeError(w, http.StatusForbidden, "Cannot create shifts for another PA", nil)
		return
	}

	shift, events, err := h.Engine.Create(r.Context(), schedule.CreateInput{
		PeriodID:    schedule.PeriodID(req.PeriodID),
		PA:          schedule.PAID(paID),
		Date:        date,
		Start:       start,
		End:         end,
		Notes:       req.Notes,
		AdminDirect: req.AdminDirect,
		Actor:       actor(r),
	})
	if err != nil {
		writeDomainError(w, "Failed to create shift", err)
		return
	}

	h.dispatch(r, events)
	writeJSON(w, http.StatusCreated, toShiftDTO(shift))
}

// ListShifts lists shift requests with optional filters.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseShiftFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}

	shifts, err := h.Store.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toShiftDTOs(r, shifts))
}

// ListPendingShifts returns the pending approval queue, oldest first.
func (h *Handler) ListPendingShifts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseShiftFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}
	filter.Statuses = []schedule.ShiftStatus{schedule.StatusPending}

	shifts, err := h.Store.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": h.toShiftDTOs(r, shifts)})
}

// GetShift returns a single shift request.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id := schedule.ShiftID(chi.URLParam(r, "id"))

	shift, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	if shift == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

// EditShift moves a request to a new date/time. Omitted fields keep
// their current values.
func (h *Handler) EditShift(w http.ResponseWriter, r *http.Request) {
	id := schedule.ShiftID(chi.URLParam(r, "id"))

	var req EditShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	current, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}

	in := schedule.EditInput{
		Date:  current.Date,
		Start: current.Start,
		End:   current.End,
		Notes: req.Notes,
		Actor: actor(r),
		Admin: isAdmin(r),
	}
	if req.Date != "" {
		if in.Date, err = schedule.ParseDate(req.Date); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
	}
	if req.StartTime != "" {
		if in.Start, err = schedule.ParseTimeOfDay(req.StartTime); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_time (use HH:MM)", err)
			return
		}
	}
	if req.EndTime != "" {
		if in.End, err = schedule.ParseTimeOfDay(req.EndTime); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_time (use HH:MM)", err)
			return
		}
	}

	shift, events, err := h.Engine.Edit(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, "Failed to edit shift", err)
		return
	}

	h.dispatch(r, events)
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

// CancelShift cancels a pending or approved request.
func (h *Handler) CancelShift(w http.ResponseWriter, r *http.Request) {
	id := schedule.ShiftID(chi.URLParam(r, "id"))

	shift, events, err := h.Engine.Cancel(r.Context(), id, actor(r), isAdmin(r))
	if err != nil {
		writeDomainError(w, "Failed to cancel shift", err)
		return
	}

	h.dispatch(r, events)
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

// ApproveShift approves a pending request. Admin only.
func (h *Handler) ApproveShift(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin role required", nil)
		return
	}
	id := schedule.ShiftID(chi.URLParam(r, "id"))

	var req ApproveShiftRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	shift, events, err := h.Engine.Approve(r.Context(), id, actor(r), req.AdminNotes)
	if err != nil {
		writeDomainError(w, "Failed to approve shift", err)
		return
	}

	h.dispatch(r, events)
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

// RejectShift rejects a pending request. Admin only; a reason is
// mandatory.
func (h *Handler) RejectShift(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin role required", nil)
		return
	}
	id := schedule.ShiftID(chi.URLParam(r, "id"))

	var req RejectShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	shift, events, err := h.Engine.Reject(r.Context(), id, actor(r), req.Reason)
	if err != nil {
		writeDomainError(w, "Failed to reject shift", err)
		return
	}

	h.dispatch(r, events)
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

func parseShiftFilter(r *http.Request) (schedule.ShiftFilter, error) {
	var f schedule.ShiftFilter
	q := r.URL.Query()

	if pa := q.Get("pa_id"); pa != "" {
		id := schedule.PAID(pa)
		f.PA = &id
	}
	if p := q.Get("period_id"); p != "" {
		id := schedule.PeriodID(p)
		f.PeriodID = &id
	}
	if st := q.Get("status"); st != "" {
		f.Statuses = []schedule.ShiftStatus{schedule.ShiftStatus(st)}
	}
	if from := q.Get("from"); from != "" {
		t, err := schedule.ParseDate(from)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := schedule.ParseDate(to)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	if date := q.Get("date"); date != "" {
		t, err := schedule.ParseDate(date)
		if err != nil {
			return f, err
		}
		f.From, f.To = &t, &t
	}
	return f, nil
}

// toShiftDTOs converts shifts, enriching each with the PA's display name.
func (h *Handler) toShiftDTOs(r *http.Request, shifts []schedule.ShiftRequest) []ShiftDTO {
	names := make(map[schedule.PAID]string)
	dtos := make([]ShiftDTO, 0, len(shifts))
	for i := range shifts {
		dto := toShiftDTO(&shifts[i])
		name, ok := names[shifts[i].PA]
		if !ok {
			if pa, _ := h.Store.GetPA(r.Context(), shifts[i].PA); pa != nil {
				name = pa.Name
			}
			names[shifts[i].PA] = name
		}
		dto.PAName = name
		dtos = append(dtos, dto)
	}
	return dtos
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// ListPeriods returns all schedule periods, newest first.
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Store.ListPeriods(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list periods", err)
		return
	}

	dtos := make([]PeriodDTO, len(periods))
	for i := range periods {
		dtos[i] = toPeriodDTO(&periods[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPeriod returns a single schedule period.
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id := schedule.PeriodID(chi.URLParam(r, "id"))

	period, err := h.Store.GetPeriod(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get period", err)
		return
	}
	if period == nil {
		writeError(w, http.StatusNotFound, "Period not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(period))
}

// CreatePeriod opens a new schedule period. Admin only.
func (h *Handler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin role required", nil)
		return
	}

	var req CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := schedule.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	period, err := h.Engine.CreatePeriod(r.Context(), schedule.PeriodInput{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Actor:     actor(r),
	})
	if err != nil {
		writeDomainError(w, "Failed to create period", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPeriodDTO(period))
}

// LockPeriod closes a period to new requests. Admin only.
func (h *Handler) LockPeriod(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin role required", nil)
		return
	}
	id := schedule.PeriodID(chi.URLParam(r, "id"))

	period, err := h.Engine.Lock(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to lock period", err)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(period))
}

// FinalizePeriod finalizes a period: bulk-rejects remaining pending
// requests and reports coverage gaps. Admin only.
func (h *Handler) FinalizePeriod(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin role required", nil)
		return
	}
	id := schedule.PeriodID(chi.URLParam(r, "id"))

	period, events, err := h.Engine.Finalize(r.Context(), id, actor(r))
	if err != nil {
		writeDomainError(w, "Failed to finalize period", err)
		return
	}
	h.dispatch(r, events)

	resp := FinalizeResponse{Period: toPeriodDTO(period)}
	for _, e := range events {
		if e.Type != schedule.EventPeriodFinalized {
			continue
		}
		if n, ok := e.Payload["rejected_pending"].(int); ok {
			resp.RejectedPending = n
		}
		if gaps, ok := e.Payload["coverage_gaps"].([]map[string]any); ok {
			resp.CoverageGaps = gaps
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// COVERAGE HANDLERS
// =============================================================================

// GetCoverage returns the critical time coverage record for a date. A
// date that was never touched by an approval reports both windows
// uncovered.
func (h *Handler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	cov, err := h.Store.GetCoverage(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get coverage", err)
		return
	}
	if cov == nil {
		cov = &schedule.CriticalTimeCoverage{Date: schedule.DateOf(date)}
	}
	writeJSON(w, http.StatusOK, toCoverageDTO(cov))
}

// GetWeeklyCoverage returns the weekly hour aggregate for a PA and the
// week containing the given date.
func (h *Handler) GetWeeklyCoverage(w http.ResponseWriter, r *http.Request) {
	paStr := r.URL.Query().Get("pa_id")
	dateStr := r.URL.Query().Get("date")
	if paStr == "" || dateStr == "" {
		writeError(w, http.StatusBadRequest, "pa_id and date query parameters are required", nil)
		return
	}
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	weekly, err := h.Store.FindWeekly(r.Context(), schedule.PAID(paStr), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get weekly coverage", err)
		return
	}
	if weekly == nil {
		weekly = &schedule.WeeklyCoverage{
			PA:         schedule.PAID(paStr),
			WeekStart:  schedule.WeekStart(date),
			TotalHours: decimal.Zero,
		}
	}
	writeJSON(w, http.StatusOK, toWeeklyDTO(weekly))
}

// =============================================================================
// PA HANDLERS
// =============================================================================

// ListPAs returns all registered PAs.
func (h *Handler) ListPAs(w http.ResponseWriter, r *http.Request) {
	pas, err := h.Store.ListPAs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list PAs", err)
		return
	}

	dtos := make([]PADTO, len(pas))
	for i := range pas {
		dtos[i] = toPADTO(&pas[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPA returns a single PA.
func (h *Handler) GetPA(w http.ResponseWriter, r *http.Request) {
	id := schedule.PAID(chi.URLParam(r, "id"))

	pa, err := h.Store.GetPA(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get PA", err)
		return
	}
	if pa == nil {
		writeError(w, http.StatusNotFound, "PA not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toPADTO(pa))
}

// CreatePA registers a new PA. Admin only.
func (h *Handler) CreatePA(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin role required", nil)
		return
	}

	var req CreatePARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	pa := schedule.PA{
		ID:              schedule.PAID(req.ID),
		Name:            req.Name,
		Email:           req.Email,
		MaxHoursPerWeek: decimal.NewFromFloat(req.MaxHoursPerWeek),
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.Store.SavePA(r.Context(), pa); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create PA", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPADTO(&pa))
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

// ListEvents returns the persisted event feed, newest first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}

	records, err := h.Store.ListEvents(r.Context(), r.URL.Query().Get("type"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}

	dtos := make([]EventDTO, len(records))
	for i, rec := range records {
		dtos[i] = EventDTO{
			ID:       rec.ID,
			Type:     rec.Type,
			ShiftID:  rec.ShiftID,
			PeriodID: rec.PeriodID,
			Actor:    rec.Actor,
			At:       rec.At.Format(time.RFC3339),
			Payload:  rec.Payload,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": dtos})
}

// ResetDatabase clears all data. Dev only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps lifecycle errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, domainStatus(err), message, err)
}

func domainStatus(err error) int {
	switch {
	case schedule.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, schedule.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, schedule.ErrConflict),
		errors.Is(err, schedule.ErrDuplicateRequest),
		errors.Is(err, schedule.ErrInvalidStateTransition):
		return http.StatusConflict
	case schedule.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
