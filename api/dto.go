/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

WIRE FORMATS:
  - Dates:       "2006-01-02"
  - Clock times: "15:04" (24h)
  - Timestamps:  RFC3339
  - Hours:       JSON numbers (decimal rendered via Float64)

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/types.go: The domain model these project
*/
package api

import (
	"time"

	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// SHIFT TYPES
// =============================================================================

// ShiftDTO represents a shift request in API responses.
type ShiftDTO struct {
	ID             string   `json:"id"`
	PeriodID       string   `json:"period_id"`
	PAID           string   `json:"pa_id"`
	PAName         string   `json:"pa_name,omitempty"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	Overnight      bool     `json:"overnight"`
	DurationHours  float64  `json:"duration_hours"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes,omitempty"`
	AdminNotes     string   `json:"admin_notes,omitempty"`
	RejectedReason string   `json:"rejected_reason,omitempty"`
	ApprovedBy     *string  `json:"approved_by,omitempty"`
	ApprovedAt     *string  `json:"approved_at,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

func toShiftDTO(s *schedule.ShiftRequest) ShiftDTO {
	dto := ShiftDTO{
		ID:             string(s.ID),
		PeriodID:       string(s.PeriodID),
		PAID:           string(s.PA),
		Date:           schedule.FormatDate(s.Date),
		StartTime:      s.Start.String(),
		EndTime:        s.End.String(),
		Overnight:      s.Overnight(),
		DurationHours:  s.DurationHours.InexactFloat64(),
		Status:         string(s.Status),
		Notes:          s.Notes,
		AdminNotes:     s.AdminNotes,
		RejectedReason: s.RejectedReason,
		ApprovedBy:     s.ApprovedBy,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
	if s.ApprovedAt != nil {
		v := s.ApprovedAt.Format(time.RFC3339)
		dto.ApprovedAt = &v
	}
	return dto
}

// CreateShiftRequest is the body for POST /api/shifts.
type CreateShiftRequest struct {
	PeriodID  string `json:"period_id"`
	PAID      string `json:"pa_id,omitempty"` // defaults to the acting PA
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes,omitempty"`

	// AdminDirect skips the pending queue and creates the shift already
	// approved. Admin role required.
	AdminDirect bool `json:"admin_direct,omitempty"`
}

// EditShiftRequest is the body for PATCH /api/shifts/{id}. Omitted time
// fields keep their current values.
type EditShiftRequest struct {
	Date      string  `json:"date,omitempty"`
	StartTime string  `json:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ApproveShiftRequest is the body for POST /api/shifts/{id}/approve.
type ApproveShiftRequest struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}

// RejectShiftRequest is the body for POST /api/shifts/{id}/reject.
type RejectShiftRequest struct {
	Reason string `json:"reason"`
}

// =============================================================================
// PERIOD TYPES
// =============================================================================

// PeriodDTO represents a schedule period in API responses.
type PeriodDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toPeriodDTO(p *schedule.SchedulePeriod) PeriodDTO {
	return PeriodDTO{
		ID:        string(p.ID),
		Name:      p.Name,
		StartDate: schedule.FormatDate(p.StartDate),
		EndDate:   schedule.FormatDate(p.EndDate),
		Status:    string(p.Status),
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

// CreatePeriodRequest is the body for POST /api/periods.
type CreatePeriodRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// FinalizeResponse summarizes a period finalization: how many pending
// requests were bulk-rejected and which dates end the period with an
// uncovered critical window.
type FinalizeResponse struct {
	Period          PeriodDTO        `json:"period"`
	RejectedPending int              `json:"rejected_pending"`
	CoverageGaps    []map[string]any `json:"coverage_gaps"`
}

// =============================================================================
// COVERAGE TYPES
// =============================================================================

// CoverageDTO represents a per-date critical time coverage record.
type CoverageDTO struct {
	Date           string  `json:"date"`
	MorningCovered bool    `json:"morning_covered"`
	EveningCovered bool    `json:"evening_covered"`
	MorningShiftID *string `json:"morning_shift_id,omitempty"`
	EveningShiftID *string `json:"evening_shift_id,omitempty"`
	Status         string  `json:"status"`
}

func toCoverageDTO(c *schedule.CriticalTimeCoverage) CoverageDTO {
	dto := CoverageDTO{
		Date:           schedule.FormatDate(c.Date),
		MorningCovered: c.MorningCovered,
		EveningCovered: c.EveningCovered,
		Status:         string(c.CoverageStatus()),
	}
	if c.MorningShift != nil {
		v := string(*c.MorningShift)
		dto.MorningShiftID = &v
	}
	if c.EveningShift != nil {
		v := string(*c.EveningShift)
		dto.EveningShiftID = &v
	}
	return dto
}

// WeeklyDTO represents a per-(PA, week) hour aggregate.
type WeeklyDTO struct {
	PeriodID     string  `json:"period_id"`
	PAID         string  `json:"pa_id"`
	WeekStart    string  `json:"week_start"`
	TotalHours   float64 `json:"total_hours"`
	ExceedsLimit bool    `json:"exceeds_limit"`
}

func toWeeklyDTO(w *schedule.WeeklyCoverage) WeeklyDTO {
	return WeeklyDTO{
		PeriodID:     string(w.PeriodID),
		PAID:         string(w.PA),
		WeekStart:    schedule.FormatDate(w.WeekStart),
		TotalHours:   w.TotalHours.InexactFloat64(),
		ExceedsLimit: w.ExceedsLimit,
	}
}

// =============================================================================
// PA TYPES
// =============================================================================

// PADTO represents a PA registry entry.
type PADTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	MaxHoursPerWeek float64 `json:"max_hours_per_week"`
	CreatedAt       string  `json:"created_at"`
}

func toPADTO(pa *schedule.PA) PADTO {
	return PADTO{
		ID:              string(pa.ID),
		Name:            pa.Name,
		Email:           pa.Email,
		MaxHoursPerWeek: pa.MaxHoursPerWeek.InexactFloat64(),
		CreatedAt:       pa.CreatedAt.Format(time.RFC3339),
	}
}

// CreatePARequest is the body for POST /api/pas.
type CreatePARequest struct {
	ID              string  `json:"id,omitempty"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	MaxHoursPerWeek float64 `json:"max_hours_per_week,omitempty"`
}

// =============================================================================
// CALENDAR TYPES
// =============================================================================

// CalendarDayDTO is one date's slice of the calendar: the shifts on it
// plus its coverage record. The day view additionally carries an hourly
// timeline of which approved shifts cover each hour.
type CalendarDayDTO struct {
	Date     string            `json:"date"`
	Shifts   []ShiftDTO        `json:"shifts"`
	Coverage CoverageDTO       `json:"coverage"`
	Timeline []TimelineSlotDTO `json:"timeline,omitempty"`
}

// TimelineSlotDTO is one hour of the day view.
type TimelineSlotDTO struct {
	Hour     string   `json:"hour"`
	ShiftIDs []string `json:"shift_ids"`
}

// CalendarDTO is a month or week view.
type CalendarDTO struct {
	From string           `json:"from"`
	To   string           `json:"to"`
	Days []CalendarDayDTO `json:"days"`
}

// =============================================================================
// EVENT TYPES
// =============================================================================

// EventDTO represents a persisted lifecycle event.
type EventDTO struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	ShiftID  string         `json:"shift_id,omitempty"`
	PeriodID string         `json:"period_id,omitempty"`
	Actor    string         `json:"actor,omitempty"`
	At       string         `json:"at"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
