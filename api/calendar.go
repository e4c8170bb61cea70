/*
calendar.go - Calendar read views over shifts and coverage

PURPOSE:
  Builds month, ISO-week, and single-day views of the schedule. Each day
  carries its shifts plus its critical time coverage. Dates whose stored
  coverage record is missing (nothing was ever approved there, or an
  older database predates the coverage table) get their coverage
  computed on the fly from the day's approved shifts, without writing it
  back.

ENDPOINTS:
  GET /api/calendar/month/{year}/{month}
  GET /api/calendar/week/{year}/{week}     ISO week number
  GET /api/calendar/day/{date}

SEE ALSO:
  - schedule/coverage.go: CoverageCalculator used for the fallback
  - handlers.go: writeJSON/writeError helpers
*/
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/shift-engine/schedule"
)

// CalendarMonth returns the month view.
func (h *Handler) CalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, err1 := strconv.Atoi(chi.URLParam(r, "year"))
	month, err2 := strconv.Atoi(chi.URLParam(r, "month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid year/month", nil)
		return
	}

	from := schedule.NewDate(year, time.Month(month), 1)
	to := from.AddDate(0, 1, -1)
	h.calendarRange(w, r, from, to)
}

// CalendarWeek returns the ISO-week view (Monday through Sunday).
func (h *Handler) CalendarWeek(w http.ResponseWriter, r *http.Request) {
	year, err1 := strconv.Atoi(chi.URLParam(r, "year"))
	week, err2 := strconv.Atoi(chi.URLParam(r, "week"))
	if err1 != nil || err2 != nil || week < 1 || week > 53 {
		writeError(w, http.StatusBadRequest, "Invalid year/week", nil)
		return
	}

	from := isoWeekStart(year, week)
	to := from.AddDate(0, 0, 6)
	h.calendarRange(w, r, from, to)
}

// CalendarDay returns a single day's shifts and coverage.
func (h *Handler) CalendarDay(w http.ResponseWriter, r *http.Request) {
	date, err := schedule.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	shifts, err := h.Store.OnDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}

	cov, err := h.Store.GetCoverage(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load coverage", err)
		return
	}
	if cov == nil {
		cov = h.fallbackCoverage(date, shifts)
	}

	// Overnight shifts started yesterday spill into this morning's
	// timeline.
	prev, err := h.Store.ApprovedOnDate(r.Context(), date.AddDate(0, 0, -1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	covering := shifts
	for _, s := range prev {
		if s.Overnight() {
			covering = append(covering, s)
		}
	}

	writeJSON(w, http.StatusOK, CalendarDayDTO{
		Date:     schedule.FormatDate(date),
		Shifts:   h.toShiftDTOs(r, shifts),
		Coverage: toCoverageDTO(cov),
		Timeline: dayTimeline(date, covering),
	})
}

// dayTimeline reports, for each hour from 06:00 to 23:00, which approved
// shifts are on duty at that hour.
func dayTimeline(date time.Time, shifts []schedule.ShiftRequest) []TimelineSlotDTO {
	slots := make([]TimelineSlotDTO, 0, 18)
	for hour := 6; hour <= 23; hour++ {
		instant := schedule.NewTimeOfDay(hour, 0).On(date)
		ids := []string{}
		for i := range shifts {
			if shifts[i].Status != schedule.StatusApproved {
				continue
			}
			start, end := shifts[i].Range().Normalize()
			if instant.Before(start) || !instant.Before(end) {
				continue
			}
			ids = append(ids, string(shifts[i].ID))
		}
		slots = append(slots, TimelineSlotDTO{
			Hour:     schedule.NewTimeOfDay(hour, 0).String(),
			ShiftIDs: ids,
		})
	}
	return slots
}

func (h *Handler) calendarRange(w http.ResponseWriter, r *http.Request, from, to time.Time) {
	shifts, err := h.Store.List(r.Context(), schedule.ShiftFilter{From: &from, To: &to})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}

	coverage, err := h.Store.CoverageRange(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load coverage", err)
		return
	}

	byDate := make(map[string][]schedule.ShiftRequest)
	for _, s := range shifts {
		key := schedule.FormatDate(s.Date)
		byDate[key] = append(byDate[key], s)
	}

	var days []CalendarDayDTO
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := schedule.FormatDate(d)
		dayShifts := byDate[key]

		var cov *schedule.CriticalTimeCoverage
		if stored, ok := coverage[key]; ok {
			cov = &stored
		} else {
			cov = h.fallbackCoverage(d, dayShifts)
		}

		days = append(days, CalendarDayDTO{
			Date:     key,
			Shifts:   h.toShiftDTOs(r, dayShifts),
			Coverage: toCoverageDTO(cov),
		})
	}

	writeJSON(w, http.StatusOK, CalendarDTO{
		From: schedule.FormatDate(from),
		To:   schedule.FormatDate(to),
		Days: days,
	})
}

// fallbackCoverage computes a day's coverage from its approved shifts
// without persisting it.
func (h *Handler) fallbackCoverage(date time.Time, shifts []schedule.ShiftRequest) *schedule.CriticalTimeCoverage {
	approved := make([]schedule.ShiftRequest, 0, len(shifts))
	for _, s := range shifts {
		if s.Status == schedule.StatusApproved {
			approved = append(approved, s)
		}
	}
	var calc schedule.CoverageCalculator
	cov := calc.Recompute(date, approved)
	return &cov
}

// isoWeekStart returns the Monday of the given ISO week. Jan 4 is
// always in ISO week 1.
func isoWeekStart(year, week int) time.Time {
	jan4 := schedule.NewDate(year, time.January, 4)
	return schedule.WeekStart(jan4).AddDate(0, 0, (week-1)*7)
}
