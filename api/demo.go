/*
demo.go - Demo data seeding

PURPOSE:
  Loads a representative data set for local development and UI work:
  a handful of PAs, an open period covering the next two weeks, and a
  shift mix that exercises the whole lifecycle - approved day and
  overnight shifts, a pending queue, a rejection, and a deliberate
  coverage gap for the watcher to find.

ENDPOINT:
  POST /api/demo/seed   (wipes existing data first)

IMPORTANT:
  All mutations go through the lifecycle engine, not raw store writes,
  so coverage and weekly records are derived exactly as they would be
  in normal operation.

SEE ALSO:
  - handlers.go: Handler context
  - schedule/lifecycle.go: The transitions this drives
*/
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/schedule"
)

type seededPA struct {
	id       string
	name     string
	email    string
	maxHours float64
}

var demoPAs = []seededPA{
	{"pa-anna", "Anna Lindqvist", "anna@example.com", 40},
	{"pa-erik", "Erik Johansson", "erik@example.com", 30},
	{"pa-maria", "Maria Silva", "maria@example.com", 0}, // default limit
}

// SeedDemo wipes the database and loads the demo data set.
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	for _, p := range demoPAs {
		pa := schedule.PA{
			ID:              schedule.PAID(p.id),
			Name:            p.name,
			Email:           p.email,
			MaxHoursPerWeek: decimal.NewFromFloat(p.maxHours),
			CreatedAt:       time.Now().UTC(),
		}
		if err := h.Store.SavePA(ctx, pa); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed PAs", err)
			return
		}
	}

	today := schedule.DateOf(time.Now().UTC())
	period, err := h.Engine.CreatePeriod(ctx, schedule.PeriodInput{
		Name:      "Demo period",
		StartDate: today,
		EndDate:   today.AddDate(0, 0, 13),
		Actor:     "demo",
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed period", err)
		return
	}

	created, approved := 0, 0
	submit := func(pa string, dayOffset int, start, end string, approve bool, notes string) error {
		s, _ := schedule.ParseTimeOfDay(start)
		e, _ := schedule.ParseTimeOfDay(end)
		shift, events, err := h.Engine.Create(ctx, schedule.CreateInput{
			PeriodID: period.ID,
			PA:       schedule.PAID(pa),
			Date:     today.AddDate(0, 0, dayOffset),
			Start:    s,
			End:      e,
			Notes:    notes,
			Actor:    pa,
		})
		if err != nil {
			return err
		}
		h.dispatch(r, events)
		created++

		if approve {
			_, events, err := h.Engine.Approve(ctx, shift.ID, "demo-admin", "")
			if err != nil {
				return err
			}
			h.dispatch(r, events)
			approved++
		}
		return nil
	}

	plan := []struct {
		pa      string
		day     int
		start   string
		end     string
		approve bool
		notes   string
	}{
		// Day 0: full coverage - morning window and evening window both held
		{"pa-anna", 0, "06:00", "14:00", true, "morning shift"},
		{"pa-erik", 0, "14:00", "22:00", true, "evening shift"},
		// Day 1: overnight shift covering the evening window, morning open
		{"pa-maria", 1, "21:00", "06:00", true, "overnight"},
		// Day 2: morning only - evening gap for the watcher
		{"pa-anna", 2, "06:00", "12:00", true, "short morning"},
		// Pending queue
		{"pa-erik", 2, "18:00", "22:00", false, "evening, awaiting approval"},
		{"pa-maria", 3, "06:00", "09:00", false, "minimal morning window"},
		{"pa-anna", 4, "08:00", "16:00", false, "office day"},
	}
	for _, p := range plan {
		if err := submit(p.pa, p.day, p.start, p.end, p.approve, p.notes); err != nil {
			writeError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to seed shift for %s", p.pa), err)
			return
		}
	}

	// One rejection so the UI shows that path too.
	rejectShift, events, err := h.Engine.Create(ctx, schedule.CreateInput{
		PeriodID: period.ID,
		PA:       schedule.PAID("pa-erik"),
		Date:     today.AddDate(0, 0, 5),
		Start:    schedule.TimeOfDay(10 * 60),
		End:      schedule.TimeOfDay(18 * 60),
		Notes:    "double-booked elsewhere",
		Actor:    "pa-erik",
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed rejected shift", err)
		return
	}
	h.dispatch(r, events)
	created++
	if _, events, err = h.Engine.Reject(ctx, rejectShift.ID, "demo-admin", "coverage already arranged"); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed rejection", err)
		return
	}
	h.dispatch(r, events)

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":    "seeded",
		"period_id": string(period.ID),
		"pas":       len(demoPAs),
		"shifts":    created,
		"approved":  approved,
	})
}
