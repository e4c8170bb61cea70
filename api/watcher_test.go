package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/sqlite"
)

func TestWatcher_AlertsUncoveredWindowsOnce(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	// GIVEN: tomorrow's morning is covered, everything else is not
	tomorrow := schedule.DateOf(time.Now().UTC()).AddDate(0, 0, 1)
	require.NoError(t, store.SaveCoverage(ctx, &schedule.CriticalTimeCoverage{
		Date:           tomorrow,
		MorningCovered: true,
		UpdatedAt:      time.Now().UTC(),
	}))

	cw := NewCoverageWatcher(store)
	cw.Horizon = 2 // today + tomorrow

	// WHEN: a scan runs
	cw.RunNow()

	// THEN: three alerts (today morning+evening, tomorrow evening)
	alerts, err := store.ListEvents(ctx, string(schedule.EventCoverageAlert), 0)
	require.NoError(t, err)
	assert.Len(t, alerts, 3)

	// A second scan is silent; the gaps were already alerted.
	cw.RunNow()
	alerts, err = store.ListEvents(ctx, string(schedule.EventCoverageAlert), 0)
	require.NoError(t, err)
	assert.Len(t, alerts, 3)
}

func TestWatcher_ReAlertsWhenGapReopens(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	today := schedule.DateOf(time.Now().UTC())

	cw := NewCoverageWatcher(store)
	cw.Horizon = 1
	cw.RunNow() // morning + evening alerts for today

	// The morning gets covered, then loses its cover again.
	cov := &schedule.CriticalTimeCoverage{Date: today, MorningCovered: true, UpdatedAt: time.Now().UTC()}
	require.NoError(t, store.SaveCoverage(ctx, cov))
	cw.RunNow() // clears the morning dedup entry

	cov.MorningCovered = false
	require.NoError(t, store.SaveCoverage(ctx, cov))
	cw.RunNow()

	// 2 initial + 1 re-alert for the reopened morning gap. The evening
	// stayed uncovered the whole time and is not repeated.
	alerts, err := store.ListEvents(ctx, string(schedule.EventCoverageAlert), 0)
	require.NoError(t, err)
	assert.Len(t, alerts, 3)
}
