/*
watcher.go - Background coverage gap watcher

PURPOSE:
  Periodically scans the next few days of the schedule and appends a
  coverage.alert event to the feed for every date whose morning or
  evening critical window is uncovered. This is the push half of
  coverage: transitions update the records synchronously, the watcher
  surfaces upcoming gaps regardless of how they arose (cancellations,
  periods with no requests at all, manual database edits).

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Looks ahead a fixed horizon (default: 7 days) from today
  - Dates without a stored coverage record count as fully uncovered
  - Deduplicates per (date, window): a gap already alerted during this
    process's lifetime is not re-alerted until it closes and reopens

CONFIGURATION:
  - CheckInterval: How often to scan (default: 15 minutes)
  - Horizon:       How many days ahead to scan (default: 7)
  - Enabled:       Whether the watcher is active (default: true)

USAGE:
  watcher := NewCoverageWatcher(store)
  watcher.Start()
  // ... later
  watcher.Stop()

SEE ALSO:
  - schedule/coverage.go: The records this scans
  - handlers.go: ListEvents endpoint exposing the alerts
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/sqlite"
)

// CoverageWatcher scans upcoming days for uncovered critical windows.
type CoverageWatcher struct {
	Store         *sqlite.Store
	CheckInterval time.Duration
	Horizon       int
	Enabled       bool

	ticker  *time.Ticker
	stop    chan bool
	wg      sync.WaitGroup
	mu      sync.Mutex
	alerted map[string]bool // "2006-01-02/morning" -> already alerted
}

// NewCoverageWatcher creates a new watcher with defaults.
func NewCoverageWatcher(store *sqlite.Store) *CoverageWatcher {
	return &CoverageWatcher{
		Store:         store,
		CheckInterval: 15 * time.Minute,
		Horizon:       7,
		Enabled:       true,
		stop:          make(chan bool),
		alerted:       make(map[string]bool),
	}
}

// Start begins the watcher.
func (cw *CoverageWatcher) Start() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.Enabled {
		log.Println("[Watcher] Disabled, not starting")
		return
	}

	cw.ticker = time.NewTicker(cw.CheckInterval)
	cw.wg.Add(1)

	go cw.run()

	log.Printf("[Watcher] Started with check interval %v, horizon %d days", cw.CheckInterval, cw.Horizon)
}

// Stop stops the watcher.
func (cw *CoverageWatcher) Stop() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.ticker != nil {
		cw.ticker.Stop()
		close(cw.stop)
		cw.wg.Wait()
		log.Println("[Watcher] Stopped")
	}
}

// RunNow triggers an immediate scan (for testing/admin).
func (cw *CoverageWatcher) RunNow() {
	cw.scan()
}

func (cw *CoverageWatcher) run() {
	defer cw.wg.Done()

	// Scan immediately on start
	cw.scan()

	for {
		select {
		case <-cw.ticker.C:
			cw.scan()
		case <-cw.stop:
			return
		}
	}
}

func (cw *CoverageWatcher) scan() {
	ctx := context.Background()
	today := schedule.DateOf(time.Now().UTC())
	end := today.AddDate(0, 0, cw.Horizon-1)

	coverage, err := cw.Store.CoverageRange(ctx, today, end)
	if err != nil {
		log.Printf("[Watcher] Error loading coverage: %v", err)
		return
	}

	alerts := 0
	for d := today; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := schedule.FormatDate(d)
		morning, evening := false, false
		if cov, ok := coverage[key]; ok {
			morning, evening = cov.MorningCovered, cov.EveningCovered
		}

		if cw.alertWindow(ctx, d, "morning", morning) {
			alerts++
		}
		if cw.alertWindow(ctx, d, "evening", evening) {
			alerts++
		}
	}

	if alerts > 0 {
		log.Printf("[Watcher] Scan complete: %d new coverage alerts", alerts)
	}
}

// alertWindow appends an alert for an uncovered window, once per gap.
// Returns true when a new alert was written.
func (cw *CoverageWatcher) alertWindow(ctx context.Context, date time.Time, window string, covered bool) bool {
	key := schedule.FormatDate(date) + "/" + window

	cw.mu.Lock()
	if covered {
		// Gap closed; allow a future alert if it reopens.
		delete(cw.alerted, key)
		cw.mu.Unlock()
		return false
	}
	if cw.alerted[key] {
		cw.mu.Unlock()
		return false
	}
	cw.alerted[key] = true
	cw.mu.Unlock()

	rec := sqlite.EventRecord{
		ID:    uuid.NewString(),
		Type:  string(schedule.EventCoverageAlert),
		Actor: "watcher",
		At:    time.Now().UTC(),
		Payload: map[string]any{
			"date":    schedule.FormatDate(date),
			"window":  window,
			"covered": false,
			"source":  "watcher",
		},
	}
	if err := cw.Store.AppendEvent(ctx, rec); err != nil {
		log.Printf("[Watcher] Failed to append alert for %s: %v", key, err)
		cw.mu.Lock()
		delete(cw.alerted, key)
		cw.mu.Unlock()
		return false
	}
	return true
}
