// Package store provides an in-memory Stores implementation (for testing/dev).
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation of every store contract
// =============================================================================

// Memory holds all rows in maps behind one mutex. WithTx serializes
// writers by holding the write lock for the whole closure, which gives
// the same "no two overlapping approvals both succeed" guarantee as the
// SQLite store, and snapshots the tables up front so a failing closure
// leaves no partial writes behind.
type Memory struct {
	mu sync.RWMutex
	d  *tables
}

type tables struct {
	shifts   map[schedule.ShiftID]schedule.ShiftRequest
	periods  map[schedule.PeriodID]schedule.SchedulePeriod
	coverage map[string]schedule.CriticalTimeCoverage // keyed by date string
	weekly   map[weeklyKey]schedule.WeeklyCoverage
	pas      map[schedule.PAID]schedule.PA
}

type weeklyKey struct {
	Period    schedule.PeriodID
	PA        schedule.PAID
	WeekStart string
}

func NewMemory() *Memory {
	return &Memory{d: &tables{
		shifts:   make(map[schedule.ShiftID]schedule.ShiftRequest),
		periods:  make(map[schedule.PeriodID]schedule.SchedulePeriod),
		coverage: make(map[string]schedule.CriticalTimeCoverage),
		weekly:   make(map[weeklyKey]schedule.WeeklyCoverage),
		pas:      make(map[schedule.PAID]schedule.PA),
	}}
}

// WithTx runs fn while holding the write lock. The tables type carries
// the unlocked method set, so fn's store calls do not re-lock. The
// tables are snapshotted before fn runs; an error restores the snapshot,
// matching the TxRunner rollback contract.
func (m *Memory) WithTx(ctx context.Context, fn func(schedule.Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.d.clone()
	err := fn(schedule.Stores{Shifts: m.d, Periods: m.d, Coverage: m.d, Weekly: m.d, Limits: m.d})
	if err != nil {
		m.d = snapshot
		return err
	}
	return nil
}

// =============================================================================
// LOCKED PASS-THROUGHS - Plain reads/writes outside a transaction
// =============================================================================

func (m *Memory) Get(ctx context.Context, id schedule.ShiftID) (*schedule.ShiftRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.Get(ctx, id)
}

func (m *Memory) OnDate(ctx context.Context, date time.Time) ([]schedule.ShiftRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.OnDate(ctx, date)
}

func (m *Memory) ApprovedOnDate(ctx context.Context, date time.Time) ([]schedule.ShiftRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.ApprovedOnDate(ctx, date)
}

func (m *Memory) List(ctx context.Context, f schedule.ShiftFilter) ([]schedule.ShiftRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.List(ctx, f)
}

func (m *Memory) Upsert(ctx context.Context, s *schedule.ShiftRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.Upsert(ctx, s)
}

func (m *Memory) GetPeriod(ctx context.Context, id schedule.PeriodID) (*schedule.SchedulePeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.GetPeriod(ctx, id)
}

func (m *Memory) ListPeriods(ctx context.Context) ([]schedule.SchedulePeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.ListPeriods(ctx)
}

func (m *Memory) SavePeriod(ctx context.Context, p *schedule.SchedulePeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.SavePeriod(ctx, p)
}

func (m *Memory) GetCoverage(ctx context.Context, date time.Time) (*schedule.CriticalTimeCoverage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.GetCoverage(ctx, date)
}

func (m *Memory) GetOrCreateCoverage(ctx context.Context, date time.Time) (*schedule.CriticalTimeCoverage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.GetOrCreateCoverage(ctx, date)
}

func (m *Memory) SaveCoverage(ctx context.Context, c *schedule.CriticalTimeCoverage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.SaveCoverage(ctx, c)
}

func (m *Memory) FindWeekly(ctx context.Context, pa schedule.PAID, weekStart time.Time) (*schedule.WeeklyCoverage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.FindWeekly(ctx, pa, weekStart)
}

func (m *Memory) GetOrCreateWeekly(ctx context.Context, periodID schedule.PeriodID, pa schedule.PAID, weekStart time.Time) (*schedule.WeeklyCoverage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.GetOrCreateWeekly(ctx, periodID, pa, weekStart)
}

func (m *Memory) SaveWeekly(ctx context.Context, w *schedule.WeeklyCoverage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.SaveWeekly(ctx, w)
}

// =============================================================================
// PA REGISTRY + LIMIT PROVIDER
// =============================================================================

func (m *Memory) SavePA(ctx context.Context, pa schedule.PA) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.d.pas[pa.ID] = pa
	return nil
}

func (m *Memory) GetPA(ctx context.Context, id schedule.PAID) (*schedule.PA, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if pa, ok := m.d.pas[id]; ok {
		return &pa, nil
	}
	return nil, nil
}

// WeeklyLimit returns the PA's configured limit, or DefaultWeeklyLimit
// for unknown PAs or PAs without one.
func (m *Memory) WeeklyLimit(ctx context.Context, id schedule.PAID) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d.WeeklyLimit(ctx, id)
}

// =============================================================================
// UNLOCKED TABLE OPERATIONS - Used directly inside WithTx
// =============================================================================

func (t *tables) Get(_ context.Context, id schedule.ShiftID) (*schedule.ShiftRequest, error) {
	if s, ok := t.shifts[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (t *tables) OnDate(_ context.Context, date time.Time) ([]schedule.ShiftRequest, error) {
	d := schedule.DateOf(date)
	var out []schedule.ShiftRequest
	for _, s := range t.shifts {
		if s.Date.Equal(d) {
			out = append(out, s)
		}
	}
	sortShifts(out)
	return out, nil
}

func (t *tables) ApprovedOnDate(ctx context.Context, date time.Time) ([]schedule.ShiftRequest, error) {
	all, _ := t.OnDate(ctx, date)
	out := all[:0]
	for _, s := range all {
		if s.Status == schedule.StatusApproved {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *tables) List(_ context.Context, f schedule.ShiftFilter) ([]schedule.ShiftRequest, error) {
	var out []schedule.ShiftRequest
	for _, s := range t.shifts {
		if f.PA != nil && s.PA != *f.PA {
			continue
		}
		if f.PeriodID != nil && s.PeriodID != *f.PeriodID {
			continue
		}
		if len(f.Statuses) > 0 && !statusIn(s.Status, f.Statuses) {
			continue
		}
		if f.From != nil && s.Date.Before(schedule.DateOf(*f.From)) {
			continue
		}
		if f.To != nil && s.Date.After(schedule.DateOf(*f.To)) {
			continue
		}
		out = append(out, s)
	}
	sortShifts(out)
	return out, nil
}

func (t *tables) Upsert(_ context.Context, s *schedule.ShiftRequest) error {
	t.shifts[s.ID] = *s
	return nil
}

func (t *tables) GetPeriod(_ context.Context, id schedule.PeriodID) (*schedule.SchedulePeriod, error) {
	if p, ok := t.periods[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (t *tables) ListPeriods(_ context.Context) ([]schedule.SchedulePeriod, error) {
	out := make([]schedule.SchedulePeriod, 0, len(t.periods))
	for _, p := range t.periods {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (t *tables) SavePeriod(_ context.Context, p *schedule.SchedulePeriod) error {
	t.periods[p.ID] = *p
	return nil
}

func (t *tables) GetCoverage(_ context.Context, date time.Time) (*schedule.CriticalTimeCoverage, error) {
	if c, ok := t.coverage[schedule.FormatDate(date)]; ok {
		return &c, nil
	}
	return nil, nil
}

func (t *tables) GetOrCreateCoverage(ctx context.Context, date time.Time) (*schedule.CriticalTimeCoverage, error) {
	if c, err := t.GetCoverage(ctx, date); c != nil || err != nil {
		return c, err
	}
	c := schedule.CriticalTimeCoverage{Date: schedule.DateOf(date)}
	t.coverage[schedule.FormatDate(date)] = c
	return &c, nil
}

func (t *tables) SaveCoverage(_ context.Context, c *schedule.CriticalTimeCoverage) error {
	t.coverage[schedule.FormatDate(c.Date)] = *c
	return nil
}

func (t *tables) FindWeekly(_ context.Context, pa schedule.PAID, weekStart time.Time) (*schedule.WeeklyCoverage, error) {
	ws := schedule.FormatDate(schedule.WeekStart(weekStart))
	for k, w := range t.weekly {
		if k.PA == pa && k.WeekStart == ws {
			return &w, nil
		}
	}
	return nil, nil
}

func (t *tables) GetOrCreateWeekly(_ context.Context, periodID schedule.PeriodID, pa schedule.PAID, weekStart time.Time) (*schedule.WeeklyCoverage, error) {
	ws := schedule.WeekStart(weekStart)
	k := weeklyKey{Period: periodID, PA: pa, WeekStart: schedule.FormatDate(ws)}
	if w, ok := t.weekly[k]; ok {
		return &w, nil
	}
	w := schedule.WeeklyCoverage{
		PeriodID:   periodID,
		PA:         pa,
		WeekStart:  ws,
		TotalHours: decimal.Zero,
	}
	t.weekly[k] = w
	return &w, nil
}

func (t *tables) SaveWeekly(_ context.Context, w *schedule.WeeklyCoverage) error {
	k := weeklyKey{Period: w.PeriodID, PA: w.PA, WeekStart: schedule.FormatDate(w.WeekStart)}
	t.weekly[k] = *w
	return nil
}

func (t *tables) WeeklyLimit(_ context.Context, id schedule.PAID) (decimal.Decimal, error) {
	if pa, ok := t.pas[id]; ok && !pa.MaxHoursPerWeek.IsZero() {
		return pa.MaxHoursPerWeek, nil
	}
	return schedule.DefaultWeeklyLimit, nil
}

// clone copies every table so WithTx can restore state after a failed
// closure. Row values are plain structs, so a per-map copy is a full
// snapshot.
func (t *tables) clone() *tables {
	c := &tables{
		shifts:   make(map[schedule.ShiftID]schedule.ShiftRequest, len(t.shifts)),
		periods:  make(map[schedule.PeriodID]schedule.SchedulePeriod, len(t.periods)),
		coverage: make(map[string]schedule.CriticalTimeCoverage, len(t.coverage)),
		weekly:   make(map[weeklyKey]schedule.WeeklyCoverage, len(t.weekly)),
		pas:      make(map[schedule.PAID]schedule.PA, len(t.pas)),
	}
	for k, v := range t.shifts {
		c.shifts[k] = v
	}
	for k, v := range t.periods {
		c.periods[k] = v
	}
	for k, v := range t.coverage {
		c.coverage[k] = v
	}
	for k, v := range t.weekly {
		c.weekly[k] = v
	}
	for k, v := range t.pas {
		c.pas[k] = v
	}
	return c
}

// =============================================================================
// HELPERS
// =============================================================================

func sortShifts(shifts []schedule.ShiftRequest) {
	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].Date.Equal(shifts[j].Date) {
			return shifts[i].Date.Before(shifts[j].Date)
		}
		return shifts[i].ID < shifts[j].ID
	})
}

func statusIn(s schedule.ShiftStatus, in []schedule.ShiftStatus) bool {
	for _, x := range in {
		if s == x {
			return true
		}
	}
	return false
}

// Compile-time interface checks.
var (
	_ schedule.ShiftStore    = (*Memory)(nil)
	_ schedule.PeriodStore   = (*Memory)(nil)
	_ schedule.CoverageStore = (*Memory)(nil)
	_ schedule.WeeklyStore   = (*Memory)(nil)
	_ schedule.TxRunner      = (*Memory)(nil)
	_ schedule.LimitProvider = (*Memory)(nil)

	_ schedule.ShiftStore    = (*tables)(nil)
	_ schedule.PeriodStore   = (*tables)(nil)
	_ schedule.CoverageStore = (*tables)(nil)
	_ schedule.WeeklyStore   = (*tables)(nil)
	_ schedule.LimitProvider = (*tables)(nil)
)
