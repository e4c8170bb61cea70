/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements every persistence contract the scheduling engine consumes
  (ShiftStore, PeriodStore, CoverageStore, WeeklyStore, LimitProvider,
  TxRunner) plus the PA registry and the event feed used by the API
  layer. In production the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  schedule_periods:       Administrative request windows
  shift_requests:         Shift requests with status lifecycle
  critical_time_coverage: Derived per-date coverage records
  weekly_coverage:        Derived per-(period, PA, week) hour totals
  pas:                    PA registry with weekly limits
  events:                 Dispatched lifecycle events (audit feed)

TRANSACTIONS:
  WithTx wraps a closure in one BEGIN/COMMIT and hands it a Stores view
  bound to the open *sql.Tx, so a status transition and its derived
  coverage/weekly records commit atomically. A mutex additionally
  serializes writers - SQLite allows one writer at a time anyway, and
  serialization is what keeps two concurrent approvals of overlapping
  slots from both succeeding.

CASCADE:
  shift_requests references schedule_periods with ON DELETE CASCADE;
  deleting a period removes its shifts. Coverage and weekly rows hold
  non-owning references and are rewritten by recomputation instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't
  block behind the writer, plus foreign_keys=on for the cascade.

USAGE:
  store, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := schedule.NewLifecycle(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - schedule/stores.go: Interface definitions and transaction contract
  - schedule/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/schedule"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	queries
	sqlDB *sql.DB
	mu    sync.Mutex
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries carries every store operation, bound either to the database or
// to an open transaction.
type queries struct {
	db dbtx
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases coherent and suits
	// SQLite's single-writer model.
	db.SetMaxOpenConns(1)

	store := &Store{queries: queries{db: db}, sqlDB: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.sqlDB.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schemaSQL := `
	-- Schedule periods (request windows)
	CREATE TABLE IF NOT EXISTS schedule_periods (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Shift requests (lifecycle: pending -> approved/rejected/cancelled)
	CREATE TABLE IF NOT EXISTS shift_requests (
		id TEXT PRIMARY KEY,
		period_id TEXT NOT NULL REFERENCES schedule_periods(id) ON DELETE CASCADE,
		pa_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_minutes INTEGER NOT NULL,
		end_minutes INTEGER NOT NULL,
		duration_hours TEXT NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		admin_notes TEXT NOT NULL DEFAULT '',
		rejected_reason TEXT NOT NULL DEFAULT '',
		approved_by TEXT,
		approved_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_date_status
		ON shift_requests(date, status);
	CREATE INDEX IF NOT EXISTS idx_shifts_pa_date
		ON shift_requests(pa_id, date);
	CREATE INDEX IF NOT EXISTS idx_shifts_period_status
		ON shift_requests(period_id, status);

	-- One derived coverage record per calendar date
	CREATE TABLE IF NOT EXISTS critical_time_coverage (
		date TEXT PRIMARY KEY,
		morning_covered INTEGER NOT NULL DEFAULT 0,
		evening_covered INTEGER NOT NULL DEFAULT 0,
		morning_shift_id TEXT,
		evening_shift_id TEXT,
		updated_at TEXT NOT NULL
	);

	-- One derived record per (period, PA, Monday)
	CREATE TABLE IF NOT EXISTS weekly_coverage (
		period_id TEXT NOT NULL,
		pa_id TEXT NOT NULL,
		week_start TEXT NOT NULL,
		total_hours TEXT NOT NULL,
		exceeds_limit INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (period_id, pa_id, week_start)
	);

	CREATE INDEX IF NOT EXISTS idx_weekly_pa_week
		ON weekly_coverage(pa_id, week_start);

	-- PA registry
	CREATE TABLE IF NOT EXISTS pas (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		max_hours_per_week TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- Dispatched lifecycle events
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		shift_id TEXT NOT NULL DEFAULT '',
		period_id TEXT NOT NULL DEFAULT '',
		actor TEXT NOT NULL DEFAULT '',
		at TEXT NOT NULL,
		payload_json TEXT NOT NULL DEFAULT '{}'
	);

	CREATE INDEX IF NOT EXISTS idx_events_at ON events(at);
	`

	_, err := s.sqlDB.Exec(schemaSQL)
	return err
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn within a single database transaction spanning all
// store interfaces. Any error rolls everything back.
func (s *Store) WithTx(ctx context.Context, fn func(schedule.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	q := &queries{db: sqlTx}
	if err := fn(schedule.Stores{Shifts: q, Periods: q, Coverage: q, Weekly: q, Limits: q}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// =============================================================================
// SHIFT STORE
// =============================================================================

const shiftColumns = `id, period_id, pa_id, date, start_minutes, end_minutes,
	duration_hours, status, notes, admin_notes, rejected_reason,
	approved_by, approved_at, created_at, updated_at`

func (q *queries) Get(ctx context.Context, id schedule.ShiftID) (*schedule.ShiftRequest, error) {
	shifts, err := q.queryShifts(ctx,
		`SELECT `+shiftColumns+` FROM shift_requests WHERE id = ?`, string(id))
	if err != nil || len(shifts) == 0 {
		return nil, err
	}
	return &shifts[0], nil
}

func (q *queries) OnDate(ctx context.Context, date time.Time) ([]schedule.ShiftRequest, error) {
	return q.queryShifts(ctx,
		`SELECT `+shiftColumns+` FROM shift_requests WHERE date = ? ORDER BY date, id`,
		schedule.FormatDate(date))
}

func (q *queries) ApprovedOnDate(ctx context.Context, date time.Time) ([]schedule.ShiftRequest, error) {
	return q.queryShifts(ctx,
		`SELECT `+shiftColumns+` FROM shift_requests WHERE date = ? AND status = ? ORDER BY date, id`,
		schedule.FormatDate(date), string(schedule.StatusApproved))
}

func (q *queries) List(ctx context.Context, f schedule.ShiftFilter) ([]schedule.ShiftRequest, error) {
	query := `SELECT ` + shiftColumns + ` FROM shift_requests WHERE 1=1`
	var args []any
	if f.PA != nil {
		query += ` AND pa_id = ?`
		args = append(args, string(*f.PA))
	}
	if f.PeriodID != nil {
		query += ` AND period_id = ?`
		args = append(args, string(*f.PeriodID))
	}
	if len(f.Statuses) > 0 {
		query += ` AND status IN (` + placeholders(len(f.Statuses)) + `)`
		for _, st := range f.Statuses {
			args = append(args, string(st))
		}
	}
	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, schedule.FormatDate(*f.From))
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, schedule.FormatDate(*f.To))
	}
	query += ` ORDER BY date, id`
	return q.queryShifts(ctx, query, args...)
}

func (q *queries) Upsert(ctx context.Context, sh *schedule.ShiftRequest) error {
	var approvedBy, approvedAt any
	if sh.ApprovedBy != nil {
		approvedBy = *sh.ApprovedBy
	}
	if sh.ApprovedAt != nil {
		approvedAt = sh.ApprovedAt.UTC().Format(time.RFC3339)
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO shift_requests (`+shiftColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(sh.ID), string(sh.PeriodID), string(sh.PA),
		schedule.FormatDate(sh.Date), int(sh.Start), int(sh.End),
		sh.DurationHours.String(), string(sh.Status),
		sh.Notes, sh.AdminNotes, sh.RejectedReason,
		approvedBy, approvedAt,
		sh.CreatedAt.UTC().Format(time.RFC3339), sh.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert shift %s: %w", sh.ID, err)
	}
	return nil
}

func (q *queries) queryShifts(ctx context.Context, query string, args ...any) ([]schedule.ShiftRequest, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []schedule.ShiftRequest
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

func scanShift(rows *sql.Rows) (schedule.ShiftRequest, error) {
	var (
		sh                       schedule.ShiftRequest
		id, periodID, paID, date string
		startMin, endMin         int
		duration, status         string
		approvedBy, approvedAt   sql.NullString
		createdAt, updatedAt     string
	)
	err := rows.Scan(&id, &periodID, &paID, &date, &startMin, &endMin,
		&duration, &status, &sh.Notes, &sh.AdminNotes, &sh.RejectedReason,
		&approvedBy, &approvedAt, &createdAt, &updatedAt)
	if err != nil {
		return sh, err
	}

	sh.ID = schedule.ShiftID(id)
	sh.PeriodID = schedule.PeriodID(periodID)
	sh.PA = schedule.PAID(paID)
	if sh.Date, err = schedule.ParseDate(date); err != nil {
		return sh, err
	}
	sh.Start = schedule.TimeOfDay(startMin)
	sh.End = schedule.TimeOfDay(endMin)
	if sh.DurationHours, err = decimal.NewFromString(duration); err != nil {
		return sh, fmt.Errorf("bad duration for shift %s: %w", id, err)
	}
	sh.Status = schedule.ShiftStatus(status)
	if approvedBy.Valid {
		v := approvedBy.String
		sh.ApprovedBy = &v
	}
	if approvedAt.Valid {
		t, err := time.Parse(time.RFC3339, approvedAt.String)
		if err != nil {
			return sh, err
		}
		sh.ApprovedAt = &t
	}
	if sh.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return sh, err
	}
	if sh.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return sh, err
	}
	return sh, nil
}

// =============================================================================
// PERIOD STORE
// =============================================================================

const periodColumns = `id, name, start_date, end_date, status, created_by, created_at, updated_at`

func (q *queries) GetPeriod(ctx context.Context, id schedule.PeriodID) (*schedule.SchedulePeriod, error) {
	periods, err := q.queryPeriods(ctx,
		`SELECT `+periodColumns+` FROM schedule_periods WHERE id = ?`, string(id))
	if err != nil || len(periods) == 0 {
		return nil, err
	}
	return &periods[0], nil
}

func (q *queries) ListPeriods(ctx context.Context) ([]schedule.SchedulePeriod, error) {
	return q.queryPeriods(ctx,
		`SELECT `+periodColumns+` FROM schedule_periods ORDER BY start_date DESC, id`)
}

func (q *queries) SavePeriod(ctx context.Context, p *schedule.SchedulePeriod) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO schedule_periods (`+periodColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(p.ID), p.Name,
		schedule.FormatDate(p.StartDate), schedule.FormatDate(p.EndDate),
		string(p.Status), p.CreatedBy,
		p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save period %s: %w", p.ID, err)
	}
	return nil
}

// DeletePeriod removes a period; the foreign key cascade removes its shifts.
func (s *Store) DeletePeriod(ctx context.Context, id schedule.PeriodID) error {
	_, err := s.sqlDB.ExecContext(ctx, `DELETE FROM schedule_periods WHERE id = ?`, string(id))
	return err
}

func (q *queries) queryPeriods(ctx context.Context, query string, args ...any) ([]schedule.SchedulePeriod, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []schedule.SchedulePeriod
	for rows.Next() {
		var (
			p                    schedule.SchedulePeriod
			id, start, end       string
			status               string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&id, &p.Name, &start, &end, &status, &p.CreatedBy, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.ID = schedule.PeriodID(id)
		if p.StartDate, err = schedule.ParseDate(start); err != nil {
			return nil, err
		}
		if p.EndDate, err = schedule.ParseDate(end); err != nil {
			return nil, err
		}
		p.Status = schedule.PeriodStatus(status)
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// =============================================================================
// COVERAGE STORE
// =============================================================================

const coverageColumns = `date, morning_covered, evening_covered, morning_shift_id, evening_shift_id, updated_at`

func (q *queries) GetCoverage(ctx context.Context, date time.Time) (*schedule.CriticalTimeCoverage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+coverageColumns+` FROM critical_time_coverage WHERE date = ?`,
		schedule.FormatDate(date))
	cov, err := scanCoverage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return cov, err
}

func (q *queries) GetOrCreateCoverage(ctx context.Context, date time.Time) (*schedule.CriticalTimeCoverage, error) {
	cov, err := q.GetCoverage(ctx, date)
	if cov != nil || err != nil {
		return cov, err
	}
	// UpdatedAt stays zero; the caller stamps it before its own Save.
	cov = &schedule.CriticalTimeCoverage{Date: schedule.DateOf(date)}
	if err := q.SaveCoverage(ctx, cov); err != nil {
		return nil, err
	}
	return cov, nil
}

func (q *queries) SaveCoverage(ctx context.Context, c *schedule.CriticalTimeCoverage) error {
	var morningShift, eveningShift any
	if c.MorningShift != nil {
		morningShift = string(*c.MorningShift)
	}
	if c.EveningShift != nil {
		eveningShift = string(*c.EveningShift)
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO critical_time_coverage (`+coverageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		schedule.FormatDate(c.Date), boolInt(c.MorningCovered), boolInt(c.EveningCovered),
		morningShift, eveningShift, c.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save coverage for %s: %w", schedule.FormatDate(c.Date), err)
	}
	return nil
}

// CoverageRange returns stored coverage records in [from, to] keyed by
// date string. Dates without a record are simply absent.
func (s *Store) CoverageRange(ctx context.Context, from, to time.Time) (map[string]schedule.CriticalTimeCoverage, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+coverageColumns+` FROM critical_time_coverage
		 WHERE date >= ? AND date <= ? ORDER BY date`,
		schedule.FormatDate(from), schedule.FormatDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]schedule.CriticalTimeCoverage)
	for rows.Next() {
		cov, err := scanCoverage(rows)
		if err != nil {
			return nil, err
		}
		out[schedule.FormatDate(cov.Date)] = *cov
	}
	return out, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface{ Scan(dest ...any) error }

func scanCoverage(row rowScanner) (*schedule.CriticalTimeCoverage, error) {
	var (
		cov              schedule.CriticalTimeCoverage
		date             string
		morning, evening int
		mShift, eShift   sql.NullString
		updatedAt        string
	)
	if err := row.Scan(&date, &morning, &evening, &mShift, &eShift, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if cov.Date, err = schedule.ParseDate(date); err != nil {
		return nil, err
	}
	cov.MorningCovered = morning != 0
	cov.EveningCovered = evening != 0
	if mShift.Valid {
		id := schedule.ShiftID(mShift.String)
		cov.MorningShift = &id
	}
	if eShift.Valid {
		id := schedule.ShiftID(eShift.String)
		cov.EveningShift = &id
	}
	if cov.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, err
	}
	return &cov, nil
}

// =============================================================================
// WEEKLY STORE
// =============================================================================

const weeklyColumns = `period_id, pa_id, week_start, total_hours, exceeds_limit, updated_at`

func (q *queries) FindWeekly(ctx context.Context, pa schedule.PAID, weekStart time.Time) (*schedule.WeeklyCoverage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+weeklyColumns+` FROM weekly_coverage WHERE pa_id = ? AND week_start = ?`,
		string(pa), schedule.FormatDate(schedule.WeekStart(weekStart)))
	w, err := scanWeekly(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return w, err
}

func (q *queries) GetOrCreateWeekly(ctx context.Context, periodID schedule.PeriodID, pa schedule.PAID, weekStart time.Time) (*schedule.WeeklyCoverage, error) {
	ws := schedule.WeekStart(weekStart)
	row := q.db.QueryRowContext(ctx,
		`SELECT `+weeklyColumns+` FROM weekly_coverage
		 WHERE period_id = ? AND pa_id = ? AND week_start = ?`,
		string(periodID), string(pa), schedule.FormatDate(ws))
	w, err := scanWeekly(row)
	if err == nil {
		return w, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}
	// UpdatedAt stays zero; the caller stamps it before its own Save.
	w = &schedule.WeeklyCoverage{
		PeriodID:   periodID,
		PA:         pa,
		WeekStart:  ws,
		TotalHours: decimal.Zero,
	}
	if err := q.SaveWeekly(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (q *queries) SaveWeekly(ctx context.Context, w *schedule.WeeklyCoverage) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO weekly_coverage (`+weeklyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(w.PeriodID), string(w.PA), schedule.FormatDate(w.WeekStart),
		w.TotalHours.String(), boolInt(w.ExceedsLimit), w.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save weekly coverage: %w", err)
	}
	return nil
}

// WeeklyForPeriod returns every weekly record for a period ordered by
// (PA, week).
func (s *Store) WeeklyForPeriod(ctx context.Context, periodID schedule.PeriodID) ([]schedule.WeeklyCoverage, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+weeklyColumns+` FROM weekly_coverage
		 WHERE period_id = ? ORDER BY pa_id, week_start`, string(periodID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.WeeklyCoverage
	for rows.Next() {
		w, err := scanWeekly(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func scanWeekly(row rowScanner) (*schedule.WeeklyCoverage, error) {
	var (
		w                  schedule.WeeklyCoverage
		periodID, paID, ws string
		total              string
		exceeds            int
		updatedAt          string
	)
	if err := row.Scan(&periodID, &paID, &ws, &total, &exceeds, &updatedAt); err != nil {
		return nil, err
	}
	w.PeriodID = schedule.PeriodID(periodID)
	w.PA = schedule.PAID(paID)
	var err error
	if w.WeekStart, err = schedule.ParseDate(ws); err != nil {
		return nil, err
	}
	if w.TotalHours, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	w.ExceedsLimit = exceeds != 0
	if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// =============================================================================
// PA REGISTRY + LIMIT PROVIDER
// =============================================================================

const paColumns = `id, name, email, max_hours_per_week, created_at`

// SavePA inserts or updates a PA record.
func (s *Store) SavePA(ctx context.Context, pa schedule.PA) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT OR REPLACE INTO pas (`+paColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		string(pa.ID), pa.Name, pa.Email, pa.MaxHoursPerWeek.String(),
		pa.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save pa %s: %w", pa.ID, err)
	}
	return nil
}

// GetPA returns the PA with the given ID, or nil if unknown.
func (q *queries) GetPA(ctx context.Context, id schedule.PAID) (*schedule.PA, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+paColumns+` FROM pas WHERE id = ?`, string(id))
	pa, err := scanPA(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return pa, err
}

// ListPAs returns all registered PAs ordered by name.
func (s *Store) ListPAs(ctx context.Context) ([]schedule.PA, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+paColumns+` FROM pas ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pas []schedule.PA
	for rows.Next() {
		pa, err := scanPA(rows)
		if err != nil {
			return nil, err
		}
		pas = append(pas, *pa)
	}
	return pas, rows.Err()
}

// WeeklyLimit returns the PA's configured limit, falling back to
// DefaultWeeklyLimit for unknown PAs or PAs without one. Bound to the
// open transaction when reached through a WithTx bundle.
func (q *queries) WeeklyLimit(ctx context.Context, id schedule.PAID) (decimal.Decimal, error) {
	pa, err := q.GetPA(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if pa == nil || pa.MaxHoursPerWeek.IsZero() {
		return schedule.DefaultWeeklyLimit, nil
	}
	return pa.MaxHoursPerWeek, nil
}

func scanPA(row rowScanner) (*schedule.PA, error) {
	var (
		pa           schedule.PA
		id, maxHours string
		createdAt    string
	)
	if err := row.Scan(&id, &pa.Name, &pa.Email, &maxHours, &createdAt); err != nil {
		return nil, err
	}
	pa.ID = schedule.PAID(id)
	var err error
	if pa.MaxHoursPerWeek, err = decimal.NewFromString(maxHours); err != nil {
		return nil, err
	}
	if pa.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, err
	}
	return &pa, nil
}

// =============================================================================
// EVENT FEED
// =============================================================================

// EventRecord is a dispatched lifecycle event as persisted to the feed.
type EventRecord struct {
	ID       string
	Type     string
	ShiftID  string
	PeriodID string
	Actor    string
	At       time.Time
	Payload  map[string]any
}

// AppendEvent persists a dispatched event to the feed.
func (s *Store) AppendEvent(ctx context.Context, rec EventRecord) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO events (id, type, shift_id, period_id, actor, at, payload_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Type, rec.ShiftID, rec.PeriodID, rec.Actor,
		rec.At.UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// ListEvents returns the newest events first, optionally filtered by type.
// limit <= 0 means the default of 100.
func (s *Store) ListEvents(ctx context.Context, eventType string, limit int) ([]EventRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, type, shift_id, period_id, actor, at, payload_json FROM events`
	var args []any
	if eventType != "" {
		query += ` WHERE type = ?`
		args = append(args, eventType)
	}
	query += ` ORDER BY at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var (
			rec         EventRecord
			at, payload string
		)
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.ShiftID, &rec.PeriodID, &rec.Actor, &at, &payload); err != nil {
			return nil, err
		}
		if rec.At, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
			return nil, err
		}
		events = append(events, rec)
	}
	return events, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset wipes every table. Dev/demo use only.
func (s *Store) Reset(ctx context.Context) error {
	tables := []string{
		"events", "weekly_coverage", "critical_time_coverage",
		"shift_requests", "schedule_periods", "pas",
	}
	for _, table := range tables {
		if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func placeholders(n int) string {
	out := "?"
	for i := 1; i < n; i++ {
		out += ",?"
	}
	return out
}

// Compile-time interface checks.
var (
	_ schedule.ShiftStore    = (*queries)(nil)
	_ schedule.PeriodStore   = (*queries)(nil)
	_ schedule.CoverageStore = (*queries)(nil)
	_ schedule.WeeklyStore   = (*queries)(nil)
	_ schedule.LimitProvider = (*queries)(nil)
	_ schedule.TxRunner      = (*Store)(nil)
	_ schedule.LimitProvider = (*Store)(nil)
)
