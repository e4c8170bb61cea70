/*
stores.go - Persistence contracts consumed by the engine

PURPOSE:
  Defines the narrow interfaces between the engine and whatever stores
  the rows. The engine never talks to a database directly; every
  transition runs inside TxRunner.WithTx against the Stores bundle it is
  handed, so the status write and its derived recomputation commit
  together or not at all.

TRANSACTION CONTRACT:
  WithTx must give fn a consistent snapshot and serialize conflicting
  writers: two concurrent approvals of overlapping pending requests must
  not both succeed. If fn returns an error nothing fn wrote survives.

GET-OR-CREATE:
  Derived records (coverage, weekly) are get-or-create-then-update rows.
  GetOrCreate must happen inside the same transaction as the triggering
  shift write; it is never a separate fire-and-forget step.

IMPLEMENTATIONS:
  - schedule/store: in-memory, for tests and dev
  - store/sqlite: production SQLite

SEE ALSO:
  - lifecycle.go: The only consumer of these interfaces
*/
package schedule

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT STORE
// =============================================================================

// ShiftFilter narrows List queries. Nil fields match everything.
type ShiftFilter struct {
	PA       *PAID
	PeriodID *PeriodID
	Statuses []ShiftStatus
	From     *time.Time // inclusive date bound
	To       *time.Time // inclusive date bound
}

// ShiftStore persists shift requests.
type ShiftStore interface {
	// Get returns the shift or nil when it doesn't exist.
	Get(ctx context.Context, id ShiftID) (*ShiftRequest, error)

	// OnDate returns every shift on a date, any status.
	OnDate(ctx context.Context, date time.Time) ([]ShiftRequest, error)

	// ApprovedOnDate returns the APPROVED shifts on a date.
	ApprovedOnDate(ctx context.Context, date time.Time) ([]ShiftRequest, error)

	// List returns shifts matching the filter, ordered by (date, id).
	List(ctx context.Context, f ShiftFilter) ([]ShiftRequest, error)

	// Upsert inserts or replaces a shift row.
	Upsert(ctx context.Context, s *ShiftRequest) error
}

// =============================================================================
// PERIOD STORE
// =============================================================================

// PeriodStore persists schedule periods. Deleting a period cascades to
// its shifts.
type PeriodStore interface {
	// GetPeriod returns the period or nil when it doesn't exist.
	GetPeriod(ctx context.Context, id PeriodID) (*SchedulePeriod, error)

	// ListPeriods returns all periods, newest start date first.
	ListPeriods(ctx context.Context) ([]SchedulePeriod, error)

	// SavePeriod inserts or replaces a period row.
	SavePeriod(ctx context.Context, p *SchedulePeriod) error
}

// =============================================================================
// DERIVED-STATE STORES
// =============================================================================

// CoverageStore persists per-date critical-time coverage records.
type CoverageStore interface {
	// GetCoverage returns the record or nil when none exists for the date.
	GetCoverage(ctx context.Context, date time.Time) (*CriticalTimeCoverage, error)

	// GetOrCreateCoverage returns the record, creating an empty one if
	// the date has never been computed.
	GetOrCreateCoverage(ctx context.Context, date time.Time) (*CriticalTimeCoverage, error)

	// SaveCoverage replaces the record for its date.
	SaveCoverage(ctx context.Context, c *CriticalTimeCoverage) error
}

// WeeklyStore persists per-(period, PA, week) hour totals.
type WeeklyStore interface {
	// FindWeekly returns the record for a PA's week regardless of period,
	// or nil when none exists.
	FindWeekly(ctx context.Context, pa PAID, weekStart time.Time) (*WeeklyCoverage, error)

	// GetOrCreateWeekly returns the record for the full key, creating a
	// zero record if absent.
	GetOrCreateWeekly(ctx context.Context, periodID PeriodID, pa PAID, weekStart time.Time) (*WeeklyCoverage, error)

	// SaveWeekly replaces the record for its key.
	SaveWeekly(ctx context.Context, w *WeeklyCoverage) error
}

// =============================================================================
// LIMIT PROVIDER
// =============================================================================

// LimitProvider resolves a PA's weekly hour limit. Implementations return
// DefaultWeeklyLimit when the PA has no configured limit. The engine reads
// limits during weekly recomputes, so the provider in the Stores bundle
// must be bound to the same transaction as the other stores.
type LimitProvider interface {
	WeeklyLimit(ctx context.Context, pa PAID) (decimal.Decimal, error)
}

// =============================================================================
// TRANSACTION RUNNER
// =============================================================================

// Stores bundles the store interfaces a transition works against. Every
// field, Limits included, must share the transaction WithTx opened.
type Stores struct {
	Shifts   ShiftStore
	Periods  PeriodStore
	Coverage CoverageStore
	Weekly   WeeklyStore
	Limits   LimitProvider
}

// TxRunner executes fn within one transaction over all stores.
type TxRunner interface {
	// WithTx runs fn against a transactional Stores view. If fn returns
	// an error the transaction is rolled back, otherwise committed.
	WithTx(ctx context.Context, fn func(Stores) error) error
}
