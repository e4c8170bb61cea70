/*
events.go - Structured events emitted by lifecycle transitions

PURPOSE:
  Every successful transition returns an explicit list of events for the
  caller to dispatch (persist, broadcast, queue for email/SMS). The
  engine itself never delivers anything: events are produced synchronously
  in-memory inside the transition's transaction result, and delivery is
  wholly outside the consistency boundary. A dropped broadcast never
  corrupts core state; a failed transition never emits events.

EVENT TYPES:
  shift.requested    New pending request submitted
  shift.approved     Pending request approved (carries weekly totals)
  shift.rejected     Pending request rejected (carries the reason)
  shift.updated      Approved shift edited (carries a field diff)
  shift.cancelled    Request cancelled (carries coverage-gap flags)
  coverage.alert     A critical window lost its cover
  period.finalized   Period closed out (carries the coverage-gap report)

SEE ALSO:
  - lifecycle.go: Where events are built
  - api/handlers.go: The dispatching caller
*/
package schedule

import "time"

type EventType string

const (
	EventShiftRequested  EventType = "shift.requested"
	EventShiftApproved   EventType = "shift.approved"
	EventShiftRejected   EventType = "shift.rejected"
	EventShiftUpdated    EventType = "shift.updated"
	EventShiftCancelled  EventType = "shift.cancelled"
	EventCoverageAlert   EventType = "coverage.alert"
	EventPeriodFinalized EventType = "period.finalized"
)

// Event is one notification-worthy fact about a committed transition.
type Event struct {
	Type     EventType
	ShiftID  ShiftID  // empty for period-level events
	PeriodID PeriodID
	Actor    string
	At       time.Time
	Payload  map[string]any
}
