// Package trace provides schedule-trace recording for round-robin runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventKind names what happened at a tick.
type EventKind string

const (
	KindArrival  EventKind = "arrival"
	KindDispatch EventKind = "dispatch"
	KindPreempt  EventKind = "preempt"
	KindComplete EventKind = "complete"
	KindIdle     EventKind = "idle"
)

// ScheduleRecord captures a single scheduling event.
type ScheduleRecord struct {
	Clock      int64
	Kind       EventKind
	PID        int64 // meaningless for KindIdle
	QueueDepth int   // ready-queue length after the event
}
