package trace

// TraceSummary aggregates statistics from a ScheduleTrace.
type TraceSummary struct {
	Dispatches      int
	ContextSwitches int // dispatches of a different process than the previous dispatch
	Preemptions     int
	Completions     int
	IdleTicks       int64
	Makespan        int64   // clock of the last completion
	BusyTicks       int64   // Makespan - IdleTicks
	Utilization     float64 // BusyTicks / Makespan
	DispatchesByPID map[int64]int
}

// Summarize computes aggregate statistics from a ScheduleTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *ScheduleTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchesByPID: make(map[int64]int),
	}
	if st == nil {
		return summary
	}

	var lastPID int64
	dispatched := false
	for _, r := range st.Records {
		switch r.Kind {
		case KindDispatch:
			summary.Dispatches++
			summary.DispatchesByPID[r.PID]++
			if dispatched && r.PID != lastPID {
				summary.ContextSwitches++
			}
			lastPID = r.PID
			dispatched = true
		case KindPreempt:
			summary.Preemptions++
		case KindComplete:
			summary.Completions++
			if r.Clock > summary.Makespan {
				summary.Makespan = r.Clock
			}
		case KindIdle:
			summary.IdleTicks++
		}
	}

	if summary.Makespan > 0 {
		summary.BusyTicks = summary.Makespan - summary.IdleTicks
		summary.Utilization = float64(summary.BusyTicks) / float64(summary.Makespan)
	}
	return summary
}
