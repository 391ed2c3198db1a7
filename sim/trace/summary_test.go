package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace_ReturnsZeroSummary(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.Dispatches)
	assert.Equal(t, int64(0), summary.Makespan)
	assert.Equal(t, 0.0, summary.Utilization)
	assert.NotNil(t, summary.DispatchesByPID)
}

func TestSummarize_CountsSwitchesPreemptionsAndIdle(t *testing.T) {
	// GIVEN P1 dispatched twice in a row (single-process round robin),
	// then an idle tick, then P2 dispatched and completed
	st := NewScheduleTrace(TraceConfig{Level: TraceLevelEvents})
	st.Record(ScheduleRecord{Clock: 0, Kind: KindDispatch, PID: 1})
	st.Record(ScheduleRecord{Clock: 2, Kind: KindPreempt, PID: 1})
	st.Record(ScheduleRecord{Clock: 2, Kind: KindDispatch, PID: 1})
	st.Record(ScheduleRecord{Clock: 3, Kind: KindComplete, PID: 1})
	st.Record(ScheduleRecord{Clock: 3, Kind: KindIdle})
	st.Record(ScheduleRecord{Clock: 4, Kind: KindDispatch, PID: 2})
	st.Record(ScheduleRecord{Clock: 6, Kind: KindComplete, PID: 2})

	// WHEN summarized
	summary := Summarize(st)

	// THEN re-dispatching the same process is not a context switch
	assert.Equal(t, 3, summary.Dispatches)
	assert.Equal(t, 1, summary.ContextSwitches)
	assert.Equal(t, 1, summary.Preemptions)
	assert.Equal(t, 2, summary.Completions)
	assert.Equal(t, int64(1), summary.IdleTicks)
	assert.Equal(t, int64(6), summary.Makespan)
	assert.Equal(t, int64(5), summary.BusyTicks)
	assert.InDelta(t, 5.0/6.0, summary.Utilization, 1e-9)
	assert.Equal(t, map[int64]int{1: 2, 2: 1}, summary.DispatchesByPID)
}
