package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTraceLevel(t *testing.T) {
	assert.True(t, IsValidTraceLevel(""))
	assert.True(t, IsValidTraceLevel("none"))
	assert.True(t, IsValidTraceLevel("events"))
	assert.False(t, IsValidTraceLevel("verbose"))
}

func TestScheduleTrace_Record_LevelNone_DropsRecords(t *testing.T) {
	// GIVEN a trace configured with level none
	st := NewScheduleTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN a record is appended
	st.Record(ScheduleRecord{Clock: 0, Kind: KindDispatch, PID: 1})

	// THEN nothing is kept
	assert.Empty(t, st.Records)
}

func TestScheduleTrace_Record_NilTrace_NoPanic(t *testing.T) {
	var st *ScheduleTrace
	assert.NotPanics(t, func() {
		st.Record(ScheduleRecord{Kind: KindIdle})
	})
	assert.False(t, st.Enabled())
	assert.Nil(t, st.Filter(KindIdle))
}

func TestScheduleTrace_Filter_ReturnsMatchingKindInOrder(t *testing.T) {
	st := NewScheduleTrace(TraceConfig{Level: TraceLevelEvents})
	st.Record(ScheduleRecord{Clock: 0, Kind: KindArrival, PID: 1})
	st.Record(ScheduleRecord{Clock: 0, Kind: KindDispatch, PID: 1})
	st.Record(ScheduleRecord{Clock: 1, Kind: KindArrival, PID: 2})

	arrivals := st.Filter(KindArrival)

	assert.Len(t, arrivals, 2)
	assert.Equal(t, int64(1), arrivals[0].PID)
	assert.Equal(t, int64(2), arrivals[1].PID)
}
