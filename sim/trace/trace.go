package trace

// TraceLevel controls the verbosity of schedule tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures arrivals, dispatches, preemptions, completions and idle ticks.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// ScheduleTrace collects schedule records during one simulation run.
type ScheduleTrace struct {
	Config  TraceConfig
	Records []ScheduleRecord
}

// NewScheduleTrace creates a ScheduleTrace ready for recording.
func NewScheduleTrace(config TraceConfig) *ScheduleTrace {
	return &ScheduleTrace{
		Config:  config,
		Records: make([]ScheduleRecord, 0),
	}
}

// Enabled reports whether records are kept. Safe on a nil trace.
func (st *ScheduleTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelEvents
}

// Record appends a record when tracing is enabled.
func (st *ScheduleTrace) Record(record ScheduleRecord) {
	if !st.Enabled() {
		return
	}
	st.Records = append(st.Records, record)
}

// Filter returns the records of the given kind, in recording order.
func (st *ScheduleTrace) Filter(kind EventKind) []ScheduleRecord {
	if st == nil {
		return nil
	}
	var out []ScheduleRecord
	for _, r := range st.Records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
