package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/inference-sim/rrsim/sim/trace"
)

// Segment is a contiguous stretch of CPU time held by one process.
type Segment struct {
	PID   int64
	Start int64
	End   int64
}

// buildSegments pairs every dispatch with the preemption or completion that
// ends it.
func buildSegments(records []trace.ScheduleRecord) []Segment {
	var segments []Segment
	open := false
	var cur Segment
	for _, r := range records {
		switch r.Kind {
		case trace.KindDispatch:
			cur = Segment{PID: r.PID, Start: r.Clock}
			open = true
		case trace.KindPreempt, trace.KindComplete:
			if open && r.PID == cur.PID {
				cur.End = r.Clock
				segments = append(segments, cur)
				open = false
			}
		}
	}
	return segments
}

// printTimeline writes the CPU segments followed by the raw event log.
func printTimeline(w io.Writer, st *trace.ScheduleTrace) {
	if !st.Enabled() {
		return
	}
	segments := buildSegments(st.Records)
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, fmt.Sprintf("[%d-%d) P%d", s.Start, s.End, s.PID))
	}
	fmt.Fprintf(w, "Timeline: %s\n", strings.Join(parts, " | "))
	for _, r := range st.Records {
		if r.Kind == trace.KindIdle {
			fmt.Fprintf(w, "[tick %07d] %-8s queue=%d\n", r.Clock, r.Kind, r.QueueDepth)
			continue
		}
		fmt.Fprintf(w, "[tick %07d] %-8s P%d queue=%d\n", r.Clock, r.Kind, r.PID, r.QueueDepth)
	}
}
