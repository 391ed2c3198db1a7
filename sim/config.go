package sim

import "github.com/inference-sim/rrsim/sim/trace"

// SimConfig groups the parameters of one round-robin run.
type SimConfig struct {
	Quantum    int64            // max consecutive ticks per dispatch; <= 0 runs no ticks
	TraceLevel trace.TraceLevel // "none" (default) or "events"
}

// NewSimConfig builds a SimConfig.
func NewSimConfig(quantum int64, traceLevel trace.TraceLevel) SimConfig {
	return SimConfig{Quantum: quantum, TraceLevel: traceLevel}
}

// ValidQuantum reports whether the quantum allows any scheduling at all.
func (c SimConfig) ValidQuantum() bool {
	return c.Quantum > 0
}
