package sim

import (
	"testing"

	"github.com/inference-sim/rrsim/sim/trace"
	"github.com/stretchr/testify/assert"
)

func TestNewSimConfig_FieldEquivalence(t *testing.T) {
	got := NewSimConfig(4, trace.TraceLevelEvents)
	want := SimConfig{Quantum: 4, TraceLevel: trace.TraceLevelEvents}
	assert.Equal(t, want, got)
}

func TestSimConfig_ValidQuantum(t *testing.T) {
	assert.True(t, SimConfig{Quantum: 1}.ValidQuantum())
	assert.False(t, SimConfig{Quantum: 0}.ValidQuantum())
	assert.False(t, SimConfig{Quantum: -3}.ValidQuantum())
}
