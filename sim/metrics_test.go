package sim

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/rrsim/sim/trace"
)

func TestMetrics_Print_TwoDecimalFormat(t *testing.T) {
	// GIVEN the two-process round-robin run
	s := NewSimulator([]Process{NewProcess(1, 0, 4), NewProcess(2, 1, 4)}, NewSimConfig(2, trace.TraceLevelNone))
	s.Run()
	m := CollectMetrics(s)

	// WHEN Print is called
	var buf bytes.Buffer
	m.Print(&buf)

	// THEN both averages are printed with two decimals
	assert.Equal(t, "Average waiting time: 2.50\nAverage response time: 0.50\n", buf.String())
}

func TestMetrics_Print_DegenerateQuantum_Zeros(t *testing.T) {
	s := NewSimulator([]Process{NewProcess(1, 0, 4)}, NewSimConfig(0, trace.TraceLevelNone))
	s.Run()

	var buf bytes.Buffer
	CollectMetrics(s).Print(&buf)

	assert.Equal(t, "Average waiting time: 0.00\nAverage response time: 0.00\n", buf.String())
}

func TestCollectMetrics_TotalsAndRows(t *testing.T) {
	// GIVEN the four-process quantum-3 workload
	procs := []Process{NewProcess(1, 0, 7), NewProcess(2, 2, 4), NewProcess(3, 4, 1), NewProcess(4, 5, 4)}
	s := NewSimulator(procs, NewSimConfig(3, trace.TraceLevelNone))
	s.Run()

	// WHEN metrics are collected
	m := CollectMetrics(s)

	// THEN totals match finish - arrival - burst and first run - arrival
	assert.Equal(t, 4, m.ProcessCount)
	assert.Equal(t, 4, m.CompletedProcesses)
	assert.Equal(t, int64(28), m.TotalWaitingTime)
	assert.Equal(t, int64(11), m.TotalResponseTime)
	assert.Equal(t, int64(44), m.TotalTurnaroundTime)
	assert.Equal(t, int64(16), m.SimEndedTime)
	assert.Equal(t, 11.0, m.AverageTurnaroundTime())
	require.Len(t, m.Processes, 4)
	assert.Equal(t, int64(8), *m.Processes[0].Waiting)
	assert.Equal(t, int64(5), *m.Processes[2].Response)
}

func TestMetrics_PrintProcessTable_UnsetAsDash(t *testing.T) {
	s := NewSimulator([]Process{NewProcess(9, 0, 2)}, NewSimConfig(-1, trace.TraceLevelNone))
	s.Run()

	var buf bytes.Buffer
	CollectMetrics(s).PrintProcessTable(&buf)

	out := buf.String()
	assert.Contains(t, out, "PID")
	assert.Contains(t, out, "Response")
	assert.Contains(t, out, "-")
	assert.Contains(t, out, "9")
}

func TestMetrics_SaveResults_WritesJSON(t *testing.T) {
	// GIVEN a completed run
	s := NewSimulator([]Process{NewProcess(1, 0, 4), NewProcess(2, 1, 4)}, NewSimConfig(2, trace.TraceLevelNone))
	s.Run()
	m := CollectMetrics(s)
	outputPath := filepath.Join(t.TempDir(), "results.json")

	// WHEN SaveResults is called
	require.NoError(t, m.SaveResults(outputPath))

	// THEN the file decodes back with the run id, averages and per-process rows
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var output MetricsOutput
	require.NoError(t, json.Unmarshal(data, &output))
	assert.Equal(t, s.RunID, output.RunID)
	assert.Equal(t, int64(2), output.Quantum)
	assert.Equal(t, 2.5, output.AverageWaitingTime)
	assert.Equal(t, 0.5, output.AverageResponseTime)
	assert.Equal(t, 2, output.Waiting.Count)
	assert.Equal(t, 3.0, output.Waiting.Max)
	require.Len(t, output.Processes, 2)
	assert.Equal(t, int64(8), *output.Processes[1].FinishTime)
}

func TestMetrics_SaveResults_DegenerateRun_OmitsUnsetFields(t *testing.T) {
	s := NewSimulator([]Process{NewProcess(1, 0, 4)}, NewSimConfig(0, trace.TraceLevelNone))
	s.Run()
	outputPath := filepath.Join(t.TempDir(), "results.json")

	require.NoError(t, CollectMetrics(s).SaveResults(outputPath))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "finish_time")
	assert.NotContains(t, string(data), "first_run_time")
}

func TestMetrics_SaveResults_BadPath_ReturnsError(t *testing.T) {
	m := &Metrics{}
	err := m.SaveResults(filepath.Join(t.TempDir(), "missing", "dir", "out.json"))
	assert.Error(t, err)
}
