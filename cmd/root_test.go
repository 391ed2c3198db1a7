package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/rrsim/sim"
	"github.com/inference-sim/rrsim/sim/trace"
	"github.com/inference-sim/rrsim/sim/workload"
)

func TestRun_PositionalArgs_PrintsAverages(t *testing.T) {
	resetAll(t)
	// GIVEN the classic four-process file and quantum 3 as positional args
	path := writeTemp(t, "processes.txt", fourProcessFile)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"run", path, "3"})

	// WHEN the CLI executes
	require.NoError(t, rootCmd.Execute())

	// THEN both averages are printed with two decimals
	assert.Equal(t, "Average waiting time: 7.00\nAverage response time: 2.75\n", buf.String())
}

func TestRun_NonPositiveQuantum_PrintsZeros(t *testing.T) {
	resetAll(t)
	path := writeTemp(t, "processes.txt", fourProcessFile)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"run", path, "0"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "Average waiting time: 0.00\nAverage response time: 0.00\n", buf.String())
}

func TestRun_PerProcessAndTimeline(t *testing.T) {
	resetAll(t)
	path := writeTemp(t, "processes.txt", "2\n1 0 4\n2 1 4\n")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"run", "--workload", path, "--quantum", "2", "--per-process", "--timeline"})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Average waiting time: 2.50")
	assert.Contains(t, out, "Turnaround")
	assert.Contains(t, out, "Timeline: [0-2) P1 | [2-4) P2 | [4-6) P1 | [6-8) P2")
	assert.Contains(t, out, "[tick 0000002] preempt  P1 queue=2")
}

func TestRun_WritesResultsAndMetricsTextfile(t *testing.T) {
	resetAll(t)
	dir := t.TempDir()
	path := writeTemp(t, "processes.txt", fourProcessFile)
	results := filepath.Join(dir, "results.json")
	textfile := filepath.Join(dir, "rrsim.prom")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"run", path, "3", "--results", results, "--metrics-textfile", textfile})

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(results)
	require.NoError(t, err)
	var output sim.MetricsOutput
	require.NoError(t, json.Unmarshal(data, &output))
	assert.Equal(t, 7.0, output.AverageWaitingTime)
	assert.Equal(t, 2.75, output.AverageResponseTime)

	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `rrsim_makespan_ticks{quantum="3"} 16`)
}

func TestResolveRunOptions_PositionalOverridesFlags(t *testing.T) {
	resetAll(t)
	// GIVEN --quantum 5 and --workload a.txt
	require.NoError(t, runCmd.Flags().Set("quantum", "5"))
	require.NoError(t, runCmd.Flags().Set("workload", "a.txt"))

	// WHEN positional args name another file and quantum
	opts, err := resolveRunOptions(runCmd, []string{"b.txt", "2"})

	// THEN the positional values win
	require.NoError(t, err)
	assert.Equal(t, "b.txt", opts.Workload)
	assert.Equal(t, int64(2), opts.Quantum)
	assert.True(t, opts.QuantumSet)
}

func TestResolveRunOptions_ConfigFillsUnsetFlags(t *testing.T) {
	resetAll(t)
	// GIVEN a config with workload, quantum and trace level
	q := int64(4)
	fileConfig = Config{Workload: "cfg.txt", Quantum: &q, Trace: "events", Format: "text"}
	require.NoError(t, runCmd.Flags().Set("format", "yaml"))

	opts, err := resolveRunOptions(runCmd, nil)

	// THEN config values apply except where a flag was set explicitly
	require.NoError(t, err)
	assert.Equal(t, "cfg.txt", opts.Workload)
	assert.Equal(t, int64(4), opts.Quantum)
	assert.Equal(t, trace.TraceLevelEvents, opts.Trace)
	assert.Equal(t, workload.FormatYAML, opts.Format)
}

func TestResolveRunOptions_Errors(t *testing.T) {
	resetAll(t)

	_, err := resolveRunOptions(runCmd, nil)
	assert.ErrorContains(t, err, "workload file not provided")

	_, err = resolveRunOptions(runCmd, []string{"a.txt", "three"})
	var qerr *workload.QuantumError
	assert.ErrorAs(t, err, &qerr)

	require.NoError(t, runCmd.Flags().Set("trace", "verbose"))
	_, err = resolveRunOptions(runCmd, []string{"a.txt", "1"})
	assert.ErrorContains(t, err, "unknown trace level")
}

func TestResolveRunOptions_TimelineForcesEventTrace(t *testing.T) {
	resetAll(t)
	require.NoError(t, runCmd.Flags().Set("timeline", "true"))

	opts, err := resolveRunOptions(runCmd, []string{"a.txt", "1"})

	require.NoError(t, err)
	assert.Equal(t, trace.TraceLevelEvents, opts.Trace)
}

func TestRunSimulation_QuantumFromYAMLWorkload(t *testing.T) {
	resetAll(t)
	// GIVEN a YAML workload carrying its own quantum and no --quantum flag
	path := writeTemp(t, "w.yaml", "quantum: 2\nprocesses:\n  - {pid: 1, arrival: 0, burst: 4}\n  - {pid: 2, arrival: 1, burst: 4}\n")
	var buf bytes.Buffer
	runCmd.SetOut(&buf)
	t.Cleanup(func() { runCmd.SetOut(nil) })

	require.NoError(t, runSimulation(runCmd, []string{path}))

	assert.Equal(t, "Average waiting time: 2.50\nAverage response time: 0.50\n", buf.String())
}

func TestRunSimulation_MissingQuantum(t *testing.T) {
	resetAll(t)
	path := writeTemp(t, "processes.txt", fourProcessFile)

	err := runSimulation(runCmd, []string{path})

	assert.ErrorContains(t, err, "quantum not provided")
}

func TestRunSimulation_MalformedWorkload(t *testing.T) {
	resetAll(t)
	path := writeTemp(t, "processes.txt", "3\n1 0 4\n")

	err := runSimulation(runCmd, []string{path, "2"})

	assert.ErrorIs(t, err, workload.ErrUnexpectedEOF)
}
