// Tracks per-process and run-wide scheduling metrics such as:
// waiting time, response time, and turnaround time.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
)

// ProcessMetrics is the per-process report row. Timestamps that were never
// set (degenerate quantum) are nil.
type ProcessMetrics struct {
	PID          int64  `json:"pid"`
	ArrivalTime  int64  `json:"arrival_time"`
	BurstTime    int64  `json:"burst_time"`
	FinishTime   *int64 `json:"finish_time,omitempty"`
	FirstRunTime *int64 `json:"first_run_time,omitempty"`
	Turnaround   *int64 `json:"turnaround_time,omitempty"`
	Waiting      *int64 `json:"waiting_time,omitempty"`
	Response     *int64 `json:"response_time,omitempty"`
}

// Metrics aggregates statistics about one simulation run for final reporting.
type Metrics struct {
	RunID               string
	Quantum             int64
	ProcessCount        int   // Number of processes in the table
	CompletedProcesses  int   // Number of processes with a finish time
	TotalWaitingTime    int64 // Sum of finish - arrival - burst
	TotalResponseTime   int64 // Sum of first run - arrival
	TotalTurnaroundTime int64 // Sum of finish - arrival
	SimEndedTime        int64 // Clock value when the run stopped

	Processes []ProcessMetrics // in process-table order
}

// CollectMetrics reads the finished process table. It never mutates it.
func CollectMetrics(sim *Simulator) *Metrics {
	m := &Metrics{
		RunID:        sim.RunID,
		Quantum:      sim.Quantum,
		ProcessCount: len(sim.Processes),
		SimEndedTime: sim.Clock,
		Processes:    make([]ProcessMetrics, 0, len(sim.Processes)),
	}
	for i := range sim.Processes {
		p := &sim.Processes[i]
		row := ProcessMetrics{PID: p.PID, ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime}
		if p.FinishSet {
			row.FinishTime = int64Ptr(p.FinishTime)
			m.CompletedProcesses++
		}
		if p.FirstRunSet {
			row.FirstRunTime = int64Ptr(p.FirstRunTime)
		}
		if v, ok := p.TurnaroundTime(); ok {
			row.Turnaround = int64Ptr(v)
			m.TotalTurnaroundTime += v
		}
		if v, ok := p.WaitingTime(); ok {
			row.Waiting = int64Ptr(v)
			m.TotalWaitingTime += v
		}
		if v, ok := p.ResponseTime(); ok {
			row.Response = int64Ptr(v)
			m.TotalResponseTime += v
		}
		m.Processes = append(m.Processes, row)
	}
	return m
}

// AverageWaitingTime returns TotalWaitingTime / ProcessCount, or 0 for an empty table.
func (m *Metrics) AverageWaitingTime() float64 {
	return average(m.TotalWaitingTime, m.ProcessCount)
}

// AverageResponseTime returns TotalResponseTime / ProcessCount, or 0 for an empty table.
func (m *Metrics) AverageResponseTime() float64 {
	return average(m.TotalResponseTime, m.ProcessCount)
}

// AverageTurnaroundTime returns TotalTurnaroundTime / ProcessCount, or 0 for an empty table.
func (m *Metrics) AverageTurnaroundTime() float64 {
	return average(m.TotalTurnaroundTime, m.ProcessCount)
}

// Print writes the two headline averages.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintf(w, "Average waiting time: %.2f\n", m.AverageWaitingTime())
	fmt.Fprintf(w, "Average response time: %.2f\n", m.AverageResponseTime())
}

// PrintProcessTable writes one row per process. Unset values print as "-".
func (m *Metrics) PrintProcessTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PID\tArrival\tBurst\tFinish\tFirstRun\tTurnaround\tWaiting\tResponse\t")
	for _, row := range m.Processes {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			row.PID, row.ArrivalTime, row.BurstTime,
			formatOptional(row.FinishTime), formatOptional(row.FirstRunTime),
			formatOptional(row.Turnaround), formatOptional(row.Waiting), formatOptional(row.Response))
	}
	if err := tw.Flush(); err != nil {
		logrus.Errorf("writing process table: %v", err)
	}
}

// MetricsOutput is the JSON layout written by SaveResults.
type MetricsOutput struct {
	RunID                 string           `json:"run_id"`
	Quantum               int64            `json:"quantum"`
	ProcessCount          int              `json:"process_count"`
	CompletedProcesses    int              `json:"completed_processes"`
	SimEndedTime          int64            `json:"sim_ended_time"`
	AverageWaitingTime    float64          `json:"average_waiting_time"`
	AverageResponseTime   float64          `json:"average_response_time"`
	AverageTurnaroundTime float64          `json:"average_turnaround_time"`
	Waiting               Distribution     `json:"waiting"`
	Response              Distribution     `json:"response"`
	Turnaround            Distribution     `json:"turnaround"`
	Processes             []ProcessMetrics `json:"processes"`
}

// Output builds the JSON view of the metrics.
func (m *Metrics) Output() MetricsOutput {
	var waiting, response, turnaround []int64
	for _, row := range m.Processes {
		if row.Waiting != nil {
			waiting = append(waiting, *row.Waiting)
		}
		if row.Response != nil {
			response = append(response, *row.Response)
		}
		if row.Turnaround != nil {
			turnaround = append(turnaround, *row.Turnaround)
		}
	}
	return MetricsOutput{
		RunID:                 m.RunID,
		Quantum:               m.Quantum,
		ProcessCount:          m.ProcessCount,
		CompletedProcesses:    m.CompletedProcesses,
		SimEndedTime:          m.SimEndedTime,
		AverageWaitingTime:    m.AverageWaitingTime(),
		AverageResponseTime:   m.AverageResponseTime(),
		AverageTurnaroundTime: m.AverageTurnaroundTime(),
		Waiting:               NewDistribution(waiting),
		Response:              NewDistribution(response),
		Turnaround:            NewDistribution(turnaround),
		Processes:             m.Processes,
	}
}

// SaveResults writes the metrics as indented JSON to outputFilePath.
func (m *Metrics) SaveResults(outputFilePath string) error {
	data, err := json.MarshalIndent(m.Output(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if err := os.WriteFile(outputFilePath, data, 0644); err != nil {
		return fmt.Errorf("write metrics to %s: %w", outputFilePath, err)
	}
	logrus.Debugf("Successfully wrote metrics to '%s'", outputFilePath)
	return nil
}

func average(total int64, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func formatOptional(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
