package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/rrsim/sim/exporter"
	"github.com/inference-sim/rrsim/sim/trace"
	"github.com/inference-sim/rrsim/sim/workload"
)

var (
	// CLI flags for quantum sweeps
	sweepWorkload        string  // Process file (text or YAML)
	sweepFormat          string  // "text", "yaml", or "" to detect from the extension
	sweepQuanta          []int64 // Quanta to compare
	sweepMetricsTextfile string  // Prometheus textfile
)

// sweepCmd runs one simulation per quantum over the same workload and
// prints a comparison table.
var sweepCmd = &cobra.Command{
	Use:   "sweep [workload]",
	Short: "Compare round-robin runs across several quanta",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSweep(cmd, args); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// SweepRow is the outcome of one quantum in a sweep.
type SweepRow struct {
	Quantum         int64
	AvgWaiting      float64
	AvgResponse     float64
	AvgTurnaround   float64
	ContextSwitches int
	Makespan        int64
}

func runSweep(cmd *cobra.Command, args []string) error {
	path := pick(cmd, "workload", sweepWorkload, fileConfig.Workload)
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("workload file not provided")
	}
	format := pick(cmd, "format", sweepFormat, fileConfig.Format)
	if !workload.IsValidFormat(format) {
		return fmt.Errorf("unknown workload format %q; valid: text, yaml", format)
	}
	quanta := uniqueQuanta(sweepQuanta)
	if len(quanta) == 0 {
		return fmt.Errorf("no quanta provided")
	}

	w, err := workload.LoadProcesses(path, workload.Format(format))
	if err != nil {
		return fmt.Errorf("unable to load workload: %w", err)
	}

	var collector *exporter.Collector
	textfile := pick(cmd, "metrics-textfile", sweepMetricsTextfile, fileConfig.MetricsTextfile)
	if textfile != "" {
		collector = exporter.NewCollector()
	}

	rows := make([]SweepRow, 0, len(quanta))
	for _, q := range quanta {
		s, m := simulate(w.Processes, q, trace.TraceLevelEvents)
		summary := trace.Summarize(s.Trace)
		rows = append(rows, SweepRow{
			Quantum:         q,
			AvgWaiting:      m.AverageWaitingTime(),
			AvgResponse:     m.AverageResponseTime(),
			AvgTurnaround:   m.AverageTurnaroundTime(),
			ContextSwitches: summary.ContextSwitches,
			Makespan:        summary.Makespan,
		})
		if collector != nil {
			collector.Observe(m, summary)
		}
		logrus.Debugf("sweep quantum=%d done in %d steps", q, s.StepCount)
	}

	printSweepTable(cmd.OutOrStdout(), rows)

	if collector != nil {
		if err := collector.WriteTextfile(textfile); err != nil {
			return fmt.Errorf("writing metrics textfile: %w", err)
		}
	}
	return nil
}

// uniqueQuanta drops repeated quanta, keeping first-seen order. Each quantum
// is simulated once so its counters and histogram are observed once.
func uniqueQuanta(quanta []int64) []int64 {
	seen := make(map[int64]bool, len(quanta))
	out := make([]int64, 0, len(quanta))
	for _, q := range quanta {
		if seen[q] {
			logrus.Warnf("sweep: ignoring repeated quantum %d", q)
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

func printSweepTable(w io.Writer, rows []SweepRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Quantum\tAvg Waiting\tAvg Response\tAvg Turnaround\tContext Switches\tMakespan\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%d\t%d\t\n",
			r.Quantum, r.AvgWaiting, r.AvgResponse, r.AvgTurnaround, r.ContextSwitches, r.Makespan)
	}
	if err := tw.Flush(); err != nil {
		logrus.Errorf("writing sweep table: %v", err)
	}
}

func init() {
	sweepCmd.Flags().StringVar(&sweepWorkload, "workload", "", "Path to the process file")
	sweepCmd.Flags().StringVar(&sweepFormat, "format", "", "Process file format (text, yaml); detected from the extension when empty")
	sweepCmd.Flags().Int64SliceVar(&sweepQuanta, "quanta", []int64{1, 2, 4, 8}, "Comma-separated quanta to compare")
	sweepCmd.Flags().StringVar(&sweepMetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics for every quantum to this file")
}
