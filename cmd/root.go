package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/rrsim/sim"
	"github.com/inference-sim/rrsim/sim/exporter"
	"github.com/inference-sim/rrsim/sim/trace"
	"github.com/inference-sim/rrsim/sim/workload"
)

var (
	// CLI flags shared by every subcommand
	logLevel   string // Log verbosity level
	configPath string // Optional YAML config file

	// CLI flags for a single run
	workloadPath    string // Process file (text or YAML)
	workloadFormat  string // "text", "yaml", or "" to detect from the extension
	quantum         int64  // Time quantum in ticks
	traceLevel      string // Schedule trace verbosity
	perProcess      bool   // Print a per-process table
	timeline        bool   // Print the schedule timeline
	resultsPath     string // JSON results file
	metricsTextfile string // Prometheus textfile

	// fileConfig holds the values loaded from --config, if any.
	fileConfig Config
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "rrsim",
	Short: "Round-robin CPU scheduling simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

// setup loads the config file and configures logging.
func setup(cmd *cobra.Command) error {
	fileConfig = Config{}
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		fileConfig = cfg
	}

	levelName := logLevel
	if !cmd.Flags().Changed("log") && fileConfig.LogLevel != "" {
		levelName = fileConfig.LogLevel
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", levelName)
	}
	logrus.SetLevel(level)
	return nil
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run [workload] [quantum]",
	Short: "Run the round-robin simulation",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSimulation(cmd, args); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runOptions is the resolved configuration of a run after merging
// positional arguments, flags, the config file and the workload file.
type runOptions struct {
	Workload        string
	Format          workload.Format
	Quantum         int64
	QuantumSet      bool
	Trace           trace.TraceLevel
	PerProcess      bool
	Timeline        bool
	Results         string
	MetricsTextfile string
}

// resolveRunOptions merges, in decreasing precedence: positional arguments,
// explicitly set flags, the config file, then flag defaults.
func resolveRunOptions(cmd *cobra.Command, args []string) (runOptions, error) {
	opts := runOptions{
		Workload:        pick(cmd, "workload", workloadPath, fileConfig.Workload),
		Format:          workload.Format(pick(cmd, "format", workloadFormat, fileConfig.Format)),
		Trace:           trace.TraceLevel(pick(cmd, "trace", traceLevel, fileConfig.Trace)),
		PerProcess:      perProcess,
		Timeline:        timeline,
		Results:         pick(cmd, "results", resultsPath, fileConfig.Results),
		MetricsTextfile: pick(cmd, "metrics-textfile", metricsTextfile, fileConfig.MetricsTextfile),
	}
	switch {
	case cmd.Flags().Changed("quantum"):
		opts.Quantum, opts.QuantumSet = quantum, true
	case fileConfig.Quantum != nil:
		opts.Quantum, opts.QuantumSet = *fileConfig.Quantum, true
	}

	if len(args) >= 1 {
		opts.Workload = args[0]
	}
	if len(args) == 2 {
		q, err := workload.ParseQuantum(args[1])
		if err != nil {
			return opts, err
		}
		opts.Quantum, opts.QuantumSet = q, true
	}

	if opts.Workload == "" {
		return opts, fmt.Errorf("workload file not provided")
	}
	if !workload.IsValidFormat(string(opts.Format)) {
		return opts, fmt.Errorf("unknown workload format %q; valid: text, yaml", opts.Format)
	}
	if !trace.IsValidTraceLevel(string(opts.Trace)) {
		return opts, fmt.Errorf("unknown trace level %q; valid: none, events", opts.Trace)
	}
	// The timeline and the trace-derived metrics need event records.
	if opts.Timeline || opts.MetricsTextfile != "" {
		opts.Trace = trace.TraceLevelEvents
	}
	return opts, nil
}

// pick returns the flag value when the flag was set explicitly, otherwise
// the config value when present, otherwise the flag default.
func pick(cmd *cobra.Command, flag, flagValue, configValue string) string {
	if cmd.Flags().Changed(flag) || configValue == "" {
		return flagValue
	}
	return configValue
}

// runSimulation loads the workload, runs one simulation and writes every
// requested report.
func runSimulation(cmd *cobra.Command, args []string) error {
	opts, err := resolveRunOptions(cmd, args)
	if err != nil {
		return err
	}

	w, err := workload.LoadProcesses(opts.Workload, opts.Format)
	if err != nil {
		return fmt.Errorf("unable to load workload: %w", err)
	}
	if !opts.QuantumSet && w.HasQuantum {
		opts.Quantum, opts.QuantumSet = w.Quantum, true
	}
	if !opts.QuantumSet {
		return fmt.Errorf("quantum not provided")
	}

	logrus.Infof("Loaded %d processes from %s, quantum=%d", len(w.Processes), opts.Workload, opts.Quantum)

	s, m := simulate(w.Processes, opts.Quantum, opts.Trace)
	summary := trace.Summarize(s.Trace)

	out := cmd.OutOrStdout()
	m.Print(out)
	if opts.PerProcess {
		fmt.Fprintln(out)
		m.PrintProcessTable(out)
	}
	if opts.Timeline {
		fmt.Fprintln(out)
		printTimeline(out, s.Trace)
	}

	if opts.Results != "" {
		if err := m.SaveResults(opts.Results); err != nil {
			return err
		}
	}
	if opts.MetricsTextfile != "" {
		collector := exporter.NewCollector()
		collector.Observe(m, summary)
		if err := collector.WriteTextfile(opts.MetricsTextfile); err != nil {
			return fmt.Errorf("writing metrics textfile: %w", err)
		}
	}

	logrus.Info("Simulation complete.")
	return nil
}

// simulate runs one round-robin simulation over procs.
func simulate(procs []sim.Process, q int64, level trace.TraceLevel) (*sim.Simulator, *sim.Metrics) {
	s := sim.NewSimulator(procs, sim.NewSimConfig(q, level))
	s.Run()
	return s, sim.CollectMetrics(s)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Path to the process file")
	runCmd.Flags().StringVar(&workloadFormat, "format", "", "Process file format (text, yaml); detected from the extension when empty")
	runCmd.Flags().Int64Var(&quantum, "quantum", 0, "Time quantum in ticks; values <= 0 perform no scheduling")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Schedule trace level (none, events)")
	runCmd.Flags().BoolVar(&perProcess, "per-process", false, "Print per-process finish, first-run, waiting and response times")
	runCmd.Flags().BoolVar(&timeline, "timeline", false, "Print the schedule timeline")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write JSON results to this file")
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics in text format to this file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
