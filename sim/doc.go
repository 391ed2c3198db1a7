// Package sim provides the discrete-time round-robin scheduling engine for rrsim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (pending → ready → running → completed)
//   - queue.go: the FIFO ready queue of process-table indices
//   - simulator.go: the per-tick loop (admission, preemption, dispatch, execution)
//
// metrics.go aggregates waiting and response times once a run has finished.
//
// # Architecture
//
// The sim package owns the engine and its data types; collaborators live in
// sub-packages:
//   - sim/workload/: process file and YAML loaders, quantum parsing, synthetic generation
//   - sim/trace/: schedule-trace recording and summaries
//   - sim/exporter/: Prometheus textfile export
//
// One Simulator performs exactly one run; build a new one to simulate again.
package sim
