// Defines the Process struct that models a single workload in the simulation.
// Tracks arrival, burst, remaining work, and the finish/first-run timestamps.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StatePending   ProcessState = "pending"   // not yet arrived
	StateReady     ProcessState = "ready"     // admitted, waiting in the ready queue
	StateRunning   ProcessState = "running"   // holds the CPU
	StateCompleted ProcessState = "completed" // RemainingTime reached 0
)

// Process is one entry of the process table.
// PID, ArrivalTime and BurstTime are the descriptor and never change once
// loaded. The remaining fields are owned by the Simulator during a run and are
// only read afterwards.
type Process struct {
	PID         int64 // Unique identifier
	ArrivalTime int64 // Tick at which the process becomes eligible to run
	BurstTime   int64 // Total CPU ticks required

	State         ProcessState
	RemainingTime int64 // 0 <= RemainingTime <= BurstTime

	FinishSet    bool  // Tracks whether FinishTime has been set
	FinishTime   int64 // Tick immediately after the last unit of work
	FirstRunSet  bool  // Tracks whether FirstRunTime has been set
	FirstRunTime int64 // Tick of the first dispatch
}

// NewProcess returns a descriptor with fresh simulation state.
func NewProcess(pid, arrival, burst int64) Process {
	p := Process{PID: pid, ArrivalTime: arrival, BurstTime: burst}
	p.reset()
	return p
}

func (p *Process) reset() {
	p.State = StatePending
	p.RemainingTime = p.BurstTime
	p.FinishSet = false
	p.FinishTime = 0
	p.FirstRunSet = false
	p.FirstRunTime = 0
}

// Done reports whether the process has no work left.
func (p *Process) Done() bool {
	return p.RemainingTime == 0
}

// TurnaroundTime returns FinishTime - ArrivalTime, or false if the process never finished.
func (p *Process) TurnaroundTime() (int64, bool) {
	if !p.FinishSet {
		return 0, false
	}
	return p.FinishTime - p.ArrivalTime, true
}

// WaitingTime returns the time spent ready but not running.
func (p *Process) WaitingTime() (int64, bool) {
	turnaround, ok := p.TurnaroundTime()
	if !ok {
		return 0, false
	}
	return turnaround - p.BurstTime, true
}

// ResponseTime returns the delay between arrival and first dispatch.
func (p *Process) ResponseTime() (int64, bool) {
	if !p.FirstRunSet {
		return 0, false
	}
	return p.FirstRunTime - p.ArrivalTime, true
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, State: %s, Remaining: %d, ArrivalTime: %d)", p.PID, p.State, p.RemainingTime, p.ArrivalTime)
}
