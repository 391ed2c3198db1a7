// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/rrsim/sim/trace"
)

// noProcess marks an empty CPU.
const noProcess = -1

// Simulator is the core object that holds simulation time, the process table,
// and the round-robin loop. One Simulator performs exactly one run.
type Simulator struct {
	RunID   string
	Clock   int64
	Quantum int64
	// Processes is the process table in input order. The simulator has exclusive
	// mutable access during Run; afterwards it is only read.
	Processes []Process
	// ReadyQ holds indices into Processes, dispatched FIFO
	ReadyQ *ReadyQueue
	Trace  *trace.ScheduleTrace
	// StepCount is the number of ticks executed, idle ones included
	StepCount int64

	config    SimConfig
	current   int   // index of the running process, noProcess when idle
	sliceLeft int64 // ticks left in the current process's quantum
	admitted  int   // processes admitted so far, so no process is admitted twice
	remaining int   // processes with RemainingTime > 0
}

// NewSimulator copies the descriptors into a fresh process table.
// Panics if any burst time is non-positive; loaders reject such input.
func NewSimulator(processes []Process, cfg SimConfig) *Simulator {
	table := make([]Process, len(processes))
	remaining := 0
	for i, p := range processes {
		if p.BurstTime <= 0 {
			panic(fmt.Sprintf("NewSimulator: process %d has non-positive burst time %d", p.PID, p.BurstTime))
		}
		if p.ArrivalTime < 0 {
			panic(fmt.Sprintf("NewSimulator: process %d has negative arrival time %d", p.PID, p.ArrivalTime))
		}
		table[i] = NewProcess(p.PID, p.ArrivalTime, p.BurstTime)
		remaining++
	}
	return &Simulator{
		RunID:     uuid.NewString(),
		Clock:     0,
		Quantum:   cfg.Quantum,
		Processes: table,
		ReadyQ:    &ReadyQueue{},
		Trace:     trace.NewScheduleTrace(trace.TraceConfig{Level: cfg.TraceLevel}),
		config:    cfg,
		current:   noProcess,
		remaining: remaining,
	}
}

// Finished reports whether every process has run to completion.
func (sim *Simulator) Finished() bool {
	return sim.remaining == 0
}

// Current returns the index of the process holding the CPU.
func (sim *Simulator) Current() (int, bool) {
	return sim.current, sim.current != noProcess
}

// Run advances the clock until every process has completed.
// With a non-positive quantum no tick is executed and every process is left
// without finish or first-run timestamps.
func (sim *Simulator) Run() {
	if !sim.config.ValidQuantum() {
		logrus.Warnf("quantum %d is not positive; no scheduling performed", sim.Quantum)
		return
	}
	logrus.Infof("[run %s] Starting round-robin simulation: %d processes, quantum=%d", sim.RunID, len(sim.Processes), sim.Quantum)
	for !sim.Finished() {
		sim.Step()
	}
	logrus.Infof("[tick %07d] Simulation ended after %d steps", sim.Clock, sim.StepCount)
}

// Step executes exactly one tick: admission, preemption, dispatch, then one
// unit of work (or an idle tick). It is a no-op once every process has finished
// or when the quantum is non-positive.
func (sim *Simulator) Step() {
	if sim.Finished() || !sim.config.ValidQuantum() {
		return
	}
	sim.StepCount++

	// Arrivals are admitted before the preempted process is re-queued, so
	// same-tick arrivals are dispatched ahead of it.
	sim.admitArrivals()

	if sim.current != noProcess && sim.sliceLeft == 0 {
		sim.preempt()
	}

	if sim.current == noProcess {
		sim.dispatch()
	}

	if sim.current == noProcess {
		logrus.Tracef("[tick %07d] CPU idle", sim.Clock)
		sim.Trace.Record(trace.ScheduleRecord{Clock: sim.Clock, Kind: trace.KindIdle, QueueDepth: sim.ReadyQ.Len()})
		sim.Clock++
		return
	}

	p := &sim.Processes[sim.current]
	sim.sliceLeft--
	p.RemainingTime--

	if p.RemainingTime == 0 {
		sim.complete(p)
	}
	sim.Clock++
}

// admitArrivals enqueues, in table order, every process arriving at the current tick.
func (sim *Simulator) admitArrivals() {
	if sim.admitted == len(sim.Processes) {
		return
	}
	for i := range sim.Processes {
		p := &sim.Processes[i]
		if p.State != StatePending || p.ArrivalTime != sim.Clock {
			continue
		}
		p.State = StateReady
		sim.ReadyQ.Enqueue(i)
		sim.admitted++
		logrus.Debugf("[tick %07d] Arrival: P%d (queue=%s)", sim.Clock, p.PID, sim.ReadyQ)
		sim.Trace.Record(trace.ScheduleRecord{Clock: sim.Clock, Kind: trace.KindArrival, PID: p.PID, QueueDepth: sim.ReadyQ.Len()})
		if sim.admitted == len(sim.Processes) {
			return
		}
	}
}

// preempt moves the running process, whose quantum is exhausted, to the queue tail.
func (sim *Simulator) preempt() {
	p := &sim.Processes[sim.current]
	p.State = StateReady
	sim.ReadyQ.Enqueue(sim.current)
	sim.current = noProcess
	logrus.Debugf("[tick %07d] Preempt: P%d (remaining=%d, queue=%s)", sim.Clock, p.PID, p.RemainingTime, sim.ReadyQ)
	sim.Trace.Record(trace.ScheduleRecord{Clock: sim.Clock, Kind: trace.KindPreempt, PID: p.PID, QueueDepth: sim.ReadyQ.Len()})
}

// dispatch gives the CPU to the head of the ready queue, if any, for a full quantum.
func (sim *Simulator) dispatch() {
	idx, ok := sim.ReadyQ.Dequeue()
	if !ok {
		return
	}
	p := &sim.Processes[idx]
	sim.current = idx
	sim.sliceLeft = sim.Quantum
	p.State = StateRunning
	if !p.FirstRunSet {
		p.FirstRunSet = true
		p.FirstRunTime = sim.Clock
	}
	logrus.Debugf("[tick %07d] Dispatch: P%d (remaining=%d)", sim.Clock, p.PID, p.RemainingTime)
	sim.Trace.Record(trace.ScheduleRecord{Clock: sim.Clock, Kind: trace.KindDispatch, PID: p.PID, QueueDepth: sim.ReadyQ.Len()})
}

// complete records the finish time as the tick after the last unit of work
// and frees the CPU, discarding any unused part of the quantum.
func (sim *Simulator) complete(p *Process) {
	p.State = StateCompleted
	p.FinishSet = true
	p.FinishTime = sim.Clock + 1
	sim.current = noProcess
	sim.sliceLeft = 0
	sim.remaining--
	logrus.Debugf("[tick %07d] Complete: P%d (finish=%d)", sim.Clock, p.PID, p.FinishTime)
	sim.Trace.Record(trace.ScheduleRecord{Clock: p.FinishTime, Kind: trace.KindComplete, PID: p.PID, QueueDepth: sim.ReadyQ.Len()})
}
