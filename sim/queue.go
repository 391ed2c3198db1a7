// Implements the ReadyQueue, which holds the processes waiting for the CPU.
// Processes are enqueued on arrival and again each time they are preempted.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO of indices into the simulator's process table.
// Holding indices instead of pointers keeps the table the single owner of
// process state.
type ReadyQueue struct {
	queue []int
}

// Enqueue adds a process index to the back of the queue.
// A process is never queued twice at once.
func (rq *ReadyQueue) Enqueue(idx int) {
	if idx < 0 {
		panic(fmt.Sprintf("Enqueue: invalid process index %d", idx))
	}
	if rq.Contains(idx) {
		panic(fmt.Sprintf("Enqueue: process index %d is already queued", idx))
	}
	rq.queue = append(rq.queue, idx)
}

// Dequeue removes and returns the index at the front of the queue.
// The second return value is false when the queue is empty.
func (rq *ReadyQueue) Dequeue() (int, bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	idx := rq.queue[0]
	rq.queue = rq.queue[1:]
	return idx, true
}

// Len returns the number of queued processes.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Contains reports whether idx is currently queued.
func (rq *ReadyQueue) Contains(idx int) bool {
	for _, q := range rq.queue {
		if q == idx {
			return true
		}
	}
	return false
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range rq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
