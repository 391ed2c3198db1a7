// Package exporter publishes round-robin run results as Prometheus metrics.
// Runs are offline, so metrics are written once to a node-exporter style
// textfile instead of being served over HTTP.
package exporter

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/rrsim/sim"
	"github.com/inference-sim/rrsim/sim/trace"
)

const namespace = "rrsim"

// Collector holds the gauges for one or more runs, labelled by quantum.
// It uses a private registry so several collectors can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	avgWaiting  *prometheus.GaugeVec
	avgResponse *prometheus.GaugeVec
	makespan    *prometheus.GaugeVec
	utilization *prometheus.GaugeVec

	contextSwitches *prometheus.CounterVec
	idleTicks       *prometheus.CounterVec

	waiting *prometheus.HistogramVec
}

// NewCollector creates and registers every metric.
func NewCollector() *Collector {
	labels := []string{"quantum"}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		avgWaiting: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "average_waiting_ticks",
			Help:      "Average waiting time across all processes, in ticks",
		}, labels),
		avgResponse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "average_response_ticks",
			Help:      "Average response time across all processes, in ticks",
		}, labels),
		makespan: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "makespan_ticks",
			Help:      "Tick at which the last process completed",
		}, labels),
		utilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_utilization_ratio",
			Help:      "Busy ticks divided by makespan",
		}, labels),
		contextSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "context_switches_total",
			Help:      "Dispatches of a different process than the previous dispatch",
		}, labels),
		idleTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idle_ticks_total",
			Help:      "Ticks in which no process held the CPU",
		}, labels),
		waiting: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "process_waiting_ticks",
			Help:      "Per-process waiting time distribution, in ticks",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, labels),
	}

	c.registry.MustRegister(
		c.avgWaiting,
		c.avgResponse,
		c.makespan,
		c.utilization,
		c.contextSwitches,
		c.idleTicks,
		c.waiting,
	)
	return c
}

// Observe records one run. summary may be nil when the run was not traced;
// trace-derived metrics are then left untouched.
func (c *Collector) Observe(m *sim.Metrics, summary *trace.TraceSummary) {
	q := strconv.FormatInt(m.Quantum, 10)

	c.avgWaiting.WithLabelValues(q).Set(m.AverageWaitingTime())
	c.avgResponse.WithLabelValues(q).Set(m.AverageResponseTime())
	for _, row := range m.Processes {
		if row.Waiting != nil {
			c.waiting.WithLabelValues(q).Observe(float64(*row.Waiting))
		}
	}

	if summary == nil {
		return
	}
	c.makespan.WithLabelValues(q).Set(float64(summary.Makespan))
	c.utilization.WithLabelValues(q).Set(summary.Utilization)
	c.contextSwitches.WithLabelValues(q).Add(float64(summary.ContextSwitches))
	c.idleTicks.WithLabelValues(q).Add(float64(summary.IdleTicks))
}

// Gatherer exposes the private registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes every metric in the Prometheus text exposition format.
// The file is written atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.Gatherer())
}
