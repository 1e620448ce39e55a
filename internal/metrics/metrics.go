// Package metrics exposes Prometheus collectors for the optimization
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vortx"

// Metrics collects service-level instrumentation for optimization jobs.
type Metrics struct {
	// JobsActive is the number of jobs currently running.
	JobsActive prometheus.Gauge

	// JobsTotal counts finished jobs by outcome
	// (completed, failed, cancelled).
	JobsTotal *prometheus.CounterVec

	// Evaluations counts objective function calls across all jobs.
	Evaluations prometheus.Counter

	// RunSteps observes the number of steps consumed per finished run.
	RunSteps prometheus.Histogram

	// FinalError observes the best error at the end of each run.
	FinalError prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		JobsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "active",
			Help:      "Number of optimization jobs currently running.",
		}),
		JobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "total",
			Help:      "Finished optimization jobs by outcome.",
		}, []string{"outcome"}),
		Evaluations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objective_evaluations_total",
			Help:      "Objective function evaluations across all jobs.",
		}),
		RunSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_steps",
			Help:      "Steps consumed per finished optimization run.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 9),
		}),
		FinalError: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_final_error",
			Help:      "Best error at the end of each optimization run.",
			Buckets:   prometheus.ExponentialBuckets(1e-10, 100, 9),
		}),
	}
}
