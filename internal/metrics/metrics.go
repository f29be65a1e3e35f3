// Package metrics records pass statistics in a private Prometheus registry
// and writes them in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/lambdagen/internal/lambda"
)

// Namespace prefixes every metric name.
const Namespace = "lambdagen"

// Recorder holds the pass metrics.
type Recorder struct {
	registry *prometheus.Registry

	unitsProcessed     prometheus.Counter
	handlersRegistered prometheus.Counter
	invalidHandlers    *prometheus.CounterVec
	entryPoints        prometheus.Counter
	internalErrors     prometheus.Counter
	passDuration       prometheus.Histogram
}

// DefaultBuckets are the pass-duration histogram buckets, in seconds.
func DefaultBuckets() []float64 {
	return []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		unitsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "units_processed_total",
			Help:      "Compilation units the pass ran over.",
		}),
		handlersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "handlers_registered_total",
			Help:      "Handler functions registered by synthesized entry points.",
		}),
		invalidHandlers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "invalid_handler_signatures_total",
			Help:      "Annotated functions rejected for breaking the handler contract.",
		}, []string{"violation"}),
		entryPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "entry_points_synthesized_total",
			Help:      "Entry point functions appended to units.",
		}),
		internalErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "internal_errors_total",
			Help:      "Pass runs aborted by an internal error.",
		}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "pass_duration_seconds",
			Help:      "Time spent running the pass over one unit.",
			Buckets:   DefaultBuckets(),
		}),
	}
	r.registry.MustRegister(
		r.unitsProcessed,
		r.handlersRegistered,
		r.invalidHandlers,
		r.entryPoints,
		r.internalErrors,
		r.passDuration,
	)
	return r
}

// Observe records one pass run. res may be nil when err is set.
func (r *Recorder) Observe(res *lambda.Result, err error, elapsed time.Duration) {
	r.unitsProcessed.Inc()
	r.passDuration.Observe(elapsed.Seconds())
	if err != nil {
		r.internalErrors.Inc()
	}
	if res == nil {
		return
	}
	for _, d := range res.Diagnostics {
		if v, ok := lambda.ViolationOf(d); ok {
			r.invalidHandlers.WithLabelValues(v.String()).Inc()
		}
	}
	if res.EntryPoint != nil {
		r.entryPoints.Inc()
		r.handlersRegistered.Add(float64(len(res.Handlers)))
	}
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes the metrics to path in the textfile collector format.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
