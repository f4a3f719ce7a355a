// Package metrics exposes Prometheus counters for scans and expenses.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Scan outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeOCRFailed = "ocr_failed"
	OutcomeError     = "error"
)

// Recorder records application metrics. A nil *Recorder is valid and
// records nothing, so tests and tools can skip metrics entirely.
type Recorder struct {
	registry        *prometheus.Registry
	scans           *prometheus.CounterVec
	classifications *prometheus.CounterVec
	expensesCreated prometheus.Counter
	ocrDuration     prometheus.Histogram
}

// New creates a Recorder with its own registry under the given namespace.
func New(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scans_total",
				Help:      "Receipt scans by outcome",
			},
			[]string{"outcome"},
		),
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classifications_total",
				Help:      "Scanned receipts by inferred category",
			},
			[]string{"category"},
		),
		expensesCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "expenses_created_total",
				Help:      "Expenses accepted and saved",
			},
		),
		ocrDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ocr_duration_seconds",
				Help:      "Time spent in the OCR provider",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
		),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.scans,
		r.classifications,
		r.expensesCreated,
		r.ocrDuration,
	)
	return r
}

// Scan counts one scan attempt.
func (r *Recorder) Scan(outcome string) {
	if r == nil {
		return
	}
	r.scans.WithLabelValues(outcome).Inc()
}

// Classified counts a receipt assigned to category.
func (r *Recorder) Classified(category string) {
	if r == nil {
		return
	}
	r.classifications.WithLabelValues(category).Inc()
}

// ExpenseCreated counts a saved expense.
func (r *Recorder) ExpenseCreated() {
	if r == nil {
		return
	}
	r.expensesCreated.Inc()
}

// ObserveOCR records how long the OCR provider took.
func (r *Recorder) ObserveOCR(d time.Duration) {
	if r == nil {
		return
	}
	r.ocrDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
