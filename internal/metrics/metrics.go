// Package metrics holds the Prometheus collectors of the dispatch and settlement service.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parcel"

// Job run results.
const (
	JobOK      = "ok"
	JobFailed  = "error"
	JobSkipped = "locked"
)

// Metrics groups every collector the service exports. A zero value is not usable; call New.
type Metrics struct {
	assignments       *prometheus.CounterVec
	settlementBatches *prometheus.CounterVec
	settlementErrors  prometheus.Counter
	escalations       *prometheus.CounterVec
	jobRuns           *prometheus.CounterVec
	jobDuration       *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipper_assignments_total",
			Help:      "Shipper assignment attempts by kind and outcome",
		}, []string{"kind", "result"}),
		settlementBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_batches_total",
			Help:      "Settlement batch runs per shop by resulting batch status",
		}, []string{"status"}),
		settlementErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_shop_failures_total",
			Help:      "Shops whose settlement batch run did not finish",
		}),
		escalations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_escalations_total",
			Help:      "Overdue batch escalations by action",
		}, []string{"action"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by job and result",
		}, []string{"job", "result"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled job runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// Register adds every collector to r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	var errList []error
	for _, c := range []prometheus.Collector{
		m.assignments, m.settlementBatches, m.settlementErrors, m.escalations,
		m.jobRuns, m.jobDuration, m.httpRequests, m.httpDuration,
	} {
		errList = append(errList, r.Register(c))
	}
	return errors.Join(errList...)
}

// ObserveAssignment counts one assignment attempt of the given kind ("delivery" or "pickup").
func (m *Metrics) ObserveAssignment(kind string, assigned bool, err error) {
	result := "unassigned"
	switch {
	case err != nil:
		result = "error"
	case assigned:
		result = "assigned"
	}
	m.assignments.WithLabelValues(kind, result).Inc()
}

// ObserveSettlement adds the outcome counts of one batch run.
func (m *Metrics) ObserveSettlement(completed, failed, skipped, shopFailures int) {
	m.settlementBatches.WithLabelValues("COMPLETED").Add(float64(completed))
	m.settlementBatches.WithLabelValues("FAILED").Add(float64(failed))
	m.settlementBatches.WithLabelValues("SKIPPED").Add(float64(skipped))
	m.settlementErrors.Add(float64(shopFailures))
}

func (m *Metrics) ObserveEscalation(warned, locked int) {
	m.escalations.WithLabelValues("warn").Add(float64(warned))
	m.escalations.WithLabelValues("lock").Add(float64(locked))
}

func (m *Metrics) ObserveJob(job, result string, elapsed time.Duration) {
	m.jobRuns.WithLabelValues(job, result).Inc()
	m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}
