package dispatch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dispatcher's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Batches  prometheus.Counter
	Queries  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		Batches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "gqlx",
				Subsystem: "dispatch",
				Name:      "batches_total",
				Help:      "Total number of query batches dispatched",
			},
		),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gqlx",
				Subsystem: "dispatch",
				Name:      "queries_total",
				Help:      "Total number of queries by outcome status and error kind",
			},
			[]string{"status", "error_kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gqlx",
				Subsystem: "dispatch",
				Name:      "query_duration_seconds",
				Help:      "Query round-trip duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "gqlx",
				Subsystem: "dispatch",
				Name:      "queries_in_flight",
				Help:      "Number of queries currently awaiting a response",
			},
		),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Batches, m.Queries, m.Duration, m.InFlight} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) batchStarted() {
	if m == nil {
		return
	}
	m.Batches.Inc()
}

func (m *Metrics) queryStarted() {
	if m == nil {
		return
	}
	m.InFlight.Inc()
}

func (m *Metrics) queryFinished(o Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	m.Queries.WithLabelValues(string(o.Status), string(o.ErrorKind)).Inc()
	m.Duration.WithLabelValues(string(o.Status)).Observe(elapsed.Seconds())
}
