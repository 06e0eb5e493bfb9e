package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ComputeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worthwise",
			Subsystem: "compute",
			Name:      "scenarios_total",
			Help:      "Scenario computations by outcome",
		},
		[]string{"outcome"},
	)

	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worthwise",
			Subsystem: "compute",
			Name:      "fallbacks_total",
			Help:      "Degraded-data fallbacks by kind",
		},
		[]string{"kind"},
	)

	LookupLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "worthwise",
			Subsystem: "lookup",
			Name:      "latency_seconds",
			Help:      "Latency of store lookups",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"store", "op"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ComputeTotal, FallbacksTotal, LookupLatency)
	})
}

// Recorder adapts the registered collectors to the domain metrics
// interface consumed by the engine and stores.
type Recorder struct{}

func NewRecorder() *Recorder {
	Register()
	return &Recorder{}
}

func (Recorder) RecordComputation(outcome string) {
	ComputeTotal.WithLabelValues(outcome).Inc()
}

func (Recorder) RecordFallback(kind string) {
	FallbacksTotal.WithLabelValues(kind).Inc()
}

func (Recorder) RecordLookupLatency(store, op string, seconds float64) {
	LookupLatency.WithLabelValues(store, op).Observe(seconds)
}
