package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "storage_operations_total", Help: "Count of storage operations"},
		[]string{"backend", "entity", "op", "result"},
	)
	opLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_operation_duration_seconds",
			Help:    "Latency of storage operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "entity", "op"},
	)
)

func init() { prometheus.MustRegister(opsTotal, opLatency) }

// Observe records one storage operation. Call it deferred from adapter
// choke points.
func Observe(backend, entity, op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	opsTotal.WithLabelValues(backend, entity, op, result).Inc()
	opLatency.WithLabelValues(backend, entity, op).Observe(time.Since(start).Seconds())
}
