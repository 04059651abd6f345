package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the hybrid recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of hybrid recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommend requests",
	})

	// Total interaction events ingested through the HTTP API
	InteractionsIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "interactions_ingested_total",
		Help: "Total number of interaction events recorded",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		InteractionsIngested,
	)
}
