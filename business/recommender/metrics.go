package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_lookups_total",
			Help: "Count of recommendation cache lookups by result (hit or miss).",
		},
		[]string{"result"},
	)

	ModelRetrainsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_model_retrains_total",
			Help: "Count of completed model retrains by trigger (interval, threshold, cold_start).",
		},
		[]string{"trigger"},
	)

	ModelTrainDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommender_model_train_duration_seconds",
			Help:    "Wall-clock duration of a full ALS training run.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)

func init() {
	prometheus.MustRegister(CacheLookupsTotal, ModelRetrainsTotal, ModelTrainDuration)
}
