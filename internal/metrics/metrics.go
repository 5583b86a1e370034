package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churnwatch_predictions_total",
			Help: "Total number of churn predictions by source and risk level",
		},
		[]string{"source", "risk"},
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churnwatch_prediction_errors_total",
			Help: "Total number of failed predictions by error kind",
		},
		[]string{"source", "kind"},
	)

	PredictionProbability = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churnwatch_prediction_probability",
			Help:    "Distribution of predicted churn probabilities",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "churnwatch_prediction_duration_seconds",
			Help:    "Time spent assembling and scoring one prediction",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
		[]string{"source"},
	)

	EventsPublishFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churnwatch_events_publish_failed_total",
			Help: "Total number of events that could not be published",
		},
		[]string{"event"},
	)

	ModelInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "churnwatch_model_info",
			Help: "Loaded classifier metadata; value is the number of input columns",
		},
		[]string{"version"},
	)
)
