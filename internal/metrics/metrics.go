package metrics

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prediction outcome labels.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeServiceUnavailable = "service_unavailable"
	OutcomePredictionFailed   = "prediction_failed"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medrec_predictions_total",
			Help: "Total successful predictions by recommended medicine and alternatives flag",
		},
		[]string{"medicine", "alternatives"},
	)

	predictionOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medrec_prediction_requests_total",
			Help: "Total prediction requests by outcome",
		},
		[]string{"outcome"},
	)

	predictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medrec_prediction_duration_seconds",
			Help:    "Time spent producing a prediction, including the scorer call",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		},
	)

	scorerUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "medrec_scorer_up",
			Help: "Whether the remote scoring service answered its last health check (1) or not (0)",
		},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry.
// Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(predictionsTotal, predictionOutcomes, predictionDuration, scorerUp)
	})
}

// RecordPrediction records a successful prediction.
func RecordPrediction(medicine string, hasAlternatives bool, elapsed time.Duration) {
	alts := "false"
	if hasAlternatives {
		alts = "true"
	}
	predictionsTotal.WithLabelValues(medicine, alts).Inc()
	predictionOutcomes.WithLabelValues(OutcomeSuccess).Inc()
	predictionDuration.Observe(elapsed.Seconds())
}

// RecordFailure records a failed prediction request.
func RecordFailure(outcome string) {
	predictionOutcomes.WithLabelValues(outcome).Inc()
}

// SetScorerUp records the result of a scorer health check.
func SetScorerUp(up bool) {
	if up {
		scorerUp.Set(1)
		return
	}
	scorerUp.Set(0)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
