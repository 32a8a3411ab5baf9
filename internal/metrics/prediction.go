package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prediction outcome label values.
const (
	OutcomePass         = "pass"
	OutcomeFail         = "fail"
	OutcomeMissingField = "missing_field"
	OutcomeInvalidInput = "invalid_input"
)

// Prediction Prometheus metrics.
var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Prediction requests by outcome",
		},
		[]string{"outcome"},
	)

	ModelPredictDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_predict_duration_seconds",
			Help:      "Model prediction call duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	ModelInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_info",
			Help:      "Loaded model artifact (value is always 1)",
		},
		[]string{"type", "checksum"},
	)
)

var registered bool

// Register registers HTTP and prediction metrics with the default registry.
// Must be called once from main; repeated calls are no-ops.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(ModelPredictDuration)
	prometheus.MustRegister(ModelInfo)
	registered = true
}
