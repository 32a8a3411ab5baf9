package passpredict

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/passpredict/internal/domain"
	"github.com/kailas-cloud/passpredict/internal/metrics"
)

// Operation names used as the "operation" label and in log records.
const (
	opPredict        = "predict"
	opPredictPayload = "predict_payload"
)

// callMetrics counts SDK calls by prediction outcome.
type callMetrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func newCallMetrics(reg prometheus.Registerer) (*callMetrics, error) {
	calls, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "passpredict",
		Subsystem: "sdk",
		Name:      "predictions_total",
		Help:      "Embedded predictions by operation and outcome.",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}

	latency, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "passpredict",
		Subsystem: "sdk",
		Name:      "prediction_duration_seconds",
		Help:      "Embedded prediction duration including validation.",
		Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01},
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	return &callMetrics{calls: calls, latency: latency}, nil
}

// register adds c to reg. When an equal collector is already there (a second
// Client on the same registry) that one is returned instead.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("passpredict: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("passpredict: metric registered with type %T", are.ExistingCollector)
	}
	return existing, nil
}

// outcomeOf classifies a call the same way the service labels its requests.
func outcomeOf(res Result, err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return metrics.OutcomeMissingField
	case err != nil:
		return metrics.OutcomeInvalidInput
	case res.Label == domain.Pass.Int():
		return metrics.OutcomePass
	default:
		return metrics.OutcomeFail
	}
}

// observer records each prediction in the optional registry and logger.
type observer struct {
	logger  *slog.Logger
	metrics *callMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newCallMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) record(op string, start time.Time, res Result, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	outcome := outcomeOf(res, err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, outcome).Inc()
		o.metrics.latency.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", op, "outcome", outcome, "duration", dur}
	var mfe *domain.MissingFieldError
	switch {
	case errors.As(err, &mfe):
		o.logger.Warn("prediction rejected", append(attrs, "field", mfe.Field)...)
	case err != nil:
		o.logger.Warn("prediction rejected", append(attrs, "error", err)...)
	default:
		o.logger.Debug("prediction", append(attrs, "label", res.Label)...)
	}
}
