package prediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/passpredict/internal/domain"
	"github.com/kailas-cloud/passpredict/internal/domain/features"
	logpkg "github.com/kailas-cloud/passpredict/internal/logger"
	"github.com/kailas-cloud/passpredict/internal/metrics"
)

// Service validates inputs and delegates to the loaded model.
type Service struct {
	model    Model
	outcomes *prometheus.CounterVec
	latency  prometheus.Observer
}

// New creates a Service. model must be non-nil.
func New(model Model) *Service {
	return &Service{model: model}
}

// WithMetrics attaches an outcome counter (label "outcome") and a model latency observer.
// Either may be nil.
func (s *Service) WithMetrics(outcomes *prometheus.CounterVec, latency prometheus.Observer) *Service {
	s.outcomes = outcomes
	s.latency = latency
	return s
}

// PredictPayload validates a decoded request payload and classifies it.
func (s *Service) PredictPayload(ctx context.Context, payload map[string]any) (domain.Label, error) {
	vec, err := features.FromPayload(payload)
	if err != nil {
		s.recordFailure(ctx, err)
		return domain.Fail, err
	}
	return s.Predict(ctx, vec)
}

// Predict classifies a vector. Non-finite features and any model failure are reported as
// domain.ErrInvalidInput; no retry or fallback is attempted.
func (s *Service) Predict(ctx context.Context, vec features.Vector) (domain.Label, error) {
	if err := vec.Validate(); err != nil {
		s.inc(ctx, metrics.OutcomeInvalidInput)
		return domain.Fail, err
	}

	start := time.Now()
	class, err := s.model.Predict(vec.Slice())
	if s.latency != nil {
		s.latency.Observe(time.Since(start).Seconds())
	}

	if err == nil {
		var label domain.Label
		label, err = domain.LabelFromClass(class)
		if err == nil {
			s.inc(ctx, outcomeOf(label))
			return label, nil
		}
	}

	logpkg.FromContext(ctx).Warn("model prediction failed", zap.Error(err))
	s.inc(ctx, metrics.OutcomeInvalidInput)
	if errors.Is(err, domain.ErrInvalidInput) {
		return domain.Fail, err
	}
	return domain.Fail, fmt.Errorf("%w: model: %w", domain.ErrInvalidInput, err)
}

func (s *Service) recordFailure(ctx context.Context, err error) {
	if errors.Is(err, domain.ErrMissingField) {
		s.inc(ctx, metrics.OutcomeMissingField)
		return
	}
	s.inc(ctx, metrics.OutcomeInvalidInput)
}

// inc counts the outcome and tags the in-flight HTTP request with it.
func (s *Service) inc(ctx context.Context, outcome string) {
	metrics.SetOutcome(ctx, outcome)
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(outcome).Inc()
	}
}

func outcomeOf(l domain.Label) string {
	if l == domain.Pass {
		return metrics.OutcomePass
	}
	return metrics.OutcomeFail
}
