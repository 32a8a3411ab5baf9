package passpredict

import (
	"context"

	"github.com/kailas-cloud/passpredict/internal/domain"
	"github.com/kailas-cloud/passpredict/internal/domain/features"
	healthuc "github.com/kailas-cloud/passpredict/internal/usecase/health"
)

// --- predictionUseCase mock ---

type mockPredictionUC struct {
	predictFn        func(ctx context.Context, vec features.Vector) (domain.Label, error)
	predictPayloadFn func(ctx context.Context, payload map[string]any) (domain.Label, error)
}

func (m *mockPredictionUC) Predict(ctx context.Context, vec features.Vector) (domain.Label, error) {
	return m.predictFn(ctx, vec)
}

func (m *mockPredictionUC) PredictPayload(ctx context.Context, payload map[string]any) (domain.Label, error) {
	return m.predictPayloadFn(ctx, payload)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
