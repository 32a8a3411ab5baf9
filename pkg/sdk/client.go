package passpredict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/passpredict/internal/domain"
	"github.com/kailas-cloud/passpredict/internal/domain/features"
	"github.com/kailas-cloud/passpredict/internal/model"
	healthuc "github.com/kailas-cloud/passpredict/internal/usecase/health"
	predictionuc "github.com/kailas-cloud/passpredict/internal/usecase/prediction"
)

// Internal interfaces for substitution in tests.
type predictionUseCase interface {
	Predict(ctx context.Context, vec features.Vector) (domain.Label, error)
	PredictPayload(ctx context.Context, payload map[string]any) (domain.Label, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the passpredict SDK entry point. Safe for concurrent use.
type Client struct {
	info      ModelInfo
	predSvc   predictionUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New loads the model and creates a Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	m, err := loadModel(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		info:      ModelInfo{Kind: m.Kind(), Path: m.Path(), Checksum: m.Checksum()},
		predSvc:   predictionuc.New(m),
		healthSvc: healthuc.New(m),
		obs:       obs,
	}, nil
}

func loadModel(cfg *clientConfig) (*model.Model, error) {
	switch {
	case cfg.artifact != nil:
		m, err := model.Parse(cfg.artifact)
		if err != nil {
			return nil, fmt.Errorf("passpredict: parse model: %w", err)
		}
		return m, nil
	case cfg.modelPath != "":
		m, err := model.Load(cfg.modelPath)
		if err != nil {
			return nil, fmt.Errorf("passpredict: load model: %w", err)
		}
		return m, nil
	default:
		return nil, errors.New("passpredict: model required (use WithModelPath or WithModelArtifact)")
	}
}

// Model describes the loaded artifact.
func (c *Client) Model() ModelInfo { return c.info }

// Predict classifies an already numeric input. NaN or infinite fields fail
// with ErrInvalidInput.
func (c *Client) Predict(ctx context.Context, in Input) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.record(opPredict, start, res, err) }()

	label, err := c.predSvc.Predict(ctx, features.Vector{
		HoursStudied:  in.HoursStudied,
		Attendance:    in.Attendance,
		PreviousScore: in.PreviousScore,
	})
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}
	return toResult(label), nil
}

// PredictPayload validates a raw key-value payload the way the HTTP API does.
// Errors match ErrMissingField or ErrInvalidInput.
func (c *Client) PredictPayload(ctx context.Context, payload map[string]any) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.record(opPredictPayload, start, res, err) }()

	label, err := c.predSvc.PredictPayload(ctx, payload)
	if err != nil {
		return Result{}, fmt.Errorf("predict payload: %w", err)
	}
	return toResult(label), nil
}

// Health reports whether the model answers.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

func toResult(l domain.Label) Result {
	return Result{Label: l.Int(), Outcome: l.Outcome()}
}
