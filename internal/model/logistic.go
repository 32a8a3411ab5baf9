package model

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/kailas-cloud/passpredict/internal/domain/features"
)

type logisticArtifact struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// logistic is a linear decision function: positive score -> classes[1].
type logistic struct {
	coef      []float64
	intercept float64
	classes   [2]int
}

func decodeLogistic(raw []byte, classes [2]int) (classifier, error) {
	var a logisticArtifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if len(a.Coefficients) != features.Len {
		return nil, fmt.Errorf("%w: expected %d coefficients, got %d",
			ErrInvalidArtifact, features.Len, len(a.Coefficients))
	}
	for _, c := range append([]float64{a.Intercept}, a.Coefficients...) {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: non-finite parameter", ErrInvalidArtifact)
		}
	}
	return &logistic{coef: a.Coefficients, intercept: a.Intercept, classes: classes}, nil
}

func (l *logistic) classify(x []float64) (int, error) {
	z := l.intercept
	for i, c := range l.coef {
		z += c * x[i]
	}
	if math.IsNaN(z) {
		return 0, fmt.Errorf("decision score is NaN")
	}
	if z > 0 {
		return l.classes[1], nil
	}
	return l.classes[0], nil
}
