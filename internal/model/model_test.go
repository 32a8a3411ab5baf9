package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const logisticJSON = `{
	"type": "logistic_regression",
	"features": ["hours_studied", "attendance", "previous_score"],
	"coefficients": [0.8, 0.05, 0.04],
	"intercept": -9.0
}`

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLoad_Logistic(t *testing.T) {
	path := writeArtifact(t, logisticJSON)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind() != TypeLogisticRegression {
		t.Errorf("kind: got %q", m.Kind())
	}
	if m.Path() != path {
		t.Errorf("path: got %q, want %q", m.Path(), path)
	}
	if len(m.Checksum()) != 64 {
		t.Errorf("expected hex sha256 checksum, got %q", m.Checksum())
	}
	if err := m.Ready(); err != nil {
		t.Errorf("expected ready model, got %v", err)
	}

	tests := []struct {
		x    []float64
		want int
	}{
		{[]float64{5, 90, 70}, 1},
		{[]float64{0, 20, 10}, 0},
	}
	for _, tc := range tests {
		got, err := m.Predict(tc.x)
		if err != nil {
			t.Fatalf("predict %v: %v", tc.x, err)
		}
		if got != tc.want {
			t.Errorf("predict %v: got %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestLoad_ShippedArtifact(t *testing.T) {
	m, err := Load(filepath.Join("..", "..", "models", "student_model.json"))
	if err != nil {
		t.Fatalf("load shipped model: %v", err)
	}
	got, err := m.Predict([]float64{5, 90, 70})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("expected pass for (5, 90, 70), got %d", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"not json", `pickle`, ErrInvalidArtifact},
		{"unknown type", `{"type": "svm"}`, ErrUnknownType},
		{"empty type", `{}`, ErrUnknownType},
		{"wrong features", `{"type": "logistic_regression", "features": ["a", "b", "c"],
			"coefficients": [1, 1, 1]}`, ErrInvalidArtifact},
		{"three classes", `{"type": "logistic_regression", "classes": [0, 1, 2],
			"coefficients": [1, 1, 1]}`, ErrInvalidArtifact},
		{"short coefficients", `{"type": "logistic_regression", "coefficients": [1, 1]}`, ErrInvalidArtifact},
		{"empty tree", `{"type": "decision_tree", "nodes": []}`, ErrInvalidArtifact},
		{"bad child", `{"type": "decision_tree", "nodes": [
			{"feature_idx": 0, "threshold": 1, "left_child": 5, "right_child": 1}]}`, ErrInvalidArtifact},
		{"bad feature", `{"type": "decision_tree", "nodes": [
			{"feature_idx": 3, "threshold": 1, "left_child": 1, "right_child": 2},
			{"is_leaf": true}, {"is_leaf": true}]}`, ErrInvalidArtifact},
		{"empty forest", `{"type": "random_forest", "trees": []}`, ErrInvalidArtifact},
		{"foreign classes", `{"type": "logistic_regression", "classes": [3, 7],
			"coefficients": [1, 1, 1]}`, ErrInvalidArtifact},
		{"duplicate classes", `{"type": "logistic_regression", "classes": [1, 1],
			"coefficients": [1, 1, 1]}`, ErrInvalidArtifact},
		{"half foreign classes", `{"type": "logistic_regression", "classes": [0, 2],
			"coefficients": [1, 1, 1]}`, ErrInvalidArtifact},
		{"tree leaf outside classes", `{"type": "decision_tree", "nodes": [
			{"feature_idx": 0, "threshold": 1, "left_child": 1, "right_child": 2},
			{"is_leaf": true, "class_label": 0}, {"is_leaf": true, "class_label": 7}]}`, ErrInvalidArtifact},
		{"forest leaf outside classes", `{"type": "random_forest", "trees": [
			{"nodes": [{"is_leaf": true, "class_label": 1}]},
			{"nodes": [{"is_leaf": true, "class_label": -1}]}]}`, ErrInvalidArtifact},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPredict_FeatureCount(t *testing.T) {
	m, err := Parse([]byte(logisticJSON))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Predict([]float64{1, 2}); !errors.Is(err, ErrFeatureCount) {
		t.Errorf("expected ErrFeatureCount, got %v", err)
	}
}

func TestParse_CustomClasses(t *testing.T) {
	m, err := Parse([]byte(`{"type": "logistic_regression", "classes": [1, 0],
		"coefficients": [1, 0, 0], "intercept": 0}`))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := m.Predict([]float64{1, 0, 0})
	if got != 0 {
		t.Errorf("positive score should map to classes[1]=0, got %d", got)
	}
}

func TestLogistic_ZeroScoreIsNegativeClass(t *testing.T) {
	m, err := Parse([]byte(`{"type": "logistic_regression", "coefficients": [1, 0, 0], "intercept": 0}`))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := m.Predict([]float64{0, 50, 50})
	if got != 0 {
		t.Errorf("z == 0 must map to classes[0], got %d", got)
	}
}

func TestReady_Nil(t *testing.T) {
	var m *Model
	if err := m.Ready(); err == nil || !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("expected not loaded error, got %v", err)
	}
}
