// Package model loads the pre-trained classifier artifact and runs predictions against it.
//
// The artifact is a JSON document written by the training pipeline. Its "type" field
// selects the decoder; every decoder produces a classifier over the same fixed-length
// feature vector.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/kailas-cloud/passpredict/internal/domain"
	"github.com/kailas-cloud/passpredict/internal/domain/features"
)

// Artifact types.
const (
	TypeLogisticRegression = "logistic_regression"
	TypeDecisionTree       = "decision_tree"
	TypeRandomForest       = "random_forest"
)

var (
	// ErrUnknownType signals an artifact type without a registered decoder.
	ErrUnknownType = errors.New("unknown model type")
	// ErrInvalidArtifact signals a malformed or inconsistent artifact.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrFeatureCount signals an input vector of the wrong length.
	ErrFeatureCount = errors.New("feature count mismatch")
)

// classifier is the per-type prediction core.
type classifier interface {
	classify(x []float64) (int, error)
}

// decoder builds a classifier from the raw artifact.
type decoder func(raw []byte, classes [2]int) (classifier, error)

var decoders = map[string]decoder{
	TypeLogisticRegression: decodeLogistic,
	TypeDecisionTree:       decodeTree,
	TypeRandomForest:       decodeForest,
}

// header holds the fields shared by every artifact type.
type header struct {
	Type     string   `json:"type"`
	Features []string `json:"features"`
	Classes  []int    `json:"classes"`
}

// Model is a loaded, read-only classifier. Safe for concurrent use.
type Model struct {
	kind     string
	path     string
	checksum string
	clf      classifier
}

// Load reads and validates the artifact at path.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	m, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	m.path = path
	return m, nil
}

// Parse decodes an artifact from memory.
func Parse(raw []byte) (*Model, error) {
	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	dec, ok := decoders[h.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, h.Type)
	}

	if len(h.Features) > 0 && !slices.Equal(h.Features, features.Names()) {
		return nil, fmt.Errorf("%w: features %v, expected %v", ErrInvalidArtifact, h.Features, features.Names())
	}

	classes := [2]int{0, 1}
	if h.Classes != nil {
		if len(h.Classes) != 2 {
			return nil, fmt.Errorf("%w: expected 2 classes, got %d", ErrInvalidArtifact, len(h.Classes))
		}
		classes = [2]int{h.Classes[0], h.Classes[1]}
	}
	if err := checkClasses(classes); err != nil {
		return nil, err
	}

	clf, err := dec(raw, classes)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", h.Type, err)
	}

	sum := sha256.Sum256(raw)
	return &Model{
		kind:     h.Type,
		checksum: hex.EncodeToString(sum[:]),
		clf:      clf,
	}, nil
}

// checkClasses requires both labels, each exactly once.
func checkClasses(classes [2]int) error {
	if classes[0] == classes[1] {
		return fmt.Errorf("%w: duplicate class %d", ErrInvalidArtifact, classes[0])
	}
	for _, c := range classes {
		if _, err := domain.LabelFromClass(c); err != nil {
			return fmt.Errorf("%w: class %d is not a pass/fail label", ErrInvalidArtifact, c)
		}
	}
	return nil
}

// Predict returns the class for a feature vector in model order.
func (m *Model) Predict(x []float64) (int, error) {
	if len(x) != features.Len {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), features.Len)
	}
	return m.clf.classify(x)
}

// Ready reports whether the model can serve predictions.
func (m *Model) Ready() error {
	if m == nil || m.clf == nil {
		return errors.New("model not loaded")
	}
	return nil
}

// Kind returns the artifact type.
func (m *Model) Kind() string { return m.kind }

// Path returns the file the model was loaded from (empty for Parse).
func (m *Model) Path() string { return m.path }

// Checksum returns the hex sha256 of the artifact bytes.
func (m *Model) Checksum() string { return m.checksum }
