package passpredict

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	modelPath string
	artifact  []byte

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithModelPath loads the classifier from a JSON artifact on disk.
func WithModelPath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.modelPath = path
	})
}

// WithModelArtifact uses an in-memory JSON artifact. Takes precedence over WithModelPath.
func WithModelArtifact(raw []byte) Option {
	return optionFunc(func(c *clientConfig) {
		c.artifact = raw
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
