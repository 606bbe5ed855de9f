package gait

import (
	"log/slog"
	"runtime"
)

// Option configures a Detector.
type Option func(*config)

type config struct {
	atomLength int
	minSpacing int
	poolSize   int
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		atomLength: 60,
		minSpacing: 60,
		poolSize:   runtime.NumCPU(),
		logger:     slog.Default(),
	}
}

// WithAtomLength sets the duration in samples of an emitted step interval
// (default: 60). It should match the atom length the model was trained with.
func WithAtomLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.atomLength = n
		}
	}
}

// WithMinSpacing sets the minimum number of samples between two retained
// activation peaks (default: 60). Intervals stay non-overlapping as long as
// the spacing is at least the atom length.
func WithMinSpacing(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.minSpacing = n
		}
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
