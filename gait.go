package gait

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/strideworks/go-gait/eval"
	"github.com/strideworks/go-gait/inference"
	"github.com/strideworks/go-gait/sparse"
)

const (
	// maxWindow is the largest signal slice handed to the model in one run.
	// Longer recordings are processed in overlapping windows to bound the
	// per-run tensor size.
	maxWindow = 8192

	// windowOverlap is the number of overlapping samples between windows.
	// The convolutional model is unreliable near window edges; activations
	// in overlap regions are averaged across the windows that saw them.
	windowOverlap = 512
)

// Detector finds footsteps in locomotion sensor signals. It runs an ONNX
// activation model over the signal and sparsifies the activation into
// discrete step intervals. It is safe for concurrent use.
type Detector struct {
	pool       *inference.Pool
	atomLength int
	minSpacing int
	logger     *slog.Logger
}

// New creates a Detector with the specified model file.
func New(modelPath string, opts ...Option) (*Detector, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Check model file exists
	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	pool, err := inference.NewPool(modelPath, cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	return &Detector{
		pool:       pool,
		atomLength: cfg.atomLength,
		minSpacing: cfg.minSpacing,
		logger:     cfg.logger,
	}, nil
}

// AtomLength returns the configured step interval duration in samples.
func (d *Detector) AtomLength() int { return d.atomLength }

// MinSpacing returns the configured minimum peak spacing in samples.
func (d *Detector) MinSpacing() int { return d.minSpacing }

// DetectSteps returns the detected step intervals for one signal, in
// ascending position order.
func (d *Detector) DetectSteps(ctx context.Context, signal []float64) ([]eval.Interval, error) {
	activation, err := d.Activation(ctx, signal)
	if err != nil {
		return nil, err
	}
	steps, err := sparse.IntervalsSpaced(activation, d.atomLength, d.minSpacing)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("detected steps",
		slog.Int("signal_len", len(signal)),
		slog.Int("steps", len(steps)))
	return steps, nil
}

// Activation runs the model over the signal and returns the per-sample
// activation vector, processing long signals in overlapping windows.
func (d *Detector) Activation(ctx context.Context, signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	// Acquire session from pool
	session, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer d.pool.Release(session)

	input := toFloat32(signal)

	// If the signal fits in one window, process directly
	if len(input) <= maxWindow {
		out, err := session.Infer(ctx, input)
		if err != nil {
			return nil, err
		}
		return toFloat64(out), nil
	}

	// Process in overlapping windows
	activation := make([]float64, len(input))
	counts := make([]int, len(input)) // Track how many windows saw each position

	stride := maxWindow - windowOverlap
	for start := 0; start < len(input); start += stride {
		end := start + maxWindow
		if end > len(input) {
			end = len(input)
		}

		out, err := session.Infer(ctx, input[start:end])
		if err != nil {
			return nil, err
		}

		// Accumulate activations (for averaging in overlap regions)
		for i, v := range out {
			activation[start+i] += float64(v)
			counts[start+i]++
		}

		// Stop if we've reached the end
		if end >= len(input) {
			break
		}
	}

	// Average activations in overlapping regions
	for i := range activation {
		if counts[i] > 1 {
			activation[i] /= float64(counts[i])
		}
	}

	return activation, nil
}

// Close releases all resources.
func (d *Detector) Close() error {
	if d.pool != nil {
		return d.pool.Close()
	}
	return nil
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
