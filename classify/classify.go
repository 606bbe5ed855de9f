// Package classify assigns pathology-group labels to detected steps.
//
// Each step segment is compared against a set of labeled template series
// with Dynamic Time Warping and classified by k-nearest-neighbour majority
// vote. DTW absorbs the tempo variation between subjects that makes plain
// pointwise distances useless on gait data.
package classify

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlath/dtw"
	"gonum.org/v1/gonum/stat"

	"github.com/strideworks/go-gait/eval"
)

// Sentinel errors.
var (
	// ErrNoTemplates indicates a classifier built without template series.
	ErrNoTemplates = errors.New("classify: at least one template is required")

	// ErrEmptySeries indicates classification of an empty series.
	ErrEmptySeries = errors.New("classify: series is empty")
)

// Template is a labeled reference series, typically one annotated step cut
// from a recording of a known pathology group.
type Template struct {
	Label  string
	Series []float64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithK sets the number of nearest neighbours consulted (default: 3).
func WithK(k int) Option {
	return func(c *Classifier) {
		if k > 0 {
			c.k = k
		}
	}
}

// WithWindow sets the Sakoe-Chiba band radius for DTW (default: 0, no
// constraint). A moderate window speeds up comparison and stops degenerate
// warping paths.
func WithWindow(w int) Option {
	return func(c *Classifier) {
		if w > 0 {
			c.window = w
		}
	}
}

// WithSlopePenalty sets the DTW insertion/deletion penalty (default: 0).
func WithSlopePenalty(p float64) Option {
	return func(c *Classifier) {
		if p > 0 {
			c.penalty = p
		}
	}
}

// Classifier is a DTW k-nearest-neighbour classifier over labeled template
// series. It is safe for concurrent use once constructed.
type Classifier struct {
	templates []Template // z-score normalized copies
	k         int
	window    int
	penalty   float64
}

// New builds a classifier from labeled templates. Templates are z-score
// normalized once at construction; empty templates are rejected.
func New(templates []Template, opts ...Option) (*Classifier, error) {
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}

	c := &Classifier{k: 3}
	for _, opt := range opts {
		opt(c)
	}

	c.templates = make([]Template, len(templates))
	for i, tpl := range templates {
		if len(tpl.Series) == 0 {
			return nil, fmt.Errorf("%w: template %d (%s)", ErrEmptySeries, i, tpl.Label)
		}
		c.templates[i] = Template{
			Label:  tpl.Label,
			Series: zscore(tpl.Series),
		}
	}
	return c, nil
}

// neighbor pairs a template label with its DTW distance to the query.
type neighbor struct {
	label string
	dist  float64
}

// Classify returns the majority label among the k templates nearest to
// series under DTW. Ties are broken towards the label with the closest
// individual neighbour.
func (c *Classifier) Classify(series []float64) (string, error) {
	if len(series) == 0 {
		return "", ErrEmptySeries
	}

	query := zscore(series)
	// The dtw package encodes "no band constraint" as Window == -1; the
	// zero value of c.window means unconstrained (see WithWindow).
	window := c.window
	if window == 0 {
		window = -1
	}
	opts := &dtw.Options{
		Window:       window,
		SlopePenalty: c.penalty,
		MemoryMode:   dtw.TwoRows,
	}

	neighbors := make([]neighbor, 0, len(c.templates))
	for _, tpl := range c.templates {
		dist, _, err := dtw.DTW(query, tpl.Series, opts)
		if err != nil {
			return "", fmt.Errorf("dtw against %s template: %w", tpl.Label, err)
		}
		neighbors = append(neighbors, neighbor{label: tpl.Label, dist: dist})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].dist < neighbors[j].dist
	})

	k := c.k
	if k > len(neighbors) {
		k = len(neighbors)
	}

	votes := make(map[string]int, k)
	for _, n := range neighbors[:k] {
		votes[n.label]++
	}

	best := neighbors[0].label
	for _, n := range neighbors[:k] {
		if votes[n.label] > votes[best] {
			best = n.label
		}
	}
	return best, nil
}

// ClassifySteps classifies every step segment of a signal and returns the
// per-trial majority label. Segments outside the signal bounds are clamped
// by Extract; a trial with no usable segments is an error.
func (c *Classifier) ClassifySteps(signal []float64, steps []eval.Interval) (string, error) {
	segments := Extract(signal, steps)
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: no step segments in signal", ErrEmptySeries)
	}

	votes := make(map[string]int)
	var first string
	for _, seg := range segments {
		label, err := c.Classify(seg)
		if err != nil {
			return "", err
		}
		if first == "" {
			first = label
		}
		votes[label]++
	}

	best := first
	for label, n := range votes {
		if n > votes[best] {
			best = label
		}
	}
	return best, nil
}

// Extract cuts the step segments named by steps out of signal, clamping
// each interval to the signal bounds and dropping any that end up empty.
func Extract(signal []float64, steps []eval.Interval) [][]float64 {
	var segments [][]float64
	for _, s := range steps {
		lo := int(s.Start)
		hi := int(s.End)
		if lo < 0 {
			lo = 0
		}
		if hi > len(signal) {
			hi = len(signal)
		}
		if hi <= lo {
			continue
		}
		seg := make([]float64, hi-lo)
		copy(seg, signal[lo:hi])
		segments = append(segments, seg)
	}
	return segments
}

// zscore returns a mean-zero, unit-variance copy of series. A constant
// series is only centered.
func zscore(series []float64) []float64 {
	mean, std := stat.MeanStdDev(series, nil)
	out := make([]float64, len(series))
	for i, v := range series {
		if std > 0 {
			out[i] = (v - mean) / std
		} else {
			out[i] = v - mean
		}
	}
	return out
}
