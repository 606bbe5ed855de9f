package classify

import (
	"errors"
	"math"
	"testing"

	"github.com/strideworks/go-gait/eval"
)

func sineSeries(n int, period float64, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2*math.Pi*float64(i)/period + phase)
	}
	return out
}

func rampSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func testTemplates() []Template {
	return []Template{
		{Label: "healthy", Series: sineSeries(60, 20, 0)},
		{Label: "healthy", Series: sineSeries(60, 22, 0.3)},
		{Label: "parkinson", Series: rampSeries(60)},
		{Label: "parkinson", Series: rampSeries(70)},
	}
}

func TestNew_NoTemplates(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrNoTemplates) {
		t.Errorf("expected ErrNoTemplates, got %v", err)
	}
}

func TestNew_EmptyTemplateSeries(t *testing.T) {
	_, err := New([]Template{{Label: "healthy", Series: nil}})
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	c, err := New(testTemplates(), WithK(3))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		name   string
		series []float64
		want   string
	}{
		{
			name:   "sine-like step",
			series: sineSeries(55, 21, 0.1),
			want:   "healthy",
		},
		{
			name:   "ramp-like step",
			series: rampSeries(65),
			want:   "parkinson",
		},
		{
			// Tempo-shifted sine should still warp onto sine templates.
			name:   "stretched sine",
			series: sineSeries(90, 30, 0),
			want:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(tt.series)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_EmptySeries(t *testing.T) {
	c, err := New(testTemplates())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = c.Classify(nil)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestClassifySteps(t *testing.T) {
	c, err := New(testTemplates(), WithK(1))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// Signal of three sine-shaped steps back to back.
	signal := append(append(sineSeries(60, 20, 0), sineSeries(60, 20, 0)...), sineSeries(60, 20, 0)...)
	steps := []eval.Interval{{Start: 0, End: 60}, {Start: 60, End: 120}, {Start: 120, End: 180}}

	label, err := c.ClassifySteps(signal, steps)
	if err != nil {
		t.Fatalf("ClassifySteps() error = %v", err)
	}
	if label != "healthy" {
		t.Errorf("ClassifySteps() = %q, want %q", label, "healthy")
	}
}

func TestClassifySteps_NoSegments(t *testing.T) {
	c, err := New(testTemplates())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = c.ClassifySteps([]float64{1, 2, 3}, nil)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestExtract(t *testing.T) {
	signal := []float64{0, 1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name  string
		steps []eval.Interval
		want  int // number of segments
	}{
		{"in bounds", []eval.Interval{{Start: 1, End: 4}, {Start: 5, End: 8}}, 2},
		{"clamped to signal end", []eval.Interval{{Start: 6, End: 20}}, 1},
		{"fully out of range dropped", []eval.Interval{{Start: 10, End: 20}}, 0},
		{"none", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := Extract(signal, tt.steps)
			if len(segments) != tt.want {
				t.Fatalf("Extract() returned %d segments, want %d", len(segments), tt.want)
			}
		})
	}

	// Segment contents are copies at the annotated offsets.
	segments := Extract(signal, []eval.Interval{{Start: 2, End: 5}})
	if len(segments) != 1 || segments[0][0] != 2 || len(segments[0]) != 3 {
		t.Errorf("Extract() = %v, want [[2 3 4]]", segments)
	}
	segments[0][0] = 99
	if signal[2] == 99 {
		t.Error("Extract() must copy, not alias, the signal")
	}
}

func TestZScore(t *testing.T) {
	out := zscore([]float64{2, 4, 6})
	if math.Abs(out[0]+1) > 1e-12 || math.Abs(out[1]) > 1e-12 || math.Abs(out[2]-1) > 1e-12 {
		t.Errorf("zscore() = %v, want [-1 0 1]", out)
	}

	flat := zscore([]float64{5, 5, 5})
	for _, v := range flat {
		if v != 0 {
			t.Errorf("zscore of constant series = %v, want zeros", flat)
		}
	}
}
