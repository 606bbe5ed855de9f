package bench

import (
	"context"

	"gonum.org/v1/gonum/stat"

	gait "github.com/strideworks/go-gait"
	"github.com/strideworks/go-gait/eval"
)

// Config holds evaluation parameters.
type Config struct {
	IoUThreshold    float64
	AtomLength      int
	MinSpacing      int
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		IoUThreshold:    eval.DefaultIoUThreshold,
		AtomLength:      60,
		MinSpacing:      60,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results for one trial.
type Metrics struct {
	Precision     float64
	Recall        float64
	F1            float64
	WeightedScore float64
}

// Score compares detected step intervals against ground truth for one trial.
func Score(truth, pred []eval.Interval, cfg Config) (Metrics, error) {
	p, err := eval.Precision(truth, pred, cfg.IoUThreshold)
	if err != nil {
		return Metrics{}, err
	}
	r, err := eval.Recall(truth, pred, cfg.IoUThreshold)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{Precision: p, Recall: r}
	if p+r > 0 {
		m.F1 = 2 * p * r / (p + r)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*p + wr*r) / (wp + wr)
	}
	return m, nil
}

// EvaluateTrial runs detection on one trial and scores it against the
// trial's step annotations.
func EvaluateTrial(ctx context.Context, det *gait.Detector, trial *Trial, cfg Config) (Metrics, error) {
	steps, err := det.DetectSteps(ctx, trial.Signal)
	if err != nil {
		return Metrics{}, err
	}
	return Score(trial.Steps, steps, cfg)
}

// Summary aggregates per-trial metrics across a corpus.
type Summary struct {
	Trials        int
	MeanPrecision float64
	MeanRecall    float64
	MeanF1        float64
	StdF1         float64
	WeightedScore float64
}

// Summarize averages per-trial metrics. The F1 mean matches what
// eval.F1StepDetection reports for the same batch.
func Summarize(results []Metrics, cfg Config) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	ps := make([]float64, len(results))
	rs := make([]float64, len(results))
	f1s := make([]float64, len(results))
	for i, m := range results {
		ps[i] = m.Precision
		rs[i] = m.Recall
		f1s[i] = m.F1
	}

	s := Summary{
		Trials:        len(results),
		MeanPrecision: stat.Mean(ps, nil),
		MeanRecall:    stat.Mean(rs, nil),
		MeanF1:        stat.Mean(f1s, nil),
	}
	if len(results) > 1 {
		s.StdF1 = stat.StdDev(f1s, nil)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		s.WeightedScore = (wp*s.MeanPrecision + wr*s.MeanRecall) / (wp + wr)
	}
	return s
}
