package bench

import (
	"context"
	"sort"

	gait "github.com/strideworks/go-gait"
	"github.com/strideworks/go-gait/eval"
)

// Params is one point of the detection hyperparameter grid.
type Params struct {
	AtomLength int
	MinSpacing int
}

// SweepResult holds the corpus score for one parameter combination.
type SweepResult struct {
	Params  Params
	Score   float64 // batch F1 from eval.F1StepDetection
	Summary Summary
}

// GridParams builds the exhaustive atom-length x min-spacing grid.
func GridParams(atomLengths, minSpacings []int) []Params {
	grid := make([]Params, 0, len(atomLengths)*len(minSpacings))
	for _, a := range atomLengths {
		for _, s := range minSpacings {
			grid = append(grid, Params{AtomLength: a, MinSpacing: s})
		}
	}
	return grid
}

// SweepRange generates the values min, min+step, ... up to but excluding max.
func SweepRange(min, max, step int) []int {
	var vals []int
	for v := min; v < max; v += step {
		vals = append(vals, v)
	}
	return vals
}

// Sweep evaluates every parameter combination over the corpus and returns
// results sorted by batch F1, best first. Each combination gets its own
// detector so the sparsification parameters take effect; the ONNX model is
// shared per combination via the detector's session pool.
func Sweep(ctx context.Context, trials []*Trial, modelPath string, cfg Config, grid []Params) ([]SweepResult, error) {
	var results []SweepResult

	for _, params := range grid {
		det, err := gait.New(modelPath,
			gait.WithAtomLength(params.AtomLength),
			gait.WithMinSpacing(params.MinSpacing),
		)
		if err != nil {
			return nil, err
		}

		score, summary, err := evaluateCorpus(ctx, det, trials, cfg)
		_ = det.Close()
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			Params:  params,
			Score:   score,
			Summary: summary,
		})
	}

	// Sort by batch F1 descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// evaluateCorpus runs detection over every trial and scores the batch with
// eval.F1StepDetection, alongside per-trial summary statistics.
func evaluateCorpus(ctx context.Context, det *gait.Detector, trials []*Trial, cfg Config) (float64, Summary, error) {
	truthBatch := make([][]eval.Interval, 0, len(trials))
	predBatch := make([][]eval.Interval, 0, len(trials))
	perTrial := make([]Metrics, 0, len(trials))

	for _, trial := range trials {
		pred, err := det.DetectSteps(ctx, trial.Signal)
		if err != nil {
			return 0, Summary{}, err
		}
		truthBatch = append(truthBatch, trial.Steps)
		predBatch = append(predBatch, pred)

		m, err := Score(trial.Steps, pred, cfg)
		if err != nil {
			return 0, Summary{}, err
		}
		perTrial = append(perTrial, m)
	}

	score, err := eval.F1StepDetection(truthBatch, predBatch, cfg.IoUThreshold)
	if err != nil {
		return 0, Summary{}, err
	}
	return score, Summarize(perTrial, cfg), nil
}

// EvaluateModel scores one model at fixed parameters over the corpus.
func EvaluateModel(ctx context.Context, modelPath string, trials []*Trial, cfg Config) (float64, Summary, error) {
	det, err := gait.New(modelPath,
		gait.WithAtomLength(cfg.AtomLength),
		gait.WithMinSpacing(cfg.MinSpacing),
	)
	if err != nil {
		return 0, Summary{}, err
	}
	defer func() { _ = det.Close() }()

	return evaluateCorpus(ctx, det, trials, cfg)
}
