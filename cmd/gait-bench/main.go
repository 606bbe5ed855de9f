package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/strideworks/go-gait/internal/bench"
)

func main() {
	var (
		modelPath   = flag.String("model", "", "Path to ONNX activation model (required)")
		corpusDir   = flag.String("corpus", "testdata/trials", "Directory containing .trial recordings")
		iou         = flag.Float64("iou", 0.75, "IoU threshold for counting a detection as correct")
		atomLength  = flag.Int("atom", 60, "Step interval length in samples")
		minSpacing  = flag.Int("spacing", 60, "Minimum peak spacing in samples")
		wp          = flag.Float64("wp", 1.0, "Precision weight")
		wr          = flag.Float64("wr", 1.0, "Recall weight")
		sweep       = flag.Bool("sweep", false, "Run atom-length x spacing grid sweep")
		atomMin     = flag.Int("atom-min", 40, "Sweep minimum atom length")
		atomMax     = flag.Int("atom-max", 120, "Sweep maximum atom length (exclusive)")
		atomStep    = flag.Int("atom-step", 20, "Sweep atom length step")
		spacingMin  = flag.Int("spacing-min", 40, "Sweep minimum spacing")
		spacingMax  = flag.Int("spacing-max", 120, "Sweep maximum spacing (exclusive)")
		spacingStep = flag.Int("spacing-step", 20, "Sweep spacing step")
		models      = flag.String("models", "", "Comma-separated model paths for comparison")
	)
	flag.Parse()

	if *modelPath == "" && *models == "" {
		fmt.Fprintln(os.Stderr, "error: -model or -models required")
		flag.Usage()
		os.Exit(1)
	}

	// Load corpus
	trials, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d trials from %s\n\n", len(trials), *corpusDir)

	cfg := bench.Config{
		IoUThreshold:    *iou,
		AtomLength:      *atomLength,
		MinSpacing:      *minSpacing,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	grid := bench.GridParams(
		bench.SweepRange(*atomMin, *atomMax, *atomStep),
		bench.SweepRange(*spacingMin, *spacingMax, *spacingStep),
	)

	ctx := context.Background()

	if *models != "" {
		// Model comparison mode
		modelPaths := strings.Split(*models, ",")
		runModelComparison(ctx, modelPaths, trials, cfg, *sweep, grid)
	} else if *sweep {
		// Single model sweep mode
		runSweep(ctx, *modelPath, trials, cfg, grid)
	} else {
		// Single parameter evaluation
		runSingle(ctx, *modelPath, trials, cfg)
	}
}

func runSingle(ctx context.Context, modelPath string, trials []*bench.Trial, cfg bench.Config) {
	score, summary, err := bench.EvaluateModel(ctx, modelPath, trials, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		summary.MeanPrecision, summary.MeanRecall, summary.MeanF1, summary.WeightedScore)
	fmt.Printf("(batch F1: %.3f, F1 stddev: %.3f over %d trials)\n",
		score, summary.StdF1, summary.Trials)
}

func runSweep(ctx context.Context, modelPath string, trials []*bench.Trial, cfg bench.Config, grid []bench.Params) {
	fmt.Printf("Parameter Sweep Results (IoU > %.2f)\n", cfg.IoUThreshold)
	fmt.Println(strings.Repeat("-", 58))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "Atom", "Spacing", "Prec", "Rec", "F1")

	results, err := bench.Sweep(ctx, trials, modelPath, cfg, grid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	// Print sorted by grid order for readability
	for _, p := range grid {
		for _, r := range results {
			if r.Params == p {
				fmt.Printf("%-8d %-8d %-8.2f %-8.2f %-8.3f\n",
					r.Params.AtomLength, r.Params.MinSpacing,
					r.Summary.MeanPrecision, r.Summary.MeanRecall, r.Score)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 58))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: atom=%d spacing=%d (F1: %.3f)\n",
			best.Params.AtomLength, best.Params.MinSpacing, best.Score)
	}
}

func runModelComparison(ctx context.Context, modelPaths []string, trials []*bench.Trial, cfg bench.Config, sweep bool, grid []bench.Params) {
	fmt.Printf("Model Comparison (IoU > %.2f)\n", cfg.IoUThreshold)
	fmt.Println(strings.Repeat("-", 64))
	fmt.Printf("%-30s %-8s %-8s %-8s\n", "Model", "Atom", "Spacing", "F1")

	for _, modelPath := range modelPaths {
		var bestParams bench.Params
		var bestScore float64

		if sweep {
			results, err := bench.Sweep(ctx, trials, modelPath, cfg, grid)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error with %s: %v\n", modelPath, err)
				continue
			}
			if len(results) > 0 {
				bestParams = results[0].Params
				bestScore = results[0].Score
			}
		} else {
			score, _, err := bench.EvaluateModel(ctx, modelPath, trials, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error with %s: %v\n", modelPath, err)
				continue
			}
			bestParams = bench.Params{AtomLength: cfg.AtomLength, MinSpacing: cfg.MinSpacing}
			bestScore = score
		}

		fmt.Printf("%-30s %-8d %-8d %-8.3f\n",
			modelPath, bestParams.AtomLength, bestParams.MinSpacing, bestScore)
	}
}
