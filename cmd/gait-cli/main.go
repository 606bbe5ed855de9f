package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	gait "github.com/strideworks/go-gait"
	"github.com/strideworks/go-gait/classify"
	"github.com/strideworks/go-gait/internal/bench"
)

func main() {
	modelPath := flag.String("model", "", "Path to ONNX activation model")
	trialPath := flag.String("trial", "", "Path to a .trial recording")
	atomLength := flag.Int("atom", 60, "Step interval length in samples")
	minSpacing := flag.Int("spacing", 60, "Minimum peak spacing in samples")
	mode := flag.String("mode", "detect", "Mode: detect or classify")
	templateDir := flag.String("templates", "", "Labeled .trial corpus used as classification templates")
	k := flag.Int("k", 3, "Nearest neighbours consulted when classifying")

	flag.Parse()

	if *modelPath == "" || *trialPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: gait-cli -model MODEL -trial TRIAL [OPTIONS]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	trial, err := bench.LoadTrial(*trialPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trial: %v\n", err)
		os.Exit(1)
	}

	det, err := gait.New(*modelPath,
		gait.WithAtomLength(*atomLength),
		gait.WithMinSpacing(*minSpacing),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating detector: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = det.Close() }() // Cleanup error ignored in CLI

	ctx := context.Background()

	steps, err := det.DetectSteps(ctx, trial.Signal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "detect":
		fmt.Printf("Trial: %s (%d samples @ %.0f Hz)\n", trial.ID, len(trial.Signal), trial.SampleRate)
		fmt.Printf("Steps (%d):\n", len(steps))
		for i, s := range steps {
			fmt.Printf("  %d: [%.0f, %.0f)\n", i+1, s.Start, s.End)
		}

	case "classify":
		if *templateDir == "" {
			fmt.Fprintln(os.Stderr, "Error: -templates required in classify mode")
			os.Exit(1)
		}

		clf, err := templateClassifier(*templateDir, *k)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		label, err := clf.ClassifySteps(trial.Signal, steps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Trial: %s\n", trial.ID)
		fmt.Printf("Detected steps: %d\n", len(steps))
		fmt.Printf("Predicted group: %s\n", label)
		if trial.Label != "" {
			fmt.Printf("Annotated group: %s\n", trial.Label)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

// templateClassifier builds a DTW k-NN classifier from a labeled trial
// corpus: every annotated step of every labeled trial becomes one template.
func templateClassifier(dir string, k int) (*classify.Classifier, error) {
	trials, err := bench.LoadCorpus(dir)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	var templates []classify.Template
	for _, trial := range trials {
		if trial.Label == "" {
			continue
		}
		for _, seg := range classify.Extract(trial.Signal, trial.Steps) {
			templates = append(templates, classify.Template{
				Label:  trial.Label,
				Series: seg,
			})
		}
	}

	return classify.New(templates, classify.WithK(k))
}
