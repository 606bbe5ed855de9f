//go:build ignore

// Generate a synthetic labeled trial corpus for benchmarking without access
// to the clinical dataset.
// Usage: go run ./scripts/gen-trials.go
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/strideworks/go-gait/eval"
	"github.com/strideworks/go-gait/internal/bench"
)

const (
	outDir     = "testdata/trials"
	sampleRate = 100.0
	trialLen   = 3000
	atomLength = 60
)

// Group cadence in samples between steps, with per-trial jitter.
var groups = map[string]struct {
	Cadence int
	Jitter  int
}{
	"healthy":   {Cadence: 110, Jitter: 8},
	"parkinson": {Cadence: 80, Jitter: 20},
}

func main() {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outDir, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(42))
	written := 0

	for label, g := range groups {
		for i := 0; i < 5; i++ {
			id := fmt.Sprintf("%s-s%02d", label, i+1)
			trial := makeTrial(rng, id, label, g.Cadence, g.Jitter)

			path := filepath.Join(outDir, id+bench.TrialExt)
			if err := bench.WriteTrial(path, trial); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
				os.Exit(1)
			}
			written++
		}
	}

	fmt.Printf("Wrote %d trials to %s\n", written, outDir)
}

// makeTrial places step-shaped bursts at jittered cadence over a noise
// floor, annotating each burst as a ground-truth step interval.
func makeTrial(rng *rand.Rand, id, label string, cadence, jitter int) *bench.Trial {
	signal := make([]float64, trialLen)
	for i := range signal {
		signal[i] = 0.05 * rng.NormFloat64()
	}

	var steps []eval.Interval
	pos := cadence / 2
	for pos+atomLength < trialLen {
		for i := 0; i < atomLength; i++ {
			// Half-sine burst shaped like a stance-phase load curve
			signal[pos+i] += math.Sin(math.Pi * float64(i) / float64(atomLength))
		}
		steps = append(steps, eval.Interval{
			Start: float64(pos),
			End:   float64(pos + atomLength),
		})
		pos += cadence + rng.Intn(2*jitter+1) - jitter
	}

	return &bench.Trial{
		ID:         id,
		Subject:    id,
		Label:      label,
		SampleRate: sampleRate,
		Signal:     signal,
		Steps:      steps,
	}
}
