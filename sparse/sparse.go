// Package sparse turns dense activation vectors into discrete step events.
//
// An activation vector is the per-sample output of the detection model;
// its peaks mark candidate step onsets. Sparsify suppresses everything but
// strict local maxima separated by a minimum spacing, and the Intervals
// functions convert the surviving peak positions into fixed-length event
// intervals for scoring with package eval.
package sparse

import (
	"errors"
	"fmt"

	"github.com/strideworks/go-gait/eval"
)

// Sentinel errors.
var (
	// ErrInvalidSpacing indicates a non-positive peak spacing.
	ErrInvalidSpacing = errors.New("sparse: minimum spacing must be positive")

	// ErrInvalidAtomLength indicates a non-positive atom length.
	ErrInvalidAtomLength = errors.New("sparse: atom length must be positive")
)

// Sparsify returns a copy of activation with every position zeroed except
// strict local maxima: positions whose value strictly exceeds every other
// sample within a window of radius minSpacing. Ties within a window
// disqualify both contenders rather than being resolved arbitrarily.
//
// Two surviving positions are always at least minSpacing samples apart:
// were they closer, each would have to strictly exceed the other.
func Sparsify(activation []float64, minSpacing int) ([]float64, error) {
	if minSpacing < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSpacing, minSpacing)
	}

	out := make([]float64, len(activation))
	for p, v := range activation {
		lo := p - minSpacing
		if lo < 0 {
			lo = 0
		}
		hi := p + minSpacing
		if hi > len(activation)-1 {
			hi = len(activation) - 1
		}

		peak := true
		for q := lo; q <= hi; q++ {
			if q == p {
				continue
			}
			if activation[q] >= v {
				peak = false
				break
			}
		}
		if peak {
			out[p] = v
		}
	}
	return out, nil
}

// Intervals converts an activation vector into detected step intervals of
// length atomLength, one per surviving peak, in ascending position order.
// Peak spacing equals atomLength, so consecutive intervals may touch but
// never start closer than atomLength apart.
func Intervals(activation []float64, atomLength int) ([]eval.Interval, error) {
	return IntervalsSpaced(activation, atomLength, atomLength)
}

// IntervalsSpaced is Intervals with peak spacing decoupled from event
// duration. The returned intervals are pairwise non-overlapping only when
// atomLength <= minSpacing; a shorter spacing trades separation for
// sensitivity to closely spaced steps.
func IntervalsSpaced(activation []float64, atomLength, minSpacing int) ([]eval.Interval, error) {
	if atomLength < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAtomLength, atomLength)
	}

	peaks, err := Sparsify(activation, minSpacing)
	if err != nil {
		return nil, err
	}

	var ivs []eval.Interval
	for p, v := range peaks {
		if v == 0 {
			continue
		}
		ivs = append(ivs, eval.Interval{
			Start: float64(p),
			End:   float64(p + atomLength),
		})
	}
	return ivs, nil
}
