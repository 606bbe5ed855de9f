package eval

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidInterval indicates an interval whose start is not before its end.
	ErrInvalidInterval = errors.New("eval: interval start must precede end")

	// ErrEmptyTruth indicates recall was requested against an empty
	// ground-truth list, which leaves the metric undefined.
	ErrEmptyTruth = errors.New("eval: ground-truth interval list is empty")

	// ErrBatchMismatch indicates the truth and prediction batches are not
	// index-aligned.
	ErrBatchMismatch = errors.New("eval: truth and prediction batches differ in length")
)

// DefaultIoUThreshold is the conventional IoU cutoff for counting a
// prediction as a correct detection. It is a convenience constant only;
// every matching function takes the threshold explicitly.
const DefaultIoUThreshold = 0.75

// Interval is a half-open span [Start, End) on the sample axis of a signal.
// It represents either an annotated or a detected step. Start < End.
type Interval struct {
	Start float64
	End   float64
}

// Validate reports whether the interval is well formed.
func (iv Interval) Validate() error {
	if iv.Start >= iv.End {
		return fmt.Errorf("%w: [%v, %v)", ErrInvalidInterval, iv.Start, iv.End)
	}
	return nil
}

// Length returns End - Start.
func (iv Interval) Length() float64 {
	return iv.End - iv.Start
}

// IoU returns the intersection-over-union of two intervals.
//
// The result is 0 when the intervals are disjoint, 1 when they are identical
// and strictly between 0 and 1 otherwise. For disjoint intervals the
// denominator is the sum of the two lengths rather than the span of their
// convex hull, so the gap between them does not dilute the score.
func IoU(a, b Interval) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return iou(a, b), nil
}

// iou assumes both intervals are valid. Union is never zero given
// Start < End on both inputs.
func iou(a, b Interval) float64 {
	inter := min(a.End, b.End) - max(a.Start, b.Start)
	if inter <= 0 {
		return 0
	}
	union := max(a.End, b.End) - min(a.Start, b.Start)
	return inter / union
}

// validateAll fails on the first malformed interval in the list.
func validateAll(ivs []Interval) error {
	for i, iv := range ivs {
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("interval %d: %w", i, err)
		}
	}
	return nil
}
