package eval

// f1Epsilon guards the harmonic mean against unstable near-zero division.
const f1Epsilon = 1e-6

// Precision returns the fraction of predicted intervals that match a
// ground-truth interval with IoU strictly above iouThreshold.
//
// Matching is greedy and one-to-one: predictions are visited in order and
// each claims the first unconsumed ground-truth interval above threshold,
// with no backtracking. This prevents one prediction from counting against
// several overlapping annotations, at the cost of order sensitivity when
// multiple candidates are mutually above threshold.
//
// An empty prediction list scores 0.
func Precision(truth, pred []Interval, iouThreshold float64) (float64, error) {
	if err := validateAll(pred); err != nil {
		return 0, err
	}
	if err := validateAll(truth); err != nil {
		return 0, err
	}
	if len(pred) == 0 {
		return 0, nil
	}

	matched := make([]bool, len(truth))
	correct := 0
	for _, p := range pred {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			if iou(p, t) > iouThreshold {
				matched[i] = true
				correct++
				break
			}
		}
	}
	return float64(correct) / float64(len(pred)), nil
}

// Recall returns the fraction of ground-truth intervals matched by some
// prediction with IoU strictly above iouThreshold, using the same greedy
// one-to-one matching as Precision with the roles reversed: ground-truth
// intervals claim predictions.
//
// An empty ground-truth list leaves the metric undefined and returns
// ErrEmptyTruth.
func Recall(truth, pred []Interval, iouThreshold float64) (float64, error) {
	if err := validateAll(pred); err != nil {
		return 0, err
	}
	if err := validateAll(truth); err != nil {
		return 0, err
	}
	if len(truth) == 0 {
		return 0, ErrEmptyTruth
	}

	matched := make([]bool, len(pred))
	detected := 0
	for _, t := range truth {
		for i, p := range pred {
			if matched[i] {
				continue
			}
			if iou(t, p) > iouThreshold {
				matched[i] = true
				detected++
				break
			}
		}
	}
	return float64(detected) / float64(len(truth)), nil
}

// F1StepDetection scores a batch of signals: per signal, the harmonic mean
// of Precision and Recall at iouThreshold; across the batch, the arithmetic
// mean of the per-signal scores.
//
// truthBatch and predBatch must be index-aligned (entry i of each refers to
// the same signal); a length mismatch returns ErrBatchMismatch. An empty
// batch scores 0.
func F1StepDetection(truthBatch, predBatch [][]Interval, iouThreshold float64) (float64, error) {
	if len(truthBatch) != len(predBatch) {
		return 0, ErrBatchMismatch
	}
	if len(truthBatch) == 0 {
		return 0, nil
	}

	var sum float64
	for i := range truthBatch {
		p, err := Precision(truthBatch[i], predBatch[i], iouThreshold)
		if err != nil {
			return 0, err
		}
		r, err := Recall(truthBatch[i], predBatch[i], iouThreshold)
		if err != nil {
			return 0, err
		}
		if p+r >= f1Epsilon {
			sum += 2 * p * r / (p + r)
		}
	}
	return sum / float64(len(truthBatch)), nil
}
