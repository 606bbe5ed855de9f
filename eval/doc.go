// Package eval scores step detections against ground-truth annotations.
//
// A detection and an annotation are both half-open intervals on the sample
// axis of one signal. Agreement between a predicted list and a ground-truth
// list is measured by greedy one-to-one matching at a fixed IoU threshold,
// from which precision, recall and F1 are derived. F1StepDetection averages
// per-signal F1 over an index-aligned batch and is suitable as the scoring
// function of a hyperparameter search.
//
// All functions are pure; none hold state between calls.
package eval
