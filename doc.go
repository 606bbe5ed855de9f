// Package gait provides footstep detection on locomotion sensor signals
// using convolutional sparse-coding activation models exported to ONNX.
//
// # Quick Start
//
//	det, err := gait.New("gaitnet.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer det.Close()
//
//	steps, err := det.DetectSteps(ctx, signal)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range steps {
//	    fmt.Printf("step [%.0f, %.0f)\n", s.Start, s.End)
//	}
//
// Detected steps are scored against ground-truth annotations with package
// eval; package sparse holds the peak-picking that turns a dense activation
// vector into discrete events.
//
// # Thread Safety
//
// Detector is safe for concurrent use. It manages an internal pool of ONNX
// sessions, configurable via WithPoolSize.
package gait
