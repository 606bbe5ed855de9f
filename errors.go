package gait

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("gait: model file not found")

	// ErrInvalidModel indicates the model file exists but is malformed.
	ErrInvalidModel = errors.New("gait: invalid model format")

	// ErrEmptySignal indicates detection was requested on an empty signal.
	ErrEmptySignal = errors.New("gait: signal is empty")
)
