package inference

import (
	"context"
	"os"
	"strings"
	"testing"
)

const testModelPath = "../testdata/gaitnet.onnx"

// isORTUnavailableError reports whether err stems from the ONNX runtime
// shared library being absent on this machine rather than from our code.
func isORTUnavailableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "onnxruntime") ||
		strings.Contains(msg, "shared library") ||
		strings.Contains(msg, "initializing ONNX runtime")
}

// skipIfNoModel skips the test when the ONNX model file is not available.
func skipIfNoModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); err != nil {
		t.Skipf("Skipping: model not available at %s", testModelPath)
	}
}

func TestNewSession_ModelNotFound(t *testing.T) {
	_, err := NewSession("../testdata/nonexistent.onnx")
	if err == nil {
		t.Error("expected error for non-existent model file")
	}
}

func TestSession_Infer(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewSession failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	signal := make([]float32, 256)
	for i := range signal {
		signal[i] = float32(i%10) / 10
	}

	activation, err := session.Infer(context.Background(), signal)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if len(activation) != len(signal) {
		t.Errorf("activation length %d, want %d", len(activation), len(signal))
	}
}

func TestSession_Infer_ContextCancelled(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewSession failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = session.Infer(ctx, []float32{0, 1, 0})
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestSession_Close_Idempotent(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := session.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Infer after close must fail, not panic
	if _, err := session.Infer(context.Background(), []float32{1}); err == nil {
		t.Error("expected error for Infer on closed session")
	}
}
