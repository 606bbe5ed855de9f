package bench

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/strideworks/go-gait/eval"
)

func testTrial() *Trial {
	return &Trial{
		ID:         "s01-t03",
		Subject:    "s01",
		Label:      "healthy",
		SampleRate: 100,
		Signal:     []float64{0, 0.5, -0.25, 1.75, 0},
		Steps:      []eval.Interval{{Start: 357, End: 431}, {Start: 502, End: 569}},
	}
}

func TestTrialRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s01-t03"+TrialExt)

	want := testTrial()
	if err := WriteTrial(path, want); err != nil {
		t.Fatalf("WriteTrial() failed: %v", err)
	}

	got, err := LoadTrial(path)
	if err != nil {
		t.Fatalf("LoadTrial() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadTrial() = %+v, want %+v", got, want)
	}
}

func TestLoadTrial_DefaultsIDToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walk-17"+TrialExt)

	trial := testTrial()
	trial.ID = ""
	if err := WriteTrial(path, trial); err != nil {
		t.Fatalf("WriteTrial() failed: %v", err)
	}

	got, err := LoadTrial(path)
	if err != nil {
		t.Fatalf("LoadTrial() failed: %v", err)
	}
	if got.ID != "walk-17" {
		t.Errorf("ID = %q, want %q", got.ID, "walk-17")
	}
}

func TestLoadTrial_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad"+TrialExt)
	if err := os.WriteFile(path, []byte{0xff, 0xff, 0xff}, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	_, err := LoadTrial(path)
	if !errors.Is(err, ErrCorruptTrial) {
		t.Errorf("expected ErrCorruptTrial, got %v", err)
	}
}

func TestLoadTrial_MalformedAnnotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rev"+TrialExt)

	trial := testTrial()
	trial.Steps = []eval.Interval{{Start: 431, End: 357}}
	if err := WriteTrial(path, trial); err != nil {
		t.Fatalf("WriteTrial() failed: %v", err)
	}

	_, err := LoadTrial(path)
	if !errors.Is(err, eval.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()

	for _, id := range []string{"a", "b", "c"} {
		trial := testTrial()
		trial.ID = id
		if err := WriteTrial(filepath.Join(dir, id+TrialExt), trial); err != nil {
			t.Fatalf("WriteTrial(%s) failed: %v", id, err)
		}
	}
	// Non-trial files are ignored
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	trials, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus() failed: %v", err)
	}
	if len(trials) != 3 {
		t.Errorf("loaded %d trials, want 3", len(trials))
	}
}

func TestUnmarshalTrial_SkipsUnknownFields(t *testing.T) {
	// Trailing varint field 15 must be skipped, not rejected.
	data := MarshalTrial(testTrial())
	data = append(data, 0x78, 0x2a) // field 15, varint 42

	got, err := UnmarshalTrial(data)
	if err != nil {
		t.Fatalf("UnmarshalTrial() failed: %v", err)
	}
	if got.ID != "s01-t03" {
		t.Errorf("ID = %q, want %q", got.ID, "s01-t03")
	}
}
