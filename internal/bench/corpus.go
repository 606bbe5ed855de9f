// Package bench provides corpus loading, scoring configuration and
// hyperparameter sweeps for step-detection evaluation.
package bench

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/strideworks/go-gait/eval"
)

// TrialExt is the file extension of serialized trial recordings.
const TrialExt = ".trial"

// ErrCorruptTrial indicates a trial file that does not parse as the
// expected wire format.
var ErrCorruptTrial = errors.New("bench: corrupt trial file")

// Trial is one recorded locomotion trial: a single-channel sensor signal at
// a fixed sample rate, its annotated footstep intervals and the subject's
// pathology-group label.
type Trial struct {
	ID         string
	Subject    string
	Label      string
	SampleRate float64
	Signal     []float64
	Steps      []eval.Interval
}

// Field numbers of the trial wire format. The schema is small and fixed, so
// the file is read and written directly with the protobuf wire package
// instead of generated code.
const (
	fieldID         = 1 // string
	fieldSubject    = 2 // string
	fieldLabel      = 3 // string
	fieldSampleRate = 4 // double
	fieldSignal     = 5 // packed double
	fieldStep       = 6 // repeated message {1: start double, 2: end double}

	fieldStepStart = 1
	fieldStepEnd   = 2
)

// MarshalTrial serializes a trial into its wire format.
func MarshalTrial(t *Trial) []byte {
	var buf []byte

	buf = protowire.AppendTag(buf, fieldID, protowire.BytesType)
	buf = protowire.AppendString(buf, t.ID)
	buf = protowire.AppendTag(buf, fieldSubject, protowire.BytesType)
	buf = protowire.AppendString(buf, t.Subject)
	buf = protowire.AppendTag(buf, fieldLabel, protowire.BytesType)
	buf = protowire.AppendString(buf, t.Label)
	buf = protowire.AppendTag(buf, fieldSampleRate, protowire.Fixed64Type)
	buf = protowire.AppendFixed64(buf, math.Float64bits(t.SampleRate))

	if len(t.Signal) > 0 {
		packed := make([]byte, 0, 8*len(t.Signal))
		for _, v := range t.Signal {
			packed = protowire.AppendFixed64(packed, math.Float64bits(v))
		}
		buf = protowire.AppendTag(buf, fieldSignal, protowire.BytesType)
		buf = protowire.AppendBytes(buf, packed)
	}

	for _, s := range t.Steps {
		var sub []byte
		sub = protowire.AppendTag(sub, fieldStepStart, protowire.Fixed64Type)
		sub = protowire.AppendFixed64(sub, math.Float64bits(s.Start))
		sub = protowire.AppendTag(sub, fieldStepEnd, protowire.Fixed64Type)
		sub = protowire.AppendFixed64(sub, math.Float64bits(s.End))

		buf = protowire.AppendTag(buf, fieldStep, protowire.BytesType)
		buf = protowire.AppendBytes(buf, sub)
	}

	return buf
}

// UnmarshalTrial parses a trial from its wire format.
func UnmarshalTrial(data []byte) (*Trial, error) {
	t := &Trial{}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: bad tag", ErrCorruptTrial)
		}
		data = data[n:]

		switch {
		case num == fieldID && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: id", ErrCorruptTrial)
			}
			t.ID = v
			data = data[n:]

		case num == fieldSubject && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: subject", ErrCorruptTrial)
			}
			t.Subject = v
			data = data[n:]

		case num == fieldLabel && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: label", ErrCorruptTrial)
			}
			t.Label = v
			data = data[n:]

		case num == fieldSampleRate && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: sample rate", ErrCorruptTrial)
			}
			t.SampleRate = math.Float64frombits(v)
			data = data[n:]

		case num == fieldSignal && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(data)
			if n < 0 || len(packed)%8 != 0 {
				return nil, fmt.Errorf("%w: signal", ErrCorruptTrial)
			}
			data = data[n:]
			t.Signal = make([]float64, 0, len(packed)/8)
			for len(packed) > 0 {
				v, m := protowire.ConsumeFixed64(packed)
				if m < 0 {
					return nil, fmt.Errorf("%w: signal sample", ErrCorruptTrial)
				}
				t.Signal = append(t.Signal, math.Float64frombits(v))
				packed = packed[m:]
			}

		case num == fieldStep && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: step", ErrCorruptTrial)
			}
			data = data[n:]
			step, err := unmarshalStep(sub)
			if err != nil {
				return nil, err
			}
			t.Steps = append(t.Steps, step)

		default:
			// Skip unknown fields for forward compatibility
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d", ErrCorruptTrial, num)
			}
			data = data[n:]
		}
	}

	return t, nil
}

func unmarshalStep(data []byte) (eval.Interval, error) {
	var step eval.Interval
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 || typ != protowire.Fixed64Type {
			return step, fmt.Errorf("%w: step field", ErrCorruptTrial)
		}
		data = data[n:]

		v, n := protowire.ConsumeFixed64(data)
		if n < 0 {
			return step, fmt.Errorf("%w: step value", ErrCorruptTrial)
		}
		data = data[n:]

		switch num {
		case fieldStepStart:
			step.Start = math.Float64frombits(v)
		case fieldStepEnd:
			step.End = math.Float64frombits(v)
		}
	}
	return step, nil
}

// WriteTrial serializes a trial to path.
func WriteTrial(path string, t *Trial) error {
	if err := os.WriteFile(path, MarshalTrial(t), 0o644); err != nil {
		return fmt.Errorf("write trial: %w", err)
	}
	return nil
}

// LoadTrial loads and validates one trial file. The trial ID defaults to
// the file name when the recording does not carry one. Malformed step
// annotations fail here, before any scoring is attempted.
func LoadTrial(path string) (*Trial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trial: %w", err)
	}

	t, err := UnmarshalTrial(data)
	if err != nil {
		return nil, err
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	for i, s := range t.Steps {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("trial %s step %d: %w", t.ID, i, err)
		}
	}

	return t, nil
}

// LoadCorpus loads all trial files from a directory.
func LoadCorpus(dir string) ([]*Trial, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var trials []*Trial
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != TrialExt {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		trial, err := LoadTrial(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		trials = append(trials, trial)
	}

	return trials, nil
}
