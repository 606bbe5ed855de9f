package eval

import (
	"errors"
	"math"
	"testing"
)

func TestIoU(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want float64
	}{
		{
			name: "identical",
			a:    Interval{0, 10},
			b:    Interval{0, 10},
			want: 1.0,
		},
		{
			name: "disjoint",
			a:    Interval{0, 10},
			b:    Interval{20, 30},
			want: 0.0,
		},
		{
			name: "touching is disjoint",
			a:    Interval{0, 10},
			b:    Interval{10, 20},
			want: 0.0,
		},
		{
			name: "half overlap",
			a:    Interval{0, 10},
			b:    Interval{5, 15},
			want: 5.0 / 15.0,
		},
		{
			name: "nested",
			a:    Interval{0, 10},
			b:    Interval{2, 8},
			want: 6.0 / 10.0,
		},
		{
			name: "negative axis",
			a:    Interval{-10, 0},
			b:    Interval{-5, 5},
			want: 5.0 / 15.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IoU(tt.a, tt.b)
			if err != nil {
				t.Fatalf("IoU() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("IoU(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}

			// Symmetry
			rev, err := IoU(tt.b, tt.a)
			if err != nil {
				t.Fatalf("IoU() reversed error = %v", err)
			}
			if rev != got {
				t.Errorf("IoU not symmetric: %v vs %v", got, rev)
			}

			if got < 0 || got > 1 {
				t.Errorf("IoU(%v, %v) = %v, outside [0, 1]", tt.a, tt.b, got)
			}
		})
	}
}

func TestIoU_InvalidInterval(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
	}{
		{"zero length a", Interval{5, 5}, Interval{0, 10}},
		{"reversed b", Interval{0, 10}, Interval{10, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IoU(tt.a, tt.b)
			if !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("expected ErrInvalidInterval, got %v", err)
			}
		})
	}
}

func TestInterval_Length(t *testing.T) {
	iv := Interval{357, 431}
	if got := iv.Length(); got != 74 {
		t.Errorf("Length() = %v, want 74", got)
	}
}
