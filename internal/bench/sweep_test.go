package bench

import (
	"reflect"
	"testing"
)

func TestGridParams(t *testing.T) {
	grid := GridParams([]int{40, 60}, []int{40, 60, 80})

	if len(grid) != 6 {
		t.Fatalf("got %d combinations, want 6", len(grid))
	}
	want := Params{AtomLength: 40, MinSpacing: 40}
	if grid[0] != want {
		t.Errorf("grid[0] = %+v, want %+v", grid[0], want)
	}
	want = Params{AtomLength: 60, MinSpacing: 80}
	if grid[5] != want {
		t.Errorf("grid[5] = %+v, want %+v", grid[5], want)
	}
}

func TestSweepRange(t *testing.T) {
	got := SweepRange(40, 120, 20)
	want := []int{40, 60, 80, 100}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SweepRange() = %v, want %v", got, want)
	}
}

func TestSweepRange_Empty(t *testing.T) {
	if got := SweepRange(100, 100, 20); got != nil {
		t.Errorf("SweepRange() = %v, want nil", got)
	}
}
