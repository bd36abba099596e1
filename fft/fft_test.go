package fft

import (
	"math"
	"testing"
)

func TestMagnitudesPeakAtToneBin(t *testing.T) {
	const size = 1024
	const bin = 37

	plan := NewPlan(size)
	for i := range plan.Input {
		plan.Input[i] = math.Sin(2 * math.Pi * bin * float64(i) / size)
	}

	plan.Execute()
	mags := plan.Magnitudes(nil)

	if len(mags) != size/2 {
		t.Fatalf("len(mags) = %d, want %d", len(mags), size/2)
	}

	peak := 0
	for i, v := range mags {
		if v > mags[peak] {
			peak = i
		}
	}

	if peak != bin {
		t.Errorf("peak bin = %d, want %d", peak, bin)
	}

	// a unit sine puts size/2 into its bin
	if got := mags[bin]; math.Abs(got-size/2) > 1e-6 {
		t.Errorf("mags[%d] = %f, want %d", bin, got, size/2)
	}
}

func TestMagnitudesSilence(t *testing.T) {
	plan := NewPlan(256)
	plan.Execute()

	for i, v := range plan.Magnitudes(make([]float64, 4)) {
		if v != 0 {
			t.Fatalf("mags[%d] = %f, want 0", i, v)
		}
	}
}

func TestResetClearsInput(t *testing.T) {
	plan := NewPlan(8)
	for i := range plan.Input {
		plan.Input[i] = 1
	}

	plan.Reset()

	for i, v := range plan.Input {
		if v != 0 {
			t.Fatalf("Input[%d] = %f after Reset", i, v)
		}
	}
}

func Benchmark(b *testing.B) {
	reals := generateReals()
	plan := NewPlan(len(reals))
	copy(plan.Input, reals)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		plan.Execute()
	}
}

// Adapted from https://github.com/project-gemmi/benchmarking-fft/blob/master/1d-r.cpp

const numReals = 2048

func generateReals() []float64 {
	input := make([]float64, numReals)

	c := 3.1
	for i := range input {
		c += 0.3
		input[i] = 2*c - c*c
	}

	return input
}
