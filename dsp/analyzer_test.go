package dsp

import (
	"math"
	"testing"
)

func TestAnalyzerBars(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{
		SampleRate: 44100,
		BinCount:   FFTSize / 2,
	})

	if n := az.Recalculate(4); n != 4 || az.BarCount() != 4 {
		t.Fatalf("Recalculate(4) = %d", n)
	}

	bins := make([]float64, FFTSize/2)
	bins[100] = 1 // about 2153 Hz

	bars := az.Process(nil, bins)

	want := []float64{0, 0, 1, 0}
	for i := range want {
		if bars[i] != want[i] {
			t.Fatalf("bars = %v, want %v", bars, want)
		}
	}
}

func TestAnalyzerEveryBarHasABin(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{
		SampleRate: 44100,
		BinCount:   FFTSize / 2,
		BinMethod:  SumSamples(),
	})

	n := az.Recalculate(300)

	bins := make([]float64, FFTSize/2)
	for i := range bins {
		bins[i] = 1
	}

	for i, v := range az.Process(make([]float64, 0, n), bins) {
		if v < 1 {
			t.Fatalf("bar %d is empty", i)
		}
	}
}

func TestAnalyzerClampsCount(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{SampleRate: 8000, BinCount: 16})

	if n := az.Recalculate(100); n != 16 {
		t.Errorf("Recalculate(100) = %d, want 16", n)
	}

	if n := az.Recalculate(-1); n != 0 || len(az.Process(nil, nil)) != 0 {
		t.Errorf("Recalculate(-1) = %d", n)
	}
}

func TestBinMethods(t *testing.T) {
	vals := []float64{1, 3, 2}

	var tests = []struct {
		name   string
		method BinMethod
		want   float64
	}{
		{"max", MaxSampleValue(), 3},
		{"sum", SumSamples(), 6},
		{"average", AverageSamples(), 2},
	}

	for _, test := range tests {
		got := 0.0
		for _, v := range vals {
			got = test.method(len(vals), got, v)
		}

		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("%s = %g, want %g", test.name, got, test.want)
		}
	}
}

func TestMonstercat(t *testing.T) {
	bars := []float64{0, 0, 1, 0, 0}
	Monstercat(bars, 2)

	want := []float64{0.25, 0.5, 1, 0.5, 0.25}
	for i := range want {
		if math.Abs(bars[i]-want[i]) > 1e-12 {
			t.Fatalf("bars = %v, want %v", bars, want)
		}
	}

	flat := []float64{0, 1, 0}
	Monstercat(flat, 1)
	if flat[0] != 0 || flat[2] != 0 {
		t.Errorf("factor 1 changed bars: %v", flat)
	}
}
