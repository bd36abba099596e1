package dsp

import (
	"math"
	"testing"

	"github.com/noriah/sonica/fft"
	"github.com/noriah/sonica/input"
)

func extractAll(samples input.Samples, fps int) []FrameFeatures {
	ext := NewExtractor(samples, fps)
	plan := fft.NewPlan(FFTSize)

	frames := make([]FrameFeatures, ext.FrameCount())
	for i := range frames {
		frames[i] = ext.Extract(i, plan)
	}

	return frames
}

func TestExtractToneCentroid(t *testing.T) {
	const rate = 44100

	frames := extractAll(sine(1000, 1, rate, 1), 30)
	if len(frames) != 30 {
		t.Fatalf("got %d frames, want 30", len(frames))
	}

	resolution := float64(rate) / FFTSize

	for i, ff := range frames {
		if len(ff.Bins) != FFTSize/2 {
			t.Fatalf("frame %d: %d bins, want %d", i, len(ff.Bins), FFTSize/2)
		}

		if math.Abs(ff.SpectralCentroid-1000) > resolution {
			t.Errorf("frame %d: centroid = %g, want 1000 +/- %g", i, ff.SpectralCentroid, resolution)
		}

		if math.Abs(ff.RMS-math.Sqrt2/2) > 0.01 {
			t.Errorf("frame %d: rms = %g, want %g", i, ff.RMS, math.Sqrt2/2)
		}

		if len(ff.Waveform) != WaveformSize {
			t.Errorf("frame %d: waveform has %d points", i, len(ff.Waveform))
		}

		if ff.SpectralFlux != 0 {
			t.Errorf("frame %d: flux set before smoothing", i)
		}
	}
}

func TestExtractSilence(t *testing.T) {
	for i, ff := range extractAll(silence(48000, 0.5), 24) {
		if ff.RMS != 0 || ff.SpectralCentroid != 0 {
			t.Fatalf("frame %d: rms=%g centroid=%g", i, ff.RMS, ff.SpectralCentroid)
		}

		for b, v := range ff.Bands {
			if v != 0 {
				t.Fatalf("frame %d: band %s = %g", i, Bands[b].Name, v)
			}
		}

		for _, v := range ff.Bins {
			if v != 0 {
				t.Fatalf("frame %d: non zero bin in silence", i)
			}
		}
	}
}

func TestExtractShortTrack(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = 0.25
	}

	frames := extractAll(input.NewSamples(data, 44100), 30)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}

	if got := len(frames[0].Waveform); got != 100 {
		t.Errorf("waveform has %d points, want 100", got)
	}

	if math.Abs(frames[0].RMS-0.25) > 1e-12 {
		t.Errorf("rms = %g, want 0.25", frames[0].RMS)
	}
}

func TestExtractBassTone(t *testing.T) {
	ff := extractAll(sine(100, 1, 44100, 0.5), 30)[5]

	for b, v := range ff.Bands {
		if b != Bass && v >= ff.Bands[Bass] {
			t.Errorf("band %s = %g, not below bass %g", Bands[b].Name, v, ff.Bands[Bass])
		}
	}
}

func TestExtractPureFunction(t *testing.T) {
	samples := sine(330, 0.8, 22050, 1)
	ext := NewExtractor(samples, 25)

	a := ext.Extract(7, fft.NewPlan(FFTSize))

	plan := fft.NewPlan(FFTSize)
	ext.Extract(3, plan)
	b := ext.Extract(7, plan)

	for i := range a.Bins {
		if a.Bins[i] != b.Bins[i] {
			t.Fatalf("bin %d differs between plans: %g != %g", i, a.Bins[i], b.Bins[i])
		}
	}

	if a.RMS != b.RMS || a.SpectralCentroid != b.SpectralCentroid || a.Bands != b.Bands {
		t.Errorf("features differ between plans")
	}
}

func TestBandEnergy(t *testing.T) {
	bins := make([]float64, 1024)
	for i := range bins {
		bins[i] = 1
	}

	if got := BandEnergy(bins, Bands[Mid], 44100.0/FFTSize); got != 1 {
		t.Errorf("flat spectrum mid energy = %g, want 1", got)
	}

	if got := BandEnergy(bins, Band{"inverted", 500, 100}, 10); got != 0 {
		t.Errorf("inverted band energy = %g, want 0", got)
	}

	// past the end of the spectrum
	if got := BandEnergy(bins[:10], Bands[Brilliance], 21.5); got != 0 {
		t.Errorf("out of range band energy = %g, want 0", got)
	}
}

func TestMerge(t *testing.T) {
	bass, mid, high := Merge([BandCount]float64{1, 2, 3, 4, 5, 6, 7})
	if bass != 3 || mid != 7 || high != 18 {
		t.Errorf("Merge = %g %g %g, want 3 7 18", bass, mid, high)
	}
}

func TestSpectralCentroid(t *testing.T) {
	if got := SpectralCentroid(make([]float64, 8), 10); got != 0 {
		t.Errorf("silent centroid = %g, want 0", got)
	}

	if got := SpectralCentroid([]float64{0, 1, 0, 1}, 10); got != 20 {
		t.Errorf("centroid = %g, want 20", got)
	}
}

func TestWaveform(t *testing.T) {
	if got := Waveform(nil, 4); len(got) != 4 || got[0] != 0 || got[3] != 0 {
		t.Errorf("empty frame waveform = %v", got)
	}

	if got := Waveform([]float64{1, 2}, 4); len(got) != 2 || got[1] != 2 {
		t.Errorf("short frame waveform = %v", got)
	}

	got := Waveform([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4)
	want := []float64{0, 2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("waveform = %v, want %v", got, want)
		}
	}
}
