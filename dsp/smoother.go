package dsp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SmoothedFrame is the final, normalized feature set of one output frame.
// Every float field except Time and Waveform is in [0, 1].
type SmoothedFrame struct {
	Bins             []float64 // smoothed spectrum, per bin normalized
	Bass             float64   // sub-bass + bass
	Mid              float64   // low-mid + mid
	High             float64   // upper-mid + presence + brilliance
	RMS              float64
	SpectralCentroid float64
	SpectralFlux     float64
	BeatIntensity    float64 // 1 on a beat, decaying after
	BeatPhase        float64 // position between the surrounding beats
	IsBeat           bool
	Waveform         []float64 // raw samples, not normalized
	Time             float64   // seconds
}

// SmootherConfig configures a Smoother.
type SmootherConfig struct {
	FrameRate       int     // output frames per second
	SmoothingFactor float64 // smoothing factor in [0, 1)
}

// Smoother runs the third pass: a forward and a backward exponential moving
// average over the raw frames, averaged together and normalized against the
// peaks of the track.
type Smoother struct {
	fps   float64
	alpha float64
}

// NewSmoother returns a Smoother for cfg. alpha is 1 - SmoothingFactor.
func NewSmoother(cfg SmootherConfig) *Smoother {
	return &Smoother{
		fps:   float64(cfg.FrameRate),
		alpha: 1.0 - cfg.SmoothingFactor,
	}
}

// Smooth turns raw into smoothed frames. raw is consumed: its SpectralFlux
// fields are filled in and its waveforms are handed to the output.
func (sm *Smoother) Smooth(raw []FrameFeatures, global *GlobalAnalysis) []SmoothedFrame {
	n := len(raw)
	if n == 0 {
		return nil
	}

	numBins := len(raw[0].Bins)

	flux := make([]float64, n)
	for i := 1; i < n; i++ {
		flux[i] = SpectralFlux(raw[i-1].Bins, raw[i].Bins)
		raw[i].SpectralFlux = flux[i]
	}

	peakRMS := math.Max(global.PeakRMS, Epsilon)
	peakFlux := math.Max(floats.Max(flux), Epsilon)

	maxCentroid := Epsilon
	peakBins := make([]float64, numBins)
	for j := range peakBins {
		peakBins[j] = Epsilon
	}

	for i := range raw {
		maxCentroid = math.Max(maxCentroid, raw[i].SpectralCentroid)
		for j, v := range raw[i].Bins[:numBins] {
			peakBins[j] = math.Max(peakBins[j], v)
		}
	}

	frames := make([]SmoothedFrame, n)
	for i := range frames {
		frames[i].Bins = make([]float64, numBins)
	}

	col := make([]float64, n)
	fwd := make([]float64, n)
	bwd := make([]float64, n)

	// spectrum, one bin at a time
	for j := 0; j < numBins; j++ {
		for i := range raw {
			col[i] = raw[i].Bins[j]
		}

		fwd = ForwardEMA(col, sm.alpha, fwd)
		bwd = BackwardEMA(col, sm.alpha, bwd)

		for i := range frames {
			frames[i].Bins[j] = unit((fwd[i] + bwd[i]) * 0.5 / peakBins[j])
		}
	}

	for i := range raw {
		col[i] = raw[i].RMS
	}

	fwd = ForwardEMA(col, sm.alpha, fwd)
	bwd = BackwardEMA(col, sm.alpha, bwd)

	for i := range frames {
		frames[i].RMS = unit((fwd[i] + bwd[i]) * 0.5 / peakRMS)
	}

	// Bands are normalized against the peak of the forward pass alone. The
	// average can land above that peak right after a transient; it clamps to 1.
	merged := make([][3]float64, n)
	for i := range raw {
		merged[i][0], merged[i][1], merged[i][2] = Merge(raw[i].Bands)
	}

	for b := 0; b < 3; b++ {
		for i := range merged {
			col[i] = merged[i][b]
		}

		fwd = ForwardEMA(col, sm.alpha, fwd)
		bwd = BackwardEMA(col, sm.alpha, bwd)

		peak := math.Max(floats.Max(fwd), Epsilon)
		for i := range frames {
			v := unit((fwd[i] + bwd[i]) * 0.5 / peak)
			switch b {
			case 0:
				frames[i].Bass = v
			case 1:
				frames[i].Mid = v
			default:
				frames[i].High = v
			}
		}
	}

	decay := BeatDecay(sm.fps)
	intensity := 0.0

	for i := range frames {
		f := &frames[i]
		f.Time = float64(i) / sm.fps

		f.SpectralCentroid = unit(raw[i].SpectralCentroid / maxCentroid)
		f.SpectralFlux = unit(flux[i] / peakFlux)

		f.IsBeat = OnBeat(f.Time, global.BeatTimes, sm.fps)
		if f.IsBeat {
			intensity = 1.0
		} else {
			intensity *= decay
		}

		f.BeatIntensity = intensity
		f.BeatPhase = BeatPhase(f.Time, global.BeatTimes)
		f.Waveform = raw[i].Waveform
	}

	return frames
}

// ForwardEMA writes the exponential moving average of raw, run from the first
// value to the last, into out and returns it. The first output is raw[0].
func ForwardEMA(raw []float64, alpha float64, out []float64) []float64 {
	out = resize(out, len(raw))
	if len(raw) == 0 {
		return out
	}

	acc := raw[0]
	out[0] = acc

	for i := 1; i < len(raw); i++ {
		acc = alpha*raw[i] + (1.0-alpha)*acc
		out[i] = acc
	}

	return out
}

// BackwardEMA is ForwardEMA run from the last value to the first.
func BackwardEMA(raw []float64, alpha float64, out []float64) []float64 {
	out = resize(out, len(raw))
	if len(raw) == 0 {
		return out
	}

	last := len(raw) - 1
	acc := raw[last]
	out[last] = acc

	for i := last - 1; i >= 0; i-- {
		acc = alpha*raw[i] + (1.0-alpha)*acc
		out[i] = acc
	}

	return out
}

func resize(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

// BeatDecay returns the per frame multiplier that takes the beat envelope
// most of the way to zero in about 100ms.
func BeatDecay(fps float64) float64 {
	return math.Pow(0.9, 10.0/fps)
}

// OnBeat reports whether t is within half a frame of any beat. beats must be
// sorted.
func OnBeat(t float64, beats []float64, fps float64) bool {
	half := 0.5 / fps

	idx := sort.Search(len(beats), func(i int) bool {
		return beats[i] > t-half
	})

	return idx < len(beats) && beats[idx] < t+half
}

// BeatPhase returns how far t is between the beat before it and the beat
// after it, in [0, 1]. Before the first beat the phase ramps up from 0 at
// t = 0, and after the last beat it stays at 1. beats must be sorted.
func BeatPhase(t float64, beats []float64) float64 {
	if len(beats) == 0 {
		return 0
	}

	// first beat after t
	idx := sort.Search(len(beats), func(i int) bool {
		return beats[i] > t
	})

	switch {
	case idx == 0:
		if beats[0] > 0 {
			return unit(t / beats[0])
		}
		return 0

	case idx == len(beats):
		return 1
	}

	prev, next := beats[idx-1], beats[idx]
	if interval := next - prev; interval > 0 {
		return unit((t - prev) / interval)
	}

	return 0
}
