package dsp

import (
	"math"
	"sort"

	"github.com/noriah/sonica/dsp/window"
	"github.com/noriah/sonica/fft"
	"github.com/noriah/sonica/input"
	"github.com/noriah/sonica/util"
)

// Beat detection and tempo constants
const (
	// RMSWindowDivisor splits a second into peak RMS windows (100ms).
	RMSWindowDivisor = 10

	// BeatWindow is the number of onsets on each side of the local mean.
	BeatWindow = 20
	// ThresholdScale multiplies the local mean flux.
	ThresholdScale = 1.5
	// ThresholdBias keeps near silence from producing beats.
	ThresholdBias = 0.01
	// MinBeatGap is the shortest time in seconds between two beats.
	MinBeatGap = 0.1

	// MinBeatInterval and MaxBeatInterval bound the intervals used for tempo
	// estimation (200 to 60 BPM).
	MinBeatInterval = 0.3
	MaxBeatInterval = 1.0
	// DefaultTempo is used when there are not enough beats to estimate one.
	DefaultTempo = 120.0
)

// GlobalAnalysis is the result of the first pass over a track.
type GlobalAnalysis struct {
	SampleRate    int       // samples per second
	TotalSamples  int       // number of mono samples
	Duration      float64   // seconds
	PeakRMS       float64   // highest RMS over 100ms windows
	PeakAmplitude float64   // highest absolute sample value
	BeatTimes     []float64 // seconds, increasing, at least MinBeatGap apart
	TempoBPM      float64   // estimated tempo
}

// Onset is one spectral flux measurement, stamped with the start time of its
// analysis window.
type Onset struct {
	Time float64
	Flux float64
}

// AnalyzeGlobal runs the first pass over samples.
func AnalyzeGlobal(samples input.Samples) *GlobalAnalysis {
	data := samples.Data

	onsets := OnsetFlux(data, samples.SampleRate, fft.NewPlan(FFTSize))
	beats := DetectBeats(onsets)

	return &GlobalAnalysis{
		SampleRate:    samples.SampleRate,
		TotalSamples:  len(data),
		Duration:      samples.Duration(),
		PeakRMS:       PeakRMS(data, samples.SampleRate/RMSWindowDivisor),
		PeakAmplitude: PeakAmplitude(data),
		BeatTimes:     beats,
		TempoBPM:      EstimateTempo(beats),
	}
}

// PeakAmplitude returns the highest absolute value in data.
func PeakAmplitude(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// PeakRMS returns the highest RMS over consecutive windows of size samples.
// The last window may be shorter.
func PeakRMS(data []float64, size int) float64 {
	if size < 1 {
		size = 1
	}

	peak := 0.0
	for start := 0; start < len(data); start += size {
		end := start + size
		if end > len(data) {
			end = len(data)
		}

		peak = math.Max(peak, RMS(data[start:end]))
	}

	return peak
}

// OnsetFlux computes the spectral flux of data over Hann windowed frames of
// plan.Size() samples spaced HopSize apart. Only whole frames are analyzed.
//
// Magnitudes are scaled to amplitude (2/N) so ThresholdBias means the same
// thing at any transform size. The scaling keeps steady tones from crossing
// the threshold, at the cost of quiet material: clicks much below 0.02
// amplitude no longer register as beats. The first frame has nothing to
// compare against and gets zero flux.
func OnsetFlux(data []float64, rate int, plan *fft.Plan) []Onset {
	size := plan.Size()
	if rate <= 0 || len(data) < size {
		return nil
	}

	hann := window.Table(window.Hann, size)
	scale := 2.0 / float64(size)

	onsets := make([]Onset, 0, (len(data)-size)/HopSize+1)

	var prev, cur []float64

	for pos := 0; pos+size <= len(data); pos += HopSize {
		for i, w := range hann {
			plan.Input[i] = data[pos+i] * w
		}

		plan.Execute()

		cur = plan.Magnitudes(cur)
		for i := range cur {
			cur[i] *= scale
		}

		flux := 0.0
		if prev != nil {
			flux = SpectralFlux(prev, cur)
		}

		onsets = append(onsets, Onset{
			Time: float64(pos) / float64(rate),
			Flux: flux,
		})

		prev, cur = cur, prev
	}

	return onsets
}

// DetectBeats picks beats out of an onset series. An onset is a beat when its
// flux is above ThresholdScale times the mean of the BeatWindow onsets around
// it plus ThresholdBias, it is not lower than either neighbor, and it comes at
// least MinBeatGap after the previous beat.
func DetectBeats(onsets []Onset) []float64 {
	n := len(onsets)
	if n == 0 {
		return nil
	}

	var beats []float64

	local := util.NewMovingWindow(2*BeatWindow + 1)
	for i := 0; i < n && i < BeatWindow; i++ {
		local.Update(onsets[i].Flux)
	}

	for i, onset := range onsets {
		// slide the window to [i-BeatWindow, i+BeatWindow], clipped to the series
		if next := i + BeatWindow; next < n {
			local.Update(onsets[next].Flux)
		}

		lo := max(i-BeatWindow, 0)
		hi := min(i+BeatWindow, n-1)
		if extra := local.Len() - (hi - lo + 1); extra > 0 {
			local.Drop(extra)
		}

		threshold := local.Mean()*ThresholdScale + ThresholdBias

		if onset.Flux <= threshold {
			continue
		}

		if i > 0 && onset.Flux < onsets[i-1].Flux {
			continue
		}

		if i < n-1 && onset.Flux < onsets[i+1].Flux {
			continue
		}

		if last := len(beats) - 1; last >= 0 && onset.Time-beats[last] < MinBeatGap {
			continue
		}

		beats = append(beats, onset.Time)
	}

	return beats
}

// EstimateTempo returns the tempo in beats per minute from the median interval
// between beats. Intervals outside [MinBeatInterval, MaxBeatInterval] are
// ignored. With an even number of intervals the upper middle one is used.
func EstimateTempo(beats []float64) float64 {
	if len(beats) < 2 {
		return DefaultTempo
	}

	intervals := make([]float64, 0, len(beats)-1)
	for i := 1; i < len(beats); i++ {
		if d := beats[i] - beats[i-1]; d >= MinBeatInterval && d <= MaxBeatInterval {
			intervals = append(intervals, d)
		}
	}

	if len(intervals) == 0 {
		return DefaultTempo
	}

	sort.Float64s(intervals)

	return 60.0 / intervals[len(intervals)/2]
}
