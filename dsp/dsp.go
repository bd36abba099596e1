// Package dsp provides audio analysis
//
// Analysis runs in three passes over a whole track:
//
//  1. AnalyzeGlobal sweeps the track once for peaks, onsets, beats and tempo.
//  2. Extractor computes raw FrameFeatures for each output frame. Frames are
//     independent of each other and may be computed in any order.
//  3. Smoother walks the raw frames in order, smoothing and normalizing them
//     into SmoothedFrames bounded to [0, 1].
//
// Some notes:
//
// https://dlbeer.co.nz/articles/fftvis.html
// https://www.cg.tuwien.ac.at/courses/WissArbeiten/WS2010/processing.pdf
// https://stackoverflow.com/questions/3694918/how-to-extract-frequency-associated-with-fft-values-in-python
//   - https://stackoverflow.com/a/27191172
package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// FFTSize is the transform length used by every pass.
	FFTSize = 2048
	// HopSize is the distance between onset analysis windows.
	HopSize = 1024
	// WaveformSize is the number of points in a frame's waveform snapshot.
	WaveformSize = 512
	// Epsilon floors every divisor so silence never divides by zero.
	Epsilon = 1e-10
)

// unit clamps v into [0, 1]. NaN maps to 0.
func unit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, 1)
}

// SpectralFlux returns the sum of the positive differences between cur and
// prev, bin by bin.
func SpectralFlux(prev, cur []float64) float64 {
	n := len(cur)
	if len(prev) < n {
		n = len(prev)
	}

	flux := 0.0
	for i, v := range cur[:n] {
		if d := v - prev[i]; d > 0 {
			flux += d
		}
	}

	return flux
}

// RMS returns the root mean square of buf, or 0 for an empty buffer.
func RMS(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(buf, buf) / float64(len(buf)))
}
