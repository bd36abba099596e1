package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/noriah/sonica/dsp/window"
	"github.com/noriah/sonica/fft"
	"github.com/noriah/sonica/input"
)

// FrameFeatures are the raw, unsmoothed features of one output frame.
type FrameFeatures struct {
	Bins             []float64          // FFTSize/2 linear magnitudes
	Bands            [BandCount]float64 // energy per Bands entry
	RMS              float64            // time domain RMS over one frame
	SpectralCentroid float64            // Hz
	SpectralFlux     float64            // set by the Smoother
	Waveform         []float64          // up to WaveformSize samples
}

// Extractor computes FrameFeatures for frame indexes of one track.
//
// An Extractor is read only once created. Extract may be called from many
// goroutines at once as long as each passes its own plan.
type Extractor struct {
	samples         input.Samples
	frames          int
	samplesPerFrame float64
	resolution      float64
	hann            []float64
}

// NewExtractor returns an Extractor for samples rendered at fps frames per
// second.
func NewExtractor(samples input.Samples, fps int) *Extractor {
	ext := &Extractor{
		samples: samples,
		frames:  samples.FrameCount(fps),
		hann:    window.Table(window.Hann, FFTSize),
	}

	if fps > 0 {
		ext.samplesPerFrame = float64(samples.SampleRate) / float64(fps)
	}

	ext.resolution = float64(samples.SampleRate) / FFTSize

	return ext
}

// FrameCount returns the number of frames in the track.
func (ext *Extractor) FrameCount() int {
	return ext.frames
}

// Extract computes the features of frame idx using plan, which must be
// FFTSize long and not in use by anyone else.
func (ext *Extractor) Extract(idx int, plan *fft.Plan) FrameFeatures {
	data := ext.samples.Data
	center := int(math.Round(float64(idx) * ext.samplesPerFrame))

	// transform window, clipped to the start and zero padded at the end
	plan.Reset()

	start := max(center-FFTSize/2, 0)
	end := min(start+FFTSize, len(data))
	for i := start; i < end; i++ {
		plan.Input[i-start] = data[i] * ext.hann[i-start]
	}

	plan.Execute()

	ff := FrameFeatures{
		Bins: plan.Magnitudes(nil),
	}

	for b, band := range Bands {
		ff.Bands[b] = BandEnergy(ff.Bins, band, ext.resolution)
	}

	ff.SpectralCentroid = SpectralCentroid(ff.Bins, ext.resolution)

	// one frame of samples around the same center
	width := int(ext.samplesPerFrame)
	lo := max(center-width/2, 0)
	hi := min(lo+width, len(data))

	var frame []float64
	if lo < hi {
		frame = data[lo:hi]
	}

	ff.RMS = RMS(frame)
	ff.Waveform = Waveform(frame, WaveformSize)

	return ff
}

// SpectralCentroid returns the magnitude weighted mean frequency of bins in
// Hz, or 0 when the spectrum is silent.
func SpectralCentroid(bins []float64, resolution float64) float64 {
	total := floats.Sum(bins)
	if total <= Epsilon {
		return 0
	}

	weighted := 0.0
	for i, mag := range bins {
		weighted += float64(i) * resolution * mag
	}

	return weighted / total
}

// Waveform picks size evenly spaced samples out of frame by nearest index.
// Shorter frames are copied whole. An empty frame gives size zeros.
func Waveform(frame []float64, size int) []float64 {
	if len(frame) == 0 {
		return make([]float64, size)
	}

	n := min(size, len(frame))
	out := make([]float64, n)
	for i := range out {
		out[i] = frame[i*len(frame)/n]
	}

	return out
}
