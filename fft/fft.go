// Package fft provides a thin plan abstraction around gonum's real FFT.
//
// A Plan owns its input, output and twiddle work buffers. It is not safe for
// concurrent use; give every goroutine its own Plan.
package fft

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Plan holds a gonum FFT plan and the buffers it works on.
type Plan struct {
	Input  []float64
	Output []complex128
	fft    *fourier.FFT
}

// NewPlan returns a plan for real transforms of size samples.
func NewPlan(size int) *Plan {
	return &Plan{
		Input:  make([]float64, size),
		Output: make([]complex128, size/2+1),
		fft:    fourier.NewFFT(size),
	}
}

// Size returns the transform length.
func (p *Plan) Size() int {
	return len(p.Input)
}

// Reset zeroes the input buffer.
func (p *Plan) Reset() {
	for i := range p.Input {
		p.Input[i] = 0
	}
}

// Execute transforms Input into Output.
func (p *Plan) Execute() {
	p.fft.Coefficients(p.Output, p.Input)
}

// Magnitudes writes the magnitude of the lower half of the spectrum (size/2
// values, DC included, Nyquist excluded) into dst and returns it. dst is
// allocated when it is too small.
func (p *Plan) Magnitudes(dst []float64) []float64 {
	half := len(p.Input) / 2
	if cap(dst) < half {
		dst = make([]float64, half)
	}
	dst = dst[:half]

	for i, c := range p.Output[:half] {
		dst[i] = math.Hypot(real(c), imag(c))
	}

	return dst
}
