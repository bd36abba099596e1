// Package window provides Window Functions for singnal analysis
//
// See https://wikipedia.org/wiki/Window_function
package window

import "math"

// Function is a function that will do window things for you
type Function func(buf []float64)

// CosSum modifies the buffer to conform to a symmetric cosine sum window
// following a0. The first and last samples get a0 - (1 - a0).
func CosSum(buf []float64, a0 float64) {
	var size = len(buf)
	if size < 2 {
		return
	}

	var a1 = 1.0 - a0
	var coef = 2.0 * math.Pi / float64(size-1)
	for n := 0; n < size; n++ {
		buf[n] *= (a0 - a1*math.Cos(coef*float64(n)))
	}
}

// Hann modifies the buffer to a Hann window
func Hann(buf []float64) {
	CosSum(buf, 0.5)
}

// Hamming modifies the buffer to a Hamming window
func Hamming(buf []float64) {
	CosSum(buf, 25.0/46.0)
}

// Table returns the coefficients of fn for a buffer of size samples, so they
// can be applied with a multiply per sample instead of recomputed.
func Table(fn Function, size int) []float64 {
	buf := make([]float64, size)
	for i := range buf {
		buf[i] = 1.0
	}

	fn(buf)

	return buf
}
