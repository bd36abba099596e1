package input

import "math"

// SampleType is the datatype decoders hand us.
type SampleType = float32

// Samples is a decoded mono track.
//
// It is created once by a decoder and never modified afterwards, so it can be
// read from many goroutines at the same time.
type Samples struct {
	Data       []float64 // mono samples, centered at 0
	SampleRate int       // samples per second
}

// NewSamples returns a Samples holding data at rate.
func NewSamples(data []float64, rate int) Samples {
	return Samples{Data: data, SampleRate: rate}
}

// Len returns the number of samples.
func (s Samples) Len() int {
	return len(s.Data)
}

// Duration returns the length of the track in seconds.
func (s Samples) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Data)) / float64(s.SampleRate)
}

// FrameCount returns the number of output frames needed to cover the track at
// fps frames per second.
func (s Samples) FrameCount(fps int) int {
	if s.SampleRate <= 0 || fps <= 0 || len(s.Data) == 0 {
		return 0
	}

	// len*fps is exact, so one division keeps the ceil honest.
	return int(math.Ceil(float64(len(s.Data)) * float64(fps) / float64(s.SampleRate)))
}
