// Package uniform packs smoothed frames into the fixed layout renderers bind
// as a uniform block, plus the spectrum and waveform storage payloads.
package uniform

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/noriah/sonica/dsp"
)

// Size is the length in bytes of a packed Uniforms block.
const Size = 64

// Uniforms is one frame of renderer uniforms. Field order and sizes match the
// shader side block; do not reorder.
type Uniforms struct {
	Resolution       [2]float32
	Time             float32
	Frame            uint32
	FPS              float32
	Duration         float32
	RMS              float32
	SpectralCentroid float32
	SpectralFlux     float32
	BeatIntensity    float32
	BeatPhase        float32
	IsBeat           float32 // 0 or 1
	Bass             float32
	Mid              float32
	High             float32
	_                float32
}

// New builds the uniforms for frame idx of a track duration seconds long
// rendered at width x height and fps.
func New(frame *dsp.SmoothedFrame, idx uint32, width, height, fps int, duration float64) Uniforms {
	u := Uniforms{
		Resolution:       [2]float32{float32(width), float32(height)},
		Time:             float32(frame.Time),
		Frame:            idx,
		FPS:              float32(fps),
		Duration:         float32(duration),
		RMS:              float32(frame.RMS),
		SpectralCentroid: float32(frame.SpectralCentroid),
		SpectralFlux:     float32(frame.SpectralFlux),
		BeatIntensity:    float32(frame.BeatIntensity),
		BeatPhase:        float32(frame.BeatPhase),
		Bass:             float32(frame.Bass),
		Mid:              float32(frame.Mid),
		High:             float32(frame.High),
	}

	if frame.IsBeat {
		u.IsBeat = 1
	}

	return u
}

// MarshalBinary returns the little endian block.
func (u Uniforms) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, Size))
	if err := binary.Write(buf, binary.LittleEndian, u); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Float32s encodes values as little endian float32s, the storage buffer
// layout for spectrum and waveform data.
func Float32s(values []float64) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(float32(v)))
	}
	return out
}
