package uniform

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/noriah/sonica/dsp"
)

func f32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestMarshalLayout(t *testing.T) {
	frame := &dsp.SmoothedFrame{
		Time:             2.5,
		RMS:              0.25,
		SpectralCentroid: 0.5,
		SpectralFlux:     0.75,
		BeatIntensity:    1,
		BeatPhase:        0.125,
		IsBeat:           true,
		Bass:             0.1,
		Mid:              0.2,
		High:             0.3,
	}

	buf, err := New(frame, 75, 1920, 1080, 30, 12.5).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	if len(buf) != Size {
		t.Fatalf("block is %d bytes, want %d", len(buf), Size)
	}

	var tests = []struct {
		name string
		off  int
		want float32
	}{
		{"width", 0, 1920},
		{"height", 4, 1080},
		{"time", 8, 2.5},
		{"fps", 16, 30},
		{"duration", 20, 12.5},
		{"rms", 24, 0.25},
		{"centroid", 28, 0.5},
		{"flux", 32, 0.75},
		{"intensity", 36, 1},
		{"phase", 40, 0.125},
		{"beat", 44, 1},
		{"bass", 48, 0.1},
		{"mid", 52, 0.2},
		{"high", 56, 0.3},
		{"padding", 60, 0},
	}

	for _, test := range tests {
		if got := f32At(buf, test.off); got != test.want {
			t.Errorf("%s at %d = %g, want %g", test.name, test.off, got, test.want)
		}
	}

	if got := binary.LittleEndian.Uint32(buf[12:]); got != 75 {
		t.Errorf("frame = %d, want 75", got)
	}
}

func TestNotBeat(t *testing.T) {
	u := New(&dsp.SmoothedFrame{}, 0, 1, 1, 1, 0)
	if u.IsBeat != 0 {
		t.Errorf("IsBeat = %g, want 0", u.IsBeat)
	}
}

func TestFloat32s(t *testing.T) {
	buf := Float32s([]float64{0.5, -1, 2})
	if len(buf) != 12 {
		t.Fatalf("payload is %d bytes, want 12", len(buf))
	}

	for i, want := range []float32{0.5, -1, 2} {
		if got := f32At(buf, 4*i); got != want {
			t.Errorf("value %d = %g, want %g", i, got, want)
		}
	}
}
