package dsp

import "math"

// Band is a named frequency range in Hz. Low is inclusive, High exclusive.
type Band struct {
	Name string
	Low  float64
	High float64
}

// Band indexes into Bands and FrameFeatures.Bands.
const (
	SubBass = iota
	Bass
	LowMid
	Mid
	UpperMid
	Presence
	Brilliance

	BandCount
)

// Bands are the dividing frequencies
var Bands = [BandCount]Band{
	SubBass:    {"sub-bass", 20.0, 60.0},
	Bass:       {"bass", 60.0, 250.0},
	LowMid:     {"low-mid", 250.0, 500.0},
	Mid:        {"mid", 500.0, 2000.0},
	UpperMid:   {"upper-mid", 2000.0, 4000.0},
	Presence:   {"presence", 4000.0, 6000.0},
	Brilliance: {"brilliance", 6000.0, 20000.0},
}

// BandEnergy returns the RMS of the magnitudes in bins that fall inside band.
// resolution is the width of one bin in Hz. An empty or inverted span gives 0.
func BandEnergy(bins []float64, band Band, resolution float64) float64 {
	lo := freqToIdx(band.Low, resolution)
	hi := freqToIdx(band.High, resolution)

	if hi > len(bins) {
		hi = len(bins)
	}

	if lo >= hi {
		return 0
	}

	sum := 0.0
	for _, mag := range bins[lo:hi] {
		sum += mag * mag
	}

	return math.Sqrt(sum / float64(hi-lo))
}

func freqToIdx(freq, resolution float64) int {
	return int(math.Floor(freq / resolution))
}

// Merge folds the seven bands into the bass, mid and high values used by
// renderers.
func Merge(bands [BandCount]float64) (bass, mid, high float64) {
	bass = bands[SubBass] + bands[Bass]
	mid = bands[LowMid] + bands[Mid]
	high = bands[UpperMid] + bands[Presence] + bands[Brilliance]
	return
}
